package graph

import (
	"context"
	"errors"
)

// Client runs Cypher against the store holding ingredient networks. Writes take a
// list of statements that commit or roll back together.
type Client interface {
	ExecuteWrite(ctx context.Context, statements ...Statement) ([]Result, error)
	ExecuteRead(ctx context.Context, cypher string, params map[string]any) (Result, error)
	VerifyConnectivity(ctx context.Context) error
	Close(ctx context.Context) error
}

// Statement is one parameterised Cypher query.
type Statement struct {
	Cypher string
	Params map[string]any
}

// Result holds the rows of one statement, fully read before the transaction ends.
type Result struct {
	Records []Record
}

// Record maps the RETURN column names of a row to their values.
type Record map[string]any

// Options carries the GRAPH_* connection settings.
type Options struct {
	URI            string
	Database       string
	Username       string
	Password       string
	MaxConnections int
}

// ErrMissingURI is returned when no GRAPH_URI was configured.
var ErrMissingURI = errors.New("graph URI is required")
