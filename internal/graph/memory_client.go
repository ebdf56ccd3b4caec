package graph

import (
	"context"
	"sync"
)

// MemoryClient is an in-memory Client used to unit test repository logic without
// a running graph database. Reads are answered from per-query responses first and
// then from a FIFO queue.
type MemoryClient struct {
	mu            sync.Mutex
	writeCalls    []ExecutedQuery
	writeTxs      int
	failWrite     int
	failWriteErr  error
	readCalls     []ExecutedQuery
	readResults   []Result
	readResponses map[string]Result
	err           error
	connectivity  error
}

// ExecutedQuery captures a cypher statement and parameters executed against the graph.
type ExecutedQuery struct {
	Query  string
	Params map[string]any
}

// NewMemoryClient instantiates an empty in-memory client.
func NewMemoryClient() *MemoryClient {
	return &MemoryClient{readResponses: make(map[string]Result)}
}

// WithError configures the client to return the provided error for subsequent calls.
func (m *MemoryClient) WithError(err error) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	return m
}

// WithConnectivityError forces VerifyConnectivity to return the supplied error.
func (m *MemoryClient) WithConnectivityError(err error) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connectivity = err
	return m
}

// FailWriteAt makes the statement at index n of the next write transaction fail
// with err. The whole transaction is discarded, as a rolled back one would be.
func (m *MemoryClient) FailWriteAt(n int, err error) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWrite = n
	m.failWriteErr = err
	return m
}

// PushReadResult appends a result returned by the next ExecuteRead call that has
// no per-query response.
func (m *MemoryClient) PushReadResult(res Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readResults = append(m.readResults, res)
}

// RespondTo makes every ExecuteRead of exactly cypher return res.
func (m *MemoryClient) RespondTo(cypher string, res Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readResponses[cypher] = res
}

func (m *MemoryClient) ExecuteWrite(_ context.Context, statements ...Statement) ([]Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}

	pending := make([]ExecutedQuery, 0, len(statements))
	for i, st := range statements {
		if m.failWriteErr != nil && i == m.failWrite {
			err := m.failWriteErr
			m.failWriteErr = nil
			return nil, err
		}
		pending = append(pending, ExecutedQuery{Query: st.Cypher, Params: cloneMap(st.Params)})
	}

	m.writeCalls = append(m.writeCalls, pending...)
	m.writeTxs++
	return make([]Result, len(statements)), nil
}

func (m *MemoryClient) ExecuteRead(_ context.Context, cypher string, params map[string]any) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return Result{}, m.err
	}

	m.readCalls = append(m.readCalls, ExecutedQuery{
		Query:  cypher,
		Params: cloneMap(params),
	})

	if res, ok := m.readResponses[cypher]; ok {
		return res, nil
	}
	if len(m.readResults) == 0 {
		return Result{}, nil
	}

	res := m.readResults[0]
	m.readResults = m.readResults[1:]
	return res, nil
}

func (m *MemoryClient) VerifyConnectivity(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connectivity
}

func (m *MemoryClient) Close(context.Context) error {
	return nil
}

// WriteCalls returns a snapshot of committed write statements.
func (m *MemoryClient) WriteCalls() []ExecutedQuery {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ExecutedQuery(nil), m.writeCalls...)
}

// WriteTransactions reports how many write transactions were committed.
func (m *MemoryClient) WriteTransactions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writeTxs
}

// ReadCalls returns a snapshot of executed read queries.
func (m *MemoryClient) ReadCalls() []ExecutedQuery {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ExecutedQuery(nil), m.readCalls...)
}

func cloneMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
