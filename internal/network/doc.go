// Package network derives the rendered view of an ingredient co-occurrence graph.
//
// SelectSubgraph turns a category's node and edge tables into the capped,
// weight-ordered subgraph the dashboard draws. Project and Highlighter compute
// the per-node hover emphasis for that subgraph. Everything here is pure: the
// same inputs always give the same, order-equal outputs.
package network
