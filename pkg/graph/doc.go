// Package graph defines the logical node-graph model: typed nodes with
// directional ports, directed connections between an output port and an
// input port, and the Document aggregate that owns both lists and
// answers geometric queries (port anchor positions, hit testing).
//
// The model is a directed multigraph: parallel connections between
// different port pairs of the same two nodes are allowed, duplicate
// connections between the identical port pair are not. Connection
// polarity (output → input) is enforced at construction time by the
// canvas engine, not merely by convention.
//
// Document and its contents are plain value aggregates. Clone produces
// a deep copy with no shared mutable substructure, which is what the
// history manager snapshots. Nothing in this package is safe for
// concurrent use without external synchronization.
package graph
