// Package graph provides the directed-graph value emitted by the balancer
// synthesis engine.
//
// A balancer network has four node kinds: external inputs and outputs, and
// synthesized splitter and merger devices. Edges are directed and labeled
// with the integer flow they carry. The graph is a plain structured value -
// node and edge lists in insertion order - so embedders can merge, rename,
// and splice sub-graphs programmatically instead of round-tripping through
// rendered DOT text.
//
// Graphs are built once by [github.com/coder0xff/optifactory/pkg/balancer.Design]
// and read afterwards; there is no update-in-place API beyond renaming, which
// exists for embedders that namespace device IDs across several networks.
package graph
