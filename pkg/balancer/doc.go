// Package balancer synthesizes balancer networks: given N input flow rates
// and M output flow rates summing equally, [Design] produces a minimal
// network of binary/ternary splitter and merger devices that redistributes
// the inputs into exactly the requested outputs, as a labeled directed graph.
//
// Synthesis runs in two stages. A greedy single-pass assigner ([Assign])
// decides how much flow each input contributes to each output. A device-tree
// builder then constructs, per input, a fan-out tree of splitters and, per
// output, a fan-in tree of mergers, both using the same grouping rule:
// combine three branches whenever three remain, else two. That preference is
// provably optimal and yields exactly ceil((n-1)/2) devices per tree.
//
// The engine is stateless and synchronous. Each Design call owns its device
// numbering, so callers balancing many materials may invoke it concurrently
// without coordination.
package balancer
