package huffman

import (
	"container/heap"
	"errors"
)

// ErrNoSymbols indicates BuildTree was called with a frequency table that
// has no symbols with a non-zero count.
var ErrNoSymbols = errors.New("frequency table has no symbols")

// Node is a node of the Huffman prefix tree. A leaf carries a symbol; an
// internal node always has exactly two children.
type Node struct {
	Symbol byte   // Leaf symbol (meaningful only when Leaf() is true)
	Count  uint64 // Occurrence count covered by this subtree
	Left   *Node
	Right  *Node
}

// Leaf reports whether n is a leaf.
func (n *Node) Leaf() bool {
	return n.Left == nil && n.Right == nil
}

// heapNode pairs a tree node with its insertion sequence number. The merge
// order is the total order (count, sequence), so equal counts resolve by
// insertion order and the built tree depends only on the frequency table.
type heapNode struct {
	node *Node
	seq  int
}

type nodeHeap []heapNode

func (h nodeHeap) Len() int { return len(h) }

func (h nodeHeap) Less(i, j int) bool {
	if h[i].node.Count != h[j].node.Count {
		return h[i].node.Count < h[j].node.Count
	}
	return h[i].seq < h[j].seq
}

func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *nodeHeap) Push(x any) { *h = append(*h, x.(heapNode)) }

func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = heapNode{}
	*h = old[:n-1]
	return item
}

// BuildTree constructs the Huffman prefix tree for ft. Leaves are seeded in
// ascending symbol order and merges take the two minimum nodes, the first
// popped becoming the left child. Because ties resolve by insertion
// sequence, identical tables always produce identical trees: the encoding
// and decoding sides agree without any tree being transmitted.
//
// A table with a single symbol yields a root whose two leaves carry that
// symbol, so the symbol still receives a one-bit code. An empty table
// returns ErrNoSymbols.
func BuildTree(ft *FrequencyTable) (*Node, error) {
	h := make(nodeHeap, 0, ft.Distinct())
	seq := 0
	for sym := 0; sym < len(ft); sym++ {
		if ft[sym] == 0 {
			continue
		}
		h = append(h, heapNode{
			node: &Node{Symbol: byte(sym), Count: ft[sym]},
			seq:  seq,
		})
		seq++
	}
	if len(h) == 0 {
		return nil, ErrNoSymbols
	}

	if len(h) == 1 {
		// A lone symbol would otherwise sit at the root with an empty
		// code. Pair it with a second leaf for the same symbol.
		leaf := h[0].node
		return &Node{
			Count: leaf.Count,
			Left:  leaf,
			Right: &Node{Symbol: leaf.Symbol},
		}, nil
	}

	heap.Init(&h)
	for h.Len() > 1 {
		left := heap.Pop(&h).(heapNode).node
		right := heap.Pop(&h).(heapNode).node
		heap.Push(&h, heapNode{
			node: &Node{
				Count: left.Count + right.Count,
				Left:  left,
				Right: right,
			},
			seq: seq,
		})
		seq++
	}
	return heap.Pop(&h).(heapNode).node, nil
}
