package huffman

import (
	"errors"
	"fmt"
	"strings"
)

// maxCodeBits is the widest code the packed representation can hold.
const maxCodeBits = 64

// Code is a single Huffman code: the Len lowest bits of Bits, with the
// first tree edge in the most significant of those positions.
type Code struct {
	Bits uint64
	Len  uint8
}

// String renders the code as a string of '0' and '1' characters, first
// edge first.
func (c Code) String() string {
	var sb strings.Builder
	sb.Grow(int(c.Len))
	for i := int(c.Len) - 1; i >= 0; i-- {
		if c.Bits>>uint(i)&1 == 1 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// CodeTable maps byte symbols to their Huffman codes.
type CodeTable struct {
	codes    [256]Code
	assigned [256]bool
}

// NewCodeTable assigns a code to every leaf of the tree rooted at root by
// depth-first traversal: descending to the left child appends a 0 bit,
// descending to the right child appends a 1 bit. When the same symbol
// appears on more than one leaf the first assignment in traversal order
// wins.
func NewCodeTable(root *Node) (*CodeTable, error) {
	if root == nil {
		return nil, errors.New("nil coding tree")
	}
	t := &CodeTable{}
	if err := t.assign(root, Code{}); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *CodeTable) assign(n *Node, prefix Code) error {
	if n.Leaf() {
		if prefix.Len == 0 {
			return fmt.Errorf("empty code for symbol %#02x", n.Symbol)
		}
		if !t.assigned[n.Symbol] {
			t.codes[n.Symbol] = prefix
			t.assigned[n.Symbol] = true
		}
		return nil
	}
	if n.Left == nil || n.Right == nil {
		return errors.New("internal node with a single child")
	}
	if prefix.Len >= maxCodeBits {
		return fmt.Errorf("code longer than %d bits", maxCodeBits)
	}
	if err := t.assign(n.Left, Code{Bits: prefix.Bits << 1, Len: prefix.Len + 1}); err != nil {
		return err
	}
	return t.assign(n.Right, Code{Bits: prefix.Bits<<1 | 1, Len: prefix.Len + 1})
}

// Code returns the code assigned to sym and whether sym has one.
func (t *CodeTable) Code(sym byte) (Code, bool) {
	return t.codes[sym], t.assigned[sym]
}

// Size returns the number of symbols with an assigned code.
func (t *CodeTable) Size() int {
	size := 0
	for _, ok := range t.assigned {
		if ok {
			size++
		}
	}
	return size
}
