package rope

import "strings"

// Tree shape constants.
const (
	// MaxChildren is the maximum children per internal node.
	MaxChildren = 8

	// MaxChunksPerLeaf is the maximum chunks in a leaf node.
	MaxChunksPerLeaf = 4
)

// node is a node of the rope B+ tree. Leaves (height 0) hold chunks,
// internal nodes hold children. Nodes are never modified once shared.
type node struct {
	height  uint8
	summary TextSummary

	children []*node
	chunks   []Chunk
}

func newLeaf(chunks []Chunk) *node {
	n := &node{chunks: chunks}
	for _, c := range chunks {
		n.summary = n.summary.Add(c.summary)
	}
	return n
}

func newInternal(children []*node) *node {
	n := &node{height: children[0].height + 1, children: children}
	for _, c := range children {
		n.summary = n.summary.Add(c.summary)
	}
	return n
}

func (n *node) isLeaf() bool {
	return n.height == 0
}

func (n *node) length() int {
	return n.summary.Bytes
}

func (n *node) appendRange(sb *strings.Builder, start, end int) {
	if start >= end {
		return
	}
	if n.isLeaf() {
		offset := 0
		for _, c := range n.chunks {
			cEnd := offset + c.Len()
			if cEnd > start && offset < end {
				sb.WriteString(c.data[max(start-offset, 0):min(end-offset, c.Len())])
			}
			if cEnd >= end {
				return
			}
			offset = cEnd
		}
		return
	}

	offset := 0
	for _, child := range n.children {
		cEnd := offset + child.length()
		if cEnd > start && offset < end {
			child.appendRange(sb, max(start-offset, 0), min(end-offset, child.length()))
		}
		if cEnd >= end {
			return
		}
		offset = cEnd
	}
}

func (n *node) forEachChunk(start, end int, fn func(string) bool) bool {
	if start >= end {
		return true
	}
	if n.isLeaf() {
		offset := 0
		for _, c := range n.chunks {
			cEnd := offset + c.Len()
			if cEnd > start && offset < end {
				if !fn(c.data[max(start-offset, 0):min(end-offset, c.Len())]) {
					return false
				}
			}
			if cEnd >= end {
				return true
			}
			offset = cEnd
		}
		return true
	}

	offset := 0
	for _, child := range n.children {
		cEnd := offset + child.length()
		if cEnd > start && offset < end {
			if !child.forEachChunk(max(start-offset, 0), min(end-offset, child.length()), fn) {
				return false
			}
		}
		if cEnd >= end {
			return true
		}
		offset = cEnd
	}
	return true
}

// split returns the subtrees covering [0, offset) and [offset, len).
func (n *node) split(offset int) (*node, *node) {
	if offset <= 0 {
		return nil, n
	}
	if offset >= n.length() {
		return n, nil
	}

	if n.isLeaf() {
		var left, right []Chunk
		pos := 0
		for _, c := range n.chunks {
			switch {
			case pos+c.Len() <= offset:
				left = append(left, c)
			case pos >= offset:
				right = append(right, c)
			default:
				l, r := c.Split(offset - pos)
				left = append(left, l)
				right = append(right, r)
			}
			pos += c.Len()
		}
		return newLeaf(left), newLeaf(right)
	}

	var left, right []*node
	pos := 0
	for _, child := range n.children {
		switch {
		case pos+child.length() <= offset:
			left = append(left, child)
		case pos >= offset:
			right = append(right, child)
		default:
			l, r := child.split(offset - pos)
			if l != nil {
				left = append(left, l)
			}
			if r != nil {
				right = append(right, r)
			}
		}
		pos += child.length()
	}
	return buildFromNodes(left), buildFromNodes(right)
}

// buildFromNodes stacks nodes of possibly different heights into one tree.
func buildFromNodes(nodes []*node) *node {
	var root *node
	for _, n := range nodes {
		root = concatNodes(root, n)
	}
	return root
}

// buildBalanced builds a tree from nodes of equal height.
func buildBalanced(nodes []*node) *node {
	if len(nodes) == 0 {
		return nil
	}
	for len(nodes) > 1 {
		parents := make([]*node, 0, len(nodes)/MaxChildren+1)
		for i := 0; i < len(nodes); i += MaxChildren {
			parents = append(parents, newInternal(nodes[i:min(i+MaxChildren, len(nodes))]))
		}
		nodes = parents
	}
	return nodes[0]
}

func concatNodes(left, right *node) *node {
	if left == nil || left.length() == 0 {
		return right
	}
	if right == nil || right.length() == 0 {
		return left
	}

	switch {
	case left.height == right.height:
		return mergeSameHeight(left, right)
	case left.height > right.height:
		last := left.children[len(left.children)-1]
		merged := concatNodes(last, right)
		children := append(append([]*node{}, left.children[:len(left.children)-1]...), spill(merged, left.height)...)
		return regroup(children)
	default:
		first := right.children[0]
		merged := concatNodes(left, first)
		children := append(spill(merged, right.height), right.children[1:]...)
		return regroup(children)
	}
}

// spill returns the nodes of height h-1 that n contributes to a parent of
// height h.
func spill(n *node, h uint8) []*node {
	if n.height == h {
		return append([]*node{}, n.children...)
	}
	for n.height < h-1 {
		n = newInternal([]*node{n})
	}
	return []*node{n}
}

func regroup(children []*node) *node {
	if len(children) <= MaxChildren {
		return newInternal(children)
	}
	return buildBalanced(children)
}

func mergeSameHeight(left, right *node) *node {
	if left.isLeaf() {
		chunks := make([]Chunk, 0, len(left.chunks)+len(right.chunks))
		chunks = append(chunks, left.chunks...)
		first := right.chunks
		if last := chunks[len(chunks)-1]; last.Len()+first[0].Len() <= MinChunkSize {
			chunks[len(chunks)-1] = NewChunk(last.data + first[0].data)
			first = first[1:]
		}
		chunks = append(chunks, first...)
		if len(chunks) <= MaxChunksPerLeaf {
			return newLeaf(chunks)
		}
		return newInternal([]*node{newLeaf(chunks[:len(chunks)/2]), newLeaf(chunks[len(chunks)/2:])})
	}

	children := make([]*node, 0, len(left.children)+len(right.children))
	children = append(children, left.children...)
	children = append(children, right.children...)
	if len(children) <= MaxChildren {
		return newInternal(children)
	}
	return newInternal([]*node{left, right})
}

// lineOfOffset counts the newlines before offset.
func (n *node) lineOfOffset(offset int) int {
	lines := 0
	for !n.isLeaf() {
		last := len(n.children) - 1
		for i, child := range n.children {
			if offset < child.length() || i == last {
				n = child
				break
			}
			offset -= child.length()
			lines += child.summary.Lines
		}
	}
	for _, c := range n.chunks {
		if offset < c.Len() {
			return lines + strings.Count(c.data[:offset], "\n")
		}
		offset -= c.Len()
		lines += c.summary.Lines
	}
	return lines
}

// offsetOfLine returns the offset just past the line-th newline.
// The caller guarantees 1 <= line <= n.summary.Lines.
func (n *node) offsetOfLine(line int) int {
	offset := 0
	for !n.isLeaf() {
		for _, child := range n.children {
			if child.summary.Lines >= line {
				n = child
				break
			}
			line -= child.summary.Lines
			offset += child.length()
		}
	}
	for _, c := range n.chunks {
		if c.summary.Lines >= line {
			return offset + findNthNewline(c.data, line) + 1
		}
		line -= c.summary.Lines
		offset += c.Len()
	}
	return offset
}
