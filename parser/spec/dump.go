package spec

import "strings"

// Dump renders the tree rooted at n one node per line, indented with one tab
// per level of depth. Every line, including the last, ends in a newline.
func Dump(n *Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	dump(&b, n, 0)
	return b.String()
}

func dump(b *strings.Builder, n *Node, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteByte('\t')
	}
	b.WriteString(n.NodeName)
	b.WriteByte('\n')
	for _, child := range n.childNodes {
		dump(b, child, depth+1)
	}
}
