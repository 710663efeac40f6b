package content

// trailerLen is the size of the blank trailer the forum template appends to
// every reply: three line breaks followed by an empty text run.
const trailerLen = 4

// Clean applies TrimTail and then CollapseLeadingBreaks to nodes and to the
// children of every quote, at any depth.
func Clean(nodes []Node) []Node {
	out := CollapseLeadingBreaks(TrimTail(nodes))
	for i, n := range out {
		if n.Kind == KindQuote {
			out[i] = Quote(Clean(n.Children)...)
		}
	}
	return out
}

// TrimTail drops the template trailer when nodes end with exactly
// [break, break, break, empty text]. Anything else is returned untouched.
// A body made of nothing but the trailer is left alone.
func TrimTail(nodes []Node) []Node {
	if len(nodes) <= trailerLen || !hasTrailer(nodes) {
		return nodes
	}
	return nodes[:len(nodes)-trailerLen]
}

func hasTrailer(nodes []Node) bool {
	for pos := 0; pos < trailerLen; pos++ {
		n := nodes[len(nodes)-1-pos]
		switch {
		case pos == 0:
			if n.Kind != KindText || n.Data != "" {
				return false
			}
		case !n.IsBreak():
			return false
		}
	}
	return true
}

// CollapseLeadingBreaks removes every break that precedes the first
// non-break node. Later breaks are kept as they are.
func CollapseLeadingBreaks(nodes []Node) []Node {
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		if n.IsBreak() && len(out) == 0 {
			continue
		}
		out = append(out, n)
	}
	return out
}
