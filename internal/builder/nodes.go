package builder

import (
	"strings"

	nethtml "golang.org/x/net/html"

	"github.com/glabrego/hkg-cli/internal/content"
)

// convertChildren turns the children of a content container into reply
// nodes, recursing into quotations.
func convertChildren(parent *nethtml.Node) []content.Node {
	var out []content.Node
	for child := parent.FirstChild; child != nil; child = child.NextSibling {
		if node, ok := convertNode(child); ok {
			out = append(out, node)
		}
	}
	return out
}

func convertNode(node *nethtml.Node) (content.Node, bool) {
	switch node.Type {
	case nethtml.TextNode:
		return convertText(node.Data)
	case nethtml.ElementNode:
	default:
		return content.Node{}, false
	}

	switch strings.ToLower(node.Data) {
	case "br":
		return content.Break(), true
	case "img":
		src := nodeAttr(node, "src")
		if src == "" {
			src = nodeAttr(node, "alt")
		}
		return content.Image(src), true
	case "blockquote":
		return content.Quote(convertChildren(node)...), true
	case "script", "style":
		return content.Node{}, false
	default:
		return content.Text(flattenText(collectRawText(node))), true
	}
}

// convertText keeps text runs verbatim apart from control whitespace. Runs
// that only carry markup indentation are dropped.
func convertText(raw string) (content.Node, bool) {
	text := flattenText(raw)
	if strings.TrimSpace(text) == "" && strings.ContainsAny(raw, "\r\n") {
		return content.Node{}, false
	}
	return content.Text(text), true
}

var controlWhitespace = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ", "\t", " ")

func flattenText(s string) string {
	return controlWhitespace.Replace(s)
}

func nodeAttr(node *nethtml.Node, name string) string {
	for _, attr := range node.Attr {
		if strings.EqualFold(attr.Key, name) {
			return strings.TrimSpace(attr.Val)
		}
	}
	return ""
}

func collectRawText(node *nethtml.Node) string {
	if node == nil {
		return ""
	}
	if node.Type == nethtml.TextNode {
		return node.Data
	}
	if node.Type == nethtml.ElementNode {
		switch strings.ToLower(node.Data) {
		case "script", "style":
			return ""
		}
	}
	var b strings.Builder
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		b.WriteString(collectRawText(child))
	}
	return b.String()
}
