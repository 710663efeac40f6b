package content

// Kind tags the variant held by a Node.
type Kind int

const (
	KindText Kind = iota
	KindImage
	KindBreak
	KindQuote
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindImage:
		return "image"
	case KindBreak:
		return "break"
	case KindQuote:
		return "quote"
	default:
		return "unknown"
	}
}

// Node is one element of a reply body. Data is set for text and image nodes,
// Children only for quotes. A quote owns its children; nodes are never shared.
type Node struct {
	Kind     Kind
	Data     string
	Children []Node
}

func Text(data string) Node {
	return Node{Kind: KindText, Data: data}
}

func Image(data string) Node {
	return Node{Kind: KindImage, Data: data}
}

func Break() Node {
	return Node{Kind: KindBreak}
}

func Quote(children ...Node) Node {
	return Node{Kind: KindQuote, Children: children}
}

func (n Node) IsBreak() bool {
	return n.Kind == KindBreak
}
