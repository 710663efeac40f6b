package content

import (
	"reflect"
	"testing"
)

func TestTrimTail_RemovesTemplateTrailer(t *testing.T) {
	nodes := []Node{Text("hello"), Break(), Text("world"), Break(), Break(), Break(), Text("")}
	got := TrimTail(nodes)
	want := []Node{Text("hello"), Break(), Text("world")}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected trim result: got=%+v want=%+v", got, want)
	}
}

func TestTrimTail_LeavesNonMatchingShapes(t *testing.T) {
	cases := []struct {
		name  string
		nodes []Node
	}{
		{name: "non-empty last text", nodes: []Node{Text("a"), Break(), Break(), Break(), Text("x")}},
		{name: "image at end", nodes: []Node{Text("a"), Break(), Break(), Break(), Image("pic.gif")}},
		{name: "only two breaks", nodes: []Node{Text("a"), Text("b"), Break(), Break(), Text("")}},
		{name: "quote in trailer", nodes: []Node{Text("a"), Break(), Quote(Text("q")), Break(), Text("")}},
		{name: "exactly the trailer", nodes: []Node{Break(), Break(), Break(), Text("")}},
		{name: "short", nodes: []Node{Break(), Text("")}},
		{name: "empty", nodes: nil},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := TrimTail(tc.nodes)
			if !reflect.DeepEqual(got, tc.nodes) {
				t.Fatalf("expected nodes untouched, got %+v", got)
			}
		})
	}
}

func TestTrimTail_RemovesExactlyFour(t *testing.T) {
	nodes := []Node{Break(), Break(), Break(), Break(), Break(), Break(), Text("")}
	got := TrimTail(nodes)
	if len(got) != len(nodes)-4 {
		t.Fatalf("expected %d nodes, got %d", len(nodes)-4, len(got))
	}
}

func TestCollapseLeadingBreaks(t *testing.T) {
	nodes := []Node{Break(), Break(), Break(), Text("a"), Break(), Break(), Image("b.png"), Break()}
	got := CollapseLeadingBreaks(nodes)
	want := []Node{Text("a"), Break(), Break(), Image("b.png"), Break()}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected collapse result: got=%+v want=%+v", got, want)
	}
	if got[0].IsBreak() {
		t.Fatal("expected no leading break")
	}
	if countBreaks(got) != countBreaks(nodes[3:]) {
		t.Fatalf("expected non-leading breaks preserved, got %d", countBreaks(got))
	}
}

func TestCollapseLeadingBreaks_AllBreaks(t *testing.T) {
	got := CollapseLeadingBreaks([]Node{Break(), Break()})
	if len(got) != 0 {
		t.Fatalf("expected empty body, got %+v", got)
	}
}

func TestClean_TrimsThenCollapses(t *testing.T) {
	nodes := []Node{Break(), Quote(Text("quoted")), Break(), Text("reply"), Break(), Break(), Break(), Text("")}
	got := Clean(nodes)
	want := []Node{Quote(Text("quoted")), Break(), Text("reply")}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected clean result: got=%+v want=%+v", got, want)
	}
}

func TestClean_AppliesInsideQuotes(t *testing.T) {
	nodes := []Node{
		Text("top"),
		Break(),
		Quote(
			Break(), Break(), Text("quoted"),
			Quote(Break(), Text("deep"), Break(), Break(), Break(), Text("")),
			Break(), Break(), Break(), Text(""),
		),
		Text("after"),
	}
	got := Clean(nodes)
	want := []Node{
		Text("top"),
		Break(),
		Quote(Text("quoted"), Quote(Text("deep"))),
		Text("after"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected clean result:\n got=%+v\nwant=%+v", got, want)
	}
	if len(nodes[2].Children) != 8 {
		t.Fatalf("expected input quote untouched, got %+v", nodes[2].Children)
	}
}

func countBreaks(nodes []Node) int {
	count := 0
	for _, n := range nodes {
		if n.IsBreak() {
			count++
		}
	}
	return count
}
