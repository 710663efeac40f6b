package show

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/glabrego/hkg-cli/internal/builder"
	"github.com/glabrego/hkg-cli/internal/content"
	"github.com/glabrego/hkg-cli/internal/forum"
)

var testNow = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

func bodyLines(res Result) []Line {
	var out []Line
	for _, line := range res.Lines {
		if line.Kind == LineBody {
			out = append(out, line)
		}
	}
	return out
}

func bodyTexts(res Result) []string {
	var out []string
	for _, line := range bodyLines(res) {
		out = append(out, line.Text)
	}
	return out
}

func TestRender_RowAccountingWithoutQuotes(t *testing.T) {
	cases := []struct {
		name string
		body []content.Node
		want int
	}{
		{"single text", []content.Node{content.Text("a")}, 1},
		{"text then break", []content.Node{content.Text("a"), content.Break()}, 1},
		{"breaks and residual", []content.Node{
			content.Text("a"), content.Break(), content.Text("b"), content.Break(), content.Break(), content.Text("c"),
		}, 4},
		{"image residual", []content.Node{content.Text("a"), content.Break(), content.Image("x.png")}, 2},
		{"empty text only", []content.Node{content.Text("")}, 0},
		{"trailer trimmed", []content.Node{
			content.Text("a"), content.Break(), content.Text("b"),
			content.Break(), content.Break(), content.Break(), content.Text(""),
		}, 2},
		{"leading breaks collapsed", []content.Node{
			content.Break(), content.Break(), content.Text("a"), content.Break(), content.Text("b"),
		}, 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body := content.Clean(tc.body)
			res := RenderAt([]forum.Reply{{AuthorName: "a", Body: body}}, 0, 40, 100, testNow)

			got := len(bodyLines(res))
			if got != tc.want {
				t.Fatalf("expected %d body rows, got %d (%q)", tc.want, got, bodyTexts(res))
			}
			residual := 0
			if n := len(body); n > 0 && !body[n-1].IsBreak() && body[n-1].Data != "" {
				residual = 1
			}
			if got != countBreaks(body)+residual {
				t.Fatalf("expected breaks+residual = %d rows, got %d", countBreaks(body)+residual, got)
			}
			if res.NextRow != got+2 {
				t.Fatalf("expected NextRow %d, got %d", got+2, res.NextRow)
			}
		})
	}
}

func countBreaks(nodes []content.Node) int {
	n := 0
	for _, node := range nodes {
		if node.IsBreak() {
			n++
		}
	}
	return n
}

func TestRender_EmptyRunsDrawNothing(t *testing.T) {
	cases := []struct {
		name string
		body []content.Node
		want []string
	}{
		{"empty text does not start a line", []content.Node{
			content.Text(""), content.Break(), content.Text("x"),
		}, []string{" x"}},
		{"empty image skipped", []content.Node{
			content.Text("a"), content.Image(""), content.Text("b"),
		}, []string{" ab"}},
		{"only empty image", []content.Node{content.Image("")}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := RenderAt([]forum.Reply{{AuthorName: "a", Body: tc.body}}, 0, 40, 100, testNow)
			got := bodyTexts(res)
			if strings.Join(got, "|") != strings.Join(tc.want, "|") || len(got) != len(tc.want) {
				t.Fatalf("unexpected body rows:\n got %q\nwant %q", got, tc.want)
			}
		})
	}
}

func TestRender_QuoteTrailerLeavesNoBlankRows(t *testing.T) {
	page, err := builder.ParseShow(`<table class="repliers" userid="1" username="a"><tr><td><div class="ContentGrid">`+
		`top<br/><blockquote><br/><br/>quoted<br/><br/><br/><span></span></blockquote>after`+
		`</div></td></tr></table>`, "")
	if err != nil {
		t.Fatalf("ParseShow returned error: %v", err)
	}
	res := RenderAt(page.Replies, 0, 40, 100, testNow)
	want := []string{" top", " ├─quoted", " after"}
	if got := bodyTexts(res); strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("unexpected body rows:\n got %q\nwant %q", got, want)
	}
}

func TestRender_QuoteEmittedBeforeFollowingSiblings(t *testing.T) {
	body := []content.Node{
		content.Text("p"),
		content.Quote(
			content.Text("a"),
			content.Quote(content.Text("deep")),
			content.Text("b"),
		),
		content.Text("after"),
	}
	res := RenderAt([]forum.Reply{{AuthorName: "a", Body: body}}, 0, 40, 100, testNow)

	want := []string{" p", " ├─a", " ├─├─deep", " ├─b", " after"}
	got := bodyTexts(res)
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("unexpected body rows:\n got %q\nwant %q", got, want)
	}
	lines := bodyLines(res)
	for i := 1; i < len(lines); i++ {
		if lines[i].Row <= lines[i-1].Row {
			t.Fatalf("rows out of order: %+v", lines)
		}
	}
	if lines[2].Depth != 2 {
		t.Fatalf("expected depth 2 for the inner quote, got %d", lines[2].Depth)
	}
}

func TestRender_ScrollOffsetSuppressesButCounts(t *testing.T) {
	body := []content.Node{
		content.Text("a"), content.Break(), content.Text("b"), content.Break(), content.Break(), content.Text("c"),
	}
	replies := []forum.Reply{{AuthorName: "a", Body: body}}

	res := RenderAt(replies, 2, 40, 3, testNow)
	if len(res.Lines) != 3 {
		t.Fatalf("expected 3 visible rows, got %+v", res.Lines)
	}
	want := []string{" b", " ", " c"}
	for i, line := range res.Lines {
		if line.Row != i || line.Text != want[i] {
			t.Fatalf("row %d: expected %q at %d, got %+v", i, want[i], i, line)
		}
	}
	if res.NextRow != 6 {
		t.Fatalf("expected all 6 rows counted, got %d", res.NextRow)
	}

	res = RenderAt(replies, 100, 40, 3, testNow)
	if len(res.Lines) != 0 || res.NextRow != 6 {
		t.Fatalf("expected nothing visible past the end, got %+v", res)
	}
}

func TestRender_TruncatesToDisplayWidth(t *testing.T) {
	body := []content.Node{content.Text("高登高登高登")}
	res := RenderAt([]forum.Reply{{AuthorName: "a", Body: body}}, 0, 8, 10, testNow)
	for _, line := range res.Lines {
		if w := displayWidth(line.Text); w > 8 {
			t.Fatalf("line %q is %d columns wide", line.Text, w)
		}
	}
	if got := bodyTexts(res)[0]; got != " 高登高" {
		t.Fatalf("expected wide glyphs cut whole, got %q", got)
	}
}

func TestRender_TinyViewportDoesNotPanic(t *testing.T) {
	body := []content.Node{content.Text("x"), content.Quote(content.Text("y"))}
	for _, width := range []int{-3, 0, 1, 2, 3} {
		res := RenderAt([]forum.Reply{{AuthorName: "名字很長很長很長很長", Body: body}}, 0, width, 10, testNow)
		for _, line := range res.Lines {
			if displayWidth(line.Text) > sat(width) {
				t.Fatalf("width %d: line %q too wide", width, line.Text)
			}
		}
	}
}

func TestRender_ParsedThreadSeparatorsInOrder(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("..", "..", "builder", "testdata", "show_two_replies.html"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	page, err := builder.ParseShow(string(raw), "view.aspx?message=6554309&page=2")
	if err != nil {
		t.Fatalf("ParseShow returned error: %v", err)
	}
	if len(page.Replies) != 2 {
		t.Fatalf("expected 2 replies, got %d", len(page.Replies))
	}

	res := RenderAt(page.Replies, 0, 60, 10, testNow)
	var tops, bottoms []int
	for _, line := range res.Lines {
		switch line.Kind {
		case LineTopSeparator:
			tops = append(tops, line.Row)
		case LineBottomSeparator:
			bottoms = append(bottoms, line.Row)
		}
	}
	if len(tops) != 2 || len(bottoms) != 2 {
		t.Fatalf("expected two framed replies, got tops %v bottoms %v", tops, bottoms)
	}
	if bottoms[0] >= tops[1] {
		t.Fatalf("first reply closes at row %d, second opens at row %d", bottoms[0], tops[1])
	}

	want := []string{" Hello 高登", " ├─quoted line", " ├─second quoted", " after quote", " Second reply[img http://img.test/a.png]", " line two"}
	if got := bodyTexts(res); strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("unexpected body rows:\n got %q\nwant %q", got, want)
	}
}

func TestTopSeparator_UsesDisplayWidth(t *testing.T) {
	wide := TopSeparator("高登", "1m", 40)
	narrow := TopSeparator("ab", "1m", 40)

	if w := displayWidth(wide); w != 40 {
		t.Fatalf("wide label separator is %d columns: %q", w, wide)
	}
	if w := displayWidth(narrow); w != 40 {
		t.Fatalf("narrow label separator is %d columns: %q", w, narrow)
	}
	if utf8.RuneCountInString(wide) == utf8.RuneCountInString(narrow) {
		t.Fatal("expected different rune counts for equal display widths")
	}
	if !strings.Contains(wide, "╭─────高登─────") {
		t.Fatalf("expected name centered in its field, got %q", wide)
	}
	if !strings.HasSuffix(narrow, "╮ ") {
		t.Fatalf("expected right aligned tab with padding, got %q", narrow)
	}
}

func TestSeparators_NarrowWidths(t *testing.T) {
	for _, width := range []int{0, 1, 2, 3, 10, 23} {
		top := TopSeparator("路過", "3h", width)
		bottom := BottomSeparator(width)
		if w := displayWidth(top); w > width {
			t.Fatalf("width %d: top separator %q is %d columns", width, top, w)
		}
		if w := displayWidth(bottom); w != width {
			t.Fatalf("width %d: bottom separator %q is %d columns", width, bottom, w)
		}
	}
	if got := BottomSeparator(6); got != " ───╯ " {
		t.Fatalf("unexpected bottom separator: %q", got)
	}
}

func TestElapsedLabel(t *testing.T) {
	cases := map[string]string{
		"16/10/2026 11:59": "1m",
		"16/10/2026 11:30": "30m",
		"16/10/2026 09:00": "3h",
		"14/10/2026 12:00": "2d",
		"01/10/2026 12:00": "2w",
		"17/10/2026 12:00": "1m",
		"not a time":       "1m",
	}
	for published, want := range cases {
		if got := ElapsedLabel(published, testNow); got != want {
			t.Fatalf("ElapsedLabel(%q) = %q, want %q", published, got, want)
		}
	}
}

func TestCompose_Frame(t *testing.T) {
	page := forum.Page{
		Title:   "測試",
		Page:    1,
		MaxPage: 2,
		Replies: []forum.Reply{{AuthorName: "a", Body: []content.Node{content.Text("hi")}}},
	}
	frame := Compose(page, "高登", "ok", 0, 30, 8, testNow)
	rows := frame.Rows()

	if len(rows) != 8 {
		t.Fatalf("expected 8 rows, got %d", len(rows))
	}
	if frame.BodyHeight != 5 {
		t.Fatalf("expected body height 5, got %d", frame.BodyHeight)
	}
	title := "測試 - 高登 [1/2]"
	if strings.TrimSpace(rows[0]) != title {
		t.Fatalf("unexpected title row %q", rows[0])
	}
	if lead := len(rows[0]) - len(strings.TrimLeft(rows[0], " ")); lead != (30-displayWidth(title))/2 {
		t.Fatalf("title not centered by display width: %q", rows[0])
	}
	if rows[1] != strings.Repeat("─", 30) {
		t.Fatalf("unexpected rule %q", rows[1])
	}
	if rows[3] != " hi" {
		t.Fatalf("expected body on row 3, got %q", rows[3])
	}
	if rows[7] != "ok" {
		t.Fatalf("expected status on last row, got %q", rows[7])
	}
	if frame.TotalRows != 3 {
		t.Fatalf("expected 3 layout rows, got %d", frame.TotalRows)
	}
}
