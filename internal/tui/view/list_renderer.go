package view

import (
	"strings"

	"github.com/glabrego/hkg-cli/internal/forum"
)

type ListRenderInput struct {
	Topics []forum.Topic
	Start  int
	End    int
	Cursor int

	RenderTopicLine func(topicIndex int, active bool) string
}

// RenderListBody draws topics[Start:End], one line each.
func RenderListBody(in ListRenderInput) string {
	if len(in.Topics) == 0 || in.Start >= in.End || in.Start < 0 {
		return ""
	}
	end := in.End
	if end > len(in.Topics) {
		end = len(in.Topics)
	}
	var b strings.Builder
	for i := in.Start; i < end; i++ {
		b.WriteString(in.RenderTopicLine(i, i == in.Cursor))
		b.WriteString("\n")
	}
	return b.String()
}
