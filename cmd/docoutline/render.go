package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/docoutline/internal/outline"
)

// renderTOC writes the outline as an indented table of contents. Each line
// shows the marker, title, own words and words including subsections, and
// the balance against the adjusted target when one was distributed.
func renderTOC(w io.Writer, name string, out *outline.Outline) {
	out.Walk(func(item *outline.OutlineItem, level int) bool {
		b := &item.Block
		title := b.Title
		if title == "" {
			title = "(untitled)"
		}
		if level == 0 {
			title = titleStyle.Render(title)
		}

		line := fmt.Sprintf("%s%s %s %s",
			strings.Repeat("  ", level),
			dimStyle.Render(b.Marker),
			title,
			dimStyle.Render(fmt.Sprintf("%d/%d words", b.SelfStats.Count.Words, b.AggregateStats.Count.Words)),
		)
		if st := b.AggregateStats.Status; st != nil && st.AdjustedTarget != nil {
			line += " " + balance(st.Balance, *st.AdjustedTarget)
		}
		if b.Exclude {
			line += " " + dimStyle.Render("(excluded)")
		}
		fmt.Fprintln(w, line)
		return true
	})

	summary := fmt.Sprintf("%s  %d sections  %d words",
		titleStyle.Render(name), out.Len(), out.Stats.Count.Words)
	if t := out.Stats.Target; t != nil && out.Stats.Status != nil {
		summary += "\n" + dimStyle.Render("Target:") + " " + balance(out.Stats.Status.Balance, t.Words)
	}
	fmt.Fprintln(w, summaryStyle.Render(summary))
}

func balance(bal, target int) string {
	s := fmt.Sprintf("%+d of %d", bal, target)
	if bal > 0 {
		return overStyle.Render(s)
	}
	return underStyle.Render(s)
}
