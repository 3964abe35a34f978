package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"sketchc/internal/classify"
)

// noticeHook returns the build's OnNotice callback: a boxed banner telling
// the user that a removed API is in use.
func noticeHook(out io.Writer) func(classify.Notice) {
	return func(n classify.Notice) {
		fmt.Fprintln(out, renderNotice(n))
	}
}

func renderNotice(n classify.Notice) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("3")).
		Padding(0, 1)
	return boxStyle.Render(titleStyle.Render("Legacy API: "+n.Token) + "\n" + n.Message)
}
