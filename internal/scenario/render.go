package scenario

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255"))
	stepStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("45"))
	focusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	openStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	passStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	failStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	summaryPass = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	summaryFail = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// Render writes a styled focus trace for report.
func Render(w io.Writer, report *Report) error {
	var b strings.Builder
	name := report.Name
	if name == "" {
		name = "scenario"
	}
	b.WriteString(titleStyle.Render(name))
	b.WriteByte('\n')

	for i, e := range report.Entries {
		line := fmt.Sprintf("%3d  %s", i+1, stepStyle.Render(fmt.Sprintf("%-24s", e.Step)))
		if e.Expect {
			if e.Passed {
				line += passStyle.Render("PASS") + "  " + e.Message
			} else {
				line += failStyle.Render("FAIL") + "  " + e.Message
			}
		} else {
			line += focusStyle.Render("focus="+orNone(e.Active)) + "  " +
				openStyle.Render("open=["+strings.Join(e.Open, ",")+"]")
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	if n := report.Failures(); n > 0 {
		b.WriteString(summaryFail.Render(fmt.Sprintf("%d expectation(s) failed", n)))
	} else {
		b.WriteString(summaryPass.Render("all expectations passed"))
	}
	b.WriteByte('\n')

	_, err := io.WriteString(w, b.String())
	return err
}
