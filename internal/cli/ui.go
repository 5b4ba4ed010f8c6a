package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/kintree/pkg/forest"
)

// Colours are shared by command output, relation tables and the viewer, so a
// spouse reads the same in a table row and on a tree edge.
var (
	colorAccent = lipgloss.Color("36")
	colorOK     = lipgloss.Color("35")
	colorWarn   = lipgloss.Color("220")
	colorFail   = lipgloss.Color("167")
	colorText   = lipgloss.Color("255")
	colorMuted  = lipgloss.Color("245")
	colorFaint  = lipgloss.Color("240")

	colorParent  = lipgloss.Color("75")
	colorSpouse  = lipgloss.Color("211")
	colorChild   = lipgloss.Color("150")
	colorSibling = lipgloss.Color("180")
)

var (
	// StyleTitle renders a focal person or a section heading.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)

	// StyleHighlight renders search input and matched names.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorAccent)

	StyleDim   = lipgloss.NewStyle().Foreground(colorFaint)
	StyleValue = lipgloss.NewStyle().Foreground(colorText)
)

var (
	styleOK      = lipgloss.NewStyle().Foreground(colorOK)
	styleWarn    = lipgloss.NewStyle().Foreground(colorWarn)
	styleFail    = lipgloss.NewStyle().Foreground(colorFail)
	styleMuted   = lipgloss.NewStyle().Foreground(colorMuted)
	styleSpinner = lipgloss.NewStyle().Foreground(colorAccent)
	styleCommand = lipgloss.NewStyle().Foreground(colorParent)
	styleKey     = lipgloss.NewStyle().Foreground(colorMuted).Width(10)

	styleTableHeader = lipgloss.NewStyle().Foreground(colorMuted).Bold(true)
	styleTableBorder = lipgloss.NewStyle().Foreground(colorFaint)
)

// Relation roles, nearest kin first.
var (
	styleRoleParent   = lipgloss.NewStyle().Foreground(colorParent).Bold(true)
	styleRoleSpouse   = lipgloss.NewStyle().Foreground(colorSpouse)
	styleRoleChild    = lipgloss.NewStyle().Foreground(colorChild)
	styleRoleSibling  = lipgloss.NewStyle().Foreground(colorSibling)
	styleRoleExtended = lipgloss.NewStyle().Foreground(colorMuted)
)

// roleStyle picks the colour of a relation label such as "father",
// "paternal aunt" or "uncle's wife".
func roleStyle(label string) lipgloss.Style {
	switch label {
	case "father", "mother":
		return styleRoleParent
	case "spouse":
		return styleRoleSpouse
	case "son", "daughter", "child":
		return styleRoleChild
	case "sibling":
		return styleRoleSibling
	}
	return styleRoleExtended
}

// Viewer inks.
var (
	styleInkCard   = lipgloss.NewStyle().Foreground(colorText)
	styleInkMatch  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	styleInkEdge   = lipgloss.NewStyle().Foreground(colorFaint)
	styleInkSpouse = lipgloss.NewStyle().Foreground(colorSpouse)
)

const (
	markOK    = "✓"
	markFail  = "✗"
	markWarn  = "!"
	markInfo  = "›"
	markFile  = "→"
	markSep   = " · "
	markEmpty = "—"
)

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleOK.Render(markOK)+" "+fmt.Sprintf(format, args...))
}

func printError(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleFail.Render(markFail)+" "+fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleWarn.Render(markWarn)+" "+styleWarn.Render(fmt.Sprintf(format, args...)))
}

func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleMuted.Render(markInfo)+" "+fmt.Sprintf(format, args...))
}

// printFile lists a written file under a status line.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(markFile)+" "+StyleValue.Render(path))
}

func printKeyValue(w io.Writer, key, value string) {
	fmt.Fprintln(w, "  "+styleKey.Render(key)+" "+StyleValue.Render(value))
}

// printNextStep suggests the command to run after this one.
func printNextStep(w io.Writer, description, cmd string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// cacheLayer is a pipeline stage and whether its result came from cache.
type cacheLayer struct {
	name string
	hit  bool
}

// familySummary is the one-line description of a laid-out family:
// "5 people · 3 units · 3 generations · layout cached · render fresh".
func familySummary(roots []*forest.Unit, people int, layers ...cacheLayer) string {
	units, _ := forest.Count(roots)
	parts := []string{
		StyleDim.Render(plural(people, "person", "people")),
		StyleDim.Render(plural(units, "unit", "units")),
	}
	if g := forest.Depth(roots); g > 0 {
		parts = append(parts, StyleDim.Render(plural(g, "generation", "generations")))
	}
	for _, l := range layers {
		if l.hit {
			parts = append(parts, styleOK.Render(l.name+" cached"))
		} else {
			parts = append(parts, styleMuted.Render(l.name+" fresh"))
		}
	}
	return "  " + strings.Join(parts, StyleDim.Render(markSep))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return fmt.Sprintf("%d %s", n, many)
}

// renderTable renders rows under headers. The last column holds person ids
// and is dimmed. With roles set, the first column is a relation label and is
// coloured by kinship.
func renderTable(headers []string, rows [][]string, roles bool) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleTableBorder).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleTableHeader
			case col == len(headers)-1:
				return StyleDim
			case roles && col == 0 && row < len(rows):
				return roleStyle(rows[row][0])
			}
			return lipgloss.NewStyle()
		}).
		Render()
}
