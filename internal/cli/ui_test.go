package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/kintree/pkg/forest"
	"github.com/matzehuels/kintree/pkg/person"
)

func TestRoleStyle(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"father", "parent"},
		{"mother", "parent"},
		{"spouse", "spouse"},
		{"son", "child"},
		{"child", "child"},
		{"sibling", "sibling"},
		{"paternal aunt", "extended"},
		{"uncle's wife", "extended"},
	}
	styles := map[string]lipgloss.Style{
		"parent":   styleRoleParent,
		"spouse":   styleRoleSpouse,
		"child":    styleRoleChild,
		"sibling":  styleRoleSibling,
		"extended": styleRoleExtended,
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got := roleStyle(tt.label)
			want := styles[tt.want]
			if got.GetForeground() != want.GetForeground() || got.GetBold() != want.GetBold() {
				t.Errorf("roleStyle(%q) is not the %s style", tt.label, tt.want)
			}
		})
	}
}

func TestFamilySummary(t *testing.T) {
	roots := forest.Build(person.Normalize(records()))
	units, _ := forest.Count(roots)

	got := familySummary(roots, 5, cacheLayer{"layout", true}, cacheLayer{"render", false})
	for _, want := range []string{"5 people", "layout cached", "render fresh", plural(units, "unit", "units"), "generations"} {
		if !strings.Contains(got, want) {
			t.Errorf("summary %q missing %q", got, want)
		}
	}

	if got := familySummary(nil, 1); !strings.Contains(got, "1 person") || strings.Contains(got, "generation") {
		t.Errorf("empty summary = %q", got)
	}
}

func TestPlural(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0 people"},
		{1, "1 person"},
		{7, "7 people"},
	}
	for _, tt := range tests {
		if got := plural(tt.n, "person", "people"); got != tt.want {
			t.Errorf("plural(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestPrintHelpersWriteToWriter(t *testing.T) {
	var buf bytes.Buffer
	printSuccess(&buf, "Imported %d people", 3)
	printWarning(&buf, "careful")
	printFile(&buf, "family.svg")
	printKeyValue(&buf, "Address", ":8080")

	out := buf.String()
	for _, want := range []string{markOK + " Imported 3 people", "careful", markFile + " family.svg", "Address", ":8080"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderTable(t *testing.T) {
	rows := [][]string{
		{"father", "Obi Okafor", "1940–2010", "obi"},
		{"paternal aunt", "Kemi Bello", markEmpty, "kemi"},
	}
	out := renderTable([]string{"Relation", "Name", "Years", "ID"}, rows, true)
	for _, want := range []string{"Relation", "Obi Okafor", "paternal aunt", markEmpty, "kemi"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}
