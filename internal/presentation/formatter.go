// Package presentation converts wamark results into CLI output.
package presentation

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/wamark/internal/ui/styles"
)

// Output selects how a Formatter writes results.
type Output string

const (
	OutputTable Output = "table"
	OutputJSON  Output = "json"
	OutputYAML  Output = "yaml"
)

// ParseOutput validates an --output flag value.
func ParseOutput(s string) (Output, error) {
	switch o := Output(strings.ToLower(s)); o {
	case OutputTable, OutputJSON, OutputYAML:
		return o, nil
	default:
		return "", fmt.Errorf("unknown output %q (want table, json or yaml)", s)
	}
}

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
	output Output
}

// NewFormatter creates a new formatter
func NewFormatter(writer io.Writer, output Output) *Formatter {
	if output == "" {
		output = OutputTable
	}
	return &Formatter{
		writer: writer,
		output: output,
	}
}

// FormatSegments writes parse results.
func (f *Formatter) FormatSegments(segments []SegmentDTO) error {
	return f.format(segments, []string{"#", "STYLE", "TEXT"}, func() [][]string {
		rows := make([][]string, len(segments))
		for i, s := range segments {
			rows[i] = []string{strconv.Itoa(s.Index), s.Style, strconv.Quote(s.Text)}
		}
		return rows
	})
}

// FormatWrap writes a wrap result. Table output is the bare text.
func (f *Formatter) FormatWrap(w WrapDTO) error {
	if f.output == OutputTable {
		_, err := fmt.Fprintln(f.writer, w.Text)
		return err
	}
	return f.format(w, nil, nil)
}

// FormatMatches writes a template listing.
func (f *Formatter) FormatMatches(matches []MatchDTO) error {
	return f.format(matches, []string{"NAME", "CATEGORY", "LANGUAGE", "VERSION", "VARIABLES"}, func() [][]string {
		rows := make([][]string, len(matches))
		for i, m := range matches {
			rows[i] = []string{m.Name, m.Category, m.Language, strconv.Itoa(m.Version), strconv.Itoa(len(m.Variables))}
		}
		return rows
	})
}

// FormatTemplate writes a single template. Table output is a key/value listing.
func (f *Formatter) FormatTemplate(t TemplateDTO) error {
	return f.format(t, []string{"FIELD", "VALUE"}, func() [][]string {
		return [][]string{
			{"name", t.Name},
			{"category", t.Category},
			{"language", t.Language},
			{"version", strconv.Itoa(t.Version)},
			{"variables", FormatVariables(t.Variables)},
			{"body", t.Body},
			{"footer", t.Footer},
			{"updated", t.UpdatedAt.Format("2006-01-02 15:04:05")},
		}
	})
}

// FormatRevisions writes a template history.
func (f *Formatter) FormatRevisions(revs []RevisionDTO) error {
	return f.format(revs, []string{"VERSION", "CREATED", "BODY"}, func() [][]string {
		rows := make([][]string, len(revs))
		for i, r := range revs {
			rows[i] = []string{strconv.Itoa(r.Version), r.CreatedAt.Format("2006-01-02 15:04:05"), firstLine(r.Body)}
		}
		return rows
	})
}

// FormatVariables renders variable indices as "{{1}}, {{2}}".
func FormatVariables(vars []int) string {
	if len(vars) == 0 {
		return "-"
	}
	parts := make([]string, len(vars))
	for i, v := range vars {
		parts[i] = "{{" + strconv.Itoa(v) + "}}"
	}
	return strings.Join(parts, ", ")
}

func (f *Formatter) format(v any, headers []string, rows func() [][]string) error {
	switch f.output {
	case OutputJSON:
		encoder := json.NewEncoder(f.writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	case OutputYAML:
		encoder := yaml.NewEncoder(f.writer)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return err
		}
		return encoder.Close()
	default:
		t := table.New().
			Border(lipgloss.NormalBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(styles.BorderDefaultColor)).
			StyleFunc(func(row, _ int) lipgloss.Style {
				if row == table.HeaderRow {
					return lipgloss.NewStyle().Bold(true).Padding(0, 1)
				}
				return lipgloss.NewStyle().Padding(0, 1)
			}).
			Headers(headers...).
			Rows(rows()...)
		_, err := fmt.Fprintln(f.writer, t.Render())
		return err
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " …"
	}
	return s
}
