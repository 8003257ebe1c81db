package presentation

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/wamark/internal/markup"
	"github.com/zjrosen/wamark/internal/template"
	"github.com/zjrosen/wamark/internal/template/domain"
)

func TestParseOutput(t *testing.T) {
	for _, in := range []string{"table", "JSON", "yaml"} {
		_, err := ParseOutput(in)
		require.NoError(t, err, in)
	}
	_, err := ParseOutput("xml")
	require.Error(t, err)
}

func TestFormatSegments_JSON(t *testing.T) {
	var buf bytes.Buffer
	dtos := FromSegments(markup.Parse("a *b* c"))

	require.NoError(t, NewFormatter(&buf, OutputJSON).FormatSegments(dtos))

	var got []SegmentDTO
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Equal(t, []SegmentDTO{
		{Index: 0, Style: "plain", Text: "a "},
		{Index: 1, Style: "bold", Text: "b"},
		{Index: 2, Style: "plain", Text: " c"},
	}, got)
}

func TestFormatSegments_Table(t *testing.T) {
	var buf bytes.Buffer
	dtos := FromSegments(markup.Parse("x ~gone~"))

	require.NoError(t, NewFormatter(&buf, "").FormatSegments(dtos))

	out := buf.String()
	require.Contains(t, out, "STYLE")
	require.Contains(t, out, "strike")
	require.Contains(t, out, `"gone"`)
}

func TestFormatMatches_YAMLInlinesTemplate(t *testing.T) {
	tmpl := domain.NewTemplate("order_update", domain.CategoryUtility, "en", "Hi {{1}}")
	var buf bytes.Buffer

	err := NewFormatter(&buf, OutputYAML).FormatMatches(FromMatches([]template.Match{{Template: tmpl, Score: 42}}))
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	require.Equal(t, "order_update", got[0]["name"])
	require.Equal(t, 42, got[0]["score"])
	require.Equal(t, []any{1}, got[0]["variables"])
}

func TestFromTemplate_EmptyVariables(t *testing.T) {
	tmpl := domain.NewTemplate("plain", domain.CategoryMarketing, "en", "no vars")
	dto := FromTemplate(tmpl)
	require.NotNil(t, dto.Variables)
	require.Empty(t, dto.Variables)
}

func TestFormatVariables(t *testing.T) {
	require.Equal(t, "-", FormatVariables(nil))
	require.Equal(t, "{{1}}, {{2}}", FormatVariables([]int{1, 2}))
}

func TestFormatRevisions_TableShowsFirstLine(t *testing.T) {
	var buf bytes.Buffer
	err := NewFormatter(&buf, OutputTable).FormatRevisions([]RevisionDTO{{Version: 3, Body: "line one\nline two"}})
	require.NoError(t, err)
	require.Contains(t, buf.String(), "line one …")
	require.NotContains(t, buf.String(), "line two")
}

func TestFormatWrap(t *testing.T) {
	dto := WrapDTO{Text: "*hello* world", Selection: markup.Selection{Start: 1, End: 6}}

	var table bytes.Buffer
	require.NoError(t, NewFormatter(&table, OutputTable).FormatWrap(dto))
	require.Equal(t, "*hello* world\n", table.String())

	var js bytes.Buffer
	require.NoError(t, NewFormatter(&js, OutputJSON).FormatWrap(dto))
	require.JSONEq(t, `{"text":"*hello* world","selection":{"start":1,"end":6}}`, js.String())
}
