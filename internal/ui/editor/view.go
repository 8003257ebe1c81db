package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/rivo/uniseg"

	"github.com/zjrosen/wamark/internal/flags"
	"github.com/zjrosen/wamark/internal/keys"
	"github.com/zjrosen/wamark/internal/log"
	"github.com/zjrosen/wamark/internal/markup"
	"github.com/zjrosen/wamark/internal/render"
	"github.com/zjrosen/wamark/internal/template/domain"
	"github.com/zjrosen/wamark/internal/ui/styles"
)

// sideBySideMin is the narrowest width that places the panes side by side.
const sideBySideMin = 72

type toolbarButton struct {
	zoneID string
	label  string
	style  markup.Style
	save   bool
}

var toolbarButtons = []toolbarButton{
	{zoneID: "wamark-btn-bold", label: "B", style: markup.StyleBold},
	{zoneID: "wamark-btn-italic", label: "I", style: markup.StyleItalic},
	{zoneID: "wamark-btn-strike", label: "S", style: markup.StyleStrike},
	{zoneID: "wamark-btn-mono", label: "</>", style: markup.StyleMono},
	{zoneID: "wamark-btn-save", label: "Save", save: true},
}

// paneLayout holds the outer sizes of both panes.
type paneLayout struct {
	editorW, editorH   int
	previewW, previewH int
	sideBySide         bool
}

func (m Model) layout() paneLayout {
	chrome := 1 + lipgloss.Height(m.help.View(keys.Editor))
	if m.showStatus {
		chrome++
	}
	body := max(m.height-chrome, 6)

	if m.width >= sideBySideMin {
		left := m.width / 2
		return paneLayout{
			editorW: left, editorH: body,
			previewW: m.width - left, previewH: body,
			sideBySide: true,
		}
	}
	top := body / 2
	return paneLayout{
		editorW: m.width, editorH: top,
		previewW: m.width, previewH: body - top,
	}
}

// refreshPreview re-renders the preview for the current buffer and size.
func (m *Model) refreshPreview() {
	if m.renderer == nil || m.width == 0 {
		return
	}
	l := m.layout()
	innerW := max(l.previewW-2, 1)
	m.preview.Width = innerW
	m.preview.Height = max(l.previewH-2, 1)

	format := previewFormats[m.format]
	text := m.buf.Text()

	var out string
	if format == render.FormatANSI {
		out = render.Terminal(m.renderer.Segments(m.ctx, text), innerW)
	} else {
		var err error
		out, err = m.renderer.Render(m.ctx, text, format)
		if err != nil {
			log.ErrorErr(log.CatUI, "preview render failed", err, "format", format)
			out = styles.StatusErrorStyle.Render(err.Error())
		}
	}
	if text == "" && format != render.FormatANSI {
		out = styles.PlaceholderStyle.Render(out)
	}
	m.preview.SetContent(out)
}

// View renders the editor.
func (m Model) View() string {
	if m.width == 0 {
		return ""
	}
	l := m.layout()

	editorLines := renderBuffer(m.buf, max(l.editorW-3, 1), max(l.editorH-2, 1), true)
	editorPane := styles.RenderPane(editorLines, m.title(), string(m.dialect()), l.editorW, l.editorH, true)

	previewPane := styles.RenderPane(
		strings.Split(m.preview.View(), "\n"),
		"Preview", string(previewFormats[m.format]),
		l.previewW, l.previewH, false,
	)

	var panes string
	if l.sideBySide {
		panes = lipgloss.JoinHorizontal(lipgloss.Top, editorPane, previewPane)
	} else {
		panes = lipgloss.JoinVertical(lipgloss.Left, editorPane, previewPane)
	}

	sections := []string{m.toolbar(), panes}
	if m.showStatus {
		sections = append(sections, m.statusBar())
	}
	sections = append(sections, m.help.View(keys.Editor))

	view := m.toast.Overlay(strings.Join(sections, "\n"), m.width, m.height)
	view = m.logs.Overlay(view)
	return zone.Scan(view)
}

func (m Model) title() string {
	switch {
	case m.tmpl != nil:
		return fmt.Sprintf("%s v%d", m.tmpl.Name(), m.tmpl.Version())
	case m.create.Name != "":
		return m.create.Name + " (new)"
	default:
		return "Message"
	}
}

func (m Model) toolbar() string {
	clickable := m.flags.Enabled(flags.FlagMouseToolbar)
	style := styles.ButtonStyle
	if m.buf.HasSelection() {
		style = styles.ButtonActiveStyle
	}

	parts := make([]string, 0, len(toolbarButtons))
	for _, b := range toolbarButtons {
		s := style
		if b.save {
			s = styles.ButtonStyle
		}
		rendered := s.Render(b.label)
		if clickable {
			rendered = zone.Mark(b.zoneID, rendered)
		}
		parts = append(parts, rendered)
	}
	return strings.Join(parts, " ")
}

func (m Model) statusBar() string {
	text := m.buf.Text()
	chars := uniseg.GraphemeClusterCount(text)

	count := fmt.Sprintf("%d/%d chars", chars, domain.MaxBodyLength)
	if chars > domain.MaxBodyLength {
		count = styles.StatusErrorStyle.Render(count)
	}

	line, col := m.buf.LineCol()
	right := strings.Join([]string{
		count,
		styles.FormatCount(len(domain.Variables(text)), "variable"),
		fmt.Sprintf("Ln %d, Col %d", line+1, col+1),
	}, " · ")

	var left string
	switch {
	case m.saving:
		left = "saving..."
	case m.Modified():
		left = "modified"
	case m.tmpl != nil:
		left = styles.StatusSuccessStyle.Render("saved")
	}

	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return styles.MutedStyle.Render(left + strings.Repeat(" ", gap) + right)
}
