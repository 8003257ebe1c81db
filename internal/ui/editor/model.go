// Package editor implements the interactive template editor: a text buffer
// with selection-wrap formatting, a live preview and save-through to the
// template service.
package editor

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/wamark/internal/flags"
	"github.com/zjrosen/wamark/internal/keys"
	"github.com/zjrosen/wamark/internal/log"
	"github.com/zjrosen/wamark/internal/markup"
	"github.com/zjrosen/wamark/internal/pubsub"
	"github.com/zjrosen/wamark/internal/render"
	"github.com/zjrosen/wamark/internal/template"
	"github.com/zjrosen/wamark/internal/template/domain"
	"github.com/zjrosen/wamark/internal/ui/logoverlay"
	"github.com/zjrosen/wamark/internal/ui/toaster"
)

// previewFormats is the ctrl+o cycle order.
var previewFormats = []render.Format{
	render.FormatANSI,
	render.FormatGlamour,
	render.FormatMarkdown,
	render.FormatHTML,
	render.FormatPlain,
}

// Config wires the editor to its collaborators.
type Config struct {
	Renderer *render.Renderer

	// Service saves templates. Nil disables ctrl+w.
	Service *template.Service

	// Template is the template being edited. When nil, Create describes the
	// template that the first save will create.
	Template *domain.Template
	Create   template.CreateRequest

	// Body is the initial text when Template is nil.
	Body string

	Flags         *flags.Registry
	ShowStatusBar bool
}

// savedMsg reports the outcome of a save.
type savedMsg struct {
	template *domain.Template
	err      error
}

// Model is the bubbletea model for the editor.
type Model struct {
	ctx      context.Context
	renderer *render.Renderer
	svc      *template.Service
	listener *pubsub.ContinuousListener[template.Event]
	logFeed  *log.LogListener
	flags    *flags.Registry

	tmpl      *domain.Template
	create    template.CreateRequest
	savedBody string
	saving    bool

	buf     Buffer
	preview viewport.Model
	format  int
	help    help.Model
	toast   toaster.Model
	logs    logoverlay.Model

	width, height int
	showStatus    bool
}

// New builds an editor model. ctx bounds renderer and service calls.
func New(ctx context.Context, cfg Config) Model {
	m := Model{
		ctx:        ctx,
		renderer:   cfg.Renderer,
		svc:        cfg.Service,
		flags:      cfg.Flags,
		tmpl:       cfg.Template,
		create:     cfg.Create,
		preview:    viewport.New(0, 0),
		help:       help.New(),
		toast:      toaster.New(),
		logs:       logoverlay.New(),
		logFeed:    log.NewListener(ctx),
		showStatus: cfg.ShowStatusBar,
	}

	body := cfg.Body
	if cfg.Template != nil {
		body = cfg.Template.Body()
		m.savedBody = body
	}
	m.buf = NewBuffer(body)

	if cfg.Flags.Enabled(flags.FlagGlamourPreview) {
		m.format = indexOf(render.FormatGlamour)
	}
	if cfg.Service != nil {
		m.listener = pubsub.NewFilteredListener(ctx, cfg.Service.Events(), pubsub.DeletedEvent)
	}
	return m
}

// Init starts listening for template events and log entries.
func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.listener != nil {
		cmds = append(cmds, m.listener.Listen())
	}
	if m.logFeed != nil {
		cmds = append(cmds, m.logFeed.Listen())
	}
	return tea.Batch(cmds...)
}

// Text returns the buffer contents.
func (m Model) Text() string { return m.buf.Text() }

// Selection returns the current selection.
func (m Model) Selection() markup.Selection { return m.buf.Selection() }

// Format returns the active preview format.
func (m Model) Format() render.Format { return previewFormats[m.format] }

// Template returns the saved template, or nil before the first save.
func (m Model) Template() *domain.Template { return m.tmpl }

// Modified reports whether the buffer differs from the last save.
func (m Model) Modified() bool { return m.buf.Text() != m.savedBody }

func (m Model) dialect() markup.Dialect {
	if m.renderer == nil {
		return markup.DefaultDialect
	}
	return m.renderer.Options().Dialect
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.logs.SetSize(msg.Width, msg.Height)
		m.refreshPreview()
		return m, nil

	case tea.KeyMsg:
		if m.logs.Visible() {
			var cmd tea.Cmd
			m.logs, cmd = m.logs.Update(msg)
			return m, cmd
		}
		return m.handleKey(msg)

	case log.LogEvent:
		m.logs = m.logs.Append(msg.Payload)
		if m.logFeed == nil {
			return m, nil
		}
		return m, m.logFeed.Listen()

	case logoverlay.CloseMsg:
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case savedMsg:
		return m.handleSaved(msg)

	case toaster.DismissMsg:
		m.toast = m.toast.Update(msg)
		return m, nil

	case pubsub.Event[template.Event]:
		var cmd tea.Cmd
		if m.tmpl != nil && msg.Payload.ID == m.tmpl.ID() {
			log.Warn(log.CatUI, "template deleted while editing", "name", msg.Payload.Name)
			m.tmpl = nil
			m.create.Name = msg.Payload.Name
			m.toast, cmd = m.toast.Show(msg.Payload.Name+" was deleted", toaster.StyleError, toaster.DefaultDuration)
		}
		return m, tea.Batch(cmd, m.listener.Listen())
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := keys.Editor
	edited := true

	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit
	case key.Matches(msg, k.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.refreshPreview()
		return m, nil
	case key.Matches(msg, k.Logs):
		m.logs.Toggle()
		return m, nil
	case key.Matches(msg, k.Save):
		return m.save()
	case key.Matches(msg, k.CycleFormat):
		m.format = (m.format + 1) % len(previewFormats)
		m.preview.GotoTop()
	case key.Matches(msg, k.ScrollUp):
		m.preview.SetYOffset(m.preview.YOffset - max(m.preview.Height/2, 1))
		return m, nil
	case key.Matches(msg, k.ScrollDown):
		m.preview.SetYOffset(m.preview.YOffset + max(m.preview.Height/2, 1))
		return m, nil

	case key.Matches(msg, k.Bold):
		m.buf.Wrap(markup.StyleBold, m.dialect())
	case key.Matches(msg, k.Italic):
		m.buf.Wrap(markup.StyleItalic, m.dialect())
	case key.Matches(msg, k.Strike):
		m.buf.Wrap(markup.StyleStrike, m.dialect())
	case key.Matches(msg, k.Mono):
		m.buf.Wrap(markup.StyleMono, m.dialect())

	case key.Matches(msg, k.SelectLeft):
		m.buf.Left(true)
	case key.Matches(msg, k.SelectRight):
		m.buf.Right(true)
	case key.Matches(msg, k.SelectUp):
		m.buf.Up(true)
	case key.Matches(msg, k.SelectDown):
		m.buf.Down(true)
	case key.Matches(msg, k.SelectHome):
		m.buf.Home(true)
	case key.Matches(msg, k.SelectEnd):
		m.buf.End(true)
	case key.Matches(msg, k.SelectAll):
		m.buf.SelectAll()
	case key.Matches(msg, k.Left):
		m.buf.Left(false)
	case key.Matches(msg, k.Right):
		m.buf.Right(false)
	case key.Matches(msg, k.Up):
		m.buf.Up(false)
	case key.Matches(msg, k.Down):
		m.buf.Down(false)
	case key.Matches(msg, k.Home):
		m.buf.Home(false)
	case key.Matches(msg, k.End):
		m.buf.End(false)

	case key.Matches(msg, k.Backspace):
		m.buf.Backspace()
	case key.Matches(msg, k.Delete):
		m.buf.DeleteForward()
	case key.Matches(msg, k.Newline):
		m.buf.Insert("\n")

	case msg.Type == tea.KeyRunes:
		m.buf.Insert(string(msg.Runes))
	case msg.Type == tea.KeySpace:
		m.buf.Insert(" ")
	default:
		edited = false
	}

	if edited {
		m.refreshPreview()
	}
	return m, nil
}

// applyStyle wraps the selection, as the toolbar buttons do.
func (m *Model) applyStyle(style markup.Style) {
	m.buf.Wrap(style, m.dialect())
	m.refreshPreview()
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.flags.Enabled(flags.FlagMouseToolbar) {
		return m, nil
	}
	if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionRelease {
		return m, nil
	}

	for _, b := range toolbarButtons {
		if z := zone.Get(b.zoneID); z != nil && z.InBounds(msg) {
			if b.save {
				return m.save()
			}
			m.applyStyle(b.style)
			return m, nil
		}
	}
	return m, nil
}

func (m Model) save() (tea.Model, tea.Cmd) {
	if m.svc == nil {
		var cmd tea.Cmd
		m.toast, cmd = m.toast.Show("saving is not available", toaster.StyleInfo, toaster.DefaultDuration)
		return m, cmd
	}
	if m.saving {
		return m, nil
	}
	m.saving = true

	svc, ctx := m.svc, m.ctx
	body := m.buf.Text()
	existing := m.tmpl
	req := m.create
	req.Body = body

	return m, func() tea.Msg {
		if existing != nil {
			t, err := svc.Update(ctx, existing.Name(), template.UpdateRequest{Body: &body})
			return savedMsg{template: t, err: err}
		}
		t, err := svc.Create(ctx, req)
		return savedMsg{template: t, err: err}
	}
}

func (m Model) handleSaved(msg savedMsg) (tea.Model, tea.Cmd) {
	m.saving = false

	var cmd tea.Cmd
	if msg.err != nil {
		log.ErrorErr(log.CatUI, "save failed", msg.err)
		m.toast, cmd = m.toast.Show(saveErrorText(msg.err), toaster.StyleError, toaster.DefaultDuration)
		return m, cmd
	}

	m.tmpl = msg.template
	m.savedBody = msg.template.Body()
	text := fmt.Sprintf("Saved %s v%d", msg.template.Name(), msg.template.Version())
	m.toast, cmd = m.toast.Show(text, toaster.StyleSuccess, toaster.DefaultDuration)
	return m, cmd
}

func saveErrorText(err error) string {
	var verr *domain.ValidationError
	if errors.As(err, &verr) && len(verr.Fields) > 0 {
		return verr.Fields[0].Error()
	}
	var dup *domain.DuplicateNameError
	if errors.As(err, &dup) {
		return dup.Error()
	}
	return "save failed: " + err.Error()
}

func indexOf(f render.Format) int {
	for i, pf := range previewFormats {
		if pf == f {
			return i
		}
	}
	return 0
}
