package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jeanpaul/wortschatz/internal/app"
	"github.com/jeanpaul/wortschatz/internal/i18n"
	"github.com/jeanpaul/wortschatz/internal/lesson"
	"github.com/jeanpaul/wortschatz/internal/view"
)

// screen is the body of one frame. Screens mutate themselves in update and
// ask the controller for navigation through pushMsg and backMsg.
type screen interface {
	init() tea.Cmd
	update(msg tea.Msg) tea.Cmd
	view() string
	// typing reports whether printable keys belong to a text field.
	typing() bool
	help() string
}

type (
	pushMsg struct{ desc view.Descriptor }
	backMsg struct{}
	// focusMsg tells a screen it is on top again.
	focusMsg struct{}
	// loadedMsg carries the result of a fetch started by frame.
	loadedMsg struct {
		frame int
		kind  string
		val   any
		err   error
	}
)

func push(d view.Descriptor) tea.Cmd {
	return func() tea.Msg { return pushMsg{desc: d} }
}

// shared is the state every frame sees.
type shared struct {
	app     *app.Context
	spinner spinner.Model

	renderer      *glamour.TermRenderer
	rendererWidth int
}

func (s *shared) strings() i18n.Strings { return s.app.Strings() }

func (s *shared) loadingLine() string {
	return s.spinner.View() + " " + s.strings().Loading
}

// markdown renders md for the given width, falling back to wrapped plain
// text when glamour fails.
func (s *shared) markdown(md string, width int) string {
	if width < 20 {
		width = 20
	}
	if s.renderer == nil || s.rendererWidth != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			s.app.Log.Debug("tui: markdown renderer unavailable")
			return wordwrap.String(md, width)
		}
		s.renderer, s.rendererWidth = r, width
	}
	out, err := s.renderer.Render(md)
	if err != nil {
		return wordwrap.String(md, width)
	}
	return out
}

// env binds a screen to its frame: the fetch context that is cancelled
// when the frame is popped, and the frame id results are routed by.
type env struct {
	*shared
	ctx   context.Context
	frame int
}

func (e *env) load(kind string, f func(ctx context.Context) (any, error)) tea.Cmd {
	ctx, id := e.ctx, e.frame
	return func() tea.Msg {
		v, err := f(ctx)
		return loadedMsg{frame: id, kind: kind, val: v, err: err}
	}
}

// errText is what the learner sees for a failed fetch. Cancellation is
// silent.
func errText(err error, s i18n.Strings) string {
	switch {
	case err == nil, errors.Is(err, context.Canceled):
		return ""
	case errors.Is(err, lesson.ErrMissingKey):
		return s.MissingKey
	case errors.Is(err, lesson.ErrEmptyInput):
		return ""
	default:
		return s.LoadFailed
	}
}

// newScreen builds the body for d.
func newScreen(d view.Descriptor, e *env) screen {
	switch v := d.(type) {
	case view.Home:
		return newHomeScreen(e)
	case view.Settings:
		return newSettingsScreen(e)
	case view.Nouns:
		return newNounScreen(e)
	case view.NounExamples:
		return newNounCasesScreen(e, v)
	case view.VerbsInput:
		return newVerbInputScreen(e)
	case view.VerbsMenu:
		return newVerbsMenuScreen(e, v)
	case view.VerbDetail:
		return newVerbDetailScreen(e, v)
	case view.VerbMeanings:
		return newMeaningsScreen(e, v)
	case view.GrammarLevels:
		return newGrammarLevelsScreen(e)
	case view.GrammarTopics:
		return newGrammarTopicsScreen(e, v)
	case view.GrammarDetail:
		return newGrammarDetailScreen(e, v)
	case view.ToolsCategories:
		return newToolCategoriesScreen(e)
	case view.ToolsList:
		return newToolsListScreen(e, v)
	case view.ToolDetail:
		return newToolDetailScreen(e, v)
	case view.Chat:
		return newChatScreen(e, v)
	case view.ConvLevels:
		return newConvLevelsScreen(e)
	case view.ConvHistory:
		return newConvHistoryScreen(e, v)
	case view.ConvSetup:
		return newConvSetupScreen(e, v)
	case view.ConvResult:
		return newConvScreen(e, v)
	default:
		panic(fmt.Sprintf("tui: no screen for %T", d))
	}
}

// digit returns n for the keys "1".."9".
func digit(k tea.KeyMsg) (int, bool) {
	s := k.String()
	if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
		return int(s[0] - '0'), true
	}
	return 0, false
}
