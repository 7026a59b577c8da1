package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jeanpaul/wortschatz/internal/lesson"
	"github.com/jeanpaul/wortschatz/internal/speech"
	"github.com/jeanpaul/wortschatz/internal/view"
)

// convScreen plays a generated dialogue. Keys act on the dialogue until tab
// focuses the input used to continue it.
type convScreen struct {
	env    *env
	params lesson.ConvParams
	vp     viewport.Model
	input  textinput.Model

	turns    []lesson.Turn
	keywords []lesson.Keyword
	showTr   bool
	slow     bool

	loading   bool
	extending bool
	kwLoading bool
	err       string
}

func newConvScreen(e *env, d view.ConvResult) screen {
	in := newInput(e.strings().ConvAddMoreHint)
	in.Blur()
	return &convScreen{
		env: e,
		params: lesson.ConvParams{
			Level:    d.Level,
			Topic:    d.Topic,
			Length:   d.Length,
			Austrian: d.Austrian,
		},
		vp:    viewport.New(80, 20),
		input: in,
	}
}

func (s *convScreen) init() tea.Cmd {
	s.loading = true
	p := s.params
	return s.env.load("conversation", func(ctx context.Context) (any, error) {
		return s.env.app.Lessons.Conversation(ctx, p)
	})
}

func (s *convScreen) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.vp.Width, s.vp.Height = msg.Width, msg.Height-4
		s.input.Width = msg.Width - 6
		s.rebuild()
		return nil
	case loadedMsg:
		return s.loaded(msg)
	case tea.KeyMsg:
		if s.input.Focused() {
			switch msg.String() {
			case "tab":
				s.input.Blur()
				return nil
			case "enter":
				return s.extend()
			}
			var cmd tea.Cmd
			s.input, cmd = s.input.Update(msg)
			return cmd
		}
		if n, ok := digit(msg); ok {
			s.speak(n - 1)
			return nil
		}
		switch msg.String() {
		case "tab":
			return s.input.Focus()
		case "t":
			s.showTr = !s.showTr
			s.rebuild()
			return nil
		case "v":
			s.slow = !s.slow
			return nil
		case "k":
			return s.extractKeywords()
		}
	}
	var cmd tea.Cmd
	s.vp, cmd = s.vp.Update(msg)
	return cmd
}

func (s *convScreen) loaded(msg loadedMsg) tea.Cmd {
	str := s.env.strings()
	switch msg.kind {
	case "conversation", "extend":
		s.loading, s.extending = false, false
		if msg.err != nil {
			s.err = errText(msg.err, str)
			break
		}
		s.err = ""
		s.turns = msg.val.([]lesson.Turn)
		if msg.kind == "extend" {
			s.input.Reset()
		}
	case "keywords":
		s.kwLoading = false
		if msg.err != nil {
			s.err = errText(msg.err, str)
			break
		}
		s.keywords = msg.val.([]lesson.Keyword)
	}
	s.rebuild()
	if msg.kind == "extend" {
		s.vp.GotoBottom()
	}
	return nil
}

func (s *convScreen) extend() tea.Cmd {
	text := strings.TrimSpace(s.input.Value())
	if text == "" || s.extending || s.loading {
		return nil
	}
	s.extending = true
	p, existing := s.params, append([]lesson.Turn(nil), s.turns...)
	return s.env.load("extend", func(ctx context.Context) (any, error) {
		return s.env.app.Lessons.ExtendConversation(ctx, p, existing, text)
	})
}

func (s *convScreen) extractKeywords() tea.Cmd {
	if len(s.turns) == 0 || s.kwLoading {
		return nil
	}
	s.kwLoading = true
	text := lesson.ConversationText(s.turns)
	return s.env.load("keywords", func(ctx context.Context) (any, error) {
		return s.env.app.Lessons.Keywords(ctx, text)
	})
}

func (s *convScreen) speak(i int) {
	if i < 0 || i >= len(s.turns) {
		return
	}
	t := s.turns[i]
	rate, pitch := speech.TurnVoice(t.Speaker, s.slow)
	s.env.app.Speak(t.SpeechText(), rate, pitch)
}

func (s *convScreen) rebuild() {
	width := s.vp.Width - 4
	if width < 20 {
		width = 20
	}
	str := s.env.strings()
	var b strings.Builder
	if s.params.Austrian {
		b.WriteString(NoticeStyle.Render(wordwrap.String(str.ConvAustrianNotice, width)) + "\n\n")
	}
	for i, t := range s.turns {
		label := SpeakerAStyle.Render(fmt.Sprintf("%d  A", i+1))
		if t.Speaker == "B" {
			label = SpeakerBStyle.Render(fmt.Sprintf("%d  B", i+1))
		}
		b.WriteString(label + "  " + wordwrap.String(t.TextDe, width) + "\n")
		if s.showTr && t.TextTr != "" {
			b.WriteString("    " + TranslationStyle.Render(wordwrap.String(t.TextTr, width)) + "\n")
		}
	}
	if len(s.keywords) > 0 {
		b.WriteString("\n" + TutorLabelStyle.Render(str.ConvKeywordsTitle) + "\n")
		for _, k := range s.keywords {
			b.WriteString(fmt.Sprintf("  %s  %s\n", k.Word, TranslationStyle.Render(k.Meaning)))
		}
	}
	s.vp.SetContent(b.String())
}

func (s *convScreen) view() string {
	switch {
	case s.loading:
		return s.env.loadingLine()
	case s.err != "" && len(s.turns) == 0:
		return ErrorStyle.Render(s.err)
	}
	out := s.vp.View()
	if s.err != "" {
		out += "\n" + ErrorStyle.Render(s.err)
	}
	if s.extending || s.kwLoading {
		out += "\n" + s.env.loadingLine()
	}
	return out + "\n" + InputBorderStyle.Render(s.input.View())
}

func (s *convScreen) typing() bool { return s.input.Focused() }

func (s *convScreen) help() string {
	str := s.env.strings()
	tr, speed := str.ConvShowTrans, str.ConvSlowSpeed
	if s.showTr {
		tr = str.ConvHideTrans
	}
	if s.slow {
		speed = str.ConvNormalSpeed
	}
	return fmt.Sprintf("1-9 listen · t %s · v %s · k %s · tab continue", tr, speed, str.ConvKeywords)
}
