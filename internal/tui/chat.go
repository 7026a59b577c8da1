package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jeanpaul/wortschatz/internal/lesson"
	"github.com/jeanpaul/wortschatz/internal/view"
)

// chatScreen talks to the tutor about one sentence.
type chatScreen struct {
	env     *env
	desc    view.Chat
	input   textinput.Model
	vp      viewport.Model
	history []lesson.ChatMessage
	pending bool
	err     string
}

func newChatScreen(e *env, d view.Chat) screen {
	return &chatScreen{
		env:   e,
		desc:  d,
		input: newInput(e.strings().ChatPlaceholder),
		vp:    viewport.New(80, 20),
	}
}

func (s *chatScreen) init() tea.Cmd { return textinput.Blink }

func (s *chatScreen) send(text string) tea.Cmd {
	text = strings.TrimSpace(text)
	if text == "" || s.pending {
		return nil
	}
	prior := append([]lesson.ChatMessage(nil), s.history...)
	s.history = append(s.history, lesson.ChatMessage{Role: "user", Text: text})
	s.pending, s.err = true, ""
	s.input.Reset()
	s.rebuild()
	return s.env.load("chat", func(ctx context.Context) (any, error) {
		return s.env.app.Lessons.Chat(ctx, s.desc.ContextDe, s.desc.ContextTr, prior, text)
	})
}

func (s *chatScreen) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.vp.Width, s.vp.Height = msg.Width, msg.Height-4
		s.input.Width = msg.Width - 6
		s.rebuild()
		return nil
	case loadedMsg:
		s.pending = false
		if msg.err != nil {
			s.err = errText(msg.err, s.env.strings())
		} else {
			s.history = append(s.history, lesson.ChatMessage{Role: "model", Text: msg.val.(string)})
		}
		s.rebuild()
		return nil
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			return s.send(s.input.Value())
		case "ctrl+t":
			return s.send(s.env.strings().TestMe)
		case "pgup":
			s.vp.HalfViewUp()
			return nil
		case "pgdown":
			s.vp.HalfViewDown()
			return nil
		}
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return cmd
}

func (s *chatScreen) rebuild() {
	width := s.vp.Width - 2
	if width < 20 {
		width = 20
	}
	str := s.env.strings()
	var b strings.Builder
	b.WriteString(HelpStyle.Render(wordwrap.String(s.desc.ContextDe, width)) + "\n")
	if s.desc.ContextTr != "" {
		b.WriteString(TranslationStyle.Render(wordwrap.String(s.desc.ContextTr, width)) + "\n")
	}
	for _, m := range s.history {
		b.WriteString("\n")
		if m.Role == "user" {
			b.WriteString(UserLabelStyle.Render("> ") + wordwrap.String(m.Text, width) + "\n")
			continue
		}
		b.WriteString(TutorLabelStyle.Render(str.ChatTitle) + "\n")
		b.WriteString(s.env.markdown(m.Text, width))
	}
	if s.err != "" {
		b.WriteString("\n" + ErrorStyle.Render(s.err) + "\n")
	}
	s.vp.SetContent(b.String())
	s.vp.GotoBottom()
}

func (s *chatScreen) view() string {
	bottom := InputBorderStyle.Render(s.input.View())
	if s.pending {
		bottom = s.env.loadingLine() + "\n" + bottom
	}
	return s.vp.View() + "\n" + bottom
}

func (s *chatScreen) typing() bool { return true }

func (s *chatScreen) help() string { return "enter send · ctrl+t " + s.env.strings().TestMe }
