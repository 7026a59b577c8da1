package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeanpaul/wortschatz/internal/lesson"
	"github.com/jeanpaul/wortschatz/internal/speech"
	"github.com/jeanpaul/wortschatz/internal/view"
)

func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "> "
	ti.CharLimit = 200
	ti.Width = 50
	ti.Focus()
	return ti
}

// nounScreen looks up nouns. Tab moves between the input and the list of
// nouns checked before.
type nounScreen struct {
	env     *env
	input   textinput.Model
	history list.Model
	result  *lesson.Noun
	loading bool
	err     string
}

func newNounScreen(e *env) screen {
	return &nounScreen{env: e, input: newInput(e.strings().EnterNoun), history: newList()}
}

func (s *nounScreen) init() tea.Cmd { return s.refresh() }

func (s *nounScreen) refresh() tea.Cmd {
	var es []entry
	for _, n := range s.env.app.Lessons.NounHistory() {
		n := n
		es = append(es, entry{
			title: fmt.Sprintf("%s %s", n.Article, n.Word),
			desc:  n.Translation,
			open:  func() tea.Cmd { s.result = &n; return nil },
		})
	}
	return s.history.SetItems(toItems(es))
}

func (s *nounScreen) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.input.Width = msg.Width - 4
		s.history.SetSize(msg.Width, msg.Height-10)
		return nil
	case loadedMsg:
		s.loading = false
		if msg.err != nil {
			s.err = errText(msg.err, s.env.strings())
			return nil
		}
		n := msg.val.(lesson.Noun)
		s.result = &n
		s.input.Reset()
		return s.refresh()
	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			if s.input.Focused() {
				s.input.Blur()
				return nil
			}
			return s.input.Focus()
		case "ctrl+e":
			if s.result != nil {
				return push(view.NounExamples{Noun: s.result.Word, Article: string(s.result.Article)})
			}
			return nil
		case "ctrl+r":
			if s.result != nil {
				s.env.app.Speak(string(s.result.Article)+" "+s.result.Word, speech.NormalRate, speech.PitchA)
			}
			return nil
		case "enter":
			if !s.input.Focused() {
				if e, ok := s.history.SelectedItem().(entry); ok {
					return e.open()
				}
				return nil
			}
			word := strings.TrimSpace(s.input.Value())
			if word == "" || s.loading {
				return nil
			}
			s.loading, s.err = true, ""
			return s.env.load("noun", func(ctx context.Context) (any, error) {
				return s.env.app.Lessons.Noun(ctx, word)
			})
		}
		if !s.input.Focused() {
			var cmd tea.Cmd
			s.history, cmd = s.history.Update(msg)
			return cmd
		}
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return cmd
}

func (s *nounScreen) view() string {
	str := s.env.strings()
	var b strings.Builder
	b.WriteString(InputBorderStyle.Render(s.input.View()) + "\n")
	switch {
	case s.loading:
		b.WriteString(s.env.loadingLine() + "\n")
	case s.err != "":
		b.WriteString(ErrorStyle.Render(s.err) + "\n")
	case s.result != nil:
		n := s.result
		card := fmt.Sprintf("%s %s\n%s: %s\n%s: %s",
			SpeakerAStyle.Render(string(n.Article)), SpeakerAStyle.Render(n.Word),
			str.NounPlural, n.Plural, str.Translation, n.Translation)
		b.WriteString(CardStyle.Render(card) + "\n")
	}
	if len(s.history.Items()) > 0 {
		b.WriteString("\n" + HelpStyle.Render(str.NounHistory) + "\n" + s.history.View())
	}
	return b.String()
}

func (s *nounScreen) typing() bool { return s.input.Focused() }

func (s *nounScreen) help() string {
	return "enter check · tab history · ctrl+e cases · ctrl+r listen"
}

// verbInputScreen asks for an infinitive and opens its menu.
type verbInputScreen struct {
	env   *env
	input textinput.Model
}

func newVerbInputScreen(e *env) screen {
	return &verbInputScreen{env: e, input: newInput(e.strings().EnterVerb)}
}

func (s *verbInputScreen) init() tea.Cmd { return textinput.Blink }

func (s *verbInputScreen) update(msg tea.Msg) tea.Cmd {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "enter" {
		verb := strings.TrimSpace(s.input.Value())
		if verb == "" {
			return nil
		}
		return push(view.VerbsMenu{Verb: verb})
	}
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		s.input.Width = size.Width - 4
		return nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return cmd
}

func (s *verbInputScreen) view() string {
	return InputBorderStyle.Render(s.input.View())
}

func (s *verbInputScreen) typing() bool { return true }

func (s *verbInputScreen) help() string { return "enter " + s.env.strings().Continue }

var convLengths = []lesson.ConvLength{lesson.Short, lesson.Medium, lesson.Long}

// convSetupScreen picks the topic and length of a new conversation.
type convSetupScreen struct {
	env        *env
	desc       view.ConvSetup
	input      textinput.Model
	length     int
	suggestion int
}

func newConvSetupScreen(e *env, d view.ConvSetup) screen {
	return &convSetupScreen{env: e, desc: d, input: newInput(e.strings().ConvTopicHint), length: 1}
}

func (s *convSetupScreen) init() tea.Cmd { return textinput.Blink }

func (s *convSetupScreen) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.input.Width = msg.Width - 4
		return nil
	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			s.length = (s.length + 1) % len(convLengths)
			return nil
		case "ctrl+n":
			if topics := s.env.strings().ConvTopics; len(topics) > 0 {
				s.input.SetValue(topics[s.suggestion%len(topics)])
				s.input.CursorEnd()
				s.suggestion++
			}
			return nil
		case "enter":
			topic := strings.TrimSpace(s.input.Value())
			if topic == "" {
				return nil
			}
			return push(view.ConvResult{
				Level:    s.desc.Level,
				Topic:    topic,
				Length:   convLengths[s.length],
				Austrian: s.desc.Austrian,
			})
		}
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return cmd
}

func (s *convSetupScreen) view() string {
	str := s.env.strings()
	labels := map[lesson.ConvLength]string{
		lesson.Short:  str.ConvShort,
		lesson.Medium: str.ConvMedium,
		lesson.Long:   str.ConvLong,
	}
	var opts []string
	for i, l := range convLengths {
		if i == s.length {
			opts = append(opts, SelectedStyle.Render(labels[l]))
		} else {
			opts = append(opts, HelpStyle.Render(labels[l]))
		}
	}

	var b strings.Builder
	b.WriteString(str.ConvTopicLabel + "\n")
	b.WriteString(InputBorderStyle.Render(s.input.View()) + "\n\n")
	b.WriteString(str.ConvLengthLabel + ": " + strings.Join(opts, "  ") + "\n\n")
	if len(str.ConvTopics) > 0 {
		b.WriteString(HelpStyle.Render(str.ConvSuggested+": "+strings.Join(str.ConvTopics, " · ")) + "\n")
	}
	if s.desc.Austrian {
		b.WriteString("\n" + NoticeStyle.Render(str.ConvAustrianNotice))
	}
	return b.String()
}

func (s *convSetupScreen) typing() bool { return true }

func (s *convSetupScreen) help() string { return "enter start · tab length · ctrl+n suggest topic" }
