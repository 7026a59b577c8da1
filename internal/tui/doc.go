package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeanpaul/wortschatz/internal/i18n"
	"github.com/jeanpaul/wortschatz/internal/lesson"
	"github.com/jeanpaul/wortschatz/internal/speech"
	"github.com/jeanpaul/wortschatz/internal/view"
)

// doc is a rendered lesson: markdown with numbered German lines that can be
// read aloud, and the sentence pair handed to the tutor.
type doc struct {
	markdown  string
	lines     []string
	contextDe string
	contextTr string
}

// docScreen shows a fetched lesson in a scrollable viewport.
type docScreen struct {
	env   *env
	vp    viewport.Model
	fetch func(ctx context.Context, s i18n.Strings) (doc, error)

	loading bool
	err     string
	doc     doc
}

func newDocScreen(e *env, fetch func(ctx context.Context, s i18n.Strings) (doc, error)) *docScreen {
	vp := viewport.New(80, 20)
	vp.MouseWheelEnabled = true
	return &docScreen{env: e, vp: vp, fetch: fetch}
}

func (s *docScreen) init() tea.Cmd {
	s.loading = true
	str := s.env.strings()
	return s.env.load("doc", func(ctx context.Context) (any, error) {
		return s.fetch(ctx, str)
	})
}

func (s *docScreen) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.vp.Width, s.vp.Height = msg.Width, msg.Height
		s.render()
		return nil
	case loadedMsg:
		s.loading = false
		if msg.err != nil {
			s.err = errText(msg.err, s.env.strings())
			return nil
		}
		s.doc = msg.val.(doc)
		s.render()
		return nil
	case tea.KeyMsg:
		if n, ok := digit(msg); ok && n <= len(s.doc.lines) {
			s.env.app.Speak(s.doc.lines[n-1], speech.NormalRate, speech.PitchA)
			return nil
		}
		if msg.String() == "a" && !s.loading && s.err == "" {
			return push(view.Chat{ContextDe: s.doc.contextDe, ContextTr: s.doc.contextTr})
		}
	}
	var cmd tea.Cmd
	s.vp, cmd = s.vp.Update(msg)
	return cmd
}

func (s *docScreen) render() {
	if s.doc.markdown == "" {
		return
	}
	s.vp.SetContent(s.env.markdown(s.doc.markdown, s.vp.Width))
}

func (s *docScreen) view() string {
	switch {
	case s.loading:
		return s.env.loadingLine()
	case s.err != "":
		return ErrorStyle.Render(s.err)
	}
	return s.vp.View()
}

func (s *docScreen) typing() bool { return false }

func (s *docScreen) help() string { return "1-9 listen · a ask AI · ↑/↓ scroll · b back" }

// lines numbers German sentences as they are added to a document.
type lines struct {
	b    strings.Builder
	said []string
}

func (l *lines) say(de, tr string) {
	l.said = append(l.said, de)
	fmt.Fprintf(&l.b, "%d. **%s**", len(l.said), de)
	if tr != "" {
		fmt.Fprintf(&l.b, "  \n   _%s_", tr)
	}
	l.b.WriteString("\n")
}

func (l *lines) text(s string) { l.b.WriteString(s) }

func newNounCasesScreen(e *env, d view.NounExamples) screen {
	return newDocScreen(e, func(ctx context.Context, s i18n.Strings) (doc, error) {
		cases, err := e.app.Lessons.NounCases(ctx, d.Noun, d.Article)
		if err != nil {
			return doc{}, err
		}
		var l lines
		l.text(fmt.Sprintf("# %s %s\n\n", d.Article, d.Noun))
		for _, c := range cases {
			l.text(fmt.Sprintf("\n### %s\n\n", c.CaseName))
			l.say(c.SentenceDe, c.SentenceTr)
		}
		out := doc{markdown: l.b.String(), lines: l.said, contextDe: d.Article + " " + d.Noun}
		if len(cases) > 0 {
			out.contextDe, out.contextTr = cases[0].SentenceDe, cases[0].SentenceTr
		}
		return out, nil
	})
}

func newVerbDetailScreen(e *env, d view.VerbDetail) screen {
	return newDocScreen(e, func(ctx context.Context, s i18n.Strings) (doc, error) {
		res, err := e.app.Lessons.VerbConjugation(ctx, d.Verb, d.Category, d.Subcategory)
		if err != nil {
			return doc{}, err
		}
		var l lines
		l.text(fmt.Sprintf("# %s · %s\n\n", d.Verb, res.TenseName))
		l.text("| | |\n|---|---|\n")
		for _, c := range res.Conjugations {
			l.text(fmt.Sprintf("| %s | **%s** |\n", c.Pronoun, c.Conjugation))
		}
		l.text(fmt.Sprintf("\n## %s\n\n", s.Examples))
		for _, c := range res.Conjugations {
			l.say(c.ExampleDe, c.ExampleTr)
		}
		out := doc{markdown: l.b.String(), lines: l.said, contextDe: d.Verb + " (" + d.Subcategory + ")"}
		if len(res.Conjugations) > 0 {
			out.contextDe = res.Conjugations[0].ExampleDe
			out.contextTr = res.Conjugations[0].ExampleTr
		}
		return out, nil
	})
}

func newMeaningsScreen(e *env, d view.VerbMeanings) screen {
	return newDocScreen(e, func(ctx context.Context, s i18n.Strings) (doc, error) {
		ms, err := e.app.Lessons.VerbMeanings(ctx, d.Verb)
		if err != nil {
			return doc{}, err
		}
		var l lines
		l.text(fmt.Sprintf("# %s\n\n", d.Verb))
		for _, m := range ms {
			l.text(fmt.Sprintf("\n### %s\n\n", m.Meaning))
			l.say(m.ExampleDe, m.ExampleTr)
		}
		out := doc{markdown: l.b.String(), lines: l.said, contextDe: d.Verb}
		if len(ms) > 0 {
			out.contextDe, out.contextTr = ms[0].ExampleDe, ms[0].ExampleTr
		}
		return out, nil
	})
}

func newGrammarDetailScreen(e *env, d view.GrammarDetail) screen {
	return newDocScreen(e, func(ctx context.Context, s i18n.Strings) (doc, error) {
		g, err := e.app.Lessons.GrammarExplanation(ctx, d.Level, d.Topic)
		if err != nil {
			return doc{}, err
		}
		var l lines
		l.text(fmt.Sprintf("# %s\n\n%s\n\n## %s\n\n", g.Title, g.Explanation, s.Examples))
		writeExamples(&l, g.Examples)
		return doc{markdown: l.b.String(), lines: l.said, contextDe: d.Topic.TitleDe, contextTr: g.Title}, nil
	})
}

func newToolDetailScreen(e *env, d view.ToolDetail) screen {
	return newDocScreen(e, func(ctx context.Context, s i18n.Strings) (doc, error) {
		t, err := e.app.Lessons.ToolDetail(ctx, d.Tool, d.CategoryName)
		if err != nil {
			return doc{}, err
		}
		var l lines
		l.text(fmt.Sprintf("# %s (%s)\n\n**%s**\n\n%s\n\n## %s\n\n", t.Word, t.Level, t.MeaningTr, t.UsageTr, s.Examples))
		writeExamples(&l, t.Examples)
		return doc{markdown: l.b.String(), lines: l.said, contextDe: t.Word, contextTr: t.MeaningTr}, nil
	})
}

func writeExamples(l *lines, examples []lesson.Example) {
	for _, ex := range examples {
		l.say(ex.De, ex.Tr)
	}
}
