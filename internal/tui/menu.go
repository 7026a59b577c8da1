package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeanpaul/wortschatz/internal/ledger"
	"github.com/jeanpaul/wortschatz/internal/lesson"
	"github.com/jeanpaul/wortschatz/internal/view"
)

type entry struct {
	title, desc string
	open        func() tea.Cmd
}

func (i entry) Title() string       { return i.title }
func (i entry) Description() string { return i.desc }
func (i entry) FilterValue() string { return i.title }

func opens(d view.Descriptor) func() tea.Cmd {
	return func() tea.Cmd { return push(d) }
}

func newList() list.Model {
	d := list.NewDefaultDelegate()
	d.Styles.SelectedTitle = SelectedStyle
	d.Styles.SelectedDesc = SelectedStyle.Foreground(current.Dark)

	l := list.New(nil, d, 60, 14)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	return l
}

// listScreen is a menu. Its entries are either built from the strings of
// the active locale (static) or from a fetch result (loaded).
type listScreen struct {
	env  *env
	list list.Model

	static func() []entry
	fetch  func(ctx context.Context) (any, error)
	build  func(v any) []entry
	// key handles screen-specific keys before the list sees them.
	key func(k tea.KeyMsg) (tea.Cmd, bool)

	loading bool
	err     string
	empty   string
	hint    string
}

func (s *listScreen) init() tea.Cmd {
	if s.static != nil {
		return s.list.SetItems(toItems(s.static()))
	}
	s.loading = true
	return s.env.load("list", s.fetch)
}

func toItems(es []entry) []list.Item {
	items := make([]list.Item, len(es))
	for i, e := range es {
		items[i] = e
	}
	return items
}

func (s *listScreen) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.list.SetSize(msg.Width, msg.Height)
		return nil
	case focusMsg:
		if s.static != nil {
			return s.list.SetItems(toItems(s.static()))
		}
		return nil
	case loadedMsg:
		s.loading = false
		if msg.err != nil {
			s.err = errText(msg.err, s.env.strings())
			return nil
		}
		return s.list.SetItems(toItems(s.build(msg.val)))
	case tea.KeyMsg:
		if s.key != nil {
			if cmd, ok := s.key(msg); ok {
				return cmd
			}
		}
		if msg.String() == "enter" {
			if e, ok := s.list.SelectedItem().(entry); ok && e.open != nil {
				return e.open()
			}
			return nil
		}
	}
	var cmd tea.Cmd
	s.list, cmd = s.list.Update(msg)
	return cmd
}

func (s *listScreen) view() string {
	switch {
	case s.loading:
		return s.env.loadingLine()
	case s.err != "":
		return ErrorStyle.Render(s.err)
	case len(s.list.Items()) == 0 && s.empty != "":
		return HelpStyle.Render(s.empty)
	}
	if s.hint != "" {
		return NoticeStyle.Render(s.hint) + "\n\n" + s.list.View()
	}
	return s.list.View()
}

func (s *listScreen) typing() bool { return false }

func (s *listScreen) help() string { return "↑/↓ select · enter open · b back" }

func newHomeScreen(e *env) screen {
	return &listScreen{env: e, list: newList(), static: func() []entry {
		s := e.strings()
		return []entry{
			{s.Nouns, s.NounsDesc, opens(view.Nouns{})},
			{s.Verbs, s.VerbsDesc, opens(view.VerbsInput{})},
			{s.Grammar, s.GrammarDesc, opens(view.GrammarLevels{})},
			{s.Tools, s.ToolsDesc, opens(view.ToolsCategories{})},
			{s.ConvTitle, s.ConvDesc, opens(view.ConvLevels{})},
			{s.Settings, "", opens(view.Settings{})},
		}
	}}
}

func newGrammarLevelsScreen(e *env) screen {
	return &listScreen{env: e, list: newList(), static: func() []entry {
		var es []entry
		for _, l := range lesson.Levels {
			es = append(es, entry{title: l, open: opens(view.GrammarTopics{Level: l})})
		}
		return es
	}}
}

func newGrammarTopicsScreen(e *env, d view.GrammarTopics) screen {
	return &listScreen{
		env:  e,
		list: newList(),
		fetch: func(ctx context.Context) (any, error) {
			return e.app.Lessons.GrammarTopics(ctx, d.Level)
		},
		build: func(v any) []entry {
			var es []entry
			for _, t := range v.([]lesson.GrammarTopic) {
				es = append(es, entry{
					title: t.TitleTr,
					desc:  t.TitleDe + " · " + t.Description,
					open:  opens(view.GrammarDetail{Level: d.Level, Topic: t}),
				})
			}
			return es
		},
	}
}

func newToolCategoriesScreen(e *env) screen {
	return &listScreen{env: e, list: newList(), static: func() []entry {
		names := e.strings().ToolCategories
		var es []entry
		for _, id := range lesson.ToolCategories {
			name := names[id]
			if name == "" {
				name = id
			}
			es = append(es, entry{title: name, open: opens(view.ToolsList{CategoryID: id, CategoryName: name})})
		}
		return es
	}}
}

func newToolsListScreen(e *env, d view.ToolsList) screen {
	return &listScreen{
		env:  e,
		list: newList(),
		fetch: func(ctx context.Context) (any, error) {
			return e.app.Lessons.ToolsList(ctx, d.CategoryID, d.CategoryName)
		},
		build: func(v any) []entry {
			var es []entry
			for _, t := range v.([]lesson.ToolItem) {
				es = append(es, entry{
					title: fmt.Sprintf("%s (%s)", t.Word, t.Level),
					desc:  t.Translation + " · " + t.Description,
					open:  opens(view.ToolDetail{Tool: t, CategoryName: d.CategoryName}),
				})
			}
			return es
		},
	}
}

func newVerbsMenuScreen(e *env, d view.VerbsMenu) screen {
	return &listScreen{env: e, list: newList(), static: func() []entry {
		s := e.strings()
		es := []entry{{title: s.ShowMeanings, open: opens(view.VerbMeanings{Verb: d.Verb})}}
		groups := []struct {
			category, label string
			subs            []string
		}{
			{lesson.CategoryTenses, s.Tenses, s.Categories.Tenses},
			{lesson.CategoryForms, s.Forms, s.Categories.Forms},
			{lesson.CategoryPassive, s.Passive, s.Categories.Passive},
		}
		for _, g := range groups {
			for _, sub := range g.subs {
				es = append(es, entry{
					title: sub,
					desc:  g.label,
					open:  opens(view.VerbDetail{Verb: d.Verb, Category: g.category, Subcategory: sub}),
				})
			}
		}
		return es
	}}
}

// newConvLevelsScreen lists the levels for a new conversation. "a" switches
// between standard and Austrian German.
func newConvLevelsScreen(e *env) screen {
	austrian := false
	s := &listScreen{env: e, list: newList()}
	s.static = func() []entry {
		str := e.strings()
		var es []entry
		for _, l := range lesson.Levels {
			es = append(es, entry{title: l, open: opens(view.ConvSetup{Level: l, Austrian: austrian})})
		}
		es = append(es, entry{title: str.ConvHistory, open: opens(view.ConvHistory{Austrian: austrian})})
		if austrian {
			s.hint = "[x] " + str.ConvAustrianLabel
		} else {
			s.hint = "[ ] " + str.ConvAustrianLabel
		}
		return es
	}
	s.key = func(k tea.KeyMsg) (tea.Cmd, bool) {
		if k.String() != "a" {
			return nil, false
		}
		austrian = !austrian
		return s.list.SetItems(toItems(s.static())), true
	}
	return s
}

func newConvHistoryScreen(e *env, d view.ConvHistory) screen {
	return &listScreen{
		env:   e,
		list:  newList(),
		empty: e.strings().ConvNoHistory,
		static: func() []entry {
			var es []entry
			for _, r := range e.app.Ledger.List(ledger.ByVariant(d.Austrian)) {
				es = append(es, entry{
					title: r.Topic,
					desc: fmt.Sprintf("%s · %s · %s", r.Level, r.Length,
						time.UnixMilli(r.Timestamp).Format("2006-01-02 15:04")),
					open: opens(view.Reopen(r)),
				})
			}
			return es
		},
	}
}
