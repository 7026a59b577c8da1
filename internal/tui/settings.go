package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeanpaul/wortschatz/internal/i18n"
	"github.com/jeanpaul/wortschatz/internal/settings"
)

type settingsMode int

const (
	modeRows settingsMode = iota
	modeKey
	modeLocale
)

// settingsScreen edits the persisted preferences. Every change is written
// through at once.
type settingsScreen struct {
	env     *env
	rows    list.Model
	locales list.Model
	key     textinput.Model
	mode    settingsMode
}

func newSettingsScreen(e *env) screen {
	key := textinput.New()
	key.Placeholder = e.strings().APIKeyPlaceholder
	key.EchoMode = textinput.EchoPassword
	key.Prompt = "> "
	key.Width = 50
	return &settingsScreen{env: e, rows: newList(), locales: newList(), key: key}
}

func (s *settingsScreen) init() tea.Cmd {
	var items []list.Item
	for _, l := range i18n.Locales {
		l := l
		items = append(items, entry{title: l.Name, desc: l.Code, open: func() tea.Cmd {
			if err := s.env.app.Settings.SetLocale(l.Code); err != nil {
				s.env.app.Log.Warn("tui: locale rejected")
			}
			s.mode = modeRows
			return s.refresh()
		}})
	}
	return tea.Batch(s.locales.SetItems(items), s.refresh())
}

var audioCycle = []settings.AudioMode{settings.AudioPreload, settings.AudioOnDemand, settings.AudioDisabled}

func (s *settingsScreen) refresh() tea.Cmd {
	st := s.env.app.Settings
	str := s.env.strings()
	onOff := func(b bool) string {
		if b {
			return "[x]"
		}
		return "[ ]"
	}
	audio := map[settings.AudioMode]string{
		settings.AudioPreload:  str.AudioPreload,
		settings.AudioOnDemand: str.AudioOnDemand,
		settings.AudioDisabled: str.AudioDisabled,
	}
	name := st.Locale()
	if l, ok := i18n.Lookup(name); ok {
		name = l.Name
	}

	rows := []entry{
		{str.APIKeyLabel, settings.Mask(st.APIKey()), func() tea.Cmd {
			s.mode = modeKey
			s.key.SetValue(st.APIKey())
			return s.key.Focus()
		}},
		{str.Language, name, func() tea.Cmd {
			s.mode = modeLocale
			return nil
		}},
		{str.AudioSettings, audio[st.Audio()], func() tea.Cmd {
			next := audioCycle[0]
			for i, m := range audioCycle {
				if m == st.Audio() {
					next = audioCycle[(i+1)%len(audioCycle)]
				}
			}
			st.SetAudio(next)
			return s.refresh()
		}},
		{str.SmartStorage, onOff(st.SmartStorage()) + " " + str.SmartStorageDesc, func() tea.Cmd {
			st.SetSmartStorage(!st.SmartStorage())
			return s.refresh()
		}},
		{str.SRS, onOff(st.SRS()) + " " + str.SRSDesc, func() tea.Cmd {
			st.SetSRS(!st.SRS())
			return s.refresh()
		}},
	}
	return s.rows.SetItems(toItems(rows))
}

func (s *settingsScreen) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.rows.SetSize(msg.Width, msg.Height)
		s.locales.SetSize(msg.Width, msg.Height)
		return nil
	case tea.KeyMsg:
		if msg.String() == "enter" {
			switch s.mode {
			case modeKey:
				s.env.app.Settings.SetAPIKey(strings.TrimSpace(s.key.Value()))
				s.key.Blur()
				s.mode = modeRows
				return s.refresh()
			case modeLocale:
				if e, ok := s.locales.SelectedItem().(entry); ok {
					return e.open()
				}
				return nil
			default:
				if e, ok := s.rows.SelectedItem().(entry); ok {
					return e.open()
				}
				return nil
			}
		}
	}

	var cmd tea.Cmd
	switch s.mode {
	case modeKey:
		s.key, cmd = s.key.Update(msg)
	case modeLocale:
		s.locales, cmd = s.locales.Update(msg)
	default:
		s.rows, cmd = s.rows.Update(msg)
	}
	return cmd
}

func (s *settingsScreen) view() string {
	str := s.env.strings()
	switch s.mode {
	case modeKey:
		return fmt.Sprintf("%s\n%s", str.APIKeyLabel, InputBorderStyle.Render(s.key.View()))
	case modeLocale:
		return HelpStyle.Render(str.SelectLanguage) + "\n" + s.locales.View()
	}
	return s.rows.View()
}

func (s *settingsScreen) typing() bool { return s.mode == modeKey }

func (s *settingsScreen) help() string {
	if s.mode == modeKey {
		return "enter " + s.env.strings().Save
	}
	return "↑/↓ select · enter change · b back"
}
