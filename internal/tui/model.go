// Package tui is the terminal front end. Model owns the navigation stack;
// every screen is a frame on it, and frames only disappear when the
// terminal platform reports that it navigated back.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jeanpaul/wortschatz/internal/app"
	"github.com/jeanpaul/wortschatz/internal/i18n"
	"github.com/jeanpaul/wortschatz/internal/nav"
	"github.com/jeanpaul/wortschatz/internal/view"
)

// frame is a descriptor on the stack plus its live screen. entry is the
// platform history entry created when the frame was pushed; the root frame
// has none.
type frame struct {
	id     int
	entry  uuid.UUID
	desc   view.Descriptor
	scr    screen
	cancel context.CancelFunc
}

type Model struct {
	shared   *shared
	stack    *nav.Stack
	bridge   *nav.Bridge
	platform *termPlatform
	// frames mirrors stack.Frames() one to one.
	frames []*frame
	nextID int

	width, height int
	quitting      bool
}

func New(a *app.Context) Model {
	applyTheme(a.Config.Theme)

	p := &termPlatform{}
	st := nav.NewStack(p)
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = SpinnerStyle

	m := Model{
		shared:   &shared{app: a, spinner: sp},
		stack:    st,
		bridge:   nav.NewBridge(st, p),
		platform: p,
		width:    80,
		height:   24,
	}
	m.frames = []*frame{m.newFrame(st.Top())}
	return m
}

func (m *Model) newFrame(d view.Descriptor) *frame {
	ctx, cancel := context.WithCancel(context.Background())
	m.nextID++
	f := &frame{id: m.nextID, desc: d, cancel: cancel}
	f.scr = newScreen(d, &env{shared: m.shared, ctx: ctx, frame: f.id})
	return f
}

func (m Model) top() *frame { return m.frames[len(m.frames)-1] }

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.shared.spinner.Tick, m.top().scr.init())
}

const chromeHeight = 4

func (m Model) bodySize() tea.WindowSizeMsg {
	h := m.height - chromeHeight
	if h < 3 {
		h = 3
	}
	return tea.WindowSizeMsg{Width: m.width, Height: h}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		for _, f := range m.frames {
			cmds = append(cmds, f.scr.update(m.bodySize()))
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.shared.spinner, cmd = m.shared.spinner.Update(msg)
		return m, cmd

	case pushMsg:
		cmds = append(cmds, m.push(msg.desc))

	case backMsg:
		m.stack.RequestBack()

	case poppedMsg:
		cmds = append(cmds, m.popped(msg))

	case loadedMsg:
		if f := m.frameByID(msg.frame); f != nil {
			cmds = append(cmds, f.scr.update(msg))
		} else {
			m.shared.app.Log.Debug("tui: dropping result for closed screen", zap.String("kind", msg.kind))
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m.quit()
		case "esc":
			m.bridge.HardwareBack()
		case "ctrl+p":
			if _, open := m.top().desc.(view.Settings); !open {
				cmds = append(cmds, m.push(view.Settings{}))
			}
		case "b", "backspace":
			if !m.top().scr.typing() {
				m.stack.RequestBack()
				break
			}
			cmds = append(cmds, m.top().scr.update(msg))
		default:
			cmds = append(cmds, m.top().scr.update(msg))
		}

	default:
		cmds = append(cmds, m.top().scr.update(msg))
	}

	cmds = append(cmds, m.platform.flush()...)
	if m.platform.exit {
		return m.quit()
	}
	return m, tea.Batch(cmds...)
}

// push opens d as a new frame on top.
func (m *Model) push(d view.Descriptor) tea.Cmd {
	m.stack.Push(d)
	f := m.newFrame(d)
	f.entry = m.platform.current()
	m.frames = append(m.frames, f)
	return tea.Batch(f.scr.update(m.bodySize()), f.scr.init())
}

// popped handles the platform's back notification. It closes frames down
// to and including the one that owns msg.entry; notifications for entries
// not on the stack are dropped. Closed frames have their fetches cancelled
// so they neither land nor write back.
func (m *Model) popped(msg poppedMsg) tea.Cmd {
	at := -1
	for i, f := range m.frames {
		if f.entry != uuid.Nil && f.entry == msg.entry {
			at = i
		}
	}
	if at < 0 {
		m.shared.app.Log.Debug("tui: ignoring back notification for unknown entry",
			zap.String("entry", msg.entry.String()), zap.String("name", string(msg.name)))
		return nil
	}
	for len(m.frames) > at {
		if !m.bridge.Popped() {
			break
		}
		f := m.frames[len(m.frames)-1]
		f.cancel()
		m.frames = m.frames[:len(m.frames)-1]
	}
	return m.top().scr.update(focusMsg{})
}

func (m Model) frameByID(id int) *frame {
	for _, f := range m.frames {
		if f.id == id {
			return f
		}
	}
	return nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	for _, f := range m.frames {
		f.cancel()
	}
	m.quitting = true
	return m, tea.Quit
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	str := m.shared.strings()
	top := view.Resolve(m.top().desc, str)

	var crumbs []string
	for _, f := range m.frames[:len(m.frames)-1] {
		crumbs = append(crumbs, view.Resolve(f.desc, str).Title)
	}
	header := TitleStyle.Render(top.Title)
	if len(crumbs) > 0 {
		header = BreadcrumbStyle.Render(strings.Join(crumbs, " › ")+" › ") + header
	}

	help := m.top().scr.help()
	if top.ChatLike {
		help += " · esc back"
	} else {
		help += " · esc back · ctrl+p " + strings.ToLower(str.Settings) + " · ctrl+c quit"
	}
	footer := HelpStyle.Render(help)

	align := lipgloss.Left
	if m.shared.app.Settings.Direction() == i18n.RTL {
		align = lipgloss.Right
	}
	line := lipgloss.NewStyle().Width(m.width).Align(align)

	return lipgloss.JoinVertical(lipgloss.Left,
		line.Render(header),
		"",
		m.top().scr.view(),
		"",
		line.Render(footer),
	)
}
