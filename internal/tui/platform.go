package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/jeanpaul/wortschatz/internal/view"
)

// poppedMsg is the terminal's "navigated back" notification for the history
// entry it names. It is always delivered as a later message, never during
// the call that asked for it.
type poppedMsg struct {
	entry uuid.UUID
	name  view.Name
}

type historyEntry struct {
	id   uuid.UUID
	name view.Name
}

// termPlatform is the history facility of the terminal host. Back requests
// are queued and turned into poppedMsg commands after the current update.
type termPlatform struct {
	entries []historyEntry
	pending int
	exit    bool
}

func (p *termPlatform) PushEntry(name view.Name) {
	p.entries = append(p.entries, historyEntry{id: uuid.New(), name: name})
}

func (p *termPlatform) Back() { p.pending++ }

// current is the id of the newest history entry, or the zero id when only
// the root is left.
func (p *termPlatform) current() uuid.UUID {
	if n := len(p.entries); n > 0 {
		return p.entries[n-1].id
	}
	return uuid.Nil
}

func (p *termPlatform) Exit() { p.exit = true }

// flush turns queued back requests into notifications.
func (p *termPlatform) flush() []tea.Cmd {
	var cmds []tea.Cmd
	for ; p.pending > 0; p.pending-- {
		n := len(p.entries)
		if n == 0 {
			continue
		}
		e := p.entries[n-1]
		p.entries = p.entries[:n-1]
		cmds = append(cmds, func() tea.Msg { return poppedMsg{entry: e.id, name: e.name} })
	}
	return cmds
}
