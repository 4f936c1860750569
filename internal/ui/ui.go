package ui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stigoleg/mouse-jiggler/internal/jiggle"
)

// ProgramSink forwards scheduler events into a running bubbletea program.
// Events that arrive before Attach are dropped.
type ProgramSink struct {
	mu sync.RWMutex
	p  *tea.Program
}

var _ jiggle.Sink = (*ProgramSink)(nil)

// Attach sets the program that receives events.
func (s *ProgramSink) Attach(p *tea.Program) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.p = p
}

func (s *ProgramSink) send(msg tea.Msg) {
	s.mu.RLock()
	p := s.p
	s.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

func (s *ProgramSink) StatusChanged(state jiggle.RunState) {
	s.send(statusMsg(state))
}

func (s *ProgramSink) LogLine(line jiggle.LogLine) {
	s.send(logMsg(line))
}
