// Package nav keeps the screen history and the platform's back navigation in
// step. A frame is only ever removed in response to the platform reporting
// that it navigated back.
package nav

import "github.com/jeanpaul/wortschatz/internal/view"

// Platform is the host's history facility.
type Platform interface {
	// PushEntry records a forward entry so that a later native back is
	// reported through the popped notification instead of being lost.
	PushEntry(name view.Name)
	// Back asks the platform to navigate back. The platform answers
	// asynchronously with a popped notification.
	Back()
	// Exit terminates the application.
	Exit()
}

// Stack is the ordered list of open screens. The bottom frame is always
// view.Home and the stack never holds fewer than one frame.
//
// Stack is owned by the UI controller and is not safe for concurrent use.
type Stack struct {
	frames   []view.Descriptor
	platform Platform
}

func NewStack(p Platform) *Stack {
	return &Stack{frames: []view.Descriptor{view.Home{}}, platform: p}
}

// Push opens d on top of the current screen.
func (s *Stack) Push(d view.Descriptor) {
	s.platform.PushEntry(d.Name())
	s.frames = append(s.frames, d)
}

// RequestBack asks the platform to go back. It never pops by itself; with a
// single frame it does nothing.
func (s *Stack) RequestBack() {
	if len(s.frames) > 1 {
		s.platform.Back()
	}
}

// HandlePopped removes the top frame in response to the platform's popped
// notification. It reports whether a frame was removed.
func (s *Stack) HandlePopped() bool {
	if len(s.frames) <= 1 {
		return false
	}
	s.frames[len(s.frames)-1] = nil
	s.frames = s.frames[:len(s.frames)-1]
	return true
}

func (s *Stack) Top() view.Descriptor {
	return s.frames[len(s.frames)-1]
}

func (s *Stack) Depth() int {
	return len(s.frames)
}

// Frames returns a copy of the stack, bottom first.
func (s *Stack) Frames() []view.Descriptor {
	return append([]view.Descriptor(nil), s.frames...)
}
