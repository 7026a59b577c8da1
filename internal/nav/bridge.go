package nav

// Bridge merges the two sources of back navigation: the platform's popped
// notification and the hardware back control. Both end up in
// Stack.HandlePopped, which is the only place a frame is removed.
type Bridge struct {
	stack    *Stack
	platform Platform
	// depth is read on every hardware back so the decision uses the live
	// stack, never a value captured when the bridge was built.
	depth func() int
}

func NewBridge(s *Stack, p Platform) *Bridge {
	return &Bridge{stack: s, platform: p, depth: s.Depth}
}

// HardwareBack handles the native back control. Above the landing screen it
// takes the same path as the in-app back control; on the landing screen it
// exits.
func (b *Bridge) HardwareBack() {
	if b.depth() > 1 {
		b.stack.RequestBack()
		return
	}
	b.platform.Exit()
}

// Popped handles the platform's "navigated back" notification.
func (b *Bridge) Popped() bool {
	return b.stack.HandlePopped()
}
