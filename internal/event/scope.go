package event

// Scope groups subscriptions that share a lifetime, typically one screen.
// Close releases all of them at once.
type Scope struct {
	bus  *Bus
	subs []*Subscription
}

// NewScope creates a scope bound to bus.
func NewScope(bus *Bus) *Scope {
	return &Scope{bus: bus}
}

// On subscribes h to t for the lifetime of the scope.
func (sc *Scope) On(t Type, h Handler) {
	sc.subs = append(sc.subs, sc.bus.Subscribe(t, h))
}

// Close releases every subscription made through the scope.
func (sc *Scope) Close() {
	for _, s := range sc.subs {
		s.Release()
	}
	sc.subs = nil
}

// Len returns the number of subscriptions held.
func (sc *Scope) Len() int {
	return len(sc.subs)
}
