// Package event is the in-process event bus that connects the simulation to
// the screens that display it.
//
// Handlers run synchronously on the publishing goroutine, which is always the
// UI goroutine. Subscriptions are handles: releasing one (directly or through
// a Scope) guarantees the handler is never invoked again, even if the release
// happens in the middle of a Publish.
package event

// Type names an event.
type Type string

const (
	WaveChanged      Type = "wave-changed"      // Data: int, zero-based wave index
	LivesChanged     Type = "lives-changed"     // Data: int
	ResourcesChanged Type = "resources-changed" // Data: int
	PlatformClicked  Type = "platform-clicked"  // Data: the clicked platform
	TowerSelected    Type = "tower-selected"    // Data: the chosen tower definition
	MissionComplete  Type = "mission-complete"  // Data: nil
	SceneLoaded      Type = "scene-loaded"      // Data: the loaded level
)

// Event is a single notification.
type Event struct {
	Type Type
	Data any
}

// Handler receives events of the type it subscribed to.
type Handler func(Event)

// Subscription is the handle returned by Bus.Subscribe.
type Subscription struct {
	bus     *Bus
	typ     Type
	handler Handler
	active  bool
}

// Release unsubscribes the handler. Calling it more than once is harmless.
func (s *Subscription) Release() {
	if s == nil || !s.active {
		return
	}
	s.active = false
	s.bus.remove(s)
}

// Active reports whether the subscription still receives events.
func (s *Subscription) Active() bool {
	return s != nil && s.active
}

// Bus dispatches events to subscribers by type.
type Bus struct {
	subs map[Type][]*Subscription
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{
		subs: make(map[Type][]*Subscription),
	}
}

// Subscribe registers h for events of type t.
func (b *Bus) Subscribe(t Type, h Handler) *Subscription {
	s := &Subscription{bus: b, typ: t, handler: h, active: true}
	b.subs[t] = append(b.subs[t], s)
	return s
}

// Publish delivers e to every active subscriber of e.Type in subscription order.
func (b *Bus) Publish(e Event) {
	list := b.subs[e.Type]
	if len(list) == 0 {
		return
	}
	// Handlers may subscribe or release while we iterate.
	snapshot := make([]*Subscription, len(list))
	copy(snapshot, list)
	for _, s := range snapshot {
		if s.active {
			s.handler(e)
		}
	}
}

// Emit is shorthand for Publish(Event{Type: t, Data: data}).
func (b *Bus) Emit(t Type, data any) {
	b.Publish(Event{Type: t, Data: data})
}

// Count returns the number of active subscribers for t.
func (b *Bus) Count(t Type) int {
	return len(b.subs[t])
}

func (b *Bus) remove(s *Subscription) {
	list := b.subs[s.typ]
	for i, l := range list {
		if l == s {
			b.subs[s.typ] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	if len(b.subs[s.typ]) == 0 {
		delete(b.subs, s.typ)
	}
}
