package sim

import "github.com/vovakirdan/tui-towerdefense/internal/event"

// Platform is a build slot that holds at most one tower.
type Platform struct {
	Index int
	bus   *event.Bus
	tower *Tower
}

// NewPlatform creates an empty platform.
func NewPlatform(bus *event.Bus, index int) *Platform {
	return &Platform{Index: index, bus: bus}
}

// Occupied reports whether a tower stands here.
func (p *Platform) Occupied() bool {
	return p.tower != nil
}

// Tower returns the placed tower, if any.
func (p *Platform) Tower() (Tower, bool) {
	if p.tower == nil {
		return Tower{}, false
	}
	return *p.tower, true
}

// PlaceTower builds t here. An occupied platform keeps its tower.
func (p *Platform) PlaceTower(t Tower) {
	if p.tower != nil {
		return
	}
	placed := t
	p.tower = &placed
}

// Click publishes PlatformClicked with this platform as payload.
func (p *Platform) Click() {
	p.bus.Emit(event.PlatformClicked, p)
}
