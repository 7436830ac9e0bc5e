package waves

// ID identifies a spawned enemy. The game assigns them.
type ID uint64

// Population is the set of live enemies. The spawner adds to it; the game
// removes an enemy when it dies or leaves the arena.
type Population struct {
	live map[ID]struct{}
}

// NewPopulation creates an empty population.
func NewPopulation() *Population {
	return &Population{live: make(map[ID]struct{})}
}

// Add registers id as alive.
func (p *Population) Add(id ID) {
	p.live[id] = struct{}{}
}

// Remove forgets id. It reports whether id was alive.
func (p *Population) Remove(id ID) bool {
	if _, ok := p.live[id]; !ok {
		return false
	}
	delete(p.live, id)
	return true
}

// Contains reports whether id is alive.
func (p *Population) Contains(id ID) bool {
	_, ok := p.live[id]
	return ok
}

// Len returns the number of live enemies.
func (p *Population) Len() int {
	return len(p.live)
}

// Clear forgets everything.
func (p *Population) Clear() {
	clear(p.live)
}
