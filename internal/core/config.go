package core

// RuntimeConfig contains configuration passed to the arena at reset.
type RuntimeConfig struct {
	ScreenW     int   // Screen width in characters
	ScreenH     int   // Screen height in characters
	TickRate    int   // Frame ticks per second (default 60)
	PhysicsRate int   // Fixed physics steps per second (default 50)
	Seed        int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:     80,
		ScreenH:     24,
		TickRate:    60,
		PhysicsRate: 50,
		Seed:        0, // 0 means use current time in platform layer
	}
}

// FrameDelta returns the duration of one frame tick in seconds.
func (c RuntimeConfig) FrameDelta() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60
	}
	return 1 / float64(c.TickRate)
}

// FixedDelta returns the duration of one physics step in seconds.
func (c RuntimeConfig) FixedDelta() float64 {
	if c.PhysicsRate <= 0 {
		return 1.0 / 50
	}
	return 1 / float64(c.PhysicsRate)
}

// GameState is the run status reported to the platform after each tick.
type GameState struct {
	Score     int
	HighScore int
	Round     int
	Kills     int
	Elapsed   float64 // Simulated seconds since reset
	GameOver  bool
	Paused    bool
	Upgrading bool // An upgrade offer is waiting for a choice
}

// StepResult is returned by Game.Step() after each frame tick.
type StepResult struct {
	State GameState
}
