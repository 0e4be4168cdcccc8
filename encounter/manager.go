package encounter

import (
	"math"
	"time"

	"github.com/lixenwraith/sword-rain/parameter"
	"github.com/lixenwraith/sword-rain/vmath"
)

// Manager owns the enemy set
// At most one live enemy exists at any time
type Manager struct {
	rng     *vmath.FastRand
	enemies []Enemy
	active  bool
	radius  float64

	now       time.Duration
	lastSpawn time.Duration
	nextID    uint64

	onKill  func(Enemy)
	onSpawn func(Enemy)
}

// NewManager creates an inactive manager; radius <= 0 uses the default collision radius
func NewManager(seed uint64, radius float64) *Manager {
	if radius <= 0 {
		radius = parameter.CollisionRadius
	}
	return &Manager{
		rng:     vmath.NewFastRand(seed),
		radius:  radius,
		enemies: make([]Enemy, 0, 4),
	}
}

// OnKill registers the kill callback, invoked once per enemy
func (m *Manager) OnKill(fn func(Enemy)) { m.onKill = fn }

// OnSpawn registers the spawn callback
func (m *Manager) OnSpawn(fn func(Enemy)) { m.onSpawn = fn }

// SetActive gates spawning and updates; deactivation clears every enemy
func (m *Manager) SetActive(active bool) {
	if !active && len(m.enemies) > 0 {
		m.enemies = m.enemies[:0]
	}
	m.active = active
}

func (m *Manager) Active() bool { return m.active }

// Tick spawns, purges, drifts and collides against the sweep
// The sweep must come from the pose already updated this tick
func (m *Manager) Tick(dt time.Duration, sweep vmath.Segment) {
	dt = parameter.ClampDelta(dt)
	m.now += dt
	if !m.active {
		return
	}

	if m.LiveCount() == 0 && m.now-m.lastSpawn >= parameter.SpawnCooldown {
		m.spawn()
	}

	m.purge()

	t := m.now.Seconds()
	k := dt.Seconds() * parameter.DriftReferenceHz
	for i := range m.enemies {
		e := &m.enemies[i]
		if e.Dead {
			continue
		}

		e.Velocity.X += math.Sin(t*parameter.DriftFrequency+e.Seed) * parameter.DriftPerturbation * k
		e.Velocity.Y += math.Cos(t*parameter.DriftFrequency+e.Seed) * parameter.DriftPerturbation * k
		e.Position = vmath.V3FAdd(e.Position, vmath.V3FScale(e.Velocity, k))

		if Hit(sweep, e.HitPoint(), m.radius) {
			e.Dead = true
			e.DeathTime = m.now
			if m.onKill != nil {
				m.onKill(*e)
			}
		}
	}
}

func (m *Manager) spawn() {
	e := Enemy{
		ID:   m.nextID,
		Kind: Kind(m.rng.Intn(int(kindCount))),
		Position: vmath.Vec3F{
			X: m.rng.Centered(parameter.ViewWidth * parameter.SpawnAreaX),
			Y: m.rng.Centered(parameter.ViewHeight * parameter.SpawnAreaY),
		},
		Velocity: vmath.Vec3F{
			X: m.rng.Centered(parameter.SpawnDriftSpan),
			Y: m.rng.Centered(parameter.SpawnDriftSpan),
		},
		Scale: m.rng.Range(parameter.EnemyScaleMin, parameter.EnemyScaleMax),
		Seed:  m.rng.Range(0, parameter.EnemySeedMax),
	}
	m.nextID++
	m.lastSpawn = m.now
	m.enemies = append(m.enemies, e)
	if m.onSpawn != nil {
		m.onSpawn(e)
	}
}

// purge drops enemies whose death animation has finished
func (m *Manager) purge() {
	kept := m.enemies[:0]
	for _, e := range m.enemies {
		if e.Dead && m.now-e.DeathTime > parameter.DeathDuration {
			continue
		}
		kept = append(kept, e)
	}
	m.enemies = kept
}

// LiveCount returns the number of non-dead enemies
func (m *Manager) LiveCount() int {
	n := 0
	for i := range m.enemies {
		if !m.enemies[i].Dead {
			n++
		}
	}
	return n
}

// Enemies returns a copy of the current set, dead ones included
func (m *Manager) Enemies() []Enemy {
	out := make([]Enemy, len(m.enemies))
	copy(out, m.enemies)
	return out
}

// Now returns the manager's accumulated clock
func (m *Manager) Now() time.Duration { return m.now }
