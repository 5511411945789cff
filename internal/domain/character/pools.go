package character

import (
	"math"

	ovaerr "github.com/KirkDiggler/ova-combat/internal/errors"
)

// Stat paths of the pools and counters the store writes to
const (
	PathHP                  = "hp.value"
	PathHPMax               = "hp.max"
	PathHPReserveMax        = "hpReserve.max"
	PathEndurance           = "endurance.value"
	PathEnduranceMax        = "endurance.max"
	PathEnduranceReserve    = "enduranceReserve.value"
	PathEnduranceReserveMax = "enduranceReserve.max"
	PathDramaFree           = "dramaDice.free"
	PathDramaUsed           = "dramaDice.used"
)

// PoolChange is the before and after of one pool
type PoolChange struct {
	Path   string
	Before float64
	After  float64
}

// Delta is the signed change
func (p PoolChange) Delta() float64 {
	return p.After - p.Before
}

// ApplyPoolDelta adds amount to a pool. A health deficit spills into
// endurance and an endurance deficit into health; when both end up at or
// below zero they are both zero. The endurance reserve never goes negative.
// Every pool that moved is returned.
func (c *Character) ApplyPoolDelta(path string, amount float64) ([]PoolChange, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := c.stats()

	switch path {
	case PathHP, PathEndurance:
		hp, end := stats.Number(PathHP), stats.Number(PathEndurance)
		beforeHP, beforeEnd := hp, end

		if path == PathHP {
			hp += amount
			if hp < 0 {
				end = math.Max(end+hp, 0)
				hp = 0
			}
		} else {
			end += amount
			if end < 0 {
				hp = math.Max(hp+end, 0)
				end = 0
			}
		}
		if hp <= 0 && end <= 0 {
			hp, end = 0, 0
		}

		stats.Set(PathHP, hp)
		stats.Set(PathEndurance, end)

		var changes []PoolChange
		if hp != beforeHP {
			changes = append(changes, PoolChange{Path: PathHP, Before: beforeHP, After: hp})
		}
		if end != beforeEnd {
			changes = append(changes, PoolChange{Path: PathEndurance, Before: beforeEnd, After: end})
		}
		return changes, nil

	case PathEnduranceReserve:
		before := stats.Number(path)
		after := math.Max(before+amount, 0)
		stats.Set(path, after)
		if after == before {
			return nil, nil
		}
		return []PoolChange{{Path: path, Before: before, After: after}}, nil
	}

	return nil, ovaerr.InvalidArgumentf("%s is not a pool", path).
		WithMeta("character_id", c.ID)
}

// SpendEndurance charges cost to endurance, or to the reserve when asked
func (c *Character) SpendEndurance(cost float64, fromReserve bool) ([]PoolChange, error) {
	if cost <= 0 {
		return nil, nil
	}
	if fromReserve {
		return c.ApplyPoolDelta(PathEnduranceReserve, -cost)
	}
	return c.ApplyPoolDelta(PathEndurance, -cost)
}

// GiveDramaDie grants one free drama die
func (c *Character) GiveDramaDie() {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := c.stats()
	stats.Set(PathDramaFree, stats.Number(PathDramaFree)+1)
}

// ResetDramaDice zeroes the free and used counters
func (c *Character) ResetDramaDice() {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := c.stats()
	stats.Set(PathDramaFree, 0.0)
	stats.Set(PathDramaUsed, 0.0)
}

// UseDramaDice spends free dice first and counts the rest as used
func (c *Character) UseDramaDice(n int) error {
	if n < 0 {
		return ovaerr.InvalidArgumentf("cannot use %d drama dice", n)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	stats := c.stats()
	free := stats.Number(PathDramaFree)
	spent := math.Min(free, float64(n))
	stats.Set(PathDramaFree, free-spent)
	stats.Set(PathDramaUsed, stats.Number(PathDramaUsed)+float64(n)-spent)
	return nil
}
