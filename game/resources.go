package game

import (
	"fmt"
	"math"
	"sync"
)

// Resource identifies one of the settlement's stock piles.
type Resource int

const (
	Food Resource = iota
	Wood
	Stone
)

func (r Resource) String() string {
	switch r {
	case Food:
		return "Food"
	case Wood:
		return "Wood"
	case Stone:
		return "Stone"
	default:
		return fmt.Sprintf("Resource(%d)", int(r))
	}
}

// Resources represents the amount of each resource available.
type Resources struct {
	Food  int `json:"food"`
	Wood  int `json:"wood"`
	Stone int `json:"stone"`
}

// Get returns the amount held for kind.
func (r Resources) Get(kind Resource) int {
	switch kind {
	case Food:
		return r.Food
	case Wood:
		return r.Wood
	case Stone:
		return r.Stone
	}
	return 0
}

func (r *Resources) add(kind Resource, amount int) {
	switch kind {
	case Food:
		r.Food += amount
	case Wood:
		r.Wood += amount
	case Stone:
		r.Stone += amount
	}
}

// ResourcePool holds the three counters of a settlement. No counter is ever
// observably negative: wood and stone reject an underflowing delta, food is
// clamped to zero instead.
type ResourcePool struct {
	actual Resources
	lock   sync.Mutex
}

// NewResourcePool creates a pool with the given stocks.
func NewResourcePool(food, wood, stone int) *ResourcePool {
	return &ResourcePool{actual: Resources{Food: food, Wood: wood, Stone: stone}}
}

// ApplyDelta adds amount to the counter for kind. It returns false when the
// result would be negative. In that case wood and stone are left unchanged
// while food is set to 0. Counters saturate at math.MaxInt.
func (rp *ResourcePool) ApplyDelta(kind Resource, amount int) bool {
	rp.lock.Lock()
	defer rp.lock.Unlock()

	current := rp.actual.Get(kind)
	if amount > 0 && current > math.MaxInt-amount {
		rp.actual.add(kind, math.MaxInt-current)
		return true
	}
	if current+amount >= 0 {
		rp.actual.add(kind, amount)
		return true
	}
	if kind == Food {
		rp.actual.Food = 0
	}
	return false
}

// Get returns the current amount of kind.
func (rp *ResourcePool) Get(kind Resource) int {
	rp.lock.Lock()
	defer rp.lock.Unlock()
	return rp.actual.Get(kind)
}

func (rp *ResourcePool) Food() int  { return rp.Get(Food) }
func (rp *ResourcePool) Wood() int  { return rp.Get(Wood) }
func (rp *ResourcePool) Stone() int { return rp.Get(Stone) }

// Snapshot returns a copy of all counters.
func (rp *ResourcePool) Snapshot() Resources {
	rp.lock.Lock()
	defer rp.lock.Unlock()
	return rp.actual
}

// CanAfford reports whether both wood and stone strictly exceed the cost.
func (rp *ResourcePool) CanAfford(wood, stone int) bool {
	rp.lock.Lock()
	defer rp.lock.Unlock()
	return rp.actual.Wood > wood && rp.actual.Stone > stone
}
