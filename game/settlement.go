package game

import (
	"errors"
	"fmt"
	"hamlet-go/core"
)

// ErrIndexOutOfRange is returned when a worker or site index does not exist.
var ErrIndexOutOfRange = errors.New("index out of range")

// Starting state of a new settlement.
const (
	founderName     = "Founder"
	founderCount    = 6
	startingFood    = 20
	startingWood    = 15
	startingStone   = 15
	mealCost        = 2
	starterEmployed = 3
)

// Recorder receives the settlement's state change events.
type Recorder interface {
	Record(core.Event)
}

// turnStamp tags every event with the settlement's current turn before
// passing it on.
type turnStamp struct {
	s *Settlement
}

func (ts turnStamp) Record(e core.Event) {
	e.Turn = ts.s.turn
	ts.s.rec.Record(e)
}

// Settlement owns the workers, production sites and resource pool of one
// session. It is not safe for concurrent use.
type Settlement struct {
	workers    []*Worker
	unemployed []*Worker
	sites      []*Site
	pool       *ResourcePool
	turn       int
	rec        Recorder
	stamp      Recorder
}

// NewSettlement creates the starting settlement: a farm, a lumber mill and a
// mine with one founder each, three idle founders and the starting stocks.
// A nil rec discards events.
func NewSettlement(rec Recorder) *Settlement {
	if rec == nil {
		rec = core.Discard
	}
	s := &Settlement{
		pool: NewResourcePool(startingFood, startingWood, startingStone),
		rec:  rec,
	}
	s.stamp = turnStamp{s: s}

	s.AddSite(NewSite(Farm, "Farm 1"))
	s.AddSite(NewSite(LumberMill, "Mill 1"))
	s.AddSite(NewSite(Mine, "Mine 1"))

	for i := 0; i < founderCount; i++ {
		s.workers = append(s.workers, NewWorker(founderName, false))
	}
	s.record(core.KindSettlement, "A village was created")

	for i := 0; i < starterEmployed; i++ {
		s.sites[i].Assign(s.workers[i])
		s.setEmployed(s.workers[i])
	}
	s.unemployed = append(s.unemployed, s.workers[starterEmployed:]...)
	return s
}

// Record adds an event stamped with the current turn.
func (s *Settlement) Record(kind, description string) {
	s.record(kind, description)
}

func (s *Settlement) record(kind, description string) {
	s.stamp.Record(core.NewEvent(kind, description))
}

// recordWorker adds a turn-stamped event about w.
func (s *Settlement) recordWorker(w *Worker, kind, description string) {
	s.stamp.Record(w.event(kind, description))
}

func (s *Settlement) setEmployed(w *Worker) {
	w.Employed = true
	s.recordWorker(w, core.KindWorker, fmt.Sprintf("%s is now working", w.Name))
}

// Build adds a new empty site and pays its cost. Both stocks must strictly
// exceed the cost; otherwise nothing changes and false is returned.
func (s *Settlement) Build(category Category, name string, woodCost, stoneCost int) bool {
	if !s.pool.CanAfford(woodCost, stoneCost) {
		return false
	}
	s.pool.ApplyDelta(Stone, -stoneCost)
	s.pool.ApplyDelta(Wood, -woodCost)
	s.AddSite(NewSite(category, name))
	s.record(core.KindSettlement, fmt.Sprintf("A %s named %s was added to the village", category, name))
	return true
}

// AddSite appends a site without charging for it.
func (s *Settlement) AddSite(site *Site) {
	site.bind(s.stamp)
	s.sites = append(s.sites, site)
}

// Hire moves w from the unemployed queue onto site and marks it employed.
// Nothing changes and false is returned if the site is full or w is not
// queued as unemployed. On success every unemployed entry for w is dropped.
func (s *Settlement) Hire(site *Site, w *Worker) bool {
	if site.Full() || !contains(s.unemployed, w) {
		return false
	}
	site.Assign(w)
	s.setEmployed(w)
	s.unemployed = without(s.unemployed, w)
	return true
}

// Fire removes the earliest assigned worker from site and queues it as
// unemployed. It returns nil when the site has no workers.
func (s *Settlement) Fire(site *Site) *Worker {
	w := site.Unassign()
	if w == nil {
		return nil
	}
	s.unemployed = append(s.unemployed, w)
	return w
}

// AddWorker appends w to the population. An idle worker is also queued as
// unemployed.
func (s *Settlement) AddWorker(w *Worker) {
	s.workers = append(s.workers, w)
	if !w.Employed {
		s.unemployed = append(s.unemployed, w)
	}
	s.recordWorker(w, core.KindWorker, "A Citizen was ADDED to the village")
}

// RemoveWorker removes the worker at index from the population, from the
// unemployed queue and from any site roster.
func (s *Settlement) RemoveWorker(index int) (*Worker, error) {
	if index < 0 || index >= len(s.workers) {
		return nil, fmt.Errorf("remove worker %d of %d: %w", index, len(s.workers), ErrIndexOutOfRange)
	}
	w := s.evict(index)
	s.recordWorker(w, core.KindWorker, "A Citizen was REMOVED from the village")
	return w, nil
}

// evict drops the worker at index from every collection that references it.
func (s *Settlement) evict(index int) *Worker {
	w := s.workers[index]
	s.workers = append(s.workers[:index], s.workers[index+1:]...)
	s.unemployed = without(s.unemployed, w)
	for _, site := range s.sites {
		site.detach(w)
	}
	return w
}

// RenameWorker sets the name of the worker at index.
func (s *Settlement) RenameWorker(index int, name string) error {
	if index < 0 || index >= len(s.workers) {
		return fmt.Errorf("rename worker %d of %d: %w", index, len(s.workers), ErrIndexOutOfRange)
	}
	w := s.workers[index]
	s.recordWorker(w, core.KindWorker, fmt.Sprintf("%s was renamed to %s", w.Name, name))
	w.Name = name
	return nil
}

// RenameSite sets the name of the site at index.
func (s *Settlement) RenameSite(index int, name string) error {
	if index < 0 || index >= len(s.sites) {
		return fmt.Errorf("rename site %d of %d: %w", index, len(s.sites), ErrIndexOutOfRange)
	}
	s.sites[index].Rename(name)
	return nil
}

func (s *Settlement) ChangeFood(amount int) bool  { return s.change(Food, amount) }
func (s *Settlement) ChangeWood(amount int) bool  { return s.change(Wood, amount) }
func (s *Settlement) ChangeStone(amount int) bool { return s.change(Stone, amount) }

func (s *Settlement) change(kind Resource, amount int) bool {
	if !s.pool.ApplyDelta(kind, amount) {
		return false
	}
	s.record(core.KindResource, fmt.Sprintf("Total %s is now: %d", kind, s.pool.Get(kind)))
	return true
}

// Reset empties the population, the unemployed queue and the site list.
// Stocks and the turn counter are left alone.
func (s *Settlement) Reset() {
	s.workers = nil
	s.unemployed = nil
	s.sites = nil
}

// Workers returns the population in order.
func (s *Settlement) Workers() []*Worker {
	return append([]*Worker(nil), s.workers...)
}

// Unemployed returns the unemployed queue, duplicates included.
func (s *Settlement) Unemployed() []*Worker {
	return append([]*Worker(nil), s.unemployed...)
}

// Sites returns the production sites in build order.
func (s *Settlement) Sites() []*Site {
	return append([]*Site(nil), s.sites...)
}

// Worker returns the worker at index.
func (s *Settlement) Worker(index int) (*Worker, error) {
	if index < 0 || index >= len(s.workers) {
		return nil, fmt.Errorf("worker %d of %d: %w", index, len(s.workers), ErrIndexOutOfRange)
	}
	return s.workers[index], nil
}

// Site returns the site at index.
func (s *Settlement) Site(index int) (*Site, error) {
	if index < 0 || index >= len(s.sites) {
		return nil, fmt.Errorf("site %d of %d: %w", index, len(s.sites), ErrIndexOutOfRange)
	}
	return s.sites[index], nil
}

func (s *Settlement) Food() int            { return s.pool.Food() }
func (s *Settlement) Wood() int            { return s.pool.Wood() }
func (s *Settlement) Stone() int           { return s.pool.Stone() }
func (s *Settlement) Resources() Resources { return s.pool.Snapshot() }
func (s *Settlement) Turn() int            { return s.turn }
func (s *Settlement) Population() int      { return len(s.workers) }

func contains(queue []*Worker, w *Worker) bool {
	for _, q := range queue {
		if q == w {
			return true
		}
	}
	return false
}

// without returns queue with every entry for w removed.
func without(queue []*Worker, w *Worker) []*Worker {
	kept := queue[:0]
	for _, q := range queue {
		if q != w {
			kept = append(kept, q)
		}
	}
	return kept
}
