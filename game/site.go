package game

import (
	"fmt"
	"hamlet-go/core"
	"strings"
)

// DefaultCapacity is the roster limit of a newly built site.
const DefaultCapacity = 5

// outputPerWorker is what one assigned worker adds to a site's production.
const outputPerWorker = 3

// Category is the kind of production site.
type Category int

const (
	Other Category = iota
	Farm
	Mine
	LumberMill
)

// producedResource maps each producing category to the resource it credits.
// Other has no entry and produces nothing.
var producedResource = map[Category]Resource{
	Farm:       Food,
	Mine:       Stone,
	LumberMill: Wood,
}

// Categories lists every category, Other last.
func Categories() []Category {
	return []Category{Farm, Mine, LumberMill, Other}
}

// ParseCategory matches "FARM", "MINE" and "LUMBER MILL" ignoring case and
// surrounding space. Anything else is Other.
func ParseCategory(s string) Category {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "FARM":
		return Farm
	case "MINE":
		return Mine
	case "LUMBER MILL":
		return LumberMill
	default:
		return Other
	}
}

func (c Category) String() string {
	switch c {
	case Farm:
		return "Farm"
	case Mine:
		return "Mine"
	case LumberMill:
		return "Lumber Mill"
	default:
		return "Other"
	}
}

// Produces returns the resource this category credits and whether it credits
// anything at all.
func (c Category) Produces() (Resource, bool) {
	r, ok := producedResource[c]
	return r, ok
}

// Site is a production building with an ordered roster of workers.
type Site struct {
	category Category
	label    string
	name     string
	capacity int
	roster   []*Worker
	rec      Recorder
}

// NewSite creates an empty site of the given category with the default
// capacity.
func NewSite(category Category, name string) *Site {
	return &Site{
		category: category,
		label:    category.String(),
		name:     name,
		capacity: DefaultCapacity,
		rec:      core.Discard,
	}
}

// NewLabeledSite creates a site from a free-form type label. The category is
// parsed from the label; the label itself is kept for display and saving.
func NewLabeledSite(label, name string) *Site {
	s := NewSite(ParseCategory(label), name)
	s.label = label
	return s
}

func (s *Site) bind(rec Recorder) {
	if rec == nil {
		rec = core.Discard
	}
	s.rec = rec
}

func (s *Site) Category() Category { return s.category }

// Label returns the type label the site was created with.
func (s *Site) Label() string { return s.label }

func (s *Site) Name() string  { return s.name }
func (s *Site) Capacity() int { return s.capacity }

// SetCapacity changes the roster limit. Workers already above the new limit
// stay assigned.
func (s *Site) SetCapacity(n int) {
	s.capacity = n
}

// Produce returns the site's output for one turn.
func (s *Site) Produce() int {
	return outputPerWorker * len(s.roster)
}

// Full reports whether another worker can be assigned.
func (s *Site) Full() bool {
	return len(s.roster) >= s.capacity
}

// Assign appends w to the roster unless the site is full. A full site ignores
// the call without error.
func (s *Site) Assign(w *Worker) bool {
	added := false
	if !s.Full() {
		s.roster = append(s.roster, w)
		added = true
	}
	if added || recordFullAssign {
		s.rec.Record(w.event(core.KindSite, fmt.Sprintf("A worker was added to %s", s.name)))
	}
	return added
}

// Unassign removes the earliest assigned worker, marks it unemployed and
// returns it. It returns nil when the roster is empty.
func (s *Site) Unassign() *Worker {
	if len(s.roster) == 0 {
		return nil
	}
	w := s.roster[0]
	s.roster = s.roster[1:]
	w.Employed = false
	s.rec.Record(w.event(core.KindSite, fmt.Sprintf("A worker was removed from %s", s.name)))
	return w
}

// Rename replaces the display name.
func (s *Site) Rename(name string) {
	s.rec.Record(core.NewEvent(core.KindSite, fmt.Sprintf("%s was renamed to %s", s.name, name)))
	s.name = name
}

// Workers returns a copy of the roster in assignment order.
func (s *Site) Workers() []*Worker {
	out := make([]*Worker, len(s.roster))
	copy(out, s.roster)
	return out
}

// Roster returns the number of assigned workers.
func (s *Site) Roster() int {
	return len(s.roster)
}

// detach drops every roster entry for w without recording an event.
func (s *Site) detach(w *Worker) bool {
	kept := s.roster[:0]
	removed := false
	for _, r := range s.roster {
		if r == w {
			removed = true
			continue
		}
		kept = append(kept, r)
	}
	s.roster = kept
	return removed
}
