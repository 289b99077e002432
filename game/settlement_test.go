package game

import (
	"hamlet-go/core"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSettlement_Defaults(t *testing.T) {
	log := core.NewEventLog()
	s := NewSettlement(log)

	assert.Equal(t, 6, s.Population())
	assert.Equal(t, 20, s.Food())
	assert.Equal(t, 15, s.Wood())
	assert.Equal(t, 15, s.Stone())
	assert.Equal(t, 0, s.Turn())

	sites := s.Sites()
	require.Len(t, sites, 3)
	expected := []struct {
		category Category
		name     string
	}{
		{Farm, "Farm 1"},
		{LumberMill, "Mill 1"},
		{Mine, "Mine 1"},
	}
	workers := s.Workers()
	for i, e := range expected {
		assert.Equal(t, e.category, sites[i].Category())
		assert.Equal(t, e.name, sites[i].Name())
		assert.Equal(t, DefaultCapacity, sites[i].Capacity())
		assert.Equal(t, []*Worker{workers[i]}, sites[i].Workers())
	}

	employed := 0
	for _, w := range workers {
		assert.Equal(t, "Founder", w.Name)
		if w.Employed {
			employed++
		}
	}
	assert.Equal(t, 3, employed)
	assert.Equal(t, workers[3:], s.Unemployed())

	events := log.Events()
	require.NotEmpty(t, events)
	assert.Equal(t, "A village was created", events[0].Description)
	assert.Equal(t, core.KindSettlement, events[0].Kind)
}

func TestNewSettlement_NilRecorder(t *testing.T) {
	s := NewSettlement(nil)
	s.AdvanceTurn()
	assert.Equal(t, 1, s.Turn())
}

func TestSettlement_Build(t *testing.T) {
	s := NewSettlement(core.Discard)
	require.True(t, s.ChangeWood(-11))
	require.True(t, s.ChangeStone(-14))
	require.Equal(t, 4, s.Wood())
	require.Equal(t, 1, s.Stone())

	testCases := []struct {
		name      string
		wood      int
		stone     int
		expected  bool
		woodLeft  int
		stoneLeft int
	}{
		{"Exact Stock Rejected", 4, 1, false, 4, 1},
		{"Exact Stone Rejected", 3, 1, false, 4, 1},
		{"Exact Wood Rejected", 4, 0, false, 4, 1},
		{"Below Stock Accepted", 3, 0, true, 1, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			before := len(s.Sites())
			assert.Equal(t, tc.expected, s.Build(Farm, "Farm 2", tc.wood, tc.stone))
			assert.Equal(t, tc.woodLeft, s.Wood())
			assert.Equal(t, tc.stoneLeft, s.Stone())
			if tc.expected {
				require.Len(t, s.Sites(), before+1)
				built := s.Sites()[before]
				assert.Equal(t, "Farm 2", built.Name())
				assert.Equal(t, DefaultCapacity, built.Capacity())
				assert.Equal(t, 0, built.Roster())
			} else {
				assert.Len(t, s.Sites(), before)
			}
		})
	}
}

func TestSettlement_Hire(t *testing.T) {
	s := NewSettlement(core.Discard)
	farm, err := s.Site(0)
	require.NoError(t, err)
	idle := s.Unemployed()[0]

	assert.True(t, s.Hire(farm, idle))
	assert.True(t, idle.Employed)
	assert.Equal(t, 2, farm.Roster())
	assert.NotContains(t, s.Unemployed(), idle)
	assert.Len(t, s.Unemployed(), 2)
}

func TestSettlement_HireFullSite(t *testing.T) {
	s := NewSettlement(core.Discard)
	farm, _ := s.Site(0)
	farm.SetCapacity(1)
	idle := s.Unemployed()[0]

	assert.False(t, s.Hire(farm, idle))
	assert.False(t, idle.Employed)
	assert.Equal(t, 1, farm.Roster())
	assert.Len(t, s.Unemployed(), 3)
	assert.Contains(t, s.Unemployed(), idle)
}

func TestSettlement_HireDropsDuplicates(t *testing.T) {
	s := NewSettlement(core.Discard)
	s.AdvanceTurn()
	idle := s.Unemployed()[0]
	require.Len(t, s.Unemployed(), 6)

	mine, _ := s.Site(2)
	require.True(t, s.Hire(mine, idle))
	assert.NotContains(t, s.Unemployed(), idle)
	assert.Len(t, s.Unemployed(), 4)
}

func TestSettlement_HireRejects(t *testing.T) {
	testCases := []struct {
		name   string
		worker func(s *Settlement) *Worker
	}{
		{"Already Employed", func(s *Settlement) *Worker {
			return s.Workers()[0]
		}},
		{"Hired Twice", func(s *Settlement) *Worker {
			w := s.Unemployed()[0]
			farm, _ := s.Site(0)
			require.True(t, s.Hire(farm, w))
			return w
		}},
		{"Not In Population", func(s *Settlement) *Worker {
			return NewWorker("Ghost", false)
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewSettlement(core.Discard)
			w := tc.worker(s)
			mine, _ := s.Site(2)
			employed := w.Employed
			roster := mine.Workers()
			unemployed := s.Unemployed()

			assert.False(t, s.Hire(mine, w))
			assert.Equal(t, employed, w.Employed)
			assert.Equal(t, roster, mine.Workers())
			assert.Equal(t, unemployed, s.Unemployed())
			assert.NotContains(t, mine.Workers(), w)
		})
	}
}

func TestSettlement_Fire(t *testing.T) {
	s := NewSettlement(core.Discard)
	farm, _ := s.Site(0)
	first := farm.Workers()[0]

	fired := s.Fire(farm)
	assert.Same(t, first, fired)
	assert.False(t, fired.Employed)
	assert.Equal(t, 0, farm.Roster())
	unemployed := s.Unemployed()
	require.Len(t, unemployed, 4)
	assert.Same(t, fired, unemployed[3])

	assert.Nil(t, s.Fire(farm))
	assert.Len(t, s.Unemployed(), 4)
}

func TestSettlement_AddWorker(t *testing.T) {
	log := core.NewEventLog()
	s := NewSettlement(log)

	idle := NewWorker("Ada", false)
	busy := NewWorker("Bo", true)
	s.AddWorker(idle)
	s.AddWorker(busy)

	assert.Equal(t, 8, s.Population())
	assert.Contains(t, s.Unemployed(), idle)
	assert.NotContains(t, s.Unemployed(), busy)
	assert.Equal(t, "A Citizen was ADDED to the village", log.Events()[log.Len()-1].Description)
}

func TestSettlement_WorkerEventsCarryID(t *testing.T) {
	testCases := []struct {
		name        string
		act         func(t *testing.T, s *Settlement, w *Worker)
		description string
	}{
		{"Add", func(t *testing.T, s *Settlement, w *Worker) {}, "A Citizen was ADDED to the village"},
		{"Hire", func(t *testing.T, s *Settlement, w *Worker) {
			mine, _ := s.Site(2)
			require.True(t, s.Hire(mine, w))
		}, "Ada is now working"},
		{"Rename", func(t *testing.T, s *Settlement, w *Worker) {
			require.NoError(t, s.RenameWorker(6, "Bea"))
		}, "Ada was renamed to Bea"},
		{"Remove", func(t *testing.T, s *Settlement, w *Worker) {
			_, err := s.RemoveWorker(6)
			require.NoError(t, err)
		}, "A Citizen was REMOVED from the village"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			log := core.NewEventLog()
			s := NewSettlement(log)
			w := NewWorker("Ada", false)
			s.AddWorker(w)
			tc.act(t, s, w)

			last := log.Events()[log.Len()-1]
			assert.Equal(t, tc.description, last.Description)
			assert.Equal(t, core.KindWorker, last.Kind)
			assert.Equal(t, w.ID.String(), last.Subject)
		})
	}
}

func TestSettlement_SettlementEventsHaveNoSubject(t *testing.T) {
	log := core.NewEventLog()
	s := NewSettlement(log)
	require.True(t, s.ChangeWood(1))

	assert.Empty(t, log.Events()[0].Subject)
	assert.Empty(t, log.Events()[log.Len()-1].Subject)
}

func TestSettlement_RemoveWorker(t *testing.T) {
	s := NewSettlement(core.Discard)
	workers := s.Workers()

	removed, err := s.RemoveWorker(3)
	require.NoError(t, err)
	assert.Same(t, workers[3], removed)
	assert.Equal(t, 5, s.Population())
	assert.NotContains(t, s.Unemployed(), removed)
	assert.Len(t, s.Unemployed(), 2)

	// An employed worker also leaves its site.
	removed, err = s.RemoveWorker(0)
	require.NoError(t, err)
	assert.Same(t, workers[0], removed)
	farm, _ := s.Site(0)
	assert.Equal(t, 0, farm.Roster())
}

func TestSettlement_IndexErrors(t *testing.T) {
	s := NewSettlement(core.Discard)

	testCases := []struct {
		name string
		call func() error
	}{
		{"Remove Negative", func() error { _, err := s.RemoveWorker(-1); return err }},
		{"Remove Past End", func() error { _, err := s.RemoveWorker(6); return err }},
		{"Rename Worker", func() error { return s.RenameWorker(6, "x") }},
		{"Rename Site", func() error { return s.RenameSite(3, "x") }},
		{"Get Worker", func() error { _, err := s.Worker(-1); return err }},
		{"Get Site", func() error { _, err := s.Site(3); return err }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.call(), ErrIndexOutOfRange)
		})
	}
	assert.Equal(t, 6, s.Population())
}

func TestSettlement_Rename(t *testing.T) {
	log := core.NewEventLog()
	s := NewSettlement(log)

	require.NoError(t, s.RenameWorker(1, "Ada"))
	w, _ := s.Worker(1)
	assert.Equal(t, "Ada", w.Name)
	assert.Equal(t, "Founder was renamed to Ada", log.Events()[log.Len()-1].Description)

	require.NoError(t, s.RenameSite(2, "Quarry"))
	site, _ := s.Site(2)
	assert.Equal(t, "Quarry", site.Name())
	assert.Equal(t, "Mine 1 was renamed to Quarry", log.Events()[log.Len()-1].Description)
}

func TestSettlement_ChangeResources(t *testing.T) {
	log := core.NewEventLog()
	s := NewSettlement(log)

	assert.True(t, s.ChangeFood(5))
	assert.Equal(t, "Total Food is now: 25", log.Events()[log.Len()-1].Description)

	before := log.Len()
	assert.False(t, s.ChangeStone(-16))
	assert.Equal(t, 15, s.Stone())
	assert.False(t, s.ChangeWood(-100))
	assert.Equal(t, 15, s.Wood())
	assert.Equal(t, before, log.Len(), "failed changes are not recorded")

	assert.False(t, s.ChangeFood(-30))
	assert.Equal(t, 0, s.Food())
}

func TestSettlement_Reset(t *testing.T) {
	s := NewSettlement(core.Discard)
	s.Reset()

	assert.Equal(t, 0, s.Population())
	assert.Empty(t, s.Unemployed())
	assert.Empty(t, s.Sites())
	assert.Equal(t, 20, s.Food())
}
