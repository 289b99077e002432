package game

import (
	"fmt"
	"hamlet-go/core"
)

// TurnReport summarizes one AdvanceTurn call. Fed counts meals attempted; the
// last one may have clamped food to zero. Starved is nil unless a worker was
// culled.
type TurnReport struct {
	Turn     int
	Produced Resources
	Fed      int
	Starved  *Worker
}

// AdvanceTurn runs production for every site, then feeds the population in
// order. If food is already at or below zero when a worker is reached, that
// worker starves and the rest of the population is skipped, so at most one
// worker is lost per turn.
func (s *Settlement) AdvanceTurn() TurnReport {
	s.turn++
	report := TurnReport{Turn: s.turn}

	s.produce(&report)
	s.consume(&report)

	s.record(core.KindTurn, "Village updated for next turn")
	return report
}

func (s *Settlement) produce(report *TurnReport) {
	for _, site := range s.sites {
		kind, ok := site.Category().Produces()
		if !ok {
			continue
		}
		amount := site.Produce()
		s.pool.ApplyDelta(kind, amount)
		report.Produced.add(kind, amount)
	}
	s.record(core.KindResource, "Resources were updated")
}

func (s *Settlement) consume(report *TurnReport) {
	for i, w := range s.workers {
		if !w.Employed {
			s.unemployed = requeueIdle(s.unemployed, w)
		}
		if s.pool.Food() <= 0 {
			report.Starved = s.evict(i)
			s.recordWorker(w, core.KindWorker, fmt.Sprintf("%s starved to death", w.Name))
			break
		}
		s.eat(w)
		report.Fed++
	}
	s.record(core.KindWorker, "Citizens were updated")
}

func (s *Settlement) eat(w *Worker) {
	s.recordWorker(w, core.KindWorker, "A citizen was able to eat")
	s.ChangeFood(-mealCost)
}
