package game

import (
	"hamlet-go/core"

	"github.com/google/uuid"
)

// Worker is a member of the settlement. Names need not be unique; workers are
// compared by pointer.
type Worker struct {
	ID       uuid.UUID
	Name     string
	Employed bool
}

// NewWorker creates a worker with a fresh ID.
func NewWorker(name string, employed bool) *Worker {
	return &Worker{
		ID:       uuid.New(),
		Name:     name,
		Employed: employed,
	}
}

func (w *Worker) String() string {
	return w.Name
}

// event returns an event about w, with its ID as the subject.
func (w *Worker) event(kind, description string) core.Event {
	e := core.NewEvent(kind, description)
	e.Subject = w.ID.String()
	return e
}
