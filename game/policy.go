package game

// Behaviors kept for save and log compatibility. Each is the only place its
// rule lives.

// recordFullAssign makes Site.Assign record its event even when the roster is
// full and nothing was added.
const recordFullAssign = true

// requeueIdle appends an idle worker to the unemployed queue during the turn's
// consumption phase. It does not check for an existing entry, so a worker that
// stays idle gains one more entry per turn.
func requeueIdle(queue []*Worker, w *Worker) []*Worker {
	return append(queue, w)
}
