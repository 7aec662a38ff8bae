package canvas

import (
	"sort"
	"time"

	"github.com/adityavvvn/Real-Time-Collaborative-Drawing-Canvas/models"
	"github.com/gofrs/uuid/v5"
)

// An operation may not grow beyond this many points; AppendPoint calls
// past the cap are ignored.
const maxOperationPoints = 1000

// OpLog is the per-room ordered record of drawing operations plus the
// stack of undone operations. It is the unit of truth for what is on the
// canvas. OpLog is not safe for concurrent use; Room serializes access.
type OpLog struct {
	active  []*models.Operation          // always ordered by Sequence ascending
	undone  []*models.Operation          // most recent undo last
	index   map[string]*models.Operation // active operations by id
	nextSeq uint64
}

func NewOpLog() *OpLog {
	return &OpLog{index: make(map[string]*models.Operation)}
}

// Append assigns the next sequence number, generates a fresh id when the
// draft has none (or its id is already in use in this room), appends the
// operation and clears the redo history: starting fresh work abandons any
// pending redo. Append always succeeds.
func (l *OpLog) Append(draft models.Operation) models.Operation {
	if draft.Id == "" || l.idInUse(draft.Id) {
		draft.Id = newOperationId()
	}
	if draft.CreatedAt == 0 {
		draft.CreatedAt = time.Now().UnixMilli()
	}
	draft.Sequence = l.nextSeq
	l.nextSeq++

	op := draft.Clone()
	l.active = append(l.active, &op)
	l.index[op.Id] = &op
	l.undone = l.undone[:0]
	return op.Clone()
}

// ListActive returns a copy of the current operations, ordered by
// sequence ascending.
func (l *OpLog) ListActive() []models.Operation {
	out := make([]models.Operation, 0, len(l.active))
	for _, op := range l.active {
		out = append(out, op.Clone())
	}
	return out
}

// ListSince returns the active operations with a sequence number strictly
// greater than seq, for incremental catch-up.
func (l *OpLog) ListSince(seq uint64) []models.Operation {
	i := sort.Search(len(l.active), func(i int) bool { return l.active[i].Sequence > seq })
	out := make([]models.Operation, 0, len(l.active)-i)
	for _, op := range l.active[i:] {
		out = append(out, op.Clone())
	}
	return out
}

// Get returns a copy of the active operation with the given id.
func (l *OpLog) Get(id string) (models.Operation, bool) {
	op, ok := l.index[id]
	if !ok {
		return models.Operation{}, false
	}
	return op.Clone(), true
}

// AppendPoint appends a point to the active operation with the given id.
// A missing id is a no-op, never an error: the operation may have been
// undone, and a point arriving after an undo is legitimate under network
// delay.
func (l *OpLog) AppendPoint(id string, p models.Point) bool {
	op, ok := l.index[id]
	if !ok {
		return false
	}
	if len(op.Points) >= maxOperationPoints {
		return false
	}
	op.Points = append(op.Points, p)
	return true
}

// Undo removes the most recently appended active operation, regardless of
// author, and pushes it onto the undo stack. Last write wins: there is no
// negotiation over whose operation gets rolled back.
func (l *OpLog) Undo() (models.Operation, bool) {
	n := len(l.active)
	if n == 0 {
		return models.Operation{}, false
	}
	op := l.active[n-1]
	l.active = l.active[:n-1]
	delete(l.index, op.Id)
	l.undone = append(l.undone, op)
	return op.Clone(), true
}

// Redo pops the most recently undone operation and re-inserts it at its
// original position in sequence order. The sequence number is not
// reassigned and the rest of the undo stack is untouched.
func (l *OpLog) Redo() (models.Operation, bool) {
	n := len(l.undone)
	if n == 0 {
		return models.Operation{}, false
	}
	op := l.undone[n-1]
	l.undone = l.undone[:n-1]
	l.insert(op)
	return op.Clone(), true
}

// RemoveById removes a specific active operation, pushing it onto the
// undo stack, and reports whether it was found. The default undo path
// never calls this; it exists for targeted conflict resolution.
func (l *OpLog) RemoveById(id string) bool {
	op, ok := l.index[id]
	if !ok {
		return false
	}
	for i, candidate := range l.active {
		if candidate == op {
			l.active = append(l.active[:i], l.active[i+1:]...)
			break
		}
	}
	delete(l.index, id)
	l.undone = append(l.undone, op)
	return true
}

// Reset empties the log and the undo stack and restarts the sequence
// counter from zero. Used by clear-canvas.
func (l *OpLog) Reset() {
	l.active = nil
	l.undone = nil
	l.index = make(map[string]*models.Operation)
	l.nextSeq = 0
}

// Snapshot returns everything a newly joining participant needs to
// reconstruct the canvas exactly.
func (l *OpLog) Snapshot() models.Snapshot {
	return models.Snapshot{
		Operations:     l.ListActive(),
		SequenceNumber: l.nextSeq,
	}
}

func (l *OpLog) Len() int { return len(l.active) }

// NextSequence is the value the next Append will assign.
func (l *OpLog) NextSequence() uint64 { return l.nextSeq }

func (l *OpLog) idInUse(id string) bool {
	if _, ok := l.index[id]; ok {
		return true
	}
	for _, op := range l.undone {
		if op.Id == id {
			return true
		}
	}
	return false
}

func (l *OpLog) insert(op *models.Operation) {
	i := sort.Search(len(l.active), func(i int) bool { return l.active[i].Sequence > op.Sequence })
	l.active = append(l.active, nil)
	copy(l.active[i+1:], l.active[i:])
	l.active[i] = op
	l.index[op.Id] = op
}

func newOperationId() string {
	return uuid.Must(uuid.NewV7()).String()
}
