package canvas

import (
	"sync"

	"github.com/adityavvvn/Real-Time-Collaborative-Drawing-Canvas/models"
)

// Room is an isolated namespace owning exactly one operation log and one
// presence table. All access goes through Room methods; the mutex makes
// every inbound event atomic with respect to the room's state, and every
// method returns copies so callers can never observe a torn mid-mutation
// state.
type Room struct {
	Key string

	mu       sync.Mutex
	log      *OpLog
	presence *PresenceTable
}

func newRoom(key string) *Room {
	return &Room{Key: key, log: NewOpLog(), presence: NewPresenceTable()}
}

func (r *Room) Append(draft models.Operation) models.Operation {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.log.Append(draft)
}

// AppendPointOwned appends a point to an in-flight operation, but only if
// authorId matches the operation's author. This ownership check is the
// only access-control boundary the protocol enforces: it stops a
// participant from mutating another's operation through a guessed or
// replayed id. The operation's kind is returned so the caller can name
// the rebroadcast event.
func (r *Room) AppendPointOwned(opId, authorId string, p models.Point) (models.OperationKind, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	op, ok := r.log.Get(opId)
	if !ok || op.AuthorId != authorId {
		return "", false
	}
	if !r.log.AppendPoint(opId, p) {
		return "", false
	}
	return op.Kind, true
}

// FinishOwned validates that the operation exists in the active log and
// belongs to authorId. Same guard as AppendPointOwned, shared by stroke
// and erase alike.
func (r *Room) FinishOwned(opId, authorId string) (models.OperationKind, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	op, ok := r.log.Get(opId)
	if !ok || op.AuthorId != authorId {
		return "", false
	}
	return op.Kind, true
}

func (r *Room) Undo() (models.Operation, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.log.Undo()
}

func (r *Room) Redo() (models.Operation, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.log.Redo()
}

// RemoveOperation removes a specific operation from the active log.
func (r *Room) RemoveOperation(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.log.RemoveById(id)
}

// Clear empties the log and restarts the sequence counter from zero.
func (r *Room) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.log.Reset()
}

func (r *Room) Snapshot() models.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.log.Snapshot()
}

// OperationsSince returns operations with a sequence number strictly
// greater than seq, for incremental catch-up.
func (r *Room) OperationsSince(seq uint64) []models.Operation {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.log.ListSince(seq)
}

func (r *Room) AddParticipant(id, displayName, color string) models.Participant {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.presence.Add(id, displayName, color)
}

func (r *Room) RemoveParticipant(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.presence.Remove(id)
}

func (r *Room) UpdateCursor(id string, p models.Point) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.presence.UpdateCursor(id, p)
}

func (r *Room) Participants() []models.Participant {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.presence.List()
}

// Stats reports participant count, active operation count and the next
// sequence number. Diagnostic only.
func (r *Room) Stats() (participants int, operations int, nextSequence uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.presence.Len(), r.log.Len(), r.log.NextSequence()
}
