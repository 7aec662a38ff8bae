package canvas

import "github.com/adityavvvn/Real-Time-Collaborative-Drawing-Canvas/models"

// PresenceTable tracks the participants currently in a room and their
// live display attributes. Not safe for concurrent use; Room serializes
// access.
type PresenceTable struct {
	participants map[string]*models.Participant
}

func NewPresenceTable() *PresenceTable {
	return &PresenceTable{participants: make(map[string]*models.Participant)}
}

// Add inserts or overwrites a participant record.
func (t *PresenceTable) Add(id, displayName, color string) models.Participant {
	p := &models.Participant{Id: id, DisplayName: displayName, Color: color, Active: true}
	t.participants[id] = p
	return p.Clone()
}

// Remove deletes the record and reports whether it existed.
func (t *PresenceTable) Remove(id string) bool {
	if _, ok := t.participants[id]; !ok {
		return false
	}
	delete(t.participants, id)
	return true
}

// UpdateCursor sets the participant's cursor and marks them active.
// Unknown ids are ignored: a cursor event can arrive after a leave.
func (t *PresenceTable) UpdateCursor(id string, p models.Point) {
	participant, ok := t.participants[id]
	if !ok {
		return
	}
	cursor := p
	participant.Cursor = &cursor
	participant.Active = true
}

// List returns the participants as a set; order is not meaningful.
func (t *PresenceTable) List() []models.Participant {
	out := make([]models.Participant, 0, len(t.participants))
	for _, p := range t.participants {
		out = append(out, p.Clone())
	}
	return out
}

func (t *PresenceTable) Len() int { return len(t.participants) }
