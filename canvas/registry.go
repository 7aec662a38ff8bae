package canvas

import (
	"sync"

	"github.com/adityavvvn/Real-Time-Collaborative-Drawing-Canvas/models"
)

// Registry owns the room table and the participant-to-room mapping.
// Rooms are created on first reference and never evicted: once created, a
// room stays reachable for the life of the process whether or not anyone
// remains in it. Known memory-growth trade-off for a single short-lived
// process.
type Registry struct {
	mu      sync.RWMutex
	rooms   map[string]*Room
	members map[string]string // participant id -> room key
}

func NewRegistry() *Registry {
	return &Registry{
		rooms:   make(map[string]*Room),
		members: make(map[string]string),
	}
}

// Resolve returns the room for key, creating an empty one on first
// reference. It never fails; any string is a valid room key.
func (g *Registry) Resolve(key string) *Room {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.resolveLocked(key)
}

// Lookup returns the room for key without creating it.
func (g *Registry) Lookup(key string) (*Room, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	room, ok := g.rooms[key]
	return room, ok
}

// Join records the participant's room membership and adds them to the
// room's presence table. An existing mapping to a different room is
// simply overwritten; the caller is responsible for leaving the old room
// first.
func (g *Registry) Join(participantId, roomKey, displayName, color string) (*Room, models.Participant) {
	g.mu.Lock()
	room := g.resolveLocked(roomKey)
	g.members[participantId] = roomKey
	g.mu.Unlock()
	return room, room.AddParticipant(participantId, displayName, color)
}

// Leave removes the participant from their current room's presence table
// and deletes the membership mapping. Unknown participants are a no-op,
// so calling Leave twice is safe.
func (g *Registry) Leave(participantId string) (*Room, bool) {
	g.mu.Lock()
	key, ok := g.members[participantId]
	if !ok {
		g.mu.Unlock()
		return nil, false
	}
	delete(g.members, participantId)
	room := g.rooms[key]
	g.mu.Unlock()
	room.RemoveParticipant(participantId)
	return room, true
}

// RoomOf returns the room the participant is currently mapped to.
func (g *Registry) RoomOf(participantId string) (*Room, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	key, ok := g.members[participantId]
	if !ok {
		return nil, false
	}
	return g.rooms[key], true
}

// ListRoomKeys returns every room key created so far. Diagnostic only.
func (g *Registry) ListRoomKeys() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	keys := make([]string, 0, len(g.rooms))
	for key := range g.rooms {
		keys = append(keys, key)
	}
	return keys
}

func (g *Registry) resolveLocked(key string) *Room {
	room, ok := g.rooms[key]
	if !ok {
		room = newRoom(key)
		g.rooms[key] = room
	}
	return room
}
