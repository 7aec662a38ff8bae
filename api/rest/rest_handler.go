package rest

import (
	"encoding/json"
	"net/http"

	"github.com/adityavvvn/Real-Time-Collaborative-Drawing-Canvas/canvas"
)

type Handler struct {
	Registry *canvas.Registry
}

func NewHandler(registry *canvas.Registry) *Handler {
	return &Handler{Registry: registry}
}

type roomInfo struct {
	RoomKey          string `json:"roomKey"`
	ParticipantCount int    `json:"participantCount"`
	OperationCount   int    `json:"operationCount"`
	SequenceNumber   uint64 `json:"sequenceNumber"`
}

// HandleRooms reports every room the process has created, including empty
// ones (rooms are never evicted). Diagnostic only; lookups never create
// rooms.
func (h *Handler) HandleRooms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	keys := h.Registry.ListRoomKeys()
	rooms := make([]roomInfo, 0, len(keys))
	for _, key := range keys {
		room, ok := h.Registry.Lookup(key)
		if !ok {
			continue
		}
		participants, operations, nextSequence := room.Stats()
		rooms = append(rooms, roomInfo{
			RoomKey:          key,
			ParticipantCount: participants,
			OperationCount:   operations,
			SequenceNumber:   nextSequence,
		})
	}
	h.sendResponse(w, rooms)
}

func (h *Handler) sendResponse(w http.ResponseWriter, resp any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}
