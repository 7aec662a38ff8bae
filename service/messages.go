package service

import "github.com/adityavvvn/Real-Time-Collaborative-Drawing-Canvas/models"

// Outbound event names. Inbound names match where a message travels both
// directions (draw-start in from the author, draw-start out to the room).
const (
	EventStateSync   = "state-sync"
	EventDrawStart   = "draw-start"
	EventDrawMove    = "draw-move"
	EventDrawEnd     = "draw-end"
	EventEraseStart  = "erase-start"
	EventEraseMove   = "erase-move"
	EventEraseEnd    = "erase-end"
	EventCursorMove  = "cursor-move"
	EventUndo        = "undo"
	EventRedo        = "redo"
	EventClear       = "clear-canvas"
	EventUserJoined  = "user-joined"
	EventUserLeft    = "user-left"
	EventUsersUpdate = "users-update"
)

// Envelope is the wire shape shared by every event in both directions.
type Envelope struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// StateSyncData is unicast to a participant on join.
type StateSyncData struct {
	Operations     []models.Operation   `json:"operations"`
	Users          []models.Participant `json:"users"`
	SequenceNumber uint64               `json:"sequenceNumber"`
}

// OperationStartedData carries the fully-populated operation (resolved
// id, assigned sequence) plus the author's display color.
type OperationStartedData struct {
	models.Operation
	UserColor string `json:"userColor"`
}

type PointAppendedData struct {
	OperationId string       `json:"operationId"`
	Point       models.Point `json:"point"`
}

type OperationEndedData struct {
	OperationId string `json:"operationId"`
}

type UndoData struct {
	OperationId string `json:"operationId"`
	UserId      string `json:"userId"`
}

type RedoData struct {
	Operation models.Operation `json:"operation"`
}

type UserJoinedData struct {
	User models.Participant `json:"user"`
}

type UserLeftData struct {
	UserId string `json:"userId"`
}

type UsersUpdateData struct {
	Users []models.Participant `json:"users"`
}

type CursorMoveData struct {
	UserId    string       `json:"userId"`
	Point     models.Point `json:"point"`
	UserColor string       `json:"userColor"`
}

type ClearData struct{}

func startEventName(kind models.OperationKind) string {
	if kind == models.KindErase {
		return EventEraseStart
	}
	return EventDrawStart
}

func moveEventName(kind models.OperationKind) string {
	if kind == models.KindErase {
		return EventEraseMove
	}
	return EventDrawMove
}

func endEventName(kind models.OperationKind) string {
	if kind == models.KindErase {
		return EventEraseEnd
	}
	return EventDrawEnd
}
