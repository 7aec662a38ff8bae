package service

import (
	"encoding/json"

	"github.com/adityavvvn/Real-Time-Collaborative-Drawing-Canvas/canvas"
	"github.com/adityavvvn/Real-Time-Collaborative-Drawing-Canvas/models"
	"go.uber.org/zap"
)

// JoinRoom places the session in a room, creating the room on first
// reference, and returns the state-sync payload the joiner needs to
// reconstruct the canvas. The room is told about the new participant.
// A session already in a different room leaves it first.
func (s *Service) JoinRoom(sess *models.Session, roomKey, displayName string) StateSyncData {
	if roomKey == "" {
		roomKey = DefaultRoomKey
	}
	if displayName == "" {
		displayName = guestName(sess.Id)
	}
	if sess.RoomKey != "" && sess.RoomKey != roomKey {
		s.LeaveRoom(sess)
	}

	sess.DisplayName = displayName
	room, participant := s.Registry.Join(sess.Id, roomKey, displayName, sess.Color)
	sess.RoomKey = roomKey

	s.logger.Info("participant joined",
		zap.String("room", roomKey),
		zap.String("participant", sess.Id),
		zap.String("name", displayName),
	)

	users := room.Participants()
	s.broadcast(roomKey, "", EventUserJoined, UserJoinedData{User: participant})
	s.broadcast(roomKey, "", EventUsersUpdate, UsersUpdateData{Users: users})

	snap := room.Snapshot()
	return StateSyncData{
		Operations:     snap.Operations,
		Users:          users,
		SequenceNumber: snap.SequenceNumber,
	}
}

// StartParams is the shaped payload of a draw-start or erase-start event.
// OperationId is the submitter's optional id suggestion; the log replaces
// it when absent or already taken.
type StartParams struct {
	OperationId string
	Kind        models.OperationKind
	Point       models.Point
	Color       string
	Width       float64
}

// StartOperation opens a new stroke or erase operation at a point and
// announces it to the rest of the room. It returns false when the
// session is not in a room or the payload fails validation; both are
// absorbed silently per the protocol's error policy.
func (s *Service) StartOperation(sess *models.Session, params StartParams) (models.Operation, bool) {
	room, ok := s.roomOf(sess)
	if !ok {
		return models.Operation{}, false
	}
	if err := ValidateStart(params.Kind, params.Point, params.Color, params.Width); err != nil {
		s.logger.Debug("rejected operation start",
			zap.String("participant", sess.Id),
			zap.Error(err),
		)
		return models.Operation{}, false
	}

	draft := models.Operation{
		Id:       params.OperationId,
		AuthorId: sess.Id,
		Kind:     params.Kind,
		Width:    params.Width,
		Points:   []models.Point{params.Point},
	}
	if params.Kind == models.KindStroke {
		draft.Color = params.Color
	}

	op := room.Append(draft)
	s.broadcast(room.Key, sess.Id, startEventName(op.Kind), OperationStartedData{
		Operation: op,
		UserColor: sess.Color,
	})
	return op, true
}

// AppendPoint extends an in-flight operation. Stale ids (already undone,
// never existed) and operations owned by someone else are ignored with no
// response to the sender; both look identical from the outside.
func (s *Service) AppendPoint(sess *models.Session, opId string, p models.Point) bool {
	room, ok := s.roomOf(sess)
	if !ok || !validPoint(p) {
		return false
	}
	kind, ok := room.AppendPointOwned(opId, sess.Id, p)
	if !ok {
		return false
	}
	s.broadcast(room.Key, sess.Id, moveEventName(kind), PointAppendedData{OperationId: opId, Point: p})
	return true
}

// FinishOperation marks the end of an in-flight operation. Same
// ownership guard and silent-ignore behavior as AppendPoint.
func (s *Service) FinishOperation(sess *models.Session, opId string) bool {
	room, ok := s.roomOf(sess)
	if !ok {
		return false
	}
	kind, ok := room.FinishOwned(opId, sess.Id)
	if !ok {
		return false
	}
	s.broadcast(room.Key, sess.Id, endEventName(kind), OperationEndedData{OperationId: opId})
	return true
}

// MoveCursor updates the session's cursor position for everyone else in
// the room.
func (s *Service) MoveCursor(sess *models.Session, p models.Point) bool {
	room, ok := s.roomOf(sess)
	if !ok || !validPoint(p) {
		return false
	}
	room.UpdateCursor(sess.Id, p)
	s.broadcast(room.Key, sess.Id, EventCursorMove, CursorMoveData{
		UserId:    sess.Id,
		Point:     p,
		UserColor: sess.Color,
	})
	return true
}

// Undo rolls back the most recent operation in the session's room,
// regardless of who drew it, and tells the whole room including the
// undoer.
func (s *Service) Undo(sess *models.Session) (models.Operation, bool) {
	room, ok := s.roomOf(sess)
	if !ok {
		return models.Operation{}, false
	}
	op, ok := room.Undo()
	if !ok {
		return models.Operation{}, false
	}
	s.broadcast(room.Key, "", EventUndo, UndoData{OperationId: op.Id, UserId: op.AuthorId})
	return op, true
}

// Redo restores the most recently undone operation at its original
// position in the room's order.
func (s *Service) Redo(sess *models.Session) (models.Operation, bool) {
	room, ok := s.roomOf(sess)
	if !ok {
		return models.Operation{}, false
	}
	op, ok := room.Redo()
	if !ok {
		return models.Operation{}, false
	}
	s.broadcast(room.Key, "", EventRedo, RedoData{Operation: op})
	return op, true
}

// ClearCanvas empties the room's log and restarts its sequence counter.
func (s *Service) ClearCanvas(sess *models.Session) bool {
	room, ok := s.roomOf(sess)
	if !ok {
		return false
	}
	room.Clear()
	s.logger.Info("canvas cleared",
		zap.String("room", room.Key),
		zap.String("participant", sess.Id),
	)
	s.broadcast(room.Key, "", EventClear, ClearData{})
	return true
}

// LeaveRoom removes the session from its current room and tells the
// remaining members. Safe to call for sessions that never joined or
// already left; the second call is a no-op.
func (s *Service) LeaveRoom(sess *models.Session) bool {
	sess.RoomKey = ""
	room, ok := s.Registry.Leave(sess.Id)
	if !ok {
		return false
	}

	s.logger.Info("participant left",
		zap.String("room", room.Key),
		zap.String("participant", sess.Id),
	)

	s.broadcast(room.Key, sess.Id, EventUserLeft, UserLeftData{UserId: sess.Id})
	s.broadcast(room.Key, "", EventUsersUpdate, UsersUpdateData{Users: room.Participants()})
	return true
}

func (s *Service) roomOf(sess *models.Session) (*canvas.Room, bool) {
	if sess.RoomKey == "" {
		return nil, false
	}
	return s.Registry.RoomOf(sess.Id)
}

func (s *Service) broadcast(roomKey, excludeId, eventType string, data any) {
	payload, err := json.Marshal(Envelope{Type: eventType, Data: data})
	if err != nil {
		s.logger.Error("failed to marshal broadcast",
			zap.String("type", eventType),
			zap.Error(err),
		)
		return
	}
	s.Broadcaster.Broadcast(roomKey, excludeId, payload)
}

func guestName(sessionId string) string {
	suffix := sessionId
	if len(suffix) > 4 {
		suffix = suffix[len(suffix)-4:]
	}
	return "Guest-" + suffix
}
