package ws

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/adityavvvn/Real-Time-Collaborative-Drawing-Canvas/models"
	"github.com/adityavvvn/Real-Time-Collaborative-Drawing-Canvas/service"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type Handler struct {
	Service *service.Service
	Hub     *Hub
	logger  *zap.Logger
}

func NewHandler(svc *service.Service, hub *Hub, logger *zap.Logger) *Handler {
	return &Handler{
		Service: svc,
		Hub:     hub,
		logger:  logger,
	}
}

func (h *Handler) NewWsUpgrader(allowedOrigin string) websocket.Upgrader {
	return websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			if allowedOrigin == "" {
				return true
			}
			return r.Header.Get("Origin") == allowedOrigin
		},
	}
}

// ServeWS handles websocket requests from the peer. Each connection gets
// a generated identity and a display color that stay fixed for the
// connection's lifetime.
func (h *Handler) ServeWS(wsUpgrader websocket.Upgrader, w http.ResponseWriter, r *http.Request, shutdownCtx context.Context) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("failed to upgrade ws connection", zap.Error(err))
		return
	}

	session := &models.Session{
		Id:    service.NewSessionId(),
		Color: h.Service.NextColor(),
	}

	client := NewClient(h.Hub, conn, session, h.logger, h.HandleWsMessage, h.handleClose)
	h.Hub.Open(client)

	// Start pumps
	go client.ReadPump()
	go client.WritePump(shutdownCtx)
}

// handleClose runs when the read pump exits for any reason: explicit
// close, network drop, rate-limit kill. All of them surface as the same
// leave.
func (h *Handler) handleClose(client *Client) {
	h.Service.LeaveRoom(client.session)
}

// Websocket message structs
type message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type joinMessage struct {
	RoomId   string `json:"roomId"`
	UserName string `json:"userName"`
}

type startMessage struct {
	Point       models.Point `json:"point"`
	Color       string       `json:"color"`
	StrokeWidth float64      `json:"strokeWidth"`
	OperationId string       `json:"operationId"`
}

type moveMessage struct {
	OperationId string       `json:"operationId"`
	Point       models.Point `json:"point"`
}

type endMessage struct {
	OperationId string `json:"operationId"`
}

type cursorMessage struct {
	Point models.Point `json:"point"`
}

// HandleWsMessage shapes an inbound event and drives the session through
// the protocol. Malformed or unknown events are logged and dropped; the
// connection stays up and the sender gets no error.
func (h *Handler) HandleWsMessage(client *Client, messageType int, messageBytes []byte) {
	var msg message
	if err := json.Unmarshal(messageBytes, &msg); err != nil {
		h.logger.Debug("invalid json from client",
			zap.String("participant", client.session.Id),
			zap.Error(err),
		)
		return
	}

	switch msg.Type {
	case "join":
		var joinMsg joinMessage
		if len(msg.Data) > 0 {
			if err := json.Unmarshal(msg.Data, &joinMsg); err != nil {
				h.logger.Debug("invalid join data", zap.Error(err))
				return
			}
		}
		h.handleJoin(client, joinMsg)

	case "draw-start":
		var startMsg startMessage
		if err := json.Unmarshal(msg.Data, &startMsg); err != nil {
			h.logger.Debug("invalid draw-start data", zap.Error(err))
			return
		}
		h.handleStart(client, startMsg, models.KindStroke)

	case "erase-start":
		var startMsg startMessage
		if err := json.Unmarshal(msg.Data, &startMsg); err != nil {
			h.logger.Debug("invalid erase-start data", zap.Error(err))
			return
		}
		h.handleStart(client, startMsg, models.KindErase)

	case "draw-move", "erase-move":
		var moveMsg moveMessage
		if err := json.Unmarshal(msg.Data, &moveMsg); err != nil {
			h.logger.Debug("invalid move data", zap.Error(err))
			return
		}
		h.Service.AppendPoint(client.session, moveMsg.OperationId, moveMsg.Point)

	case "draw-end", "erase-end":
		var endMsg endMessage
		if err := json.Unmarshal(msg.Data, &endMsg); err != nil {
			h.logger.Debug("invalid end data", zap.Error(err))
			return
		}
		h.Service.FinishOperation(client.session, endMsg.OperationId)

	case "cursor-move":
		var cursorMsg cursorMessage
		if err := json.Unmarshal(msg.Data, &cursorMsg); err != nil {
			h.logger.Debug("invalid cursor-move data", zap.Error(err))
			return
		}
		h.Service.MoveCursor(client.session, cursorMsg.Point)

	case "undo":
		h.Service.Undo(client.session)

	case "redo":
		h.Service.Redo(client.session)

	case "clear-canvas":
		h.Service.ClearCanvas(client.session)

	case "leave":
		h.Service.LeaveRoom(client.session)
		h.Hub.Leave(client)

	default:
		h.logger.Debug("unknown message type", zap.String("type", msg.Type))
	}
}

func (h *Handler) handleJoin(client *Client, joinMsg joinMessage) {
	roomKey := joinMsg.RoomId
	if roomKey == "" {
		roomKey = service.DefaultRoomKey
	}

	// Attach to the room's fan-out before the join broadcasts fire so the
	// joiner can receive events for its new room.
	h.Hub.Join(client, roomKey)

	syncData := h.Service.JoinRoom(client.session, roomKey, joinMsg.UserName)

	respBytes, err := json.Marshal(service.Envelope{Type: service.EventStateSync, Data: syncData})
	if err != nil {
		h.logger.Error("failed to marshal state-sync", zap.Error(err))
		return
	}
	h.Hub.SendTo(client, respBytes)
}

func (h *Handler) handleStart(client *Client, startMsg startMessage, kind models.OperationKind) {
	h.Service.StartOperation(client.session, service.StartParams{
		OperationId: startMsg.OperationId,
		Kind:        kind,
		Point:       startMsg.Point,
		Color:       startMsg.Color,
		Width:       startMsg.StrokeWidth,
	})
}
