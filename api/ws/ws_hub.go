package ws

import (
	"go.uber.org/zap"
)

// RoomMessage is a payload destined for every connection currently in a
// room. ExcludeId names a participant to skip, usually the sender; empty
// means deliver to everyone.
type RoomMessage struct {
	RoomKey   string
	ExcludeId string
	Payload   []byte
}

type lifecycleKind int

const (
	lifecycleOpen lifecycleKind = iota
	lifecycleJoin
	lifecycleLeave
	lifecycleClose
)

// lifecycle events share one channel so open/join/leave/close for a
// given connection are processed in the order they were sent. Attaching
// a connection whose send channel was already closed must be impossible.
type lifecycleEvent struct {
	kind    lifecycleKind
	client  *Client
	roomKey string
}

type unicast struct {
	client  *Client
	payload []byte
}

// Hub maintains the set of active clients, tracks which room each one is
// attached to and fans broadcast messages out to room members. All maps
// are owned by the Run goroutine and fed through channels; nothing else
// touches them.
type Hub struct {
	logger        *zap.Logger
	lifecycleCh   chan lifecycleEvent
	broadcastCh   chan RoomMessage
	unicastCh     chan unicast
	clients       map[*Client]struct{}
	roomToClients map[string]map[*Client]struct{}
	clientToRoom  map[*Client]string
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		logger:        logger,
		lifecycleCh:   make(chan lifecycleEvent, 1024),
		broadcastCh:   make(chan RoomMessage, 4096),
		unicastCh:     make(chan unicast, 1024),
		clients:       make(map[*Client]struct{}),
		roomToClients: make(map[string]map[*Client]struct{}),
		clientToRoom:  make(map[*Client]string),
	}
}

// Open registers a new connection with the hub.
func (h *Hub) Open(client *Client) {
	h.lifecycleCh <- lifecycleEvent{kind: lifecycleOpen, client: client}
}

// Close unregisters a connection. Its send channel is closed, which
// makes the write pump deliver a close frame and exit.
func (h *Hub) Close(client *Client) {
	h.lifecycleCh <- lifecycleEvent{kind: lifecycleClose, client: client}
}

// Join attaches a connection to a room's fan-out, detaching it from any
// previous room.
func (h *Hub) Join(client *Client, roomKey string) {
	h.lifecycleCh <- lifecycleEvent{kind: lifecycleJoin, client: client, roomKey: roomKey}
}

// Leave detaches a connection from its room without closing it.
func (h *Hub) Leave(client *Client) {
	h.lifecycleCh <- lifecycleEvent{kind: lifecycleLeave, client: client}
}

// Broadcast queues a message for every connection in the room, skipping
// excludeId if set. Implements service.Broadcaster.
func (h *Hub) Broadcast(roomKey string, excludeId string, message []byte) {
	h.broadcastCh <- RoomMessage{RoomKey: roomKey, ExcludeId: excludeId, Payload: message}
}

// SendTo queues a message for a single connection.
func (h *Hub) SendTo(client *Client, payload []byte) {
	h.unicastCh <- unicast{client: client, payload: payload}
}

func (h *Hub) Run() {
	for {
		select {
		case ev := <-h.lifecycleCh:
			switch ev.kind {
			case lifecycleOpen:
				h.clients[ev.client] = struct{}{}

			case lifecycleJoin:
				// A connection dropped for falling behind may still send
				// a join from its read pump; never re-attach it.
				if _, ok := h.clients[ev.client]; !ok {
					continue
				}
				h.detach(ev.client)
				if h.roomToClients[ev.roomKey] == nil {
					h.roomToClients[ev.roomKey] = make(map[*Client]struct{})
				}
				h.roomToClients[ev.roomKey][ev.client] = struct{}{}
				h.clientToRoom[ev.client] = ev.roomKey

			case lifecycleLeave:
				h.detach(ev.client)

			case lifecycleClose:
				h.drop(ev.client)
			}

		case msg := <-h.broadcastCh:
			for client := range h.roomToClients[msg.RoomKey] {
				if msg.ExcludeId != "" && client.session.Id == msg.ExcludeId {
					continue
				}
				h.send(client, msg.Payload)
			}

		case u := <-h.unicastCh:
			if _, ok := h.clients[u.client]; ok {
				h.send(u.client, u.payload)
			}
		}
	}
}

// send enqueues without blocking. A consumer whose buffer is full would
// otherwise stall delivery to the rest of the room, so it gets dropped.
func (h *Hub) send(client *Client, payload []byte) {
	select {
	case client.Send <- payload:
	default:
		h.logger.Warn("dropping slow websocket consumer",
			zap.String("participant", client.session.Id),
		)
		h.drop(client)
	}
}

func (h *Hub) drop(client *Client) {
	h.detach(client)
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.Send)
	}
}

func (h *Hub) detach(client *Client) {
	roomKey, ok := h.clientToRoom[client]
	if !ok {
		return
	}
	delete(h.roomToClients[roomKey], client)
	if len(h.roomToClients[roomKey]) == 0 {
		delete(h.roomToClients, roomKey)
	}
	delete(h.clientToRoom, client)
}
