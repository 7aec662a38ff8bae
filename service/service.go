package service

import (
	"sync/atomic"

	"github.com/adityavvvn/Real-Time-Collaborative-Drawing-Canvas/canvas"
	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"
)

// DefaultRoomKey is used when a join carries no room id.
const DefaultRoomKey = "default"

// Broadcaster delivers an encoded event to every connection currently in
// a room. excludeId names a participant to skip (usually the sender);
// empty means deliver to everyone. Delivery is asynchronous relative to
// the sender and is never awaited.
type Broadcaster interface {
	Broadcast(roomKey string, excludeId string, message []byte)
}

// Service orchestrates the room registry, operation logs and presence
// tables on behalf of whichever connection's event is being processed,
// and decides what gets broadcast to whom.
type Service struct {
	Registry    *canvas.Registry
	Broadcaster Broadcaster
	logger      *zap.Logger
	colorIndex  atomic.Uint64
}

func NewService(registry *canvas.Registry, broadcaster Broadcaster, logger *zap.Logger) *Service {
	return &Service{
		Registry:    registry,
		Broadcaster: broadcaster,
		logger:      logger,
	}
}

// Display colors handed out to connections round-robin. A connection
// keeps its color for its whole lifetime.
var palette = []string{
	"#e6194b", "#3cb44b", "#4363d8", "#f58231", "#911eb4",
	"#46f0f0", "#f032e6", "#3f8c5b", "#9a6324", "#800000",
}

// NextColor assigns a display color for a new connection.
func (s *Service) NextColor() string {
	n := s.colorIndex.Add(1) - 1
	return palette[n%uint64(len(palette))]
}

// NewSessionId generates the identity for a new connection.
func NewSessionId() string {
	return uuid.Must(uuid.NewV7()).String()
}
