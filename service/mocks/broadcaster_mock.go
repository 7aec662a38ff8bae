package mocks

import (
	"github.com/stretchr/testify/mock"
)

type MockBroadcaster struct {
	mock.Mock
}

func (m *MockBroadcaster) Broadcast(roomKey string, excludeId string, message []byte) {
	m.Called(roomKey, excludeId, message)
}
