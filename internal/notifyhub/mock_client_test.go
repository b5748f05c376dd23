package notifyhub_test

import (
	"sync/atomic"

	"github.com/Manikandankb2403/College-Complaint-Management-System/internal/models"
)

type MockClient struct {
	userID      string
	closed      atomic.Bool
	RecvChannel chan models.Event
}

func newMockClient(userID string) *MockClient {
	return &MockClient{
		userID:      userID,
		RecvChannel: make(chan models.Event, 10),
	}
}

// newSlowClient has no buffer, so any delivery attempt overflows.
func newSlowClient(userID string) *MockClient {
	return &MockClient{
		userID:      userID,
		RecvChannel: make(chan models.Event),
	}
}

func (c *MockClient) GetUserID() string {
	return c.userID
}

func (c *MockClient) GetSendChannel() chan<- models.Event {
	return c.RecvChannel
}

func (c *MockClient) Run() {
	// Not needed for testing
}

func (c *MockClient) Close() {
	c.closed.Store(true)
}

func (c *MockClient) Closed() bool {
	return c.closed.Load()
}
