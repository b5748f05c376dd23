package notifyhub

import "github.com/Manikandankb2403/College-Complaint-Management-System/internal/models"

// Client is the interface for one connected observer of the realtime feed.
// It abstracts the underlying transport so the hub can manage connections
// uniformly.
type Client interface {
	// GetUserID returns the identifier of the authenticated user behind the
	// connection. It is the channel key for direct events.
	GetUserID() string

	// GetSendChannel returns the channel the hub pushes events into for this
	// client. It is a send-only channel with a bounded buffer; the hub drops
	// the client rather than block when the buffer is full.
	GetSendChannel() chan<- models.Event

	// Run starts the client's pumps that move events to the wire.
	Run()
	// Close shuts down the client's connection and associated channels.
	Close()
}
