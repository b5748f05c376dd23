package notifyhub

import (
	"log"

	"github.com/Manikandankb2403/College-Complaint-Management-System/internal/models"
	"github.com/Manikandankb2403/College-Complaint-Management-System/internal/storage"
)

// Publisher is the write side of the fan-out: it pushes events onto the
// shared Redis channel. Publish failures are logged and swallowed so a dead
// transport never fails the mutation that produced the event.
type Publisher struct {
	Storage storage.Storage
}

// NewPublisher creates the event publisher the complaint service hands its
// events to.
func NewPublisher(s storage.Storage) *Publisher {
	return &Publisher{Storage: s}
}

// Publish sends one event, best-effort.
func (p *Publisher) Publish(ev models.Event) {
	if err := p.Storage.PublishEvent(ev); err != nil {
		log.Printf("WARNING: Failed to publish %s event: %v", ev.Name, err)
	}
}
