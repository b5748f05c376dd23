package notifyhub

import (
	"encoding/json"
	"log"

	"github.com/Manikandankb2403/College-Complaint-Management-System/internal/models"
)

// StartPubSubListener starts a goroutine that feeds events from the shared
// Redis channel into the hub's dispatch loop. Events published by any
// instance, including this one, arrive here.
func (m *ManagerService) StartPubSubListener() {
	if m.Storage == nil {
		return
	}
	go func() {
		pubsub := m.Storage.SubscribeEvents()
		defer pubsub.Close()

		for msg := range pubsub.Channel() {
			var ev models.Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Printf("ERROR: Failed to unmarshal event from Redis: %v", err)
				continue
			}
			m.EventCh <- ev
		}
	}()
}
