// Package notifyhub fans realtime events out to connected websocket clients.
// Mutations publish events to Redis; every instance's hub subscribes and
// delivers to its own clients, keyed by user ID, plus broadcasts to all.
// Delivery is best-effort and never reaches back into the request that
// triggered the event.
package notifyhub

import (
	"log"

	"github.com/Manikandankb2403/College-Complaint-Management-System/internal/models"
	"github.com/Manikandankb2403/College-Complaint-Management-System/internal/storage"
)

// ManagerService owns the set of connected clients and the dispatch loop.
// All map access happens on the Run goroutine; other goroutines talk to the
// hub exclusively through its channels.
type ManagerService struct {
	Clients map[string]Client

	RegisterCh   chan Client
	UnregisterCh chan Client

	// EventCh receives every event to dispatch, whether injected locally or
	// arriving from the Redis subscription.
	EventCh chan models.Event

	Storage storage.Storage
}

// NewManagerService creates a hub. Run must be started on its own goroutine.
func NewManagerService(s storage.Storage) *ManagerService {
	return &ManagerService{
		Clients:      make(map[string]Client),
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		EventCh:      make(chan models.Event),
		Storage:      s,
	}
}

// Run is the hub's dispatch loop.
func (m *ManagerService) Run() {
	m.StartPubSubListener()

	for {
		select {
		case client := <-m.RegisterCh:
			// A reconnect replaces the previous connection for the same user.
			if old, ok := m.Clients[client.GetUserID()]; ok {
				old.Close()
			}
			m.Clients[client.GetUserID()] = client

		case client := <-m.UnregisterCh:
			if current, ok := m.Clients[client.GetUserID()]; ok && current == client {
				delete(m.Clients, client.GetUserID())
				client.Close()
			}

		case ev := <-m.EventCh:
			m.dispatch(ev)
		}
	}
}

// dispatch routes one event: targeted events go to the channel keyed by the
// target user, everything else goes to every connected client. A target with
// no connected client is silently skipped; this feed has no replay.
func (m *ManagerService) dispatch(ev models.Event) {
	if ev.Target != "" {
		if client, ok := m.Clients[ev.Target]; ok {
			m.deliver(client, ev)
		}
		return
	}
	for _, client := range m.Clients {
		m.deliver(client, ev)
	}
}

// deliver pushes the event without blocking. A client whose buffer is full is
// dropped so one slow consumer cannot stall the hub.
func (m *ManagerService) deliver(client Client, ev models.Event) {
	select {
	case client.GetSendChannel() <- ev:
	default:
		log.Printf("WARNING: Dropping slow client %s", client.GetUserID())
		delete(m.Clients, client.GetUserID())
		client.Close()
	}
}
