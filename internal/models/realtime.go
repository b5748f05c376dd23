package models

// Event names pushed over the realtime feed. The names are part of the wire
// contract with the dashboard frontend.
const (
	EventNewComplaint     = "newComplaint"
	EventComplaintUpdated = "complaintUpdate"
	EventStatusUpdate     = "complaintStatusUpdate"
)

// Event is a single realtime notification. Target is the user ID of the
// addressee; an empty Target means the event is broadcast to every connected
// observer.
type Event struct {
	Name      string     `json:"name"`
	Target    string     `json:"target,omitempty"`
	Message   string     `json:"message"`
	Complaint *Complaint `json:"complaint,omitempty"`
}
