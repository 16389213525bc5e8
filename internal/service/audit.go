package service

import "encoding/json"

// Notifier pushes consolidated events to connected back-office clients.
// The websocket hub satisfies it; services tolerate a nil Notifier.
type Notifier interface {
	BroadcastEvent(event string, data interface{})
}

func marshalDetails(details interface{}) string {
	payload, err := json.Marshal(details)
	if err != nil {
		return "{}"
	}
	return string(payload)
}
