package websocket

import "encoding/json"

// Message defines the structure for websocket messages.
type Message struct {
	Action  string      `json:"action"`
	Payload interface{} `json:"payload"`
}

// NewEventMessage encodes an activity event notification.
func NewEventMessage(payload interface{}) []byte {
	data, err := json.Marshal(Message{Action: "event", Payload: payload})
	if err != nil {
		return []byte(`{"action":"event"}`)
	}
	return data
}
