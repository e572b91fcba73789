package websocket

// OutgoingMessage 推送给参与者的消息
type OutgoingMessage struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

const (
	EventAssigned  = "assigned"
	EventConnected = "connected"
)
