package gateway

// Message is one chat event delivered over the gateway WebSocket.
type Message struct {
	MessageID   string `json:"message_id"`
	ChannelID   string `json:"channel_id"`
	ChannelName string `json:"channel_name"`
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Content     string `json:"content"`
	Bot         bool   `json:"bot"`
}

type WebSocketState string

const (
	WSStateDisconnected WebSocketState = "disconnected"
	WSStateConnecting   WebSocketState = "connecting"
	WSStateConnected    WebSocketState = "connected"
	WSStateReconnecting WebSocketState = "reconnecting"
	WSStateFailed       WebSocketState = "failed"
)

type MessageCallback func(*Message)

type StateCallback func(WebSocketState)

// ReplyRequest posts a text or image reply into a channel.
type ReplyRequest struct {
	Type    string `json:"type"`
	Channel string `json:"channel"`
	Data    string `json:"data"`
}

// RoleRequest grants or revokes a guild role for one user.
type RoleRequest struct {
	Role   string `json:"role"`
	UserID string `json:"user_id"`
}

type RoleMembersRequest struct {
	Role string `json:"role"`
}

type RoleMembersResponse struct {
	Members []string `json:"members"`
}

// HealthResponse is the gateway's status report.
type HealthResponse struct {
	Status  string `json:"status"`
	Guild   string `json:"guild"`
	Version string `json:"version"`
}
