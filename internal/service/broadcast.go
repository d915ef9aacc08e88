package service

// Battle event types pushed to connected clients.
const (
	EventBattleStarted  = "battle_started"
	EventAirResolved    = "air_resolved"
	EventBattleFinished = "battle_finished"
)

// Broadcaster sends real-time battle events to connected clients.
// Implemented by the WebSocket hub.
type Broadcaster interface {
	BroadcastBattleEvent(userIDs []string, eventType string, data any)
}

// NoopBroadcaster is a no-op implementation for testing or when WS is disabled.
type NoopBroadcaster struct{}

func (NoopBroadcaster) BroadcastBattleEvent([]string, string, any) {}
