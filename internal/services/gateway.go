package services

import "github.com/latestcomment/livepoll/internal/models"

// Gateway delivers events to connections. Implementations must not block the
// caller: PollService invokes it while holding its lock.
type Gateway interface {
	// Send delivers ev to a single connection.
	Send(connId string, ev models.Event)
	// Broadcast delivers ev to every connection subscribed to the session.
	Broadcast(sessionId string, ev models.Event)
	Subscribe(connId, sessionId string)
	Unsubscribe(connId, sessionId string)
	// Connected reports whether the connection is still live.
	Connected(connId string) bool
}
