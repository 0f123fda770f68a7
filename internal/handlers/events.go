package handlers

import (
	"time"

	"task-board/backend/internal/notify"

	"github.com/gin-gonic/gin"
)

const heartbeatInterval = 25 * time.Second

type EventsHandler struct {
	broker *notify.Broker
}

func NewEventsHandler(broker *notify.Broker) *EventsHandler {
	return &EventsHandler{broker: broker}
}

// Stream handles GET /events as a server-sent-event stream. Every change
// to the task set emits one "taskUpdated" event with no payload; clients
// react by re-fetching their task list. Observers attached at emission
// time hear about it at most once; everyone else catches up on reconnect
// by fetching. Heartbeats keep idle proxies from dropping the connection.
func (h *EventsHandler) Stream(c *gin.Context) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")
	c.Writer.WriteHeaderNow()
	c.Writer.Flush()

	ch := h.broker.Subscribe()
	defer h.broker.Unsubscribe(ch)

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-c.Request.Context().Done():
			// Disconnection is expected; the observer simply detaches.
			return
		case <-ch:
			c.SSEvent("taskUpdated", "")
			c.Writer.Flush()
		case <-heartbeat.C:
			c.SSEvent("ping", "")
			c.Writer.Flush()
		}
	}
}
