package handlers

import (
	"net/http"
	"slices"
	"time"

	"ops-agent-backend/internal/logger"
	"ops-agent-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// StreamMessage is one frame sent to a log stream subscriber
type StreamMessage struct {
	Type       string                    `json:"type"`
	Log        *service.LogEntry         `json:"log,omitempty"`
	Deployment *service.DeploymentRecord `json:"deployment,omitempty"`
}

// StreamHandler streams deployment logs over WebSocket
type StreamHandler struct {
	agent    service.DeploymentAgentInterface
	upgrader websocket.Upgrader
	log      *logger.Logger
}

// NewStreamHandler creates a stream handler accepting connections from allowedOrigins.
// A "*" entry or an empty list accepts any origin.
func NewStreamHandler(agent service.DeploymentAgentInterface, allowedOrigins []string, log *logger.Logger) *StreamHandler {
	allowAll := len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, "*")
	return &StreamHandler{
		agent: agent,
		log:   log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || allowAll {
					return true
				}
				allowed := slices.Contains(allowedOrigins, origin)
				if !allowed {
					log.WithField("origin", origin).Warn("ws stream: origin rejected")
				}
				return allowed
			},
		},
	}
}

// Stream handles GET /deployment/stream/:id
// @Summary Stream deployment logs
// @Description Upgrade to WebSocket and receive the log backlog, then live lines until the deployment finishes
// @Tags deployment
// @Param id path string true "Deployment ID"
// @Success 101 {object} StreamMessage "Switching protocols"
// @Failure 404 {object} ErrorResponse "Deployment not found"
// @Security BearerAuth
// @Router /deployment/stream/{id} [get]
func (h *StreamHandler) Stream(c *gin.Context) {
	id := c.Param("id")
	backlog, lines, unsubscribe, err := h.agent.Subscribe(id)
	if err != nil {
		respondError(c, h.log, "Deployment not found", err, nil)
		return
	}
	defer unsubscribe()

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.WithError(err).WithField("deployment_id", id).Warn("ws stream: upgrade failed")
		return
	}
	defer conn.Close()

	log := h.log.WithContext(c.Request.Context()).WithField("deployment_id", id)
	log.Info("Log stream opened")

	// the read pump only notices the client going away
	gone := make(chan struct{})
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	send := func(msg StreamMessage) error {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteJSON(msg)
	}

	for i := range backlog {
		if err := send(StreamMessage{Type: "log", Log: &backlog[i]}); err != nil {
			return
		}
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case entry, ok := <-lines:
			if !ok {
				if rec, err := h.agent.Get(c.Request.Context(), id); err == nil {
					_ = send(StreamMessage{Type: "complete", Deployment: rec})
				}
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "deployment finished"))
				log.Info("Log stream completed")
				return
			}
			if err := send(StreamMessage{Type: "log", Log: &entry}); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-gone:
			log.Info("Log stream closed by client")
			return
		}
	}
}
