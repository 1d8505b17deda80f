// Package server exposes HTTP handlers, including WebSocket upgrades and
// health checks.
package server

import (
	"net/http"

	"github.com/chandrashekhar-patil/Chat-App/internal/event"
	"github.com/gin-gonic/gin"
)

type wsQuery struct {
	UserID string `form:"userId" binding:"required,mongodb"`
}

// handleWebSocket upgrades an authenticated request and hands the connection
// to the hub. The user id comes from the handshake query.
func (s *Server) handleWebSocket(c *gin.Context) {
	var q wsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId must be a valid user id"})
		return
	}

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "user", q.UserID, "error", err)
		return
	}

	client := newClient(conn, s.hub, event.UserID(q.UserID), c.Request.RemoteAddr, s.settings, s.log)
	if !s.hub.registerClient(client) {
		s.log.Info("rejecting connection during shutdown", "user", q.UserID)
		_ = conn.Close()
	}
}

// handleHealth reports liveness and a few gauges.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"connections": s.svc.Connections(),
		"calls":       s.svc.ActiveCalls(),
	})
}
