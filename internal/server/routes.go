// Package server wires HTTP handlers into a gin engine for the realtime
// service via routing helpers.
package server

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// routes builds the engine. The internal hook API lives under /internal/v1.
func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery(), requestLogger(s.log))

	r.GET("/", s.handleHealth)
	r.GET("/health", s.handleHealth)
	r.GET("/ws", s.handleWebSocket)

	hooks := r.Group("/internal/v1", requireToken(s.cfg.InternalAPIToken))
	hooks.POST("/messages", s.handleDeliver)
	hooks.POST("/chats/cleared", s.handleChatCleared)
	hooks.POST("/groups/:id/cleared", s.handleGroupCleared)
	hooks.PUT("/groups/:id", s.handleGroupUpdated)
	hooks.DELETE("/groups/:id", s.handleGroupDeleted)
	hooks.POST("/groups/:id/removed", s.handleUserRemoved)
	hooks.DELETE("/users/:id", s.handleUserDeleted)
	hooks.GET("/presence", s.handlePresence)

	return r
}

func requestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}
