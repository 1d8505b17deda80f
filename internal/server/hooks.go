package server

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/chandrashekhar-patil/Chat-App/internal/delivery"
	"github.com/chandrashekhar-patil/Chat-App/internal/event"
	"github.com/chandrashekhar-patil/Chat-App/internal/store"
	"github.com/gin-gonic/gin"
)

// InternalTokenHeader carries the shared secret of the internal hook API.
const InternalTokenHeader = "X-Internal-Token"

type idURI struct {
	ID string `uri:"id" binding:"required,mongodb"`
}

type deliverRequest struct {
	SenderID   event.UserID `json:"senderId" binding:"required,mongodb"`
	ReceiverID event.UserID `json:"receiverId" binding:"required_without=ChatID,excluded_with=ChatID,omitempty,mongodb"`
	ChatID     event.ChatID `json:"chatId" binding:"required_without=ReceiverID,omitempty,mongodb"`
	Text       string       `json:"text"`
	Image      string       `json:"image"`
	Audio      string       `json:"audio"`
}

type chatClearedRequest struct {
	TargetUserIDs []event.UserID `json:"targetUserIds" binding:"required,min=1,dive,mongodb"`
	ClearedBy     event.UserID   `json:"clearedBy" binding:"required,mongodb"`
}

type groupUpdatedRequest struct {
	Group event.Group `json:"group"`
}

type groupDeletedRequest struct {
	MemberIDs []event.UserID `json:"memberIds" binding:"dive,mongodb"`
}

type userRemovedRequest struct {
	UserID             event.UserID   `json:"userId" binding:"required,mongodb"`
	RemainingMemberIDs []event.UserID `json:"remainingMemberIds" binding:"dive,mongodb"`
}

// requireToken rejects hook calls without the configured secret. With no
// secret configured the hooks are open.
func requireToken(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.Next()
			return
		}
		got := c.GetHeader(InternalTokenHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid internal token"})
			return
		}
		c.Next()
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func delivered(c *gin.Context, n int) {
	c.JSON(http.StatusOK, gin.H{"delivered": n})
}

// deliveryStatus maps a pipeline failure to an HTTP status.
func deliveryStatus(err error) int {
	switch {
	case errors.Is(err, delivery.ErrBlocked), errors.Is(err, delivery.ErrNotMember):
		return http.StatusForbidden
	case errors.Is(err, delivery.ErrChatNotFound):
		return http.StatusNotFound
	case errors.Is(err, delivery.ErrEmptyMessage), errors.Is(err, delivery.ErrNoRecipient):
		return http.StatusUnprocessableEntity
	case errors.Is(err, delivery.ErrPersistence):
		return http.StatusBadGateway
	case errors.Is(err, delivery.ErrPolicy):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleDeliver(c *gin.Context) {
	var req deliverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	target := delivery.Direct(req.ReceiverID)
	if req.ChatID != "" {
		target = delivery.Group(req.ChatID)
	}
	msg := event.Message{Text: req.Text, Image: req.Image, Audio: req.Audio}

	res, err := s.svc.Deliver(c.Request.Context(), msg, req.SenderID, target)
	if err != nil {
		c.JSON(deliveryStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":    res.Message,
		"recipients": res.Recipients,
		"pushed":     res.Pushed,
	})
}

func (s *Server) handleChatCleared(c *gin.Context) {
	var req chatClearedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	delivered(c, s.svc.NotifyChatCleared(req.TargetUserIDs, req.ClearedBy))
}

func (s *Server) handleGroupCleared(c *gin.Context) {
	var uri idURI
	if err := c.ShouldBindUri(&uri); err != nil {
		badRequest(c, err)
		return
	}
	n, err := s.svc.NotifyGroupCleared(c.Request.Context(), event.ChatID(uri.ID))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		s.log.Warn("group cleared hook failed", "chat", uri.ID, "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	delivered(c, n)
}

func (s *Server) handleGroupUpdated(c *gin.Context) {
	var uri idURI
	if err := c.ShouldBindUri(&uri); err != nil {
		badRequest(c, err)
		return
	}
	var req groupUpdatedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	req.Group.ID = event.ChatID(uri.ID)
	delivered(c, s.svc.NotifyGroupUpdated(req.Group))
}

func (s *Server) handleGroupDeleted(c *gin.Context) {
	var uri idURI
	if err := c.ShouldBindUri(&uri); err != nil {
		badRequest(c, err)
		return
	}
	var req groupDeletedRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
	}
	delivered(c, s.svc.NotifyGroupDeleted(event.ChatID(uri.ID), req.MemberIDs))
}

func (s *Server) handleUserRemoved(c *gin.Context) {
	var uri idURI
	if err := c.ShouldBindUri(&uri); err != nil {
		badRequest(c, err)
		return
	}
	var req userRemovedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	delivered(c, s.svc.NotifyUserRemoved(event.ChatID(uri.ID), req.UserID, req.RemainingMemberIDs))
}

func (s *Server) handleUserDeleted(c *gin.Context) {
	var uri idURI
	if err := c.ShouldBindUri(&uri); err != nil {
		badRequest(c, err)
		return
	}
	delivered(c, s.svc.NotifyUserDeleted(event.UserID(uri.ID)))
}

func (s *Server) handlePresence(c *gin.Context) {
	ids := s.svc.OnlineUserIDs()
	if ids == nil {
		ids = []event.UserID{}
	}
	c.JSON(http.StatusOK, gin.H{"online": ids})
}
