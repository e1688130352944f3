package mockapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ngoconnect/ngoconnect/internal/middleware"
	"github.com/ngoconnect/ngoconnect/internal/models"
)

// SendMessageHandler stores a message from the actor
// POST /messages {from, to, message}
func (s *Server) SendMessageHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SendMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			abort(c, http.StatusBadRequest, bindErrorMessage(err))
			return
		}
		if actor, _ := middleware.ActorFrom(c); normalizeEmail(actor.Email) != normalizeEmail(req.From) {
			abort(c, http.StatusForbidden, "Cannot send as another user")
			return
		}

		id := s.store.addMessage(models.OutgoingMessage{From: req.From, To: req.To, Body: req.Message})
		c.JSON(http.StatusCreated, gin.H{"message": "Message sent", "id": id})
	}
}

// ConversationHandler lists the messages between user and withUser, oldest first
// GET /messages/:withUser?user=&withUser=
func (s *Server) ConversationHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.Query("user")
		withUser := c.Param("withUser")
		if user == "" || withUser == "" {
			abort(c, http.StatusBadRequest, "user and withUser are required")
			return
		}
		if actor, _ := middleware.ActorFrom(c); !actor.IsAdmin() && normalizeEmail(actor.Email) != normalizeEmail(user) {
			abort(c, http.StatusForbidden, "Cannot read another user's messages")
			return
		}

		c.JSON(http.StatusOK, toMessageJSON(s.store.conversation(user, withUser)))
	}
}
