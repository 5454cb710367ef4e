package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/herdtrack/internal/domain/models"
	"github.com/mamadbah2/herdtrack/internal/service/session"
)

// SessionHeader carries the session id returned by login and register.
const SessionHeader = "X-Session-ID"

const userKey = "user"

// SessionHandler exposes sign-in, sign-up and sign-out.
type SessionHandler struct {
	sessions *session.Manager
	logger   *zap.Logger
}

// NewSessionHandler constructs the session HTTP adapter.
func NewSessionHandler(sessions *session.Manager, logger *zap.Logger) *SessionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionHandler{sessions: sessions, logger: logger}
}

// Login signs a user in for the selected role.
func (h *SessionHandler) Login(c *gin.Context) {
	var req session.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, h.logger, err)
		return
	}

	s, err := h.sessions.Login(req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Header(SessionHeader, s.ID)
	c.JSON(http.StatusOK, s)
}

// Register creates an account and signs it in.
func (h *SessionHandler) Register(c *gin.Context) {
	var req session.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, h.logger, err)
		return
	}

	s, err := h.sessions.Register(req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Header(SessionHeader, s.ID)
	c.JSON(http.StatusCreated, s)
}

// Current returns the signed-in user.
func (h *SessionHandler) Current(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		respondError(c, h.logger, session.ErrUnknownSession)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Logout ends the session. Unknown sessions are ignored.
func (h *SessionHandler) Logout(c *gin.Context) {
	if h.sessions.Logout(c.GetHeader(SessionHeader)) {
		h.logger.Info("session closed")
	}
	c.Status(http.StatusNoContent)
}

// Authenticate resolves the session header into the request user when present.
func (h *SessionHandler) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := c.GetHeader(SessionHeader); id != "" {
			if user, err := h.sessions.Current(id); err == nil {
				c.Set(userKey, user)
			}
		}
		c.Next()
	}
}

// RequireUser rejects requests without a valid session.
func (h *SessionHandler) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := currentUser(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": session.ErrUnknownSession.Error()})
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}
