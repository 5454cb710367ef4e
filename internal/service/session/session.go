package session

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/herdtrack/internal/domain/models"
)

// ErrUnknownSession is returned for a missing or logged-out session id.
var ErrUnknownSession = errors.New("unknown session")

// LoginRequest is the body of the login form.
type LoginRequest struct {
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
}

// RegisterRequest is the body of the create-account form.
type RegisterRequest struct {
	Email           string      `json:"email"`
	Password        string      `json:"password"`
	ConfirmPassword string      `json:"confirmPassword"`
	FullName        string      `json:"fullName"`
	FarmName        string      `json:"farmName"`
	Role            models.Role `json:"role"`
}

// Session binds an opaque id to the signed-in user.
type Session struct {
	ID        string      `json:"sessionId"`
	User      models.User `json:"user"`
	CreatedAt time.Time   `json:"createdAt"`
}

// Manager holds signed-in users. Credentials are only checked for presence.
type Manager struct {
	sessions map[string]Session
	mu       sync.RWMutex
	newID    func() string
	now      func() time.Time
	logger   *zap.Logger
}

// NewManager creates a new session manager.
func NewManager(logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		sessions: make(map[string]Session),
		newID:    uuid.NewString,
		now:      time.Now,
		logger:   logger,
	}
}

// Login fabricates the user for the selected role once email and password are present.
func (m *Manager) Login(req LoginRequest) (Session, error) {
	role, err := resolveRole(req.Role)
	if err != nil {
		return Session{}, err
	}
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return Session{}, models.Invalid("please enter valid credentials")
	}

	user := models.User{ID: "farmer-001", Email: email, Role: role, Name: "John Farmer"}
	if role == models.RoleAdmin {
		user.ID = "admin-001"
		user.Name = "System Administrator"
	}
	return m.open(user), nil
}

// Register validates the create-account form and signs the new user in.
func (m *Manager) Register(req RegisterRequest) (Session, error) {
	role, err := resolveRole(req.Role)
	if err != nil {
		return Session{}, err
	}
	email := strings.TrimSpace(req.Email)
	fullName := strings.TrimSpace(req.FullName)
	farmName := strings.TrimSpace(req.FarmName)

	if email == "" || req.Password == "" || req.ConfirmPassword == "" || fullName == "" ||
		(role == models.RoleFarmer && farmName == "") {
		return Session{}, models.Invalid("please fill in all required fields")
	}
	if req.Password != req.ConfirmPassword {
		return Session{}, models.Invalid("passwords do not match")
	}

	user := models.User{ID: "farmer-new", Email: email, Role: role, Name: fullName, FarmName: farmName}
	if role == models.RoleAdmin {
		user.ID = "admin-new"
		user.FarmName = ""
	}
	return m.open(user), nil
}

// Current returns the user bound to a session id.
func (m *Manager) Current(sessionID string) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, exists := m.sessions[sessionID]; exists {
		return s.User, nil
	}
	return models.User{}, ErrUnknownSession
}

// Logout ends a session and reports whether it existed.
func (m *Manager) Logout(sessionID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.sessions[sessionID]; !exists {
		return false
	}
	delete(m.sessions, sessionID)
	return true
}

func (m *Manager) open(user models.User) Session {
	s := Session{ID: m.newID(), User: user, CreatedAt: m.now()}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	m.logger.Info("session opened", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return s
}

func resolveRole(role models.Role) (models.Role, error) {
	if role == "" {
		return models.RoleFarmer, nil
	}
	if !role.Valid() {
		return "", models.Invalid("unknown role %q", string(role))
	}
	return role, nil
}
