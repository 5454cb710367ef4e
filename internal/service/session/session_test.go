package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/herdtrack/internal/domain/models"
)

func TestLoginFabricatesUser(t *testing.T) {
	m := NewManager(nil)

	tests := []struct {
		name     string
		role     models.Role
		wantID   string
		wantName string
	}{
		{"farmer by default", "", "farmer-001", "John Farmer"},
		{"admin", models.RoleAdmin, "admin-001", "System Administrator"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := m.Login(LoginRequest{Email: "a@b.c", Password: "x", Role: tt.role})
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, s.User.ID)
			assert.Equal(t, tt.wantName, s.User.Name)

			u, err := m.Current(s.ID)
			require.NoError(t, err)
			assert.Equal(t, s.User, u)
		})
	}
}

func TestLoginRequiresCredentials(t *testing.T) {
	m := NewManager(nil)

	_, err := m.Login(LoginRequest{Email: "a@b.c"})
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = m.Login(LoginRequest{Email: "a@b.c", Password: "x", Role: "owner"})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestRegister(t *testing.T) {
	m := NewManager(nil)

	_, err := m.Register(RegisterRequest{Email: "a@b.c", Password: "p", ConfirmPassword: "q", FullName: "Ann", FarmName: "Hill"})
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = m.Register(RegisterRequest{Email: "a@b.c", Password: "p", ConfirmPassword: "p", FullName: "Ann"})
	assert.ErrorIs(t, err, models.ErrValidation, "farmers must name their farm")

	s, err := m.Register(RegisterRequest{Email: "a@b.c", Password: "p", ConfirmPassword: "p", FullName: "Ann", FarmName: "Hill"})
	require.NoError(t, err)
	assert.Equal(t, models.User{ID: "farmer-new", Email: "a@b.c", Role: models.RoleFarmer, Name: "Ann", FarmName: "Hill"}, s.User)

	s, err = m.Register(RegisterRequest{Email: "root@b.c", Password: "p", ConfirmPassword: "p", FullName: "Root", Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, "admin-new", s.User.ID)
}

func TestLogout(t *testing.T) {
	m := NewManager(nil)
	s, err := m.Login(LoginRequest{Email: "a@b.c", Password: "x"})
	require.NoError(t, err)

	assert.True(t, m.Logout(s.ID))
	assert.False(t, m.Logout(s.ID))

	_, err = m.Current(s.ID)
	assert.ErrorIs(t, err, ErrUnknownSession)
}
