package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *Manager {
	return NewManager("test-secret-key-for-testing-purposes", 30*time.Minute)
}

func TestManager_CreateAndResolve(t *testing.T) {
	m := newTestManager()

	sess, token, err := m.Create()
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.True(t, sess.Cart.Empty(), "a fresh session starts with an empty cart")

	resolved, err := m.Resolve(token)
	require.NoError(t, err)
	assert.Same(t, sess, resolved)
}

func TestManager_Resolve_Invalid(t *testing.T) {
	m := newTestManager()

	tests := []struct {
		name  string
		token string
	}{
		{"empty token", ""},
		{"random string", "not-a-valid-token"},
		{"malformed JWT", "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.invalid.signature"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess, err := m.Resolve(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Nil(t, sess)
		})
	}
}

func TestManager_Resolve_WrongSecret(t *testing.T) {
	m1 := NewManager("secret-one", 30*time.Minute)
	m2 := NewManager("secret-two", 30*time.Minute)

	_, token, err := m1.Create()
	require.NoError(t, err)

	sess, err := m2.Resolve(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, sess)
}

func TestManager_Resolve_Expired(t *testing.T) {
	m := NewManager("test-secret", 1*time.Millisecond)

	_, token, err := m.Create()
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	sess, err := m.Resolve(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
	assert.Nil(t, sess)
}

func TestManager_Sweep(t *testing.T) {
	m := NewManager("test-secret", 1*time.Millisecond)

	_, _, err := m.Create()
	require.NoError(t, err)
	_, _, err = m.Create()
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	assert.Equal(t, 2, m.Sweep())
	assert.Equal(t, 0, m.Sweep())
}

func TestSession_BeginSubmit_Guard(t *testing.T) {
	m := newTestManager()
	sess, _, err := m.Create()
	require.NoError(t, err)

	assert.True(t, sess.BeginSubmit())
	assert.False(t, sess.BeginSubmit(), "second submit while in flight must lose")

	sess.EndSubmit()
	assert.True(t, sess.BeginSubmit(), "guard resets once the first submit finishes")
}
