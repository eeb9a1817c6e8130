package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"wastelink-checkout-gateway/internal/cart"
	"wastelink-checkout-gateway/internal/pricing"
)

var (
	ErrInvalidToken = errors.New("invalid session token")
	ErrExpiredToken = errors.New("session token has expired")
	ErrNotFound     = errors.New("session not found")
)

// Session is one checkout session: its cart, and the guard that keeps two
// near-simultaneous submits from both reaching the network.
type Session struct {
	ID        string
	Cart      *cart.Store
	CreatedAt time.Time
	ExpiresAt time.Time

	mu         sync.Mutex
	submitting bool
	totals     pricing.Totals
}

// Totals returns the totals recomputed on the last cart change. Fresh
// sessions report zeros.
func (s *Session) Totals() pricing.Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totals
}

func (s *Session) setTotals(t pricing.Totals) {
	s.mu.Lock()
	s.totals = t
	s.mu.Unlock()
}

// BeginSubmit sets the in-flight flag and reports whether this caller won.
// It is synchronous: the winner holds the flag before any network step runs,
// so a second click while the first request is pending gets false.
func (s *Session) BeginSubmit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitting {
		return false
	}
	s.submitting = true
	return true
}

func (s *Session) EndSubmit() {
	s.mu.Lock()
	s.submitting = false
	s.mu.Unlock()
}

// Claims are the JWT claims of a gateway-issued session token.
type Claims struct {
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

// Manager issues session tokens and keeps the live sessions in memory.
// Sessions are never persisted; a gateway restart means every cart starts
// over, matching the reload semantics of the checkout dialog.
type Manager struct {
	secretKey []byte
	ttl       time.Duration

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{
		secretKey: []byte(secret),
		ttl:       ttl,
		sessions:  make(map[string]*Session),
	}
}

// Create starts a fresh session with an empty cart and returns it with its
// signed token.
func (m *Manager) Create() (*Session, string, error) {
	now := time.Now()
	sess := &Session{
		ID:        uuid.NewString(),
		Cart:      cart.New(),
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	// the session owns the cart: every mutation pushes fresh totals up here
	sess.Cart.OnChange(func(items []cart.Item) {
		sess.setTotals(pricing.Compute(items))
	})

	claims := Claims{
		SessionID: sess.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   sess.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.secretKey)
	if err != nil {
		return nil, "", err
	}

	m.mu.Lock()
	m.sessions[sess.ID] = sess
	m.mu.Unlock()

	return sess, tokenString, nil
}

// Resolve validates a session token and returns the live session it names.
func (m *Manager) Resolve(tokenString string) (*Session, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return nil, ErrInvalidToken
	}

	m.mu.RLock()
	sess, ok := m.sessions[claims.SessionID]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	if time.Now().After(sess.ExpiresAt) {
		m.drop(sess.ID)
		return nil, ErrExpiredToken
	}

	return sess, nil
}

func (m *Manager) drop(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Sweep removes expired sessions and returns how many were dropped.
func (m *Manager) Sweep() int {
	now := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()

	dropped := 0
	for id, sess := range m.sessions {
		if now.After(sess.ExpiresAt) {
			delete(m.sessions, id)
			dropped++
		}
	}
	return dropped
}

// StartSweeper sweeps at the given interval until ctx is cancelled.
func (m *Manager) StartSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.Sweep()
			}
		}
	}()
}
