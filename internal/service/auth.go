package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/safari-hire/dashboard/internal/domain"
)

// SessionPersister is the durability boundary for the login session.
// *repo.Adapter satisfies it.
type SessionPersister interface {
	Persister
	SaveFlag(ctx context.Context, key string) error
	LoadFlag(ctx context.Context, key string) bool
	Remove(ctx context.Context, key string) error
}

// DefaultRoster is the fixed set of users allowed to sign in.
func DefaultRoster() []domain.User {
	return []domain.User{
		{
			Identity: domain.Identity{ID: "1", Username: "admin", Name: "Admin User", Role: domain.RoleAdmin},
			Password: "admin123",
		},
		{
			Identity: domain.Identity{ID: "2", Username: "staff", Name: "Staff User", Role: domain.RoleStaff},
			Password: "staff123",
		},
	}
}

// AuthGate is a two-state session: unauthenticated until a Login matches a
// roster entry exactly, authenticated until Logout. The session survives a
// restart through the persisted isAuthenticated flag and currentUser record.
type AuthGate struct {
	mu      sync.Mutex
	persist SessionPersister
	roster  []domain.User
	log     *slog.Logger
	current *domain.Identity
	lastErr string
}

// NewAuthGate restores a persisted session if both the flag and a readable
// identity are present; otherwise the gate starts unauthenticated.
func NewAuthGate(ctx context.Context, p SessionPersister, roster []domain.User, log *slog.Logger) *AuthGate {
	g := &AuthGate{persist: p, roster: roster, log: log}

	if p.LoadFlag(ctx, KeyIsAuthenticated) {
		var id domain.Identity
		if p.Load(ctx, KeyCurrentUser, &id) && id.Username != "" {
			g.current = &id
			log.InfoContext(ctx, "session restored", "username", id.Username)
		}
	}
	return g
}

// Login authenticates username and password against the roster.
// Any earlier error is cleared first. Unknown users and wrong passwords both
// yield domain.ErrInvalidCredentials.
func (g *AuthGate) Login(ctx context.Context, username, password string) (domain.Identity, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.lastErr = ""
	for _, u := range g.roster {
		if u.Username == username && u.Password == password {
			id := u.Identity
			g.current = &id
			if err := g.persist.SaveFlag(ctx, KeyIsAuthenticated); err != nil {
				g.log.WarnContext(ctx, "persist failed; keeping in-memory state", "key", KeyIsAuthenticated, "error", err)
			}
			if err := g.persist.Save(ctx, KeyCurrentUser, id); err != nil {
				g.log.WarnContext(ctx, "persist failed; keeping in-memory state", "key", KeyCurrentUser, "error", err)
			}
			g.log.InfoContext(ctx, "login succeeded", "username", id.Username, "role", id.Role)
			return id, nil
		}
	}

	g.lastErr = domain.InvalidCredentialsMessage
	g.log.InfoContext(ctx, "login failed", "username", username)
	return domain.Identity{}, errors.Wrap(domain.ErrInvalidCredentials, "service.AuthGate.Login")
}

// Logout ends the session and removes its persisted copy.
func (g *AuthGate) Logout(ctx context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.current = nil
	g.lastErr = ""
	for _, key := range []string{KeyIsAuthenticated, KeyCurrentUser} {
		if err := g.persist.Remove(ctx, key); err != nil {
			g.log.WarnContext(ctx, "remove failed", "key", key, "error", err)
		}
	}
}

// Session returns the current identity and whether anyone is signed in.
func (g *AuthGate) Session() (domain.Identity, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.current == nil {
		return domain.Identity{}, false
	}
	return *g.current, true
}

// IsAuthenticated reports whether anyone is signed in.
func (g *AuthGate) IsAuthenticated() bool {
	_, ok := g.Session()
	return ok
}

// LastError is the message from the most recent failed login, or "".
func (g *AuthGate) LastError() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastErr
}
