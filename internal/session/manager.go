package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cristianadrielbraun/qrstudio/internal/settings"
)

const (
	storeKey   = "session.store"
	tokenKey   = "session.token"
	bindingKey = "session.binding"
)

var (
	// ErrSaveFailed is returned by Commit when the backend rejects the save.
	ErrSaveFailed = errors.New("failed to save session")
	// ErrNoSession is returned by Commit outside of Middleware.
	ErrNoSession = errors.New("no session bound to request")
)

// binding is the session of one request.
type binding struct {
	backend Store
	token   string
	store   *settings.Store
	saved   bool
}

func (b *binding) save(ctx context.Context) error {
	if err := b.backend.Save(ctx, b.token, b.store); err != nil {
		return errors.Join(ErrSaveFailed, err)
	}
	b.store.MarkClean()
	b.saved = true
	return nil
}

// Manager binds requests to sessions through a cookie.
type Manager struct {
	store  Store
	cookie string
	ttl    time.Duration
	secure bool
	logger *slog.Logger
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithCookieName sets the session cookie name.
func WithCookieName(name string) ManagerOption {
	return func(m *Manager) {
		if name != "" {
			m.cookie = name
		}
	}
}

// WithTTL sets the cookie lifetime.
func WithTTL(ttl time.Duration) ManagerOption {
	return func(m *Manager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// WithSecureCookie sets the Secure flag on the session cookie.
func WithSecureCookie(secure bool) ManagerOption {
	return func(m *Manager) { m.secure = secure }
}

func WithLogger(l *slog.Logger) ManagerOption {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewManager returns a manager persisting sessions in store.
func NewManager(store Store, opts ...ManagerOption) *Manager {
	m := &Manager{
		store:  store,
		cookie: "qr_session",
		ttl:    24 * time.Hour,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Middleware loads the visitor's settings before the handler runs and saves
// them afterwards when they changed and the handler did not Commit them.
// Visitors without a valid session get a new token and default settings.
func (m *Manager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		token, store, fresh := m.resolve(c)
		b := &binding{backend: m.store, token: token, store: store, saved: !fresh}

		c.Set(tokenKey, token)
		c.Set(storeKey, store)
		c.Set(bindingKey, b)
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(m.cookie, token, int(m.ttl.Seconds()), "/", "", m.secure, true)

		c.Next()

		if b.saved && !store.Dirty() {
			return
		}
		if err := b.save(ctx); err != nil {
			m.logger.ErrorContext(ctx, "failed to save session", slog.String("error", err.Error()))
		}
	}
}

// Commit persists the request's session before the response is written.
func Commit(c *gin.Context) error {
	v, ok := c.Get(bindingKey)
	if !ok {
		return ErrNoSession
	}
	b, ok := v.(*binding)
	if !ok {
		return ErrNoSession
	}
	return b.save(c.Request.Context())
}

func (m *Manager) resolve(c *gin.Context) (string, *settings.Store, bool) {
	ctx := c.Request.Context()

	token, err := c.Cookie(m.cookie)
	if err == nil {
		if _, perr := uuid.Parse(token); perr == nil {
			store, lerr := m.store.Load(ctx, token)
			switch {
			case lerr == nil:
				return token, store, false
			case !errors.Is(lerr, ErrNotFound):
				m.logger.ErrorContext(ctx, "failed to load session", slog.String("error", lerr.Error()))
			}
		}
	}

	return uuid.NewString(), settings.NewStore(), true
}

// FromContext returns the settings store bound to the request by
// Middleware.
func FromContext(c *gin.Context) (*settings.Store, bool) {
	v, ok := c.Get(storeKey)
	if !ok {
		return nil, false
	}
	s, ok := v.(*settings.Store)
	return s, ok
}

// Token returns the session token bound to the request.
func Token(c *gin.Context) string {
	return c.GetString(tokenKey)
}
