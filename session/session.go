// Package session carries the identity behind a request. A Session is
// built per request from a signed token; there is no process-wide user.
package session

import (
	"context"
	"sync"

	"github.com/gin-gonic/gin"
)

// NoUser is the user id of a session nobody has signed in to.
const NoUser int64 = -1

// Session is bound to one terminal key and holds at most one user.
type Session struct {
	key string

	mu     sync.RWMutex
	userID int64
	email  string
}

// New returns a session for the terminal key with no user set.
func New(key string) *Session {
	return &Session{key: key, userID: NoUser}
}

// Key identifies the terminal (cart, history) the session works on.
func (s *Session) Key() string {
	return s.key
}

// SetUser overwrites the current user.
func (s *Session) SetUser(id int64, email string) {
	s.mu.Lock()
	s.userID = id
	s.email = email
	s.mu.Unlock()
}

// UserID returns NoUser until SetUser is called.
func (s *Session) UserID() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

// Email returns "" until SetUser is called.
func (s *Session) Email() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.email
}

func (s *Session) IsLoggedIn() bool {
	return s.UserID() != NoUser
}

// Clear resets the session to no user.
func (s *Session) Clear() {
	s.SetUser(NoUser, "")
}

type ctxKey struct{}

// ginKey is where middleware stores the session on a gin.Context.
const ginKey = "session"

func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok
}

// Attach puts s on both the gin context and the request context.
func Attach(c *gin.Context, s *Session) {
	c.Set(ginKey, s)
	c.Request = c.Request.WithContext(NewContext(c.Request.Context(), s))
}

// FromGin returns the session middleware attached to c.
func FromGin(c *gin.Context) (*Session, bool) {
	v, ok := c.Get(ginKey)
	if !ok {
		return nil, false
	}
	s, ok := v.(*Session)
	return s, ok
}
