package session

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionBeforeAndAfterLogin(t *testing.T) {
	s := New("user:7")
	assert.False(t, s.IsLoggedIn())
	assert.Equal(t, NoUser, s.UserID())
	assert.Equal(t, "", s.Email())

	s.SetUser(7, "a@x.com")
	assert.True(t, s.IsLoggedIn())
	assert.Equal(t, int64(7), s.UserID())
	assert.Equal(t, "a@x.com", s.Email())

	s.Clear()
	assert.False(t, s.IsLoggedIn())
	assert.Equal(t, "user:7", s.Key())
}

func TestContextRoundTrip(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	s := New("k")
	got, ok := FromContext(NewContext(context.Background(), s))
	require.True(t, ok)
	assert.Same(t, s, got)
}

func TestAttachToGin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/", nil)

	_, ok := FromGin(c)
	assert.False(t, ok)

	s := New("k")
	Attach(c, s)
	fromGin, ok := FromGin(c)
	require.True(t, ok)
	assert.Same(t, s, fromGin)
	fromReq, ok := FromContext(c.Request.Context())
	require.True(t, ok)
	assert.Same(t, s, fromReq)
}

func TestIssuerUserToken(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)
	s := New(UserKey(42))
	s.SetUser(42, "a@x.com")

	raw, exp, err := iss.IssueFor(s)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)

	got, claims, err := iss.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, RoleUser, claims.Role)
	assert.True(t, got.IsLoggedIn())
	assert.Equal(t, int64(42), got.UserID())
	assert.Equal(t, "a@x.com", got.Email())
	assert.Equal(t, "user:42", got.Key())
}

func TestIssuerGuestToken(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)
	key := NewGuestKey()
	assert.True(t, strings.HasPrefix(key, "guest_"))

	raw, _, err := iss.IssueFor(New(key))
	require.NoError(t, err)

	got, claims, err := iss.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, RoleGuest, claims.Role)
	assert.False(t, got.IsLoggedIn())
	assert.Equal(t, key, got.Key())
}

func TestIssuerRejectsBadTokens(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)
	raw, _, err := iss.IssueFor(New("k"))
	require.NoError(t, err)

	_, _, err = NewIssuer("other", time.Hour).Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, _, err = iss.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := NewIssuer("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _, err := expired.IssueFor(New("k"))
	require.NoError(t, err)
	_, _, err = iss.Parse(old)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
