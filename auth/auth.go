// Package auth serves signup, login, guest entry and logout.
package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/cybereatdiri/apperr"
	"github.com/junaidrashid-git/cybereatdiri/kiosk"
	"github.com/junaidrashid-git/cybereatdiri/metrics"
	"github.com/junaidrashid-git/cybereatdiri/session"
	"github.com/junaidrashid-git/cybereatdiri/store"
	"github.com/sirupsen/logrus"
)

const (
	msgFillAllFields    = "Please fill in all fields."
	msgPasswordMismatch = "Passwords do not match."
	msgEnterBoth        = "Please enter both email and password."
	msgSignedUp         = "Account created successfully! You can now log in."
	msgLoggedIn         = "Login successful! Opening Cyber-EatDiri..."
	msgNoUserID         = "Could not find user id for this account."
)

type signUpRequest struct {
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /auth/signup
func SignUp(users *store.UserStore, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req signUpRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		email := strings.TrimSpace(req.Email)
		phone := strings.TrimSpace(req.Phone)
		if email == "" || phone == "" || req.Password == "" || req.ConfirmPassword == "" {
			m.AuthAttempt("signup", "validation")
			apperr.Respond(c, apperr.Validation(msgFillAllFields))
			return
		}
		if req.Password != req.ConfirmPassword {
			m.AuthAttempt("signup", "validation")
			apperr.Respond(c, apperr.Validation(msgPasswordMismatch))
			return
		}

		user, err := users.Register(c.Request.Context(), email, phone, req.Password)
		if err != nil {
			m.AuthAttempt("signup", outcome(err))
			apperr.Respond(c, err)
			return
		}

		m.AuthAttempt("signup", "ok")
		c.JSON(http.StatusCreated, gin.H{
			"message": msgSignedUp,
			"user_id": user.ID,
			"email":   user.Email,
		})
	}
}

// POST /auth/login
func Login(users *store.UserStore, issuer *session.Issuer, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		email := strings.TrimSpace(req.Email)
		if email == "" || req.Password == "" {
			m.AuthAttempt("login", "validation")
			apperr.Respond(c, apperr.Validation(msgEnterBoth))
			return
		}

		ctx := c.Request.Context()
		ok, err := users.ValidateLogin(ctx, email, req.Password)
		if err != nil {
			m.AuthAttempt("login", outcome(err))
			apperr.Respond(c, err)
			return
		}
		if !ok {
			m.AuthAttempt("login", outcome(apperr.ErrInvalidCredentials))
			apperr.Respond(c, apperr.ErrInvalidCredentials)
			return
		}

		id, err := users.FindIDByEmail(ctx, email)
		if errors.Is(err, apperr.ErrNotFound) {
			m.AuthAttempt("login", "not_found")
			c.JSON(http.StatusNotFound, gin.H{"error": msgNoUserID})
			return
		}
		if err != nil {
			m.AuthAttempt("login", outcome(err))
			apperr.Respond(c, err)
			return
		}

		s := session.New(session.UserKey(id))
		s.SetUser(id, email)
		token, exp, err := issuer.IssueFor(s)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}

		m.AuthAttempt("login", "ok")
		c.JSON(http.StatusOK, gin.H{
			"message":    msgLoggedIn,
			"token":      token,
			"expires_at": exp,
			"user_id":    id,
			"email":      email,
		})
	}
}

// POST /auth/guest
//
// Starts an anonymous kiosk session that can order without an account.
func CreateGuest(issuer *session.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := session.New(session.NewGuestKey())
		token, exp, err := issuer.IssueFor(s)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"guest_id":   s.Key(),
			"token":      token,
			"expires_at": exp,
		})
	}
}

// POST /auth/logout
//
// Clears the session and drops its terminal. The token itself stays valid
// until it expires; a later request simply finds an empty terminal.
func Logout(registry *kiosk.Registry, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := session.FromGin(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
			return
		}

		dropped := registry.Drop(s.Key())
		log.WithFields(logrus.Fields{"terminal": s.Key(), "had_terminal": dropped}).Info("session logged out")
		s.Clear()

		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}

func outcome(err error) string {
	switch {
	case apperr.IsValidation(err):
		return "validation"
	case errors.Is(err, apperr.ErrDuplicateEmail):
		return "duplicate_email"
	case errors.Is(err, apperr.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, apperr.ErrStoreUnavailable):
		return "store_unavailable"
	default:
		return "error"
	}
}
