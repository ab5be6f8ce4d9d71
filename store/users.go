package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/junaidrashid-git/cybereatdiri/apperr"
	"github.com/junaidrashid-git/cybereatdiri/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// UserStore registers and authenticates kiosk accounts.
type UserStore struct {
	db     *gorm.DB
	hasher PasswordHasher
	log    logrus.FieldLogger
}

func NewUserStore(db *gorm.DB, hasher PasswordHasher, log logrus.FieldLogger) *UserStore {
	if hasher == nil {
		hasher = PlainPasswords{}
	}
	return &UserStore{db: db, hasher: hasher, log: log}
}

// Register creates a user. The email column's unique constraint is what
// rejects duplicates, so two concurrent signups cannot both succeed.
func (s *UserStore) Register(ctx context.Context, email, phone, password string) (*models.User, error) {
	stored, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := models.User{Email: email, Phone: phone, Password: stored}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if isDuplicate(err) {
			return nil, fmt.Errorf("register %s: %w", email, apperr.ErrDuplicateEmail)
		}
		s.log.WithError(err).Error("register user failed")
		return nil, unavailable("register", err)
	}

	s.log.WithField("user_id", user.ID).Info("user registered")
	return &user, nil
}

// ValidateLogin reports whether email and password belong to one user.
// Unknown emails and wrong passwords both give false; only storage
// failures give an error.
func (s *UserStore) ValidateLogin(ctx context.Context, email, password string) (bool, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		s.log.WithError(err).Error("validate login failed")
		return false, unavailable("login", err)
	}
	return s.hasher.Matches(user.Password, password), nil
}

// FindIDByEmail returns the id of the user with email.
func (s *UserStore) FindIDByEmail(ctx context.Context, email string) (int64, error) {
	var user models.User
	err := s.db.WithContext(ctx).Select("id").Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("user %s: %w", email, apperr.ErrNotFound)
	}
	if err != nil {
		return 0, unavailable("fetch user id", err)
	}
	return user.ID, nil
}

// List returns every user ordered by id.
func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, unavailable("list users", err)
	}
	return users, nil
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// Drivers without a translator still name the violated index.
	return strings.Contains(strings.ToLower(err.Error()), "unique")
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, apperr.ErrStoreUnavailable, err)
}
