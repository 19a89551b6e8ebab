package services

import (
	"net/mail"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"collab-service/internal/auth"
	"collab-service/internal/domain"
	"collab-service/internal/models"
)

// AuthService registers accounts and exchanges credentials for bearer tokens.
type AuthService struct {
	users     domain.UserStore
	jwtSecret string
	tokenTTL  time.Duration
}

// NewAuthService creates a new AuthService with the given user store and
// token settings.
func NewAuthService(users domain.UserStore, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		users:     users,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginInput carries the fields of a login request.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register validates the input, creates the account and issues a token.
func (s *AuthService) Register(in RegisterInput) (*models.User, string, error) {
	ve := domain.ValidationErrors{}
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if in.Name == "" {
		ve.Add("name", "The name field is required.")
	} else if len(in.Name) > 255 {
		ve.Add("name", "The name may not be greater than 255 characters.")
	}
	if in.Email == "" {
		ve.Add("email", "The email field is required.")
	} else if _, err := mail.ParseAddress(in.Email); err != nil {
		ve.Add("email", "The email must be a valid email address.")
	} else {
		taken, err := s.users.EmailTaken(in.Email)
		if err != nil {
			return nil, "", errors.Wrap(err, "check email")
		}
		if taken {
			ve.Add("email", "The email has already been taken.")
		}
	}
	if len(in.Password) < 8 {
		ve.Add("password", "The password must be at least 8 characters.")
	}
	if ve.HasErrors() {
		return nil, "", ve
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, "", errors.Wrap(err, "hash password")
	}
	user := &models.User{Name: in.Name, Email: in.Email, PasswordHash: hash}
	if err := s.users.CreateUser(user); err != nil {
		return nil, "", errors.Wrap(err, "create user")
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return nil, "", errors.Wrap(err, "issue token")
	}
	return user, token, nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(in LoginInput) (*models.User, string, error) {
	ve := domain.ValidationErrors{}
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if in.Email == "" {
		ve.Add("email", "The email field is required.")
	}
	if in.Password == "" {
		ve.Add("password", "The password field is required.")
	}
	if ve.HasErrors() {
		return nil, "", ve
	}

	user, err := s.users.GetUserByEmail(in.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", domain.ErrBadCredentials
		}
		return nil, "", errors.Wrap(err, "load user")
	}
	if err := auth.ComparePassword(user.PasswordHash, in.Password); err != nil {
		return nil, "", domain.ErrBadCredentials
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return nil, "", errors.Wrap(err, "issue token")
	}
	return user, token, nil
}
