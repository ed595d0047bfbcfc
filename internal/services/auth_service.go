package services

import (
	"fmt"
	"strings"
	"unicode"

	"pantry/internal/models"
	"pantry/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

// AuthService handles business logic for registration and login.
type AuthService struct {
	userRepo repositories.UserRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
	}
}

// ValidPassword reports whether a password satisfies the account policy:
// 8 to 32 characters containing at least three of the four classes
// lowercase, uppercase, digit, non-alphanumeric.
func ValidPassword(password string) bool {
	length := len([]rune(password))
	if length < 8 || length > 32 {
		return false
	}
	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}
	classes := 0
	for _, ok := range []bool{lower, upper, digit, symbol} {
		if ok {
			classes++
		}
	}
	return classes >= 3
}

// Register creates a new account after checking username and email
// uniqueness. The password arrives already policy-checked by the
// handler; it is hashed here and never stored in the clear.
func (s *AuthService) Register(username, email, password string) (*models.User, error) {
	fieldErrs := FieldErrors{}
	if existing, err := s.userRepo.GetByUsername(username); err == nil && existing != nil {
		fieldErrs["username"] = "Username already associated with an account."
	}
	if existing, err := s.userRepo.GetByEmail(email); err == nil && existing != nil {
		fieldErrs["email"] = "Email already associated with an account."
	}
	if len(fieldErrs) > 0 {
		return nil, fieldErrs
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hashedPassword),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return user, nil
}

// Login authenticates a user by username or email. The caller is told
// whether the identifier or the password was wrong; the original form
// surfaced the two cases as distinct field errors.
func (s *AuthService) Login(loginField, password string) (*models.User, error) {
	user, err := s.userRepo.GetByLogin(strings.TrimSpace(loginField))
	if err != nil || user == nil {
		return nil, ErrInvalidLogin
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrIncorrectPassword
	}
	return user, nil
}
