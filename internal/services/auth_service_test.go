package services_test

import (
	"fmt"
	"log"
	"os"
	"testing"

	"pantry/internal/models"
	"pantry/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByLogin(login string) (*models.User, error) {
	args := m.Called(login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// TestMain is used to setup the test environment
func TestMain(m *testing.M) {
	log.SetOutput(os.Stdout)
	code := m.Run()
	os.Exit(code)
}

func TestValidPassword(t *testing.T) {
	cases := []struct {
		password string
		want     bool
	}{
		{"Test@123!", true},                          // all four classes
		{"Lowercase1", true},                         // lower + upper + digit
		{"NOLOWER123!", true},                        // upper + digit + symbol
		{"lower@here1", true},                        // lower + digit + symbol
		{"alllowercase1", false},                     // only two classes
		{"PASSWORDONLY", false},                      // one class
		{"Sh0r!t", false},                            // under 8 characters
		{"Aa1!Aa1!Aa1!Aa1!Aa1!Aa1!Aa1!Aa1!X", false}, // over 32 characters
		{"", false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, services.ValidPassword(tc.password), "password %q", tc.password)
	}
}

func TestAuthService_Register(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo)

	// Successful registration
	mockRepo.On("GetByUsername", "testuser").Return(nil, fmt.Errorf("user with username testuser not found")).Once()
	mockRepo.On("GetByEmail", "test@email.com").Return(nil, fmt.Errorf("user with email test@email.com not found")).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	user, err := authService.Register("testuser", "test@email.com", "Test@123!")
	assert.NoError(t, err)
	assert.NotNil(t, user)
	assert.NotEqual(t, "Test@123!", user.Password, "password must be stored hashed")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("Test@123!")))
	mockRepo.AssertExpectations(t)

	// Username already taken
	mockRepo.On("GetByUsername", "testuser").Return(&models.User{ID: "1"}, nil).Once()
	mockRepo.On("GetByEmail", "new@email.com").Return(nil, fmt.Errorf("not found")).Once()
	_, err = authService.Register("testuser", "new@email.com", "Test@123!")
	assert.Error(t, err)
	var fieldErrs services.FieldErrors
	assert.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "Username already associated with an account.", fieldErrs["username"])
	mockRepo.AssertExpectations(t)

	// Email already registered
	mockRepo.On("GetByUsername", "newuser").Return(nil, fmt.Errorf("not found")).Once()
	mockRepo.On("GetByEmail", "test@email.com").Return(&models.User{ID: "1"}, nil).Once()
	_, err = authService.Register("newuser", "test@email.com", "Test@123!")
	assert.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "Email already associated with an account.", fieldErrs["email"])
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("Test@123!"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-123",
		Username: "testuser",
		Email:    "test@email.com",
		Password: string(hashedPassword),
	}

	// Login by username
	mockRepo.On("GetByLogin", "testuser").Return(user, nil).Once()
	got, err := authService.Login("testuser", "Test@123!")
	assert.NoError(t, err)
	assert.Equal(t, "user-123", got.ID)
	mockRepo.AssertExpectations(t)

	// Login by email
	mockRepo.On("GetByLogin", "test@email.com").Return(user, nil).Once()
	got, err = authService.Login("test@email.com", "Test@123!")
	assert.NoError(t, err)
	assert.Equal(t, "testuser", got.Username)
	mockRepo.AssertExpectations(t)

	// Wrong password
	mockRepo.On("GetByLogin", "testuser").Return(user, nil).Once()
	_, err = authService.Login("testuser", "wrongpassword")
	assert.ErrorIs(t, err, services.ErrIncorrectPassword)
	mockRepo.AssertExpectations(t)

	// Unknown identifier
	mockRepo.On("GetByLogin", "nobody").Return(nil, fmt.Errorf("user nobody not found")).Once()
	_, err = authService.Login("nobody", "Test@123!")
	assert.ErrorIs(t, err, services.ErrInvalidLogin)
	mockRepo.AssertExpectations(t)
}
