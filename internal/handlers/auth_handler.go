package handlers

import (
	"errors"
	"log"

	"pantry/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// AuthHandler handles HTTP requests for registration, login and logout.
type AuthHandler struct {
	authService *services.AuthService
	store       *session.Store
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, store *session.Store) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		store:       store,
		validate:    newValidator(),
	}
}

// RegisterRoutes registers the public authentication routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/login", h.HandleLoginPage)
	router.Post("/login", h.HandleLogin)
	router.Get("/logout", h.HandleLogout)
	router.Get("/register", h.HandleRegisterPage)
	router.Post("/register", h.HandleRegister)
}

// RegisterRequest represents the registration form.
type RegisterRequest struct {
	Username string `json:"username" form:"username" validate:"required,min=3,max=32"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,password"`
	Confirm  string `json:"confirm" form:"confirm" validate:"eqfield=Password"`
}

// LoginRequest represents the login form; the first field accepts a
// username or an email.
type LoginRequest struct {
	LoginField string `json:"login_field" form:"login_field" validate:"required"`
	Password   string `json:"password" form:"password" validate:"required"`
}

// HandleLoginPage renders the login view.
func (h *AuthHandler) HandleLoginPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"page": "login",
	})
}

// HandleLogin authenticates the user and establishes a session.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": collectErrors(err),
		})
	}

	user, err := h.authService.Login(req.LoginField, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidLogin):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"errors": fiber.Map{"login_field": "Invalid username or email."},
			})
		case errors.Is(err, services.ErrIncorrectPassword):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"errors": fiber.Map{"password": "Incorrect password."},
			})
		default:
			log.Printf("Error during login for %s: %v", req.LoginField, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not log in",
			})
		}
	}

	sess, err := h.store.Get(c)
	if err != nil {
		log.Printf("Failed to open session: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not establish session",
		})
	}
	sess.Set("user_id", user.ID)
	sess.Set("username", user.Username)
	if err := sess.Save(); err != nil {
		log.Printf("Failed to save session: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not establish session",
		})
	}

	return c.Redirect("/", fiber.StatusSeeOther)
}

// HandleLogout clears the session unconditionally.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err == nil {
		if err := sess.Destroy(); err != nil {
			log.Printf("Failed to destroy session: %v", err)
		}
	}
	return c.Redirect("/login", fiber.StatusSeeOther)
}

// HandleRegisterPage renders the registration view.
func (h *AuthHandler) HandleRegisterPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"page": "register",
	})
}

// HandleRegister creates a new account and sends the user to the login
// page.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing register request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": collectErrors(err),
		})
	}

	if _, err := h.authService.Register(req.Username, req.Email, req.Password); err != nil {
		var fieldErrs services.FieldErrors
		if errors.As(err, &fieldErrs) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"errors": fieldErrs,
			})
		}
		log.Printf("Error registering user: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not register user",
		})
	}

	return c.Redirect("/login", fiber.StatusSeeOther)
}
