package middleware

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// LoginRequired is a Fiber middleware that gates routes behind a
// logged-in session. A session carrying a username is the authorization;
// anything else is answered with a redirect to the login page. The
// user's identity is stashed in Locals for downstream handlers.
func LoginRequired(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			log.Printf("Failed to load session: %v", err)
			return c.Redirect("/login", fiber.StatusSeeOther)
		}

		username, ok := sess.Get("username").(string)
		if !ok || username == "" {
			return c.Redirect("/login", fiber.StatusSeeOther)
		}

		userID, _ := sess.Get("user_id").(string)
		c.Locals("user_id", userID)
		c.Locals("username", username)

		return c.Next()
	}
}
