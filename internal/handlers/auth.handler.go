package handlers

import (
	"globeswap/internal/app"
	"globeswap/internal/handlers/middleware"

	authController "globeswap/internal/controllers/auth"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Handler
	authController authController.AuthControllerInterface
}

func NewAuthHandler(app app.App, router fiber.Router) *AuthHandler {
	log := logger.New("handlers").File("auth_handler")
	return &AuthHandler{
		authController: app.Controllers.Auth,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AuthHandler) Register() {
	h.router.Post("/register", h.register)
	h.router.Post("/login", h.login)
	h.router.Get("/logout", h.logout)
}

func (h *AuthHandler) register(c *fiber.Ctx) error {
	log := h.log.Function("register")

	var req authController.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		log.Info("invalid register body", "error", err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	user, err := h.authController.Register(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Congratulations, you are now a registered user!",
		"user":    user.ToProfile(),
	})
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	log := h.log.Function("login")

	var req authController.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Info("invalid login body", "error", err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	user, session, err := h.authController.Login(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}

	h.middleware.SetSessionCookie(c, session)

	return c.JSON(fiber.Map{
		"message": "Login successful!",
		"user":    user.ToProfile(),
	})
}

func (h *AuthHandler) logout(c *fiber.Ctx) error {
	if session := middleware.GetSession(c); session != nil {
		if err := h.authController.Logout(c.UserContext(), session.ID); err != nil {
			return respondError(c, err)
		}
	}

	h.middleware.ClearSessionCookie(c)

	return c.JSON(fiber.Map{
		"message": "You have been logged out.",
	})
}
