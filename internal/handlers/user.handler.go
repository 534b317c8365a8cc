package handlers

import (
	"globeswap/internal/app"
	"globeswap/internal/handlers/middleware"

	authController "globeswap/internal/controllers/auth"
	userController "globeswap/internal/controllers/users"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	Handler
	userController userController.UserControllerInterface
	authController authController.AuthControllerInterface
}

func NewUserHandler(app app.App, router fiber.Router) *UserHandler {
	log := logger.New("handlers").File("user_handler")
	return &UserHandler{
		userController: app.Controllers.User,
		authController: app.Controllers.Auth,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *UserHandler) Register() {
	h.router.Get("/users", h.listUsers)

	h.router.Get("/me", h.middleware.RequireAuth(), h.getCurrentUser)

	account := h.router.Group("/account", h.middleware.RequireAuth())
	account.Post("/password", h.changePassword)
	account.Post("/delete", h.deleteAccount)
}

func (h *UserHandler) listUsers(c *fiber.Ctx) error {
	users, err := h.userController.ListUsers(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"users": users})
}

func (h *UserHandler) getCurrentUser(c *fiber.Ctx) error {
	user := middleware.GetUser(c)

	return c.JSON(fiber.Map{
		"user": h.userController.GetProfile(c.UserContext(), user),
	})
}

func (h *UserHandler) changePassword(c *fiber.Ctx) error {
	log := h.log.Function("changePassword")
	user := middleware.GetUser(c)

	var req userController.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		log.Info("invalid change password body", "error", err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	session, err := h.userController.ChangePassword(c.UserContext(), user, req)
	if err != nil {
		return respondError(c, err)
	}

	if previous := middleware.GetSession(c); previous != nil {
		if err := h.authController.Logout(c.UserContext(), previous.ID); err != nil {
			log.Warn("failed to revoke session after password change", "error", err)
		}
	}
	h.middleware.SetSessionCookie(c, session)

	return c.JSON(fiber.Map{"message": "Password updated."})
}

func (h *UserHandler) deleteAccount(c *fiber.Ctx) error {
	log := h.log.Function("deleteAccount")
	user := middleware.GetUser(c)

	var req userController.DeleteAccountRequest
	if err := c.BodyParser(&req); err != nil {
		log.Info("invalid delete account body", "error", err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.userController.DeleteAccount(c.UserContext(), user, req); err != nil {
		return respondError(c, err)
	}

	if session := middleware.GetSession(c); session != nil {
		if err := h.authController.Logout(c.UserContext(), session.ID); err != nil {
			log.Warn("failed to revoke session after account deletion", "error", err)
		}
	}
	h.middleware.ClearSessionCookie(c)

	return c.JSON(fiber.Map{"message": "Your account has been deleted."})
}
