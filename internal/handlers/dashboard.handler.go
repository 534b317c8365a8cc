package handlers

import (
	"globeswap/internal/app"
	"globeswap/internal/handlers/middleware"

	dashboardController "globeswap/internal/controllers/dashboard"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	Handler
	dashboardController dashboardController.DashboardControllerInterface
}

func NewDashboardHandler(app app.App, router fiber.Router) *DashboardHandler {
	log := logger.New("handlers").File("dashboard_handler")
	return &DashboardHandler{
		dashboardController: app.Controllers.Dashboard,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *DashboardHandler) Register() {
	h.router.Get("/dashboard", h.middleware.RequireAuth(), h.getDashboard)
}

func (h *DashboardHandler) getDashboard(c *fiber.Ctx) error {
	user := middleware.GetUser(c)

	dashboard, err := h.dashboardController.GetDashboard(c.UserContext(), user)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(dashboard)
}
