package handlers

import (
	"globeswap/internal/app"
	"globeswap/internal/handlers/middleware"

	marketplaceController "globeswap/internal/controllers/marketplace"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type MarketplaceHandler struct {
	Handler
	marketplaceController marketplaceController.MarketplaceControllerInterface
}

func NewMarketplaceHandler(app app.App, router fiber.Router) *MarketplaceHandler {
	log := logger.New("handlers").File("marketplace_handler")
	return &MarketplaceHandler{
		marketplaceController: app.Controllers.Marketplace,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *MarketplaceHandler) Register() {
	h.router.Get("/", h.home)
	h.router.Get("/trips", h.getMarketplace)
}

func (h *MarketplaceHandler) home(c *fiber.Ctx) error {
	response := fiber.Map{
		"name":        "GlobeSwap",
		"marketplace": "/trips",
	}

	if user := middleware.GetUser(c); user != nil {
		response["user"] = user.ToProfile()
		response["dashboard"] = "/dashboard"
	}

	return c.JSON(response)
}

func (h *MarketplaceHandler) getMarketplace(c *fiber.Ctx) error {
	marketplace, err := h.marketplaceController.GetMarketplace(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(marketplace)
}
