package handlers

import (
	"globeswap/internal/app"
	"globeswap/internal/handlers/middleware"
	"globeswap/internal/models"

	listingController "globeswap/internal/controllers/listings"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type ListingHandler struct {
	Handler
	listingController listingController.ListingControllerInterface
}

func NewListingHandler(app app.App, router fiber.Router) *ListingHandler {
	log := logger.New("handlers").File("listing_handler")
	return &ListingHandler{
		listingController: app.Controllers.Listing,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *ListingHandler) Register() {
	h.router.Get("/list", h.middleware.RequireAuth(), h.getCreateForm)
	h.router.Post("/list", h.middleware.RequireAuth(), h.createListing)

	listing := h.router.Group("/listing", h.middleware.RequireAuth())
	listing.Get("/edit/:id", h.getEditForm)
	listing.Post("/edit/:id", h.updateListing)
	listing.Post("/delete/:id", h.deleteListing)
}

type listingTypeOption struct {
	Value models.ListingType `json:"value"`
	Label string             `json:"label"`
}

func listingTypeOptions() []listingTypeOption {
	return []listingTypeOption{
		{Value: models.ListingTypeSeek, Label: models.ListingTypeSeek.Label()},
		{Value: models.ListingTypeOffer, Label: models.ListingTypeOffer.Label()},
	}
}

func (h *ListingHandler) getCreateForm(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"form":         listingController.ListingForm{ListingType: string(models.ListingTypeSeek)},
		"listingTypes": listingTypeOptions(),
	})
}

func (h *ListingHandler) createListing(c *fiber.Ctx) error {
	log := h.log.Function("createListing")
	user := middleware.GetUser(c)

	var form listingController.ListingForm
	if err := c.BodyParser(&form); err != nil {
		log.Info("invalid listing body", "error", err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	trip, err := h.listingController.Create(c.UserContext(), user, form)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Listing posted successfully to the Marketplace!",
		"trip":    trip,
	})
}

func (h *ListingHandler) getEditForm(c *fiber.Ctx) error {
	user := middleware.GetUser(c)

	tripID, err := paramID(c, "id", "listing")
	if err != nil {
		return respondError(c, err)
	}

	form, err := h.listingController.GetEditForm(c.UserContext(), user, tripID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"tripId":       tripID,
		"form":         form,
		"listingTypes": listingTypeOptions(),
	})
}

func (h *ListingHandler) updateListing(c *fiber.Ctx) error {
	log := h.log.Function("updateListing")
	user := middleware.GetUser(c)

	tripID, err := paramID(c, "id", "listing")
	if err != nil {
		return respondError(c, err)
	}

	var form listingController.ListingForm
	if err := c.BodyParser(&form); err != nil {
		log.Info("invalid listing body", "error", err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	trip, err := h.listingController.Update(c.UserContext(), user, tripID, form)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Listing updated.",
		"trip":    trip,
	})
}

func (h *ListingHandler) deleteListing(c *fiber.Ctx) error {
	user := middleware.GetUser(c)

	tripID, err := paramID(c, "id", "listing")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.listingController.Delete(c.UserContext(), user, tripID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Listing deleted."})
}
