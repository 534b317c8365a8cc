package handlers

import (
	"globeswap/internal/app"
	"globeswap/internal/handlers/middleware"

	interactionController "globeswap/internal/controllers/interactions"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type InteractionHandler struct {
	Handler
	interactionController interactionController.InteractionControllerInterface
}

type interactionRequest struct {
	Message string `json:"message" form:"message"`
}

func NewInteractionHandler(app app.App, router fiber.Router) *InteractionHandler {
	log := logger.New("handlers").File("interaction_handler")
	return &InteractionHandler{
		interactionController: app.Controllers.Interaction,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *InteractionHandler) Register() {
	interact := h.router.Group("/interact", h.middleware.RequireAuth())
	interact.Get("/:trip_id", h.getTarget)
	interact.Post("/:trip_id", h.createInteraction)

	h.router.Get(
		"/interaction/update/:id/:status",
		h.middleware.RequireAuth(),
		h.updateStatus,
	)
}

func (h *InteractionHandler) getTarget(c *fiber.Ctx) error {
	user := middleware.GetUser(c)

	tripID, err := paramID(c, "trip_id", "listing")
	if err != nil {
		return respondError(c, err)
	}

	trip, err := h.interactionController.GetTarget(c.UserContext(), user, tripID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"trip": trip})
}

func (h *InteractionHandler) createInteraction(c *fiber.Ctx) error {
	log := h.log.Function("createInteraction")
	user := middleware.GetUser(c)

	tripID, err := paramID(c, "trip_id", "listing")
	if err != nil {
		return respondError(c, err)
	}

	var req interactionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			log.Info("invalid interaction body", "error", err.Error())
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}
	}

	interaction, err := h.interactionController.Create(c.UserContext(), user, tripID, req.Message)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "Your request has been sent.",
		"interaction": interaction,
	})
}

func (h *InteractionHandler) updateStatus(c *fiber.Ctx) error {
	user := middleware.GetUser(c)

	interactionID, err := paramID(c, "id", "interaction")
	if err != nil {
		return respondError(c, err)
	}

	interaction, err := h.interactionController.UpdateStatus(
		c.UserContext(),
		user,
		interactionID,
		c.Params("status"),
	)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":     "Request " + string(interaction.Status) + ".",
		"interaction": interaction,
	})
}
