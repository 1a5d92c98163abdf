package controller

import (
	"ai-modelgen-be/internal/dto"
	"ai-modelgen-be/internal/pkg/serverutils"
	"ai-modelgen-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ITopupController interface {
	RegisterRoutes(r fiber.Router)
	Packages(ctx *fiber.Ctx) error
	Checkout(ctx *fiber.Ctx) error
	Notification(ctx *fiber.Ctx) error
}

type topupController struct {
	service service.ITopupService
}

func NewTopupController(service service.ITopupService) ITopupController {
	return &topupController{service: service}
}

func (c *topupController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/topup")
	h.Get("/packages", c.Packages)
	h.Post("/checkout", serverutils.JwtMiddleware, c.Checkout)
	// Called by Midtrans, authenticated by its signature.
	h.Post("/midtrans/notification", c.Notification)
}

func (c *topupController) Packages(ctx *fiber.Ctx) error {
	res, err := c.service.Packages(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get packages", res))
}

func (c *topupController) Checkout(ctx *fiber.Ctx) error {
	var req dto.CheckoutRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	email, _ := ctx.Locals("email").(string)
	res, err := c.service.Checkout(ctx.Context(), serverutils.UserID(ctx), email, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create checkout", res))
}

func (c *topupController) Notification(ctx *fiber.Ctx) error {
	var req dto.MidtransWebhookRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("invalid request body")
	}

	if err := c.service.HandleNotification(ctx.Context(), &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success process notification", fiber.Map{}))
}
