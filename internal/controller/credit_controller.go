package controller

import (
	"strconv"

	"ai-modelgen-be/internal/dto"
	"ai-modelgen-be/internal/pkg/serverutils"
	"ai-modelgen-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICreditController interface {
	RegisterRoutes(r fiber.Router)
	Initialize(ctx *fiber.Ctx) error
	Balance(ctx *fiber.Ctx) error
	Spend(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	Stats(ctx *fiber.Ctx) error
}

type creditController struct {
	service service.ICreditService
}

func NewCreditController(service service.ICreditService) ICreditController {
	return &creditController{service: service}
}

func (c *creditController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/credits")
	h.Post("/initialize", serverutils.JwtMiddleware, c.Initialize)
	// Balance, spend and history are called server-to-server by the
	// frontend's own backend, which passes the user id explicitly.
	h.Get("/balance", c.Balance)
	h.Post("/spend", c.Spend)
	h.Get("/history", c.History)
	h.Get("/stats", c.Stats)
}

func (c *creditController) Initialize(ctx *fiber.Ctx) error {
	userId := serverutils.UserID(ctx)
	if userId == "" {
		return serverutils.Unauthorized("missing user identity")
	}
	email, _ := ctx.Locals("email").(string)

	res, err := c.service.Initialize(ctx.Context(), userId, email)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success initialize credits", res))
}

func (c *creditController) Balance(ctx *fiber.Ctx) error {
	userId := ctx.Query("userId")
	if userId == "" {
		return serverutils.BadRequest("userId is required")
	}

	res, err := c.service.Balance(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get balance", res))
}

func (c *creditController) Spend(ctx *fiber.Ctx) error {
	var req dto.SpendCreditsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.Spend(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success spend credits", res))
}

func (c *creditController) History(ctx *fiber.Ctx) error {
	userId := ctx.Query("userId")
	if userId == "" {
		return serverutils.BadRequest("userId is required")
	}
	limit, _ := strconv.Atoi(ctx.Query("limit", "0"))

	res, err := c.service.History(ctx.Context(), userId, limit)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get history", res))
}

func (c *creditController) Stats(ctx *fiber.Ctx) error {
	userId := ctx.Query("userId")
	if userId == "" {
		return serverutils.BadRequest("userId is required")
	}

	res, err := c.service.Stats(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get stats", res))
}
