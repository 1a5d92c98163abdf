package controller

import (
	"ai-modelgen-be/internal/dto"
	"ai-modelgen-be/internal/pkg/serverutils"
	"ai-modelgen-be/internal/service"
	"ai-modelgen-be/pkg/meshy"

	"github.com/gofiber/fiber/v2"
)

type IGenerateController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
	Status(ctx *fiber.Ctx) error
}

type generateController struct {
	service service.IGenerationService
}

func NewGenerateController(service service.IGenerationService) IGenerateController {
	return &generateController{service: service}
}

func (c *generateController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/generate")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Generate)
	h.Get("", c.Status)
}

func (c *generateController) Generate(ctx *fiber.Ctx) error {
	var req dto.GenerateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("invalid request body")
	}
	if req.Mode == "" {
		req.Mode = "preview"
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.Generate(ctx.Context(), serverutils.UserID(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success start generation", res))
}

func (c *generateController) Status(ctx *fiber.Ctx) error {
	taskId := ctx.Query("taskId")
	if taskId == "" {
		return serverutils.BadRequest("taskId is required")
	}
	taskType := ctx.Query("taskType", meshy.TaskTypeTextTo3D)

	res, err := c.service.GetStatus(ctx.Context(), taskType, taskId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get status", res))
}
