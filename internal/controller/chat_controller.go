package controller

import (
	"product-guide-be/internal/dto"
	"product-guide-be/internal/pkg/serverutils"
	"product-guide-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Intro(ctx *fiber.Ctx) error
	SendChat(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	// The widget talks to these two routes directly, so they keep the
	// flat paths it expects.
	r.Get("/chat/intro", c.Intro)
	r.Post("/chat", c.SendChat)
}

func (c *chatController) Intro(ctx *fiber.Ctx) error {
	return ctx.JSON(c.service.Intro(ctx.Context()))
}

func (c *chatController) SendChat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	res, err := c.service.SendChat(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}
