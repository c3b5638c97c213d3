package controller

import (
	"product-guide-be/internal/dto"
	"product-guide-be/internal/pkg/serverutils"
	"product-guide-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICatalogController interface {
	RegisterRoutes(r fiber.Router)
	Count(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
}

type catalogController struct {
	catalogService   service.ICatalogService
	retrievalService service.IRetrievalService
}

func NewCatalogController(
	catalogService service.ICatalogService,
	retrievalService service.IRetrievalService,
) ICatalogController {
	return &catalogController{
		catalogService:   catalogService,
		retrievalService: retrievalService,
	}
}

func (c *catalogController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/catalog/v1")
	h.Get("/count", c.Count)
	h.Post("/search", c.Search)
}

func (c *catalogController) Count(ctx *fiber.Ctx) error {
	count, err := c.catalogService.Count(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Product count", map[string]int64{"count": count}))
}

type searchRequest struct {
	Query string `json:"query" validate:"required"`
	TopK  int    `json:"top_k"`
}

// Search exposes raw retrieval for catalog tuning. It bypasses the
// dialogue layer entirely.
func (c *catalogController) Search(ctx *fiber.Ctx) error {
	var req searchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	result := c.retrievalService.Search(ctx.Context(), req.Query, req.TopK)
	if result.Status == service.RetrievalUnavailable {
		return fiber.NewError(fiber.StatusServiceUnavailable, "retrieval backend unavailable")
	}

	matches := make([]dto.ProductMatchDTO, 0, len(result.Matches))
	for _, m := range result.Matches {
		matches = append(matches, dto.ProductMatchDTO{
			Title: m.Product.Title,
			URL:   m.Product.URL,
			Image: m.Product.Image,
			Score: m.Similarity,
		})
	}

	return ctx.JSON(serverutils.SuccessResponse("Search results", matches))
}
