package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/routefare-microservice/internal/pkg/utils"
	"github.com/routefare-microservice/internal/pkg/validator"
	"github.com/routefare-microservice/internal/usecase"
	"github.com/routefare-microservice/internal/usecase/dto"
)

// RouteHandler - обработчик запросов маршрутизации
type RouteHandler struct {
	routeUC *usecase.RouteUseCase
	logger  *zap.Logger
}

// NewRouteHandler - создание нового RouteHandler
func NewRouteHandler(routeUC *usecase.RouteUseCase, logger *zap.Logger) *RouteHandler {
	return &RouteHandler{
		routeUC: routeUC,
		logger:  logger,
	}
}

// GetRoute godoc
// @Summary Маршрут между двумя точками
// @Description Возвращает дорожный маршрут с геометрией. Каждая сторона задаётся координатами или названием места. При недоступности роутинг-сервиса возвращается прямолинейный маршрут с пометкой is_approximate.
// @Tags Routing
// @Accept json
// @Produce json
// @Param request body dto.RouteRequest true "Конечные точки маршрута"
// @Success 200 {object} utils.SuccessResponse{data=dto.RouteResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/route [post]
func (h *RouteHandler) GetRoute(c *fiber.Ctx) error {
	var req dto.RouteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	ctx := c.Context()

	from, err := h.routeUC.ResolvePoint(ctx, req.FromLabel, req.From.ToDomainPoint())
	if err != nil {
		return utils.SendError(c, err)
	}

	to, err := h.routeUC.ResolvePoint(ctx, req.ToLabel, req.To.ToDomainPoint())
	if err != nil {
		return utils.SendError(c, err)
	}

	route, err := h.routeUC.Route(ctx, *from, *to)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.RouteResponse{
		From:  *from,
		To:    *to,
		Route: *route,
	}, nil)
}

// GetDistance godoc
// @Summary Дистанция между двумя точками
// @Description Возвращает дорожную дистанцию и время в пути без геометрии маршрута
// @Tags Routing
// @Accept json
// @Produce json
// @Param request body dto.RouteRequest true "Конечные точки"
// @Success 200 {object} utils.SuccessResponse{data=dto.RouteResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/route/distance [post]
func (h *RouteHandler) GetDistance(c *fiber.Ctx) error {
	var req dto.RouteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	ctx := c.Context()

	from, err := h.routeUC.ResolvePoint(ctx, req.FromLabel, req.From.ToDomainPoint())
	if err != nil {
		return utils.SendError(c, err)
	}

	to, err := h.routeUC.ResolvePoint(ctx, req.ToLabel, req.To.ToDomainPoint())
	if err != nil {
		return utils.SendError(c, err)
	}

	route, err := h.routeUC.EstimateDistance(ctx, *from, *to)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.RouteResponse{
		From:  *from,
		To:    *to,
		Route: *route,
	}, nil)
}
