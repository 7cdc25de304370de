package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/routefare-microservice/internal/pkg/utils"
	"github.com/routefare-microservice/internal/pkg/validator"
	"github.com/routefare-microservice/internal/usecase"
	"github.com/routefare-microservice/internal/usecase/dto"
)

// GeocodeHandler - обработчик запросов геокодирования
type GeocodeHandler struct {
	routeUC *usecase.RouteUseCase
	logger  *zap.Logger
}

// NewGeocodeHandler - создание нового GeocodeHandler
func NewGeocodeHandler(routeUC *usecase.RouteUseCase, logger *zap.Logger) *GeocodeHandler {
	return &GeocodeHandler{
		routeUC: routeUC,
		logger:  logger,
	}
}

// Geocode godoc
// @Summary Геокодирование названия места
// @Description Разрешает название места в координаты. Результаты вне региона обслуживания считаются ненайденными.
// @Tags Geocoding
// @Accept json
// @Produce json
// @Param place query string true "Название места (минимум 2 символа)"
// @Success 200 {object} utils.SuccessResponse{data=dto.GeocodeResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/geocode [get]
func (h *GeocodeHandler) Geocode(c *fiber.Ctx) error {
	var req dto.GeocodeRequest
	req.Place = c.Query("place")

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	point, err := h.routeUC.ResolvePoint(c.Context(), req.Place, nil)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.GeocodeResponse{
		Place: req.Place,
		Point: *point,
	}, nil)
}
