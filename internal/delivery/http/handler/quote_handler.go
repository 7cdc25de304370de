package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/routefare-microservice/internal/pkg/utils"
	"github.com/routefare-microservice/internal/pkg/validator"
	"github.com/routefare-microservice/internal/usecase"
	"github.com/routefare-microservice/internal/usecase/dto"
)

// QuoteHandler - обработчик запросов расчёта стоимости
type QuoteHandler struct {
	fareUC *usecase.FareUseCase
	logger *zap.Logger
}

// NewQuoteHandler - создание нового QuoteHandler
func NewQuoteHandler(fareUC *usecase.FareUseCase, logger *zap.Logger) *QuoteHandler {
	return &QuoteHandler{
		fareUC: fareUC,
		logger: logger,
	}
}

// Quote godoc
// @Summary Расчёт стоимости по дистанции
// @Description Считает стоимость поездки: (базовый тариф + ставка за км * дистанция) * число мест, округление до 2 знаков. Нулевые тарифы заменяются значениями по умолчанию.
// @Tags Fare
// @Accept json
// @Produce json
// @Param request body dto.QuoteRequest true "Параметры расчёта"
// @Success 200 {object} utils.SuccessResponse{data=dto.QuoteResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/quote [post]
func (h *QuoteHandler) Quote(c *fiber.Ctx) error {
	var req dto.QuoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.fareUC.Quote(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// EstimateFare godoc
// @Summary Оценка стоимости по паре мест
// @Description Разрешает точки подачи и высадки, запрашивает дорожную дистанцию и считает стоимость. При недоступности роутинг-сервиса дистанция оценивается по прямой.
// @Tags Fare
// @Accept json
// @Produce json
// @Param request body dto.EstimateFareRequest true "Пара мест и параметры тарифа"
// @Success 200 {object} utils.SuccessResponse{data=dto.EstimateFareResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/quote/estimate [post]
func (h *QuoteHandler) EstimateFare(c *fiber.Ctx) error {
	var req dto.EstimateFareRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.fareUC.EstimateFare(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}
