package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/routefare-microservice/internal/pkg/errors"
	"github.com/routefare-microservice/internal/pkg/utils"
	"github.com/routefare-microservice/internal/pkg/validator"
	"github.com/routefare-microservice/internal/usecase"
	"github.com/routefare-microservice/internal/usecase/dto"
)

// BatchHandler - обработчик батч-разрешения маршрутов
type BatchHandler struct {
	batchUC *usecase.BatchUseCase
	logger  *zap.Logger
}

// NewBatchHandler - создание нового BatchHandler
func NewBatchHandler(batchUC *usecase.BatchUseCase, logger *zap.Logger) *BatchHandler {
	return &BatchHandler{
		batchUC: batchUC,
		logger:  logger,
	}
}

// ResolveBatch godoc
// @Summary Разрешение батча пар подача/высадка
// @Description Последовательно разрешает каждую пару в координаты и маршрут. Неразрешимые пары пропускаются с предупреждением, порядок выживших пар сохраняется.
// @Tags Batch
// @Accept json
// @Produce json
// @Param request body dto.BatchRouteRequest true "Пары подача/высадка (до 20)"
// @Success 200 {object} utils.SuccessResponse{data=dto.BatchRouteResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /api/v1/route/batch [post]
func (h *BatchHandler) ResolveBatch(c *fiber.Ctx) error {
	var req dto.BatchRouteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.batchUC.ResolveBatch(c.Context(), dto.ToDomainPairs(req.Pairs))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.FromBatchResult(result), &utils.Meta{
		Total: result.Meta.ResolvedPairs,
	})
}

// SubmitBatchJob godoc
// @Summary Асинхронное разрешение батча
// @Description Ставит батч в очередь на фоновую обработку и возвращает идентификатор задания
// @Tags Batch
// @Accept json
// @Produce json
// @Param request body dto.BatchRouteRequest true "Пары подача/высадка (до 20)"
// @Success 202 {object} utils.SuccessResponse{data=dto.AsyncJobResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/route/batch/async [post]
func (h *BatchHandler) SubmitBatchJob(c *fiber.Ctx) error {
	var req dto.BatchRouteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	jobID, err := h.batchUC.SubmitJob(c.Context(), dto.ToDomainPairs(req.Pairs))
	if err != nil {
		return utils.SendError(c, err)
	}

	c.Status(fiber.StatusAccepted)
	return utils.SendSuccess(c, dto.AsyncJobResponse{
		JobID:  jobID,
		Status: "queued",
	}, nil)
}

// GetJobResult godoc
// @Summary Результат асинхронного задания
// @Description Возвращает результат фонового разрешения батча по идентификатору задания
// @Tags Batch
// @Produce json
// @Param id path string true "Идентификатор задания (UUID)"
// @Success 200 {object} utils.SuccessResponse{data=dto.JobResultResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/route/batch/jobs/{id} [get]
func (h *BatchHandler) GetJobResult(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"id": c.Params("id"),
		}))
	}

	done, err := h.batchUC.GetJobResult(c.Context(), jobID)
	if err != nil {
		return utils.SendError(c, err)
	}

	status := "done"
	if done.Error != "" {
		status = "failed"
	}

	return utils.SendSuccess(c, dto.JobResultResponse{
		JobID:  done.JobID,
		Status: status,
		Result: dto.FromBatchResult(done.Result),
		Error:  done.Error,
	}, nil)
}
