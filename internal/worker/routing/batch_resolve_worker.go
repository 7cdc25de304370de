package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/routefare-microservice/internal/domain"
	"github.com/routefare-microservice/internal/domain/repository"
	"github.com/routefare-microservice/internal/worker"
)

const (
	maxBatchSize    = 10                     // максимум заданий за раз
	emptyQueueSleep = 100 * time.Millisecond // пауза если очередь пуста
)

// BatchProcessor выполняет задание на разрешение батча
type BatchProcessor interface {
	ProcessJob(ctx context.Context, event domain.RouteResolveEvent) error
}

// BatchResolveWorker обрабатывает задания на асинхронное разрешение батчей
type BatchResolveWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	batchUC      BatchProcessor
	consumerName string
	maxRetries   int
}

// NewBatchResolveWorker создает новый BatchResolveWorker
func NewBatchResolveWorker(
	streamRepo repository.StreamRepository,
	batchUC BatchProcessor,
	consumerGroup string,
	maxRetries int,
	logger *zap.Logger,
) *BatchResolveWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	return &BatchResolveWorker{
		BaseWorker:   worker.NewBaseWorker("batch-resolve", consumerGroup, logger),
		streamRepo:   streamRepo,
		batchUC:      batchUC,
		consumerName: consumerName,
		maxRetries:   maxRetries,
	}
}

// Start запускает воркер
func (w *BatchResolveWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting BatchResolveWorker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamRouteResolve, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		default:
			processed, err := w.processBatch(ctx)
			if err != nil {
				logger.Error("Failed to process batch", zap.Error(err))
				time.Sleep(time.Second) // пауза при ошибке
				continue
			}

			if processed == 0 {
				time.Sleep(emptyQueueSleep)
			}
		}
	}
}

// processBatch читает и обрабатывает пачку заданий.
// Возвращает количество прочитанных сообщений.
func (w *BatchResolveWorker) processBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.streamRepo.ConsumeBatch(
		ctx,
		domain.StreamRouteResolve,
		w.ConsumerGroup(),
		w.consumerName,
		maxBatchSize,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}

	if len(messages) == 0 {
		return 0, nil // очередь пуста
	}

	logger.Info("Processing resolve jobs", zap.Int("message_count", len(messages)))

	ackIDs := make([]string, 0, len(messages))

	for _, msg := range messages {
		event, err := w.parseMessage(msg)
		if err != nil {
			logger.Warn("Failed to parse message, skipping",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			// ACK битое сообщение чтобы не застревало
			ackIDs = append(ackIDs, msg.ID)
			continue
		}

		if err := w.batchUC.ProcessJob(ctx, *event); err != nil {
			logger.Error("Failed to process resolve job",
				zap.String("job_id", event.JobID.String()),
				zap.Error(err))
			// Без ACK - задание будет переобработано
			continue
		}

		ackIDs = append(ackIDs, msg.ID)
	}

	if err := w.streamRepo.AckMessages(ctx, domain.StreamRouteResolve, w.ConsumerGroup(), ackIDs); err != nil {
		logger.Error("Failed to ack messages", zap.Error(err))
		// Не критично - сообщения будут переобработаны
	}

	return len(messages), nil
}

// parseMessage парсит сообщение из стрима в RouteResolveEvent
func (w *BatchResolveWorker) parseMessage(msg domain.StreamMessage) (*domain.RouteResolveEvent, error) {
	data, ok := msg.Data["data"].(string)
	if !ok {
		return nil, fmt.Errorf("missing or invalid 'data' field")
	}

	var event domain.RouteResolveEvent
	if err := json.Unmarshal([]byte(data), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}

	return &event, nil
}
