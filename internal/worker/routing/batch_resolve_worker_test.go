package routing_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/routefare-microservice/internal/domain"
	"github.com/routefare-microservice/internal/worker/routing"
)

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, maxCount int) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, maxCount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessages(ctx context.Context, stream, group string, messageIDs []string) error {
	args := m.Called(ctx, stream, group, messageIDs)
	return args.Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

// MockBatchProcessor is a mock of BatchProcessor
type MockBatchProcessor struct {
	mock.Mock
}

func (m *MockBatchProcessor) ProcessJob(ctx context.Context, event domain.RouteResolveEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func TestBatchResolveWorker_Name(t *testing.T) {
	worker := routing.NewBatchResolveWorker(&MockStreamRepository{}, &MockBatchProcessor{}, "test-group", 3, zap.NewNop())
	assert.Equal(t, "batch-resolve", worker.Name())
}

func TestBatchResolveWorker_Stop(t *testing.T) {
	worker := routing.NewBatchResolveWorker(&MockStreamRepository{}, &MockBatchProcessor{}, "test-group", 3, zap.NewNop())

	assert.NoError(t, worker.Stop())
	assert.True(t, worker.IsStopped())
	// повторный Stop безопасен
	assert.NoError(t, worker.Stop())
}

func TestBatchResolveWorker_ProcessesJobs(t *testing.T) {
	mockStream := &MockStreamRepository{}
	mockProcessor := &MockBatchProcessor{}

	worker := routing.NewBatchResolveWorker(mockStream, mockProcessor, "test-group", 3, zap.NewNop())

	jobID := uuid.New()
	event := domain.RouteResolveEvent{
		JobID: jobID,
		Pairs: []domain.LocationPair{{PickupLabel: "Chennai", DropLabel: "Bengaluru"}},
	}
	payload, _ := json.Marshal(event)

	messages := []domain.StreamMessage{
		{
			ID:   "1-0",
			Data: map[string]interface{}{"data": string(payload)},
		},
		{
			// битое сообщение - должно быть подтверждено и пропущено
			ID:   "1-1",
			Data: map[string]interface{}{"data": "not json"},
		},
	}

	mockStream.On("CreateConsumerGroup", mock.Anything, domain.StreamRouteResolve, "test-group").Return(nil)
	mockStream.On("ConsumeBatch", mock.Anything, domain.StreamRouteResolve, "test-group", mock.Anything, mock.Anything).
		Return(messages, nil).Once()
	mockStream.On("ConsumeBatch", mock.Anything, domain.StreamRouteResolve, "test-group", mock.Anything, mock.Anything).
		Return(nil, nil)
	mockStream.On("AckMessages", mock.Anything, domain.StreamRouteResolve, "test-group", []string{"1-0", "1-1"}).Return(nil)

	mockProcessor.On("ProcessJob", mock.Anything, mock.MatchedBy(func(ev domain.RouteResolveEvent) bool {
		return ev.JobID == jobID && len(ev.Pairs) == 1
	})).Return(nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- worker.Start(ctx)
	}()

	// даём воркеру обработать пачку, затем останавливаем
	time.Sleep(300 * time.Millisecond)
	cancel()
	<-done

	mockProcessor.AssertExpectations(t)
	mockStream.AssertCalled(t, "AckMessages", mock.Anything, domain.StreamRouteResolve, "test-group", []string{"1-0", "1-1"})
}
