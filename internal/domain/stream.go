package domain

import "github.com/google/uuid"

const (
	// StreamRouteResolve - очередь заданий на асинхронное разрешение батча
	StreamRouteResolve = "stream:route:resolve"

	// StreamRouteDone - события о завершённых заданиях
	StreamRouteDone = "stream:route:done"
)

// StreamMessage - сообщение из Redis stream
type StreamMessage struct {
	ID   string
	Data map[string]interface{}
}

// RouteResolveEvent - задание на разрешение батча пар
type RouteResolveEvent struct {
	JobID uuid.UUID      `json:"job_id"`
	Pairs []LocationPair `json:"pairs"`
}

// RouteResolveDoneEvent - результат выполнения задания.
// Error заполняется только при пустом батче (все пары пропущены).
type RouteResolveDoneEvent struct {
	JobID  uuid.UUID    `json:"job_id"`
	Result *BatchResult `json:"result,omitempty"`
	Error  string       `json:"error,omitempty"`
}
