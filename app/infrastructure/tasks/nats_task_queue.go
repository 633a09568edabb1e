package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"larpmanager.app/larp-gateway/app/utils/logger"
	"larpmanager.app/larp-gateway/config/environment_variables"
)

const subjectPrefix = "tasks."

// NatsTaskQueue publishes tasks to NATS subjects, one subject per task name.
type NatsTaskQueue struct {
	conn *nats.Conn
}

var _ Queue = (*NatsTaskQueue)(nil)

// NewNatsTaskQueue connects to the configured NATS server.
func NewNatsTaskQueue() (*NatsTaskQueue, error) {
	url := environment_variables.EnvironmentVariables.NATS_URL
	if url == "" {
		url = nats.DefaultURL
	}

	conn, err := nats.Connect(url,
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.GetLogger().Warnf("task queue: nats disconnected: %v", err)
			}
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}

	return &NatsTaskQueue{conn: conn}, nil
}

// Enqueue publishes the task and returns as soon as it is handed to the
// client; delivery is best-effort fire-and-forget.
func (q *NatsTaskQueue) Enqueue(ctx context.Context, task Task) error {
	data, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}
	return q.conn.Publish(subjectPrefix+task.Name, data)
}

// Close drains the connection.
func (q *NatsTaskQueue) Close() error {
	return q.conn.Drain()
}

// Conn exposes the underlying connection for the worker subscription.
func (q *NatsTaskQueue) Conn() *nats.Conn {
	return q.conn
}
