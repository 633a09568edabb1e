package tasks

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/nats-io/nats.go"
	"larpmanager.app/larp-gateway/app/utils/logger"
)

// Worker dispatches delivered tasks to registered handlers. Handlers must be
// idempotent: the queue is at-least-once, and the dirty-flag scheme already
// makes duplicate recomputation a no-op.
type Worker struct {
	mu       sync.RWMutex
	handlers map[string]Handler
	subs     []*nats.Subscription
}

func NewWorker() *Worker {
	return &Worker{
		handlers: make(map[string]Handler),
	}
}

// Register binds a handler to a task name. Last registration wins.
func (w *Worker) Register(name string, handler Handler) {
	w.mu.Lock()
	w.handlers[name] = handler
	w.mu.Unlock()
}

// Dispatch runs the handler registered for the task, if any. It is used both
// by the NATS subscription and by the inline queue in tests.
func (w *Worker) Dispatch(ctx context.Context, task Task) error {
	w.mu.RLock()
	handler, ok := w.handlers[task.Name]
	w.mu.RUnlock()
	if !ok {
		logger.GetLogger().Warnf("task worker: no handler for task %q", task.Name)
		return nil
	}
	return handler(ctx, task.Payload)
}

// Start subscribes to every registered task subject on the given connection.
func (w *Worker) Start(ctx context.Context, conn *nats.Conn) error {
	w.mu.RLock()
	names := make([]string, 0, len(w.handlers))
	for name := range w.handlers {
		names = append(names, name)
	}
	w.mu.RUnlock()

	for _, name := range names {
		sub, err := conn.QueueSubscribe(subjectPrefix+name, "larp-gateway-workers", func(msg *nats.Msg) {
			var task Task
			if err := json.Unmarshal(msg.Data, &task); err != nil {
				logger.GetLogger().Errorf("task worker: malformed task on %s: %v", msg.Subject, err)
				return
			}
			if err := w.Dispatch(ctx, task); err != nil {
				logger.GetLogger().Errorf("task worker: task %q failed: %v", task.Name, err)
			}
		})
		if err != nil {
			return err
		}
		w.subs = append(w.subs, sub)
	}
	return nil
}

// Stop unsubscribes from every subject.
func (w *Worker) Stop() {
	for _, sub := range w.subs {
		_ = sub.Unsubscribe()
	}
	w.subs = nil
}

// InlineQueue runs each enqueued task synchronously through a worker. It
// backs local single-process deployments and tests.
type InlineQueue struct {
	Worker *Worker
}

var _ Queue = (*InlineQueue)(nil)

func (q *InlineQueue) Enqueue(ctx context.Context, task Task) error {
	return q.Worker.Dispatch(ctx, task)
}
