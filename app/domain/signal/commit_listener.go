package signal

import (
	"context"
	"encoding/json"

	"github.com/nats-io/nats.go"
	"larpmanager.app/larp-gateway/app/utils/logger"
)

const commitSubject = "commits.>"

// CommitListener feeds entity-committed events published by the main
// application into the local signal dispatcher. Subjects are
// commits.<entity kind>; the payload is the JSON commit itself.
type CommitListener struct {
	dispatcher *Dispatcher
	sub        *nats.Subscription
}

func NewCommitListener(dispatcher *Dispatcher) *CommitListener {
	return &CommitListener{dispatcher: dispatcher}
}

// Start subscribes as part of a queue group so that one gateway instance
// handles each commit. Invalidation handlers are idempotent, so the
// occasional redelivery is harmless.
func (l *CommitListener) Start(ctx context.Context, conn *nats.Conn) error {
	sub, err := conn.QueueSubscribe(commitSubject, "larp-gateway-commits", func(msg *nats.Msg) {
		var c Commit
		if err := json.Unmarshal(msg.Data, &c); err != nil {
			logger.GetLogger().Errorf("commit listener: malformed commit on %s: %v", msg.Subject, err)
			return
		}
		if err := l.dispatcher.Dispatch(ctx, c); err != nil {
			logger.GetLogger().Errorf("commit listener: dispatch %s/%s id %d: %v", c.Kind, c.Op, c.ID, err)
		}
	})
	if err != nil {
		return err
	}
	l.sub = sub
	return nil
}

func (l *CommitListener) Stop() error {
	if l.sub == nil {
		return nil
	}
	return l.sub.Unsubscribe()
}
