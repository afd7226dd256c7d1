package db

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const notifyChannel = "documents_changed"

// Listen holds a dedicated connection on the documents_changed channel and
// forwards each notification to subscribers. It reconnects on failure and
// returns when ctx is canceled.
func (d *DB) Listen(ctx context.Context) {
	backoff := time.Second
	for {
		err := d.listenOnce(ctx)
		if ctx.Err() != nil {
			d.log.Info("document listener stopped")
			return
		}
		d.log.Warn("document listener disconnected", zap.Error(err), zap.Duration("retry_in", backoff))

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		if backoff < 30*time.Second {
			backoff *= 2
		}
	}
}

func (d *DB) listenOnce(ctx context.Context) error {
	conn, err := d.Pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+notifyChannel); err != nil {
		return err
	}
	d.log.Info("document listener started", zap.String("channel", notifyChannel))

	for {
		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}
		d.hub.Publish(n.Payload)
	}
}
