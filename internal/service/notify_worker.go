package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/PrintSaud/scene-backend/internal/model"
	"github.com/PrintSaud/scene-backend/internal/realtime"
	"github.com/PrintSaud/scene-backend/internal/repository"
)

// NotifyWorker bridges Postgres NOTIFY to the websocket hub. Any
// process can append a notification; whichever process holds the
// recipient's connection delivers it.
type NotifyWorker struct {
	pool   *pgxpool.Pool
	hub    *realtime.Hub
	pushes *prometheus.CounterVec
}

func NewNotifyWorker(pool *pgxpool.Pool, hub *realtime.Hub) *NotifyWorker {
	return &NotifyWorker{pool: pool, hub: hub}
}

// InstrumentWith counts delivered notifications on the given
// per-kind counter.
func (w *NotifyWorker) InstrumentWith(pushes *prometheus.CounterVec) {
	w.pushes = pushes
}

// Start listens for notification events until the context ends,
// reconnecting after transient failures.
func (w *NotifyWorker) Start(ctx context.Context) {
	log.Printf("notify-worker: starting (channel=%s)", repository.NotifyChannel)

	for {
		if err := w.listenLoop(ctx); err != nil {
			if ctx.Err() != nil {
				log.Println("notify-worker: stopping (context cancelled)")
				return
			}
			log.Printf("notify-worker: listen error, reconnecting in 5s: %v", err)
			select {
			case <-time.After(5 * time.Second):
			case <-ctx.Done():
				log.Println("notify-worker: stopping (context cancelled)")
				return
			}
		}
	}
}

// listenLoop holds a dedicated connection, LISTENs, and forwards each
// payload to the recipient's room.
func (w *NotifyWorker) listenLoop(ctx context.Context) error {
	conn, err := w.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err = conn.Exec(ctx, "LISTEN "+repository.NotifyChannel); err != nil {
		return err
	}
	log.Printf("notify-worker: listening on %s", repository.NotifyChannel)

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}

		var event model.NotificationEvent
		if err := json.Unmarshal([]byte(notification.Payload), &event); err != nil {
			log.Printf("notify-worker: bad payload, skipping: %v", err)
			continue
		}
		w.deliver(event)
	}
}

// deliver forwards one event to the recipient's room and counts it by
// kind.
func (w *NotifyWorker) deliver(event model.NotificationEvent) {
	w.hub.Push(event.RecipientID, "notification", event.Notification)
	if w.pushes != nil {
		w.pushes.WithLabelValues(event.Notification.Kind).Inc()
	}
}
