package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/PrintSaud/scene-backend/internal/model"
	"github.com/PrintSaud/scene-backend/internal/realtime"
)

func TestNotifyWorkerDeliver_CountsByKind(t *testing.T) {
	pushes := prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "test_pushed_total"},
		[]string{"kind"},
	)
	worker := NewNotifyWorker(nil, realtime.NewHub())
	worker.InstrumentWith(pushes)

	event := func(kind string) model.NotificationEvent {
		return model.NotificationEvent{
			RecipientID:  uuid.New(),
			Notification: model.Notification{Kind: kind},
		}
	}
	worker.deliver(event(model.NotificationFollow))
	worker.deliver(event(model.NotificationFollow))
	worker.deliver(event(model.NotificationLike))

	if got := testutil.ToFloat64(pushes.WithLabelValues(model.NotificationFollow)); got != 2 {
		t.Errorf("follow pushes = %v, want 2", got)
	}
	if got := testutil.ToFloat64(pushes.WithLabelValues(model.NotificationLike)); got != 1 {
		t.Errorf("like pushes = %v, want 1", got)
	}
}

func TestNotifyWorkerDeliver_UninstrumentedIsSafe(t *testing.T) {
	worker := NewNotifyWorker(nil, realtime.NewHub())

	// No counter wired; delivery must not panic.
	worker.deliver(model.NotificationEvent{
		RecipientID:  uuid.New(),
		Notification: model.Notification{Kind: model.NotificationReply},
	})
}
