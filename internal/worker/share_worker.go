package worker

// share_worker.go
// Sends the public bill link to the customer over WhatsApp or email.
// Sends are best-effort with bounded retries; a message that keeps failing
// lands in the DLQ instead of blocking the queue.

import (
	"context"
	"encoding/json"
	"fmt"

	"saribill/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const maxShareAttempts = 3

// ShareWorker processes share jobs from QueueShare.
type ShareWorker struct {
	wa         *infra.WhatsAppClient
	cb         *infra.CircuitBreaker
	mailer     *infra.Mailer
	rdb        *redis.Client
	dispatcher *Dispatcher
}

func NewShareWorker(wa *infra.WhatsAppClient, cb *infra.CircuitBreaker, mailer *infra.Mailer, rdb *redis.Client, dispatcher *Dispatcher) *ShareWorker {
	return &ShareWorker{wa: wa, cb: cb, mailer: mailer, rdb: rdb, dispatcher: dispatcher}
}

// Process delivers one share message. Retries are re-enqueued with the
// attempt counter bumped; exhausted jobs go to the DLQ with the reason.
func (w *ShareWorker) Process(ctx context.Context, job Job) {
	var payload SharePayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		log.Error().Err(err).Msg("share_worker: invalid payload")
		return
	}

	err := w.deliver(ctx, payload)
	if err == nil {
		log.Info().Str("bill_id", payload.BillID).Str("channel", payload.Channel).Msg("share_worker: bill link sent")
		return
	}

	attempts := job.Attempts + 1
	log.Error().Err(err).
		Str("bill_id", payload.BillID).
		Str("channel", payload.Channel).
		Int("attempts", attempts).
		Msg("share_worker: send failed")

	if attempts >= maxShareAttempts {
		SendToDLQ(ctx, w.rdb, QueueShare, "share", job.Payload, err.Error(), attempts)
		return
	}
	if err := w.dispatcher.enqueue(ctx, QueueShare, "share", payload, attempts); err != nil {
		log.Error().Err(err).Str("bill_id", payload.BillID).Msg("share_worker: re-enqueue failed")
	}
}

func (w *ShareWorker) deliver(ctx context.Context, payload SharePayload) error {
	switch payload.Channel {
	case ChannelWhatsApp:
		// The gateway sits behind a circuit breaker: when it is down we
		// fast-fail and let the retry/DLQ path absorb the jobs.
		return w.cb.Execute(func() error {
			return w.wa.Send(ctx, payload.Phone, payload.Message)
		})
	case ChannelEmail:
		subject := fmt.Sprintf("Your bill %s", payload.BillID)
		return w.mailer.SendBillLink(payload.Email, subject, payload.Message)
	default:
		return fmt.Errorf("unknown share channel %q", payload.Channel)
	}
}
