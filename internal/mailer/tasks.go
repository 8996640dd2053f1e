package mailer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const TypeInvitationDeliver = "invitation:deliver"

// InvitationPayload carries everything delivery needs. The raw token only
// exists at creation time (the store keeps a hash), so it rides along here.
type InvitationPayload struct {
	Email     string    `json:"email"`
	BoxName   string    `json:"box_name"`
	Role      string    `json:"role"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Enqueuer pushes invitation deliveries onto the Redis-backed queue.
type Enqueuer struct {
	client *asynq.Client
}

func NewEnqueuer(redisURL string) (*Enqueuer, error) {
	opt, err := asynq.ParseRedisURI(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return &Enqueuer{client: asynq.NewClient(opt)}, nil
}

func (e *Enqueuer) EnqueueInvitation(ctx context.Context, p InvitationPayload) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal invitation payload: %w", err)
	}
	task := asynq.NewTask(TypeInvitationDeliver, payload,
		asynq.MaxRetry(5),
		asynq.Timeout(30*time.Second),
	)
	if _, err := e.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("failed to enqueue invitation delivery: %w", err)
	}
	return nil
}

func (e *Enqueuer) Close() error {
	return e.client.Close()
}
