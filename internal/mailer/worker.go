package mailer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
)

// Worker consumes the delivery queue in-process alongside the API server.
type Worker struct {
	srv     *asynq.Server
	mux     *asynq.ServeMux
	sender  *SMTPSender
	baseURL string
}

func NewWorker(redisURL string, sender *SMTPSender, baseURL string) (*Worker, error) {
	opt, err := asynq.ParseRedisURI(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	w := &Worker{
		srv: asynq.NewServer(opt, asynq.Config{
			Concurrency: 5,
		}),
		mux:     asynq.NewServeMux(),
		sender:  sender,
		baseURL: baseURL,
	}
	w.mux.HandleFunc(TypeInvitationDeliver, w.handleInvitationDeliver)
	return w, nil
}

func (w *Worker) Start() error {
	return w.srv.Start(w.mux)
}

func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}

func (w *Worker) handleInvitationDeliver(ctx context.Context, t *asynq.Task) error {
	var p InvitationPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal invitation payload: %w", err)
	}

	inviteURL := w.baseURL + "/invite/" + p.Token
	subject, body, err := RenderInvitation(p.BoxName, p.Role, inviteURL, p.ExpiresAt)
	if err != nil {
		return err
	}

	if err := w.sender.Send(p.Email, subject, body); err != nil {
		return err
	}

	slog.Info("invitation mail delivered", "email", p.Email, "box", p.BoxName)
	return nil
}
