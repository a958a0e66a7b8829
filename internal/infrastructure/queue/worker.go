package queue

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

type companyInvitePayload struct {
	Email       string `json:"email"`
	CompanyName string `json:"company_name"`
	InviteURL   string `json:"invite_url"`
}

type repositoryInvitePayload struct {
	Email      string `json:"email"`
	Repository string `json:"repository"`
	InviteURL  string `json:"invite_url"`
}

type verificationPayload struct {
	Email     string `json:"email"`
	VerifyURL string `json:"verify_url"`
}

// Worker runs Asynq task handlers for outbound email.
type Worker struct {
	srv *asynq.Server
	mux *asynq.ServeMux
	log zerolog.Logger
}

// NewWorker creates an Asynq server and registers handlers. Call Run() to start.
func NewWorker(redisOpt asynq.RedisClientOpt, log zerolog.Logger) *Worker {
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 2,
		LogLevel:    asynq.InfoLevel,
	})
	mux := asynq.NewServeMux()
	w := &Worker{srv: srv, mux: mux, log: log}
	mux.HandleFunc(TypeCompanyInviteEmail, w.handleCompanyInvite)
	mux.HandleFunc(TypeRepositoryInviteEmail, w.handleRepositoryInvite)
	mux.HandleFunc(TypeVerificationEmail, w.handleVerification)
	return w
}

func (w *Worker) handleCompanyInvite(ctx context.Context, t *asynq.Task) error {
	var p companyInvitePayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		w.log.Error().Err(err).Msg("company invite task payload invalid")
		return err
	}
	// Dev: log the link; production would send email via SMTP/sendgrid etc.
	w.log.Info().
		Str("email", p.Email).
		Str("company_name", p.CompanyName).
		Str("invite_url", p.InviteURL).
		Msg("company invite email (log only; configure SMTP for real email)")
	return nil
}

func (w *Worker) handleRepositoryInvite(ctx context.Context, t *asynq.Task) error {
	var p repositoryInvitePayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		w.log.Error().Err(err).Msg("repository invite task payload invalid")
		return err
	}
	w.log.Info().
		Str("email", p.Email).
		Str("repository", p.Repository).
		Str("invite_url", p.InviteURL).
		Msg("repository invite email (log only; configure SMTP for real email)")
	return nil
}

func (w *Worker) handleVerification(ctx context.Context, t *asynq.Task) error {
	var p verificationPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		w.log.Error().Err(err).Msg("verification task payload invalid")
		return err
	}
	w.log.Info().
		Str("email", p.Email).
		Str("verify_url", p.VerifyURL).
		Msg("verification email (log only; configure SMTP for real email)")
	return nil
}

// Run blocks until shutdown. Use Shutdown for graceful stop.
func (w *Worker) Run() error {
	return w.srv.Run(w.mux)
}

// Shutdown stops the worker.
func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}
