package queue

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/him-Tech/web2-backend-sub000/internal/application/ports"
)

const (
	TypeCompanyInviteEmail    = "email:company_invite"
	TypeRepositoryInviteEmail = "email:repository_invite"
	TypeVerificationEmail     = "email:verification"
)

type AsynqEnqueuer struct {
	client *asynq.Client
	log    zerolog.Logger
}

var _ ports.TaskEnqueuer = (*AsynqEnqueuer)(nil)

func NewAsynqEnqueuer(redisOpt asynq.RedisClientOpt, log zerolog.Logger) *AsynqEnqueuer {
	return &AsynqEnqueuer{client: asynq.NewClient(redisOpt), log: log}
}

func (q *AsynqEnqueuer) Close() error {
	return q.client.Close()
}

func (q *AsynqEnqueuer) EnqueueCompanyInviteEmail(ctx context.Context, email, companyName, inviteURL string) error {
	payload, _ := json.Marshal(map[string]string{
		"email":        email,
		"company_name": companyName,
		"invite_url":   inviteURL,
	})
	return q.enqueue(ctx, TypeCompanyInviteEmail, payload, email)
}

func (q *AsynqEnqueuer) EnqueueRepositoryInviteEmail(ctx context.Context, email, repository, inviteURL string) error {
	payload, _ := json.Marshal(map[string]string{
		"email":      email,
		"repository": repository,
		"invite_url": inviteURL,
	})
	return q.enqueue(ctx, TypeRepositoryInviteEmail, payload, email)
}

func (q *AsynqEnqueuer) EnqueueVerificationEmail(ctx context.Context, email, verifyURL string) error {
	payload, _ := json.Marshal(map[string]string{
		"email":      email,
		"verify_url": verifyURL,
	})
	return q.enqueue(ctx, TypeVerificationEmail, payload, email)
}

func (q *AsynqEnqueuer) enqueue(ctx context.Context, taskType string, payload []byte, email string) error {
	_, err := q.client.EnqueueContext(ctx, asynq.NewTask(taskType, payload))
	if err != nil {
		q.log.Warn().Err(err).Str("task", taskType).Str("email", email).Msg("enqueue email task failed")
		return err
	}
	return nil
}
