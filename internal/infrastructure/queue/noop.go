package queue

import (
	"context"

	"github.com/him-Tech/web2-backend-sub000/internal/application/ports"
)

// NoopEnqueuer is a no-op enqueuer when Redis/Asynq is not configured.
type NoopEnqueuer struct{}

var _ ports.TaskEnqueuer = (*NoopEnqueuer)(nil)

func NewNoopEnqueuer() *NoopEnqueuer {
	return &NoopEnqueuer{}
}

func (q *NoopEnqueuer) EnqueueCompanyInviteEmail(ctx context.Context, email, companyName, inviteURL string) error {
	return nil
}

func (q *NoopEnqueuer) EnqueueRepositoryInviteEmail(ctx context.Context, email, repository, inviteURL string) error {
	return nil
}

func (q *NoopEnqueuer) EnqueueVerificationEmail(ctx context.Context, email, verifyURL string) error {
	return nil
}
