package ports

import "context"

// TaskEnqueuer enqueues async mail tasks. Delivery itself is out of process.
type TaskEnqueuer interface {
	EnqueueCompanyInviteEmail(ctx context.Context, email, companyName, inviteURL string) error
	EnqueueRepositoryInviteEmail(ctx context.Context, email, repository, inviteURL string) error
	EnqueueVerificationEmail(ctx context.Context, email, verifyURL string) error
}
