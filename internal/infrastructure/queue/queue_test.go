package queue

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

// The noop enqueuer stands in whenever Redis is absent or unreachable; invite
// and verification flows must still succeed with only a log line as delivery.
func TestNoopEnqueuerNeverFails(t *testing.T) {
	q := NewNoopEnqueuer()
	ctx := context.Background()

	assert.NoError(t, q.EnqueueCompanyInviteEmail(ctx, "dev@example.com", "ACME", "https://app.example.com/invite?token=x"))
	assert.NoError(t, q.EnqueueRepositoryInviteEmail(ctx, "dev@example.com", "octocat/hello-world", "https://app.example.com/invite?token=x"))
	assert.NoError(t, q.EnqueueVerificationEmail(ctx, "dev@example.com", "https://app.example.com/verify?token=x"))
}
