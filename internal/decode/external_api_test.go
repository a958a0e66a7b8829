package decode

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/him-Tech/web2-backend-sub000/internal/domain"
)

func unmarshalRow(t *testing.T, raw string) Row {
	t.Helper()
	var row Row
	require.NoError(t, json.Unmarshal([]byte(raw), &row))
	return row
}

func TestOwnerFromGithub(t *testing.T) {
	row := unmarshalRow(t, `{
		"login": "octocat",
		"id": 583231,
		"type": "User",
		"name": "The Octocat",
		"html_url": "https://github.com/octocat",
		"avatar_url": "https://avatars.githubusercontent.com/u/583231"
	}`)
	owner, err := OwnerFromGithub(row)
	require.NoError(t, err)
	assert.Equal(t, "octocat", owner.ID.Login)
	require.NotNil(t, owner.ID.GithubID)
	assert.Equal(t, int64(583231), *owner.ID.GithubID)
	assert.Equal(t, domain.OwnerTypeUser, owner.Type)

	delete(row, "login")
	_, err = OwnerFromGithub(row)
	assert.Equal(t, "login", validationField(t, err))
}

func TestRepositoryFromGithub(t *testing.T) {
	row := unmarshalRow(t, `{
		"id": 1296269,
		"name": "hello-world",
		"html_url": "https://github.com/octocat/hello-world",
		"description": null,
		"owner": {
			"login": "octocat",
			"id": 583231,
			"type": "User",
			"html_url": "https://github.com/octocat",
			"avatar_url": "https://avatars.githubusercontent.com/u/583231"
		}
	}`)
	repo, err := RepositoryFromGithub(row)
	require.NoError(t, err)
	assert.Equal(t, "octocat/hello-world", repo.ID.String())
	assert.Nil(t, repo.Description)

	row["owner"] = "not-an-object"
	_, err = RepositoryFromGithub(row)
	assert.Equal(t, "owner", validationField(t, err))
}

func TestIssueFromGithub(t *testing.T) {
	repoID := domain.NewRepositoryID(domain.NewOwnerID("octocat", nil), "hello-world", nil)
	row := unmarshalRow(t, `{
		"id": 1,
		"number": 1347,
		"title": "Found a bug",
		"html_url": "https://github.com/octocat/hello-world/issues/1347",
		"created_at": "2011-04-22T13:33:48Z",
		"closed_at": null,
		"body": "I'm having a problem with this.",
		"user": {
			"login": "octocat",
			"id": 583231,
			"type": "User",
			"html_url": "https://github.com/octocat",
			"avatar_url": "https://avatars.githubusercontent.com/u/583231"
		}
	}`)
	issue, err := IssueFromGithub(repoID, row)
	require.NoError(t, err)
	assert.Equal(t, 1347, issue.ID.Number)
	assert.Equal(t, repoID, issue.ID.RepositoryID)
	assert.Equal(t, 2011, issue.CreatedAt.Year())
	assert.Nil(t, issue.ClosedAt)
	require.NotNil(t, issue.Body)
}

func TestProductFromStripeMetadataCoercion(t *testing.T) {
	// Stripe metadata values are always strings on the wire.
	row := unmarshalRow(t, `{
		"id": "prod_123",
		"unit_label": "DoW",
		"metadata": {"unit_amount": "100"}
	}`)
	product, err := ProductFromStripe(row)
	require.NoError(t, err)
	assert.Equal(t, domain.NewStripeProductID("prod_123"), product.ID)
	assert.Equal(t, domain.DowUnit, product.Unit)
	assert.Equal(t, int64(100), product.UnitAmount)
	assert.False(t, product.Recurring)

	row["metadata"] = map[string]any{"unit_amount": "a lot"}
	_, err = ProductFromStripe(row)
	assert.Equal(t, "unit_amount", validationField(t, err))
}

func TestInvoiceFromStripe(t *testing.T) {
	row := unmarshalRow(t, `{
		"id": "in_123",
		"customer": "cus_9",
		"paid": true,
		"currency": "usd",
		"total_excluding_tax": 50000,
		"lines": {"data": [
			{"id": "il_1", "quantity": 5, "price": {"id": "price_1", "product": "prod_123"}},
			{"id": "il_2", "quantity": 1, "price": {"id": "price_2", "product": "prod_456"}}
		]}
	}`)
	invoice, err := InvoiceFromStripe(row)
	require.NoError(t, err)
	assert.Equal(t, domain.NewStripeInvoiceID("in_123"), invoice.ID)
	require.Len(t, invoice.Lines, 2)
	assert.Equal(t, domain.NewStripeProductID("prod_123"), invoice.Lines[0].ProductID)
	assert.Equal(t, invoice.ID, invoice.Lines[0].InvoiceID)
	assert.Equal(t, invoice.CustomerID, invoice.Lines[1].CustomerID)

	// One bad line fails the whole invoice: no partial entity.
	row = unmarshalRow(t, `{
		"id": "in_123",
		"customer": "cus_9",
		"paid": true,
		"currency": "usd",
		"total_excluding_tax": 50000,
		"lines": {"data": [{"id": "il_1", "quantity": "five", "price": {"id": "price_1", "product": "prod_123"}}]}
	}`)
	invoice, err = InvoiceFromStripe(row)
	assert.Nil(t, invoice)
	assert.Equal(t, "quantity", validationField(t, err))
}

func TestCustomerFromStripe(t *testing.T) {
	userID := domain.NewUserID([16]byte{1})
	row := unmarshalRow(t, `{"id": "cus_9"}`)
	customer, err := CustomerFromStripe(userID, row)
	require.NoError(t, err)
	assert.Equal(t, domain.NewStripeCustomerID("cus_9"), customer.ID)
	assert.Equal(t, userID, customer.UserID)
}
