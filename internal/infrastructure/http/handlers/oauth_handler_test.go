package handlers

import (
	"testing"

	"github.com/markbates/goth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGothEmailsPrivateEmailIsEmptyNotNil(t *testing.T) {
	emails := gothEmails(goth.User{NickName: "ghost", UserID: "42"})
	require.NotNil(t, emails)
	assert.Empty(t, emails)
}

func TestGothEmails(t *testing.T) {
	assert.Equal(t, []string{"dev@example.com"}, gothEmails(goth.User{Email: "dev@example.com"}))
}

func TestGothOwnerRequiresNumericAccountID(t *testing.T) {
	assert.Nil(t, gothOwner(goth.User{NickName: "ghost", UserID: "not-a-number"}))
	assert.Nil(t, gothOwner(goth.User{UserID: "42"}))

	owner := gothOwner(goth.User{NickName: "ghost", UserID: "42", AvatarURL: "https://avatars.example.com/ghost"})
	require.NotNil(t, owner)
	assert.Equal(t, "ghost", owner.ID.Login)
	require.NotNil(t, owner.ID.GithubID)
	assert.EqualValues(t, 42, *owner.ID.GithubID)
}
