package domain

// Provider is a supported OAuth provider.
type Provider string

const ProviderGithub Provider = "github"

// Valid reports whether the provider is supported.
func (p Provider) Valid() bool { return p == ProviderGithub }

// UserRole is the platform-wide role of a user.
type UserRole string

const (
	UserRoleUser       UserRole = "user"
	UserRoleAdmin      UserRole = "admin"
	UserRoleSuperAdmin UserRole = "superadmin"
)

// UserRoles lists all valid roles, for decode-time membership checks.
var UserRoles = []UserRole{UserRoleUser, UserRoleAdmin, UserRoleSuperAdmin}

func (r UserRole) Valid() bool {
	for _, v := range UserRoles {
		if r == v {
			return true
		}
	}
	return false
}

// UserKind discriminates the User variant.
type UserKind string

const (
	UserKindLocal      UserKind = "local"
	UserKindThirdParty UserKind = "third_party"
)

// UserData is the variant payload of a User: exactly one of LocalUser or
// ThirdPartyUser. The variant is persisted as an explicit `kind` column, so
// decoding never infers it from field presence.
type UserData interface {
	Kind() UserKind
}

// LocalUser is a user registered with email and password.
type LocalUser struct {
	Name            *string
	Email           string
	IsEmailVerified bool
	HashedPassword  string
}

func (LocalUser) Kind() UserKind { return UserKindLocal }

// ThirdPartyUser is a user created through an OAuth provider. GithubOwner is
// the provider profile captured at last login.
type ThirdPartyUser struct {
	Provider    Provider
	ExternalID  ThirdPartyUserID
	Emails      []string
	GithubOwner *Owner
}

func (ThirdPartyUser) Kind() UserKind { return UserKindThirdParty }

// Email returns the primary email of the third-party profile, if any.
func (u ThirdPartyUser) Email() *string {
	if len(u.Emails) == 0 {
		return nil
	}
	return &u.Emails[0]
}

// User is a platform user.
type User struct {
	ID   UserID
	Data UserData
	Role UserRole
}

// Local returns the local variant, or nil.
func (u *User) Local() *LocalUser {
	if d, ok := u.Data.(LocalUser); ok {
		return &d
	}
	return nil
}

// ThirdParty returns the third-party variant, or nil.
func (u *User) ThirdParty() *ThirdPartyUser {
	if d, ok := u.Data.(ThirdPartyUser); ok {
		return &d
	}
	return nil
}

// Email returns the best-known email for either variant, or nil.
func (u *User) Email() *string {
	switch d := u.Data.(type) {
	case LocalUser:
		return &d.Email
	case ThirdPartyUser:
		return d.Email()
	}
	return nil
}
