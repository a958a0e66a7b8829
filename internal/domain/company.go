package domain

// ContactKind discriminates the contact-person variant of a company.
type ContactKind string

const (
	ContactKindUser       ContactKind = "user"
	ContactKindThirdParty ContactKind = "third_party"
)

// ContactPersonID is a tagged reference to either a platform user or a
// third-party user. Exactly one variant is set; the storage layer keeps two
// nullable columns with an at-most-one check constraint.
type ContactPersonID struct {
	kind         ContactKind
	userID       UserID
	thirdPartyID ThirdPartyUserID
}

// NewUserContact builds a contact reference to a platform user.
func NewUserContact(id UserID) ContactPersonID {
	return ContactPersonID{kind: ContactKindUser, userID: id}
}

// NewThirdPartyContact builds a contact reference to a third-party user.
func NewThirdPartyContact(id ThirdPartyUserID) ContactPersonID {
	return ContactPersonID{kind: ContactKindThirdParty, thirdPartyID: id}
}

func (c ContactPersonID) Kind() ContactKind { return c.kind }

// UserID returns the platform user reference when Kind is ContactKindUser.
func (c ContactPersonID) UserID() (UserID, bool) {
	return c.userID, c.kind == ContactKindUser
}

// ThirdPartyUserID returns the third-party reference when Kind is ContactKindThirdParty.
func (c ContactPersonID) ThirdPartyUserID() (ThirdPartyUserID, bool) {
	return c.thirdPartyID, c.kind == ContactKindThirdParty
}

// Company is a paying organization on the platform.
type Company struct {
	ID            CompanyID
	TaxID         *string
	Name          *string
	ContactPerson *ContactPersonID
	AddressID     *CompanyAddressID
}

// Address is a postal address attached to a company.
type Address struct {
	ID         CompanyAddressID
	Name       *string
	Line1      *string
	Line2      *string
	City       *string
	State      *string
	PostalCode *string
	Country    *string
}

// CompanyUserRole is a user's role within a company.
type CompanyUserRole string

const (
	CompanyUserRoleAdmin   CompanyUserRole = "admin"
	CompanyUserRoleSuggest CompanyUserRole = "suggest"
	CompanyUserRoleRead    CompanyUserRole = "read"
)

var CompanyUserRoles = []CompanyUserRole{CompanyUserRoleAdmin, CompanyUserRoleSuggest, CompanyUserRoleRead}

func (r CompanyUserRole) Valid() bool {
	for _, v := range CompanyUserRoles {
		if r == v {
			return true
		}
	}
	return false
}
