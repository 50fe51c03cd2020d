package account

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"gitlab.com/onboardly/accounts-backend/internal/domain/event"
)

// PlaceholderImageURL is stored whenever no profile image was provided.
const PlaceholderImageURL = "/images/standard-user-avatar.jpg"

type ID uuid.UUID

func NewID() ID {
	return ID(uuid.New())
}

func ParseID(s string) (ID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return ID{}, err
	}
	return ID(id), nil
}

func (id ID) String() string {
	return uuid.UUID(id).String()
}

func (id ID) IsZero() bool {
	return uuid.UUID(id) == uuid.Nil
}

// Account is the locally owned profile record. UserID references the remote
// identity record; a persisted account must never exist without one.
type Account struct {
	event.Recorder
	id              ID
	userID          string
	firstName       string
	lastName        string
	dateOfBirth     time.Time
	profileImageURL string
	phoneNumber     string
	streetAddress   string
	postalCode      string
	city            string
	createdAt       time.Time
	updatedAt       time.Time
}

type NewAccountArgs struct {
	UserID          string
	FirstName       string
	LastName        string
	DateOfBirth     time.Time
	ProfileImageURL string
	PhoneNumber     string
	StreetAddress   string
	PostalCode      string
	City            string
}

func NewAccount(args NewAccountArgs) (*Account, error) {
	if args.UserID == "" {
		return nil, ErrMissingUserID
	}
	if args.FirstName == "" || args.LastName == "" {
		return nil, errors.New("first and last name are required")
	}
	if args.DateOfBirth.IsZero() {
		return nil, errors.New("date of birth is required")
	}

	now := time.Now().UTC()

	a := &Account{
		id:              NewID(),
		userID:          args.UserID,
		firstName:       args.FirstName,
		lastName:        args.LastName,
		dateOfBirth:     args.DateOfBirth,
		profileImageURL: imageURLOrPlaceholder(args.ProfileImageURL),
		phoneNumber:     args.PhoneNumber,
		streetAddress:   args.StreetAddress,
		postalCode:      args.PostalCode,
		city:            args.City,
		createdAt:       now,
		updatedAt:       now,
	}

	a.AddEvent(&Created{
		Header:    event.NewEventHeader(),
		AccountID: a.id,
		UserID:    a.userID,
	})

	return a, nil
}

type RehydrateAccountArgs struct {
	ID              ID
	UserID          string
	FirstName       string
	LastName        string
	DateOfBirth     time.Time
	ProfileImageURL string
	PhoneNumber     string
	StreetAddress   string
	PostalCode      string
	City            string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func RehydrateAccount(args RehydrateAccountArgs) *Account {
	return &Account{
		id:              args.ID,
		userID:          args.UserID,
		firstName:       args.FirstName,
		lastName:        args.LastName,
		dateOfBirth:     args.DateOfBirth,
		profileImageURL: imageURLOrPlaceholder(args.ProfileImageURL),
		phoneNumber:     args.PhoneNumber,
		streetAddress:   args.StreetAddress,
		postalCode:      args.PostalCode,
		city:            args.City,
		createdAt:       args.CreatedAt,
		updatedAt:       args.UpdatedAt,
	}
}

// Changeset is a partial field overwrite. Pointer fields are applied only
// when set; value fields always overwrite.
type Changeset struct {
	FirstName       string
	LastName        string
	DateOfBirth     time.Time
	StreetAddress   string
	PostalCode      string
	City            string
	PhoneNumber     *string
	ProfileImageURL *string
}

func (a *Account) ApplyChange(c Changeset) error {
	if a == nil {
		return errors.New("account is nil")
	}
	if c.FirstName == "" || c.LastName == "" {
		return errors.New("first and last name are required")
	}
	if c.DateOfBirth.IsZero() {
		return errors.New("date of birth is required")
	}

	a.firstName = c.FirstName
	a.lastName = c.LastName
	a.dateOfBirth = c.DateOfBirth
	a.streetAddress = c.StreetAddress
	a.postalCode = c.PostalCode
	a.city = c.City

	if c.PhoneNumber != nil {
		a.phoneNumber = *c.PhoneNumber
	}
	if c.ProfileImageURL != nil {
		a.profileImageURL = imageURLOrPlaceholder(*c.ProfileImageURL)
	}

	a.updatedAt = time.Now().UTC()

	a.AddEvent(&Updated{
		Header:    event.NewEventHeader(),
		AccountID: a.id,
		UserID:    a.userID,
	})

	return nil
}

func (a *Account) MarkDeleted() {
	if a == nil {
		return
	}
	a.AddEvent(&Deleted{
		Header:    event.NewEventHeader(),
		AccountID: a.id,
		UserID:    a.userID,
	})
}

func (a *Account) ID() ID {
	if a == nil {
		return ID{}
	}
	return a.id
}

func (a *Account) UserID() string {
	if a == nil {
		return ""
	}
	return a.userID
}

func (a *Account) FirstName() string {
	if a == nil {
		return ""
	}
	return a.firstName
}

func (a *Account) LastName() string {
	if a == nil {
		return ""
	}
	return a.lastName
}

func (a *Account) DateOfBirth() time.Time {
	if a == nil {
		return time.Time{}
	}
	return a.dateOfBirth
}

func (a *Account) ProfileImageURL() string {
	if a == nil {
		return ""
	}
	return a.profileImageURL
}

func (a *Account) PhoneNumber() string {
	if a == nil {
		return ""
	}
	return a.phoneNumber
}

func (a *Account) StreetAddress() string {
	if a == nil {
		return ""
	}
	return a.streetAddress
}

func (a *Account) PostalCode() string {
	if a == nil {
		return ""
	}
	return a.postalCode
}

func (a *Account) City() string {
	if a == nil {
		return ""
	}
	return a.city
}

func (a *Account) CreatedAt() time.Time {
	if a == nil {
		return time.Time{}
	}
	return a.createdAt
}

func (a *Account) UpdatedAt() time.Time {
	if a == nil {
		return time.Time{}
	}
	return a.updatedAt
}

func imageURLOrPlaceholder(url string) string {
	if url == "" {
		return PlaceholderImageURL
	}
	return url
}
