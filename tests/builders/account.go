package builders

import (
	"time"

	"github.com/google/uuid"

	"gitlab.com/onboardly/accounts-backend/internal/domain/account"
)

type AccountBuilder struct {
	args account.RehydrateAccountArgs
}

func NewAccountBuilder() *AccountBuilder {
	now := time.Now().UTC()
	return &AccountBuilder{
		args: account.RehydrateAccountArgs{
			ID:            account.NewID(),
			UserID:        uuid.NewString(),
			FirstName:     "Astrid",
			LastName:      "Lindqvist",
			DateOfBirth:   time.Date(1994, 6, 15, 0, 0, 0, 0, time.UTC),
			PhoneNumber:   "+46701234567",
			StreetAddress: "Storgatan 12",
			PostalCode:    "11455",
			City:          "Stockholm",
			CreatedAt:     now,
			UpdatedAt:     now,
		},
	}
}

func (b *AccountBuilder) WithID(id account.ID) *AccountBuilder {
	b.args.ID = id
	return b
}

func (b *AccountBuilder) WithUserID(userID string) *AccountBuilder {
	b.args.UserID = userID
	return b
}

func (b *AccountBuilder) WithName(first, last string) *AccountBuilder {
	b.args.FirstName = first
	b.args.LastName = last
	return b
}

func (b *AccountBuilder) WithPhoneNumber(phone string) *AccountBuilder {
	b.args.PhoneNumber = phone
	return b
}

func (b *AccountBuilder) WithProfileImageURL(url string) *AccountBuilder {
	b.args.ProfileImageURL = url
	return b
}

func (b *AccountBuilder) Build() *account.Account {
	return account.RehydrateAccount(b.args)
}
