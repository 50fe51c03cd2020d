package postgres

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"gitlab.com/onboardly/accounts-backend/internal/domain/account"
)

type AccountDTO struct {
	ID              uuid.UUID
	UserID          string
	FirstName       string
	LastName        string
	DateOfBirth     time.Time
	ProfileImageURL string
	PhoneNumber     pgtype.Text
	StreetAddress   string
	PostalCode      string
	City            string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func DomainToAccountDTO(a *account.Account) AccountDTO {
	return AccountDTO{
		ID:              uuid.UUID(a.ID()),
		UserID:          a.UserID(),
		FirstName:       a.FirstName(),
		LastName:        a.LastName(),
		DateOfBirth:     a.DateOfBirth(),
		ProfileImageURL: a.ProfileImageURL(),
		PhoneNumber:     textOrNull(a.PhoneNumber()),
		StreetAddress:   a.StreetAddress(),
		PostalCode:      a.PostalCode(),
		City:            a.City(),
		CreatedAt:       a.CreatedAt(),
		UpdatedAt:       a.UpdatedAt(),
	}
}

func AccountToDomain(dto AccountDTO) *account.Account {
	return account.RehydrateAccount(account.RehydrateAccountArgs{
		ID:              account.ID(dto.ID),
		UserID:          dto.UserID,
		FirstName:       dto.FirstName,
		LastName:        dto.LastName,
		DateOfBirth:     dto.DateOfBirth,
		ProfileImageURL: dto.ProfileImageURL,
		PhoneNumber:     dto.PhoneNumber.String,
		StreetAddress:   dto.StreetAddress,
		PostalCode:      dto.PostalCode,
		City:            dto.City,
		CreatedAt:       dto.CreatedAt,
		UpdatedAt:       dto.UpdatedAt,
	})
}

func textOrNull(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}
