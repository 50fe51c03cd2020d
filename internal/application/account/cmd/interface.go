package cmd

import (
	"context"
	"io"

	"gitlab.com/onboardly/accounts-backend/internal/adapters/services/identity"
	"gitlab.com/onboardly/accounts-backend/internal/domain/account"
)

type Repo interface {
	SaveAccount(ctx context.Context, a *account.Account) error
	GetAccountByID(ctx context.Context, id account.ID) (*account.Account, error)
	GetAccountByUserID(ctx context.Context, userID string) (*account.Account, error)
	UpdateAccount(ctx context.Context, id account.ID, fn func(context.Context, *account.Account) error) error
	DeleteAccount(ctx context.Context, a *account.Account) error
}

type IdentityService interface {
	ExistsByEmail(ctx context.Context, email string) (identity.ExistsReply, error)
	CreateUser(ctx context.Context, email, password string) (identity.CreateReply, error)
	DeleteUser(ctx context.Context, userID string) (identity.DeleteReply, error)
	SetActive(ctx context.Context, userID string, active bool) (identity.ActiveReply, error)
}

type ImageStorage interface {
	UploadFile(ctx context.Context, key string, file io.Reader, contentType string) error
	DeleteFile(ctx context.Context, key string) error
}
