package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"gitlab.com/onboardly/accounts-backend/internal/domain/account"
	"gitlab.com/onboardly/accounts-backend/pkg/errorx"
	"gitlab.com/onboardly/accounts-backend/pkg/otelx"
	"gitlab.com/onboardly/accounts-backend/pkg/postgres"
	"gitlab.com/onboardly/accounts-backend/pkg/watermillx"
)

var (
	tracer = otel.Tracer("accounts/internal/adapters/repos/postgres")
	logger = otelslog.NewLogger("accounts/internal/adapters/repos/postgres")
)

const insertAccountQuery = `
	INSERT INTO accounts (id, user_id, first_name, last_name, date_of_birth, profile_image_url,
		phone_number, street_address, postal_code, city, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);`

const selectAccountQuery = `
	SELECT id, user_id, first_name, last_name, date_of_birth, profile_image_url,
		phone_number, street_address, postal_code, city, created_at, updated_at
	FROM accounts `

const updateAccountQuery = `
	UPDATE accounts
	SET first_name = $2, last_name = $3, date_of_birth = $4, profile_image_url = $5,
		phone_number = $6, street_address = $7, postal_code = $8, city = $9, updated_at = $10
	WHERE id = $1;`

type AccountRepo struct {
	tracer  trace.Tracer
	logger  *slog.Logger
	pool    *pgxpool.Pool
	wlogger watermill.LoggerAdapter
}

// NewAccountRepo creates a new instance of AccountRepo.
//
// WARNING: panics if pool is nil
func NewAccountRepo(pool *pgxpool.Pool, wlogger watermill.LoggerAdapter) *AccountRepo {
	if pool == nil {
		panic("pgxpool.Pool cannot be nil")
	}
	if wlogger == nil {
		wlogger = watermill.NewSlogLogger(logger)
	}

	return &AccountRepo{
		tracer:  tracer,
		logger:  logger,
		pool:    pool,
		wlogger: wlogger,
	}
}

func (r *AccountRepo) SaveAccount(ctx context.Context, a *account.Account) error {
	const op = "postgres.AccountRepo.SaveAccount"
	ctx, span := r.tracer.Start(ctx, "AccountRepo.SaveAccount")
	defer span.End()

	err := postgres.WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		dto := DomainToAccountDTO(a)
		res, err := tx.Exec(ctx, insertAccountQuery,
			dto.ID,
			dto.UserID,
			dto.FirstName,
			dto.LastName,
			dto.DateOfBirth,
			dto.ProfileImageURL,
			dto.PhoneNumber,
			dto.StreetAddress,
			dto.PostalCode,
			dto.City,
			dto.CreatedAt,
			dto.UpdatedAt,
		)
		if err != nil {
			otelx.RecordSpanError(span, err, "failed to insert account")
			return errorx.Wrap(mapPgError(err), op)
		}
		if res.RowsAffected() == 0 {
			otelx.RecordSpanError(span, postgres.ErrNoRowsAffected, "no rows affected while inserting account")
			return errorx.Wrap(postgres.ErrNoRowsAffected, op)
		}

		events := a.GetUncommittedEvents()
		if len(events) > 0 {
			if err := watermillx.Publish(ctx, tx, r.wlogger, events...); err != nil {
				otelx.RecordSpanError(span, err, "failed to publish events")
				return errorx.Wrap(err, op)
			}
		}
		return nil
	})
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to execute transaction")
		return err
	}

	a.MarkEventsAsCommitted()

	return nil
}

func (r *AccountRepo) GetAccountByID(ctx context.Context, id account.ID) (*account.Account, error) {
	const op = "postgres.AccountRepo.GetAccountByID"
	ctx, span := r.tracer.Start(ctx, "AccountRepo.GetAccountByID")
	defer span.End()

	return r.getAccount(ctx, span, op, selectAccountQuery+`WHERE id = $1;`, id.String())
}

func (r *AccountRepo) GetAccountByUserID(ctx context.Context, userID string) (*account.Account, error) {
	const op = "postgres.AccountRepo.GetAccountByUserID"
	ctx, span := r.tracer.Start(ctx, "AccountRepo.GetAccountByUserID")
	defer span.End()

	return r.getAccount(ctx, span, op, selectAccountQuery+`WHERE user_id = $1;`, userID)
}

func (r *AccountRepo) getAccount(ctx context.Context, span trace.Span, op, query string, arg any) (*account.Account, error) {
	var dto AccountDTO
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&dto.ID, &dto.UserID, &dto.FirstName, &dto.LastName, &dto.DateOfBirth,
		&dto.ProfileImageURL, &dto.PhoneNumber, &dto.StreetAddress, &dto.PostalCode,
		&dto.City, &dto.CreatedAt, &dto.UpdatedAt,
	)
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to get account")
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorx.NewResourceNotFound("account").WithCause(err, op)
		}
		return nil, errorx.Wrap(err, op)
	}

	return AccountToDomain(dto), nil
}

// UpdateAccount loads the account, applies fn to it and writes it back, all in
// one transaction. Events raised by fn are published within the same
// transaction.
func (r *AccountRepo) UpdateAccount(
	ctx context.Context,
	id account.ID,
	fn func(ctx context.Context, a *account.Account) error,
) error {
	const op = "postgres.AccountRepo.UpdateAccount"
	ctx, span := r.tracer.Start(ctx, "AccountRepo.UpdateAccount")
	defer span.End()

	if fn == nil {
		otelx.RecordSpanError(span, postgres.ErrNilFunc, "update function cannot be nil")
		return postgres.ErrNilFunc
	}

	err := postgres.WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		var dto AccountDTO
		err := tx.QueryRow(ctx, selectAccountQuery+`WHERE id = $1 FOR UPDATE;`, id.String()).Scan(
			&dto.ID, &dto.UserID, &dto.FirstName, &dto.LastName, &dto.DateOfBirth,
			&dto.ProfileImageURL, &dto.PhoneNumber, &dto.StreetAddress, &dto.PostalCode,
			&dto.City, &dto.CreatedAt, &dto.UpdatedAt,
		)
		if err != nil {
			otelx.RecordSpanError(span, err, "failed to get account by id")
			if errors.Is(err, pgx.ErrNoRows) {
				return errorx.NewResourceNotFound("account").WithCause(err, op)
			}
			return errorx.Wrap(err, op)
		}

		a := AccountToDomain(dto)

		if err := fn(ctx, a); err != nil {
			otelx.RecordSpanError(span, err, "update function returned an error")
			return errorx.Wrap(err, op)
		}

		dto = DomainToAccountDTO(a)

		res, err := tx.Exec(ctx, updateAccountQuery,
			dto.ID,
			dto.FirstName,
			dto.LastName,
			dto.DateOfBirth,
			dto.ProfileImageURL,
			dto.PhoneNumber,
			dto.StreetAddress,
			dto.PostalCode,
			dto.City,
			dto.UpdatedAt,
		)
		if err != nil {
			otelx.RecordSpanError(span, err, "failed to update account")
			return errorx.Wrap(mapPgError(err), op)
		}
		if res.RowsAffected() == 0 {
			otelx.RecordSpanError(span, postgres.ErrNoRowsAffected, "no rows affected while updating account")
			return errorx.Wrap(postgres.ErrNoRowsAffected, op)
		}

		events := a.GetUncommittedEvents()
		if len(events) > 0 {
			if err := watermillx.Publish(ctx, tx, r.wlogger, events...); err != nil {
				otelx.RecordSpanError(span, err, "failed to publish events")
				return errorx.Wrap(err, op)
			}
		}

		return nil
	})
	if err != nil {
		otelx.RecordSpanError(span, err, "transaction to update account failed")
		return err
	}

	return nil
}

func (r *AccountRepo) DeleteAccount(ctx context.Context, a *account.Account) error {
	const op = "postgres.AccountRepo.DeleteAccount"
	ctx, span := r.tracer.Start(ctx, "AccountRepo.DeleteAccount")
	defer span.End()

	err := postgres.WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		res, err := tx.Exec(ctx, `DELETE FROM accounts WHERE id = $1;`, a.ID().String())
		if err != nil {
			otelx.RecordSpanError(span, err, "failed to delete account")
			return errorx.Wrap(err, op)
		}
		if res.RowsAffected() == 0 {
			otelx.RecordSpanError(span, postgres.ErrNoRowsAffected, "no rows affected while deleting account")
			return errorx.NewResourceNotFound("account").WithCause(postgres.ErrNoRowsAffected, op)
		}

		events := a.GetUncommittedEvents()
		if len(events) > 0 {
			if err := watermillx.Publish(ctx, tx, r.wlogger, events...); err != nil {
				otelx.RecordSpanError(span, err, "failed to publish events")
				return errorx.Wrap(err, op)
			}
		}
		return nil
	})
	if err != nil {
		otelx.RecordSpanError(span, err, "transaction to delete account failed")
		return err
	}

	a.MarkEventsAsCommitted()

	return nil
}
