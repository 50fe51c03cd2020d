package mocks

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"gitlab.com/onboardly/accounts-backend/internal/domain/account"
	"gitlab.com/onboardly/accounts-backend/pkg/errorx"
)

type AccountRepo struct {
	*EventRepo
	dbbyID     map[account.ID]*account.Account
	dbbyUserID map[string]*account.Account
	mu         sync.Mutex

	// Injected failures for saga tests. When set, the matching method fails
	// with the given error without touching the maps.
	SaveErr   error
	UpdateErr error
	DeleteErr error
}

func NewAccountRepo() *AccountRepo {
	return &AccountRepo{
		EventRepo:  NewEventRepo(),
		dbbyID:     make(map[account.ID]*account.Account),
		dbbyUserID: make(map[string]*account.Account),
	}
}

func (r *AccountRepo) SaveAccount(ctx context.Context, a *account.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a == nil {
		return errors.New("account cannot be nil")
	}
	if r.SaveErr != nil {
		return r.SaveErr
	}

	if _, exists := r.dbbyID[a.ID()]; exists {
		return errorx.NewDuplicateEntry()
	}
	if _, exists := r.dbbyUserID[a.UserID()]; exists {
		return errorx.NewDuplicateEntry()
	}

	r.dbbyID[a.ID()] = a
	r.dbbyUserID[a.UserID()] = a

	r.appendEvents(a.GetUncommittedEvents()...)
	a.MarkEventsAsCommitted()

	return nil
}

func (r *AccountRepo) GetAccountByID(ctx context.Context, id account.ID) (*account.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a, exists := r.dbbyID[id]; exists {
		return a, nil
	}
	return nil, errorx.NewResourceNotFound("account")
}

func (r *AccountRepo) GetAccountByUserID(ctx context.Context, userID string) (*account.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a, exists := r.dbbyUserID[userID]; exists {
		return a, nil
	}
	return nil, errorx.NewResourceNotFound("account")
}

func (r *AccountRepo) UpdateAccount(ctx context.Context, id account.ID, fn func(context.Context, *account.Account) error) error {
	if fn == nil {
		return errors.New("update function cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.UpdateErr != nil {
		return r.UpdateErr
	}

	a, exists := r.dbbyID[id]
	if !exists {
		return errorx.NewResourceNotFound("account")
	}

	if err := fn(ctx, a); err != nil {
		return fmt.Errorf("failed to apply update function: %w", err)
	}

	r.dbbyID[id] = a
	r.dbbyUserID[a.UserID()] = a

	r.appendEvents(a.GetUncommittedEvents()...)
	a.MarkEventsAsCommitted()

	return nil
}

func (r *AccountRepo) DeleteAccount(ctx context.Context, a *account.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a == nil {
		return errors.New("account cannot be nil")
	}
	if r.DeleteErr != nil {
		return r.DeleteErr
	}

	if _, exists := r.dbbyID[a.ID()]; !exists {
		return errorx.NewResourceNotFound("account")
	}

	delete(r.dbbyID, a.ID())
	delete(r.dbbyUserID, a.UserID())

	r.appendEvents(a.GetUncommittedEvents()...)
	a.MarkEventsAsCommitted()

	return nil
}

func (r *AccountRepo) SeedAccount(t *testing.T, a *account.Account) {
	t.Helper()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.dbbyID[a.ID()]; exists {
		t.Fatalf("account with id %s already exists", a.ID())
	}

	r.dbbyID[a.ID()] = a
	r.dbbyUserID[a.UserID()] = a
}

func (r *AccountRepo) AssertAccountExistsByUserID(t *testing.T, userID string) *account.Account {
	t.Helper()

	r.mu.Lock()
	defer r.mu.Unlock()

	a, exists := r.dbbyUserID[userID]
	if !exists {
		t.Errorf("expected account with user id %s to exist, but it does not", userID)
		return nil
	}
	return a
}

func (r *AccountRepo) AssertAccountNotExistsByID(t *testing.T, id account.ID) *AccountRepo {
	t.Helper()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.dbbyID[id]; exists {
		t.Errorf("expected account with id %s to not exist, but it does", id)
	}
	return r
}

func (r *AccountRepo) AssertAccountExistsByID(t *testing.T, id account.ID) *account.Account {
	t.Helper()

	r.mu.Lock()
	defer r.mu.Unlock()

	a, exists := r.dbbyID[id]
	if !exists {
		t.Errorf("expected account with id %s to exist, but it does not", id)
		return nil
	}
	return a
}

func (r *AccountRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.dbbyID)
}
