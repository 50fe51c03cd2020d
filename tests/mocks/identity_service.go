package mocks

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"

	"gitlab.com/onboardly/accounts-backend/internal/adapters/services/identity"
)

type SetActiveCall struct {
	UserID string
	Active bool
}

// IdentityService is a scriptable stand-in for the remote identity peer.
// Replies default to success; tests override the reply or error fields to
// script failures.
type IdentityService struct {
	mu sync.Mutex

	ExistsReply identity.ExistsReply
	ExistsErr   error

	CreateReply identity.CreateReply
	CreateErr   error

	DeleteReply identity.DeleteReply
	DeleteErr   error

	ActiveReply identity.ActiveReply
	ActiveErr   error
	// ReactivateErr fails only SetActive(true) calls, so deactivation can
	// succeed while the rollback fails.
	ReactivateErr error

	EmailReply identity.EmailReply
	EmailErr   error

	VerifyReply identity.VerifyReply
	VerifyErr   error

	existsCalls []string
	createCalls []string
	deleteCalls []string
	activeCalls []SetActiveCall
	verifyCalls []string
}

func NewIdentityService() *IdentityService {
	return &IdentityService{
		ExistsReply: identity.ExistsReply{Exists: false, StatusCode: 200},
		CreateReply: identity.CreateReply{Success: true, UserID: uuid.NewString(), StatusCode: 201},
		DeleteReply: identity.DeleteReply{Success: true, StatusCode: 200},
		ActiveReply: identity.ActiveReply{Success: true, StatusCode: 200},
		EmailReply:  identity.EmailReply{Success: true, Email: "user@example.com"},
		VerifyReply: identity.VerifyReply{Success: true},
	}
}

func (s *IdentityService) ExistsByEmail(ctx context.Context, email string) (identity.ExistsReply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.existsCalls = append(s.existsCalls, email)
	if s.ExistsErr != nil {
		return identity.ExistsReply{}, s.ExistsErr
	}
	return s.ExistsReply, nil
}

func (s *IdentityService) CreateUser(ctx context.Context, email, password string) (identity.CreateReply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.createCalls = append(s.createCalls, email)
	if s.CreateErr != nil {
		return identity.CreateReply{}, s.CreateErr
	}
	return s.CreateReply, nil
}

func (s *IdentityService) DeleteUser(ctx context.Context, userID string) (identity.DeleteReply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deleteCalls = append(s.deleteCalls, userID)
	if s.DeleteErr != nil {
		return identity.DeleteReply{}, s.DeleteErr
	}
	return s.DeleteReply, nil
}

func (s *IdentityService) SetActive(ctx context.Context, userID string, active bool) (identity.ActiveReply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.activeCalls = append(s.activeCalls, SetActiveCall{UserID: userID, Active: active})
	if s.ActiveErr != nil {
		return identity.ActiveReply{}, s.ActiveErr
	}
	if active && s.ReactivateErr != nil {
		return identity.ActiveReply{}, s.ReactivateErr
	}
	return s.ActiveReply, nil
}

func (s *IdentityService) GetEmailByID(ctx context.Context, userID string) (identity.EmailReply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.EmailErr != nil {
		return identity.EmailReply{}, s.EmailErr
	}
	return s.EmailReply, nil
}

func (s *IdentityService) MarkVerified(ctx context.Context, email, code string) (identity.VerifyReply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.verifyCalls = append(s.verifyCalls, email)
	if s.VerifyErr != nil {
		return identity.VerifyReply{}, s.VerifyErr
	}
	return s.VerifyReply, nil
}

func (s *IdentityService) DeleteCalls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]string{}, s.deleteCalls...)
}

func (s *IdentityService) ActiveCalls() []SetActiveCall {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]SetActiveCall{}, s.activeCalls...)
}

func (s *IdentityService) VerifyCalls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]string{}, s.verifyCalls...)
}

func (s *IdentityService) AssertCreateCalled(t *testing.T, email string) {
	t.Helper()

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.createCalls {
		if e == email {
			return
		}
	}
	t.Errorf("expected CreateUser to be called for %s, calls: %v", email, s.createCalls)
}

func (s *IdentityService) AssertCreateNotCalled(t *testing.T) {
	t.Helper()

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.createCalls) != 0 {
		t.Errorf("expected CreateUser to not be called, calls: %v", s.createCalls)
	}
}

func (s *IdentityService) AssertDeleteCallCount(t *testing.T, count int) {
	t.Helper()

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.deleteCalls) != count {
		t.Errorf("expected DeleteUser to be called %d times, got %d: %v", count, len(s.deleteCalls), s.deleteCalls)
	}
}
