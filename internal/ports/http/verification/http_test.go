package verificationhttp

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/onboardly/accounts-backend/internal/adapters/cache"
	verificationapp "gitlab.com/onboardly/accounts-backend/internal/application/verification"
	"gitlab.com/onboardly/accounts-backend/pkg/env"
	"gitlab.com/onboardly/accounts-backend/pkg/errorx"
	"gitlab.com/onboardly/accounts-backend/pkg/httpx"
	"gitlab.com/onboardly/accounts-backend/tests/mocks"
)

type HTTPSuite struct {
	Router        chi.Router
	Cache         *cache.TTLCache
	MockPublisher *mocks.Publisher
	MockIdentity  *mocks.IdentityService
}

func NewHTTPSuite() *HTTPSuite {
	codeCache := cache.NewTTLCache(0)
	publisher := mocks.NewPublisher()
	mockIdentity := mocks.NewIdentityService()

	app := verificationapp.NewApp(verificationapp.Args{
		Mode:      env.Test,
		Cache:     codeCache,
		Publisher: publisher,
		Verifier:  mockIdentity,
	})

	h := NewHTTP(Args{
		App:        app,
		Errhandler: httpx.NewErrorHandler(),
	})

	router := chi.NewRouter()
	h.Route(router)

	return &HTTPSuite{
		Router:        router,
		Cache:         codeCache,
		MockPublisher: publisher,
		MockIdentity:  mockIdentity,
	}
}

func (s *HTTPSuite) post(t *testing.T, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	return w
}

func TestSendCode_HappyPath(t *testing.T) {
	t.Parallel()

	s := NewHTTPSuite()

	w := s.post(t, "/v1/verifications/send", `{"email":"astrid@example.com"}`)
	assert.Equal(t, http.StatusAccepted, w.Code)

	s.MockPublisher.AssertPublishedCount(t, 1)
	_, found := s.Cache.Get("astrid@example.com")
	assert.True(t, found)
}

func TestSendCode_MalformedJSON_ShouldReportClientError(t *testing.T) {
	t.Parallel()

	s := NewHTTPSuite()

	w := s.post(t, "/v1/verifications/send", `{"email":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), errorx.CodeMalformedJSON.String())

	s.MockPublisher.AssertPublishedCount(t, 0)
}

func TestSendCode_InvalidEmail(t *testing.T) {
	t.Parallel()

	s := NewHTTPSuite()

	w := s.post(t, "/v1/verifications/send", `{"email":"not-an-email"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerify_HappyPath(t *testing.T) {
	t.Parallel()

	s := NewHTTPSuite()
	s.Cache.Set("astrid@example.com", "123456", time.Minute)

	w := s.post(t, "/v1/verifications/verify", `{"email":"astrid@example.com","verification_code":"123456"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, s.MockIdentity.VerifyCalls(), 1)
}

func TestVerify_MalformedJSON_ShouldReportClientError(t *testing.T) {
	t.Parallel()

	s := NewHTTPSuite()

	w := s.post(t, "/v1/verifications/verify", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), errorx.CodeMalformedJSON.String())
}

func TestVerify_NonDigitCode(t *testing.T) {
	t.Parallel()

	s := NewHTTPSuite()

	w := s.post(t, "/v1/verifications/verify", `{"email":"astrid@example.com","verification_code":"abc123"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, s.MockIdentity.VerifyCalls())
}
