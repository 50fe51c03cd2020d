package identity

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/onboardly/accounts-backend/pkg/errorx"
)

func newTestServer(t *testing.T, wantPath string, reply any) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, wantPath, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "test-api-key", r.Header.Get("X-API-Key"))

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(reply))
	}))
	t.Cleanup(srv.Close)

	return srv
}

func TestClient_ExistsByEmail(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, "/v1/users/exists", ExistsReply{Exists: true, StatusCode: 200})
	client := NewClient(srv.URL, "test-api-key", time.Second)

	reply, err := client.ExistsByEmail(t.Context(), "astrid@example.com")
	require.NoError(t, err)
	assert.True(t, reply.Exists)
	assert.Equal(t, 200, reply.StatusCode)
}

func TestClient_CreateUser(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, "/v1/users", CreateReply{
		Success:    true,
		UserID:     "a3c9f3f0-7e61-4a7b-9a44-6d9e3a1f0c2b",
		StatusCode: 201,
	})
	client := NewClient(srv.URL, "test-api-key", time.Second)

	reply, err := client.CreateUser(t.Context(), "astrid@example.com", "Sup3r$ecret")
	require.NoError(t, err)
	assert.True(t, reply.Success)
	assert.Equal(t, "a3c9f3f0-7e61-4a7b-9a44-6d9e3a1f0c2b", reply.UserID)
}

func TestClient_DeleteUser(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, "/v1/users/delete", DeleteReply{Success: true, StatusCode: 200})
	client := NewClient(srv.URL, "test-api-key", time.Second)

	reply, err := client.DeleteUser(t.Context(), "a3c9f3f0-7e61-4a7b-9a44-6d9e3a1f0c2b")
	require.NoError(t, err)
	assert.True(t, reply.Success)
}

func TestClient_SetActive_SendsFlag(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, false, body["is_active"])

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(ActiveReply{Success: true, StatusCode: 200}))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, "test-api-key", time.Second)

	reply, err := client.SetActive(t.Context(), "a3c9f3f0-7e61-4a7b-9a44-6d9e3a1f0c2b", false)
	require.NoError(t, err)
	assert.True(t, reply.Success)
}

func TestClient_GetEmailByID(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, "/v1/users/email", EmailReply{Success: true, Email: "astrid@example.com"})
	client := NewClient(srv.URL, "test-api-key", time.Second)

	reply, err := client.GetEmailByID(t.Context(), "a3c9f3f0-7e61-4a7b-9a44-6d9e3a1f0c2b")
	require.NoError(t, err)
	assert.Equal(t, "astrid@example.com", reply.Email)
}

func TestClient_MarkVerified(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, "/v1/users/verify", VerifyReply{Success: true})
	client := NewClient(srv.URL, "test-api-key", time.Second)

	reply, err := client.MarkVerified(t.Context(), "astrid@example.com", "123456")
	require.NoError(t, err)
	assert.True(t, reply.Success)
}

func TestClient_ServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, "test-api-key", time.Second)

	_, err := client.ExistsByEmail(t.Context(), "astrid@example.com")
	require.Error(t, err)
	assert.True(t, errorx.IsCode(err, errorx.CodeUpstreamError))
}

func TestClient_MalformedResponse(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, "test-api-key", time.Second)

	_, err := client.GetEmailByID(t.Context(), "a3c9f3f0-7e61-4a7b-9a44-6d9e3a1f0c2b")
	require.Error(t, err)
	assert.True(t, errorx.IsCode(err, errorx.CodeUpstreamError))
}

func TestClient_Timeout(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, "test-api-key", 20*time.Millisecond)

	_, err := client.DeleteUser(t.Context(), "a3c9f3f0-7e61-4a7b-9a44-6d9e3a1f0c2b")
	require.Error(t, err)
	assert.True(t, errorx.IsCode(err, errorx.CodeUpstreamTimeout))
}

func TestClient_Unreachable(t *testing.T) {
	t.Parallel()

	client := NewClient("http://127.0.0.1:1", "test-api-key", time.Second)

	_, err := client.ExistsByEmail(t.Context(), "astrid@example.com")
	require.Error(t, err)
	assert.True(t, errorx.IsCode(err, errorx.CodeUpstreamError))
}

func TestRemoteError_StatusMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		statusCode int
		wantCode   errorx.Code
	}{
		{name: "bad request", statusCode: 400, wantCode: errorx.CodeInvalid},
		{name: "not found", statusCode: 404, wantCode: errorx.CodeNotFound},
		{name: "conflict", statusCode: 409, wantCode: errorx.CodeConflict},
		{name: "unprocessable", statusCode: 422, wantCode: errorx.CodeUpstreamError},
		{name: "server error", statusCode: 500, wantCode: errorx.CodeUpstreamError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := RemoteError(tt.statusCode, "peer said no")
			assert.Equal(t, tt.wantCode, err.Code)
			assert.Equal(t, tt.statusCode, err.HTTPCode)
			assert.Equal(t, "peer said no", err.Message)
		})
	}
}

func TestRemoteError_EmptyMessageKeepsDefault(t *testing.T) {
	t.Parallel()

	err := RemoteError(409, "")
	assert.Equal(t, errorx.CodeConflict, err.Code)
	assert.Empty(t, err.Message)
}
