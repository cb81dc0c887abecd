package oca

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alan/pr-checks/cmd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	client := NewClient("https://oca.example.com/api/")

	assert.Equal(t, "https://oca.example.com/api", client.baseURL)
	assert.NotNil(t, client.httpClient)
	assert.NotNil(t, client.logger)
}

func TestNewClient_WithOptions(t *testing.T) {
	customClient := &http.Client{}
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	client := NewClient("https://oca.example.com",
		WithHTTPClient(customClient),
		WithTimeout(5*time.Second),
		WithLogger(logger),
	)

	assert.Same(t, customClient, client.httpClient)
	assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
	assert.Same(t, logger, client.logger)
}

func TestClient_CheckMember(t *testing.T) {
	tests := []struct {
		name           string
		login          string
		status         int
		wantVerdict    Verdict
		wantUnexpected bool
	}{
		{name: "signed member", login: "alice", status: http.StatusOK, wantVerdict: VerdictVerified},
		{name: "unknown member", login: "ghost", status: http.StatusNotFound, wantVerdict: VerdictNotVerified},
		{name: "service unavailable", login: "ghost", status: http.StatusServiceUnavailable, wantVerdict: VerdictNotVerified, wantUnexpected: true},
		{name: "server error", login: "bob", status: http.StatusInternalServerError, wantVerdict: VerdictNotVerified, wantUnexpected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodGet {
					t.Errorf("expected GET, got %s", r.Method)
				}
				if r.URL.Path != "/api/members/status" {
					t.Errorf("unexpected path: %s", r.URL.Path)
				}
				if got := r.URL.Query().Get("username"); got != tt.login {
					t.Errorf("unexpected username: %s", got)
				}
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			var logs bytes.Buffer
			client := NewClient(server.URL+"/api", WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))

			check, err := client.CheckMember(context.Background(), tt.login)
			require.NoError(t, err, "unexpected statuses must not be transport errors")

			assert.Equal(t, tt.wantVerdict, check.Verdict)
			assert.Equal(t, tt.status, check.StatusCode)
			assert.Equal(t, tt.login, check.Login)
			if tt.wantUnexpected {
				require.ErrorIs(t, check.Warning, cmd.ErrUnexpectedVerificationStatus)
				assert.Contains(t, logs.String(), "level=WARN")
				assert.Contains(t, logs.String(), tt.login)
			} else {
				assert.NoError(t, check.Warning)
				assert.Empty(t, logs.String())
			}
		})
	}
}

func TestClient_CheckMember_EscapesLogin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "a&b=c", r.URL.Query().Get("username"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	check, err := NewClient(server.URL).CheckMember(context.Background(), "a&b=c")
	require.NoError(t, err)
	assert.Equal(t, VerdictVerified, check.Verdict)
}

func TestClient_CheckMember_BlankLogin(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	for _, login := range []string{"", "   "} {
		check, err := client.CheckMember(context.Background(), login)
		require.NoError(t, err)
		assert.Equal(t, VerdictUnknown, check.Verdict)
		assert.Zero(t, check.StatusCode)
	}

	assert.Zero(t, calls.Load(), "blank logins must not reach the service")
}

func TestClient_CheckMember_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	baseURL := server.URL
	server.Close()

	_, err := NewClient(baseURL).CheckMember(context.Background(), "alice")
	require.ErrorIs(t, err, cmd.ErrVerificationTransport)
	assert.True(t, strings.Contains(err.Error(), "alice"))
}

func TestClient_CheckMember_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	_, err := NewClient(server.URL, WithTimeout(20*time.Millisecond)).CheckMember(context.Background(), "alice")
	require.ErrorIs(t, err, cmd.ErrVerificationTransport)
}

func TestVerdict_String(t *testing.T) {
	assert.Equal(t, "verified", VerdictVerified.String())
	assert.Equal(t, "not-verified", VerdictNotVerified.String())
	assert.Equal(t, "unknown", VerdictUnknown.String())
}
