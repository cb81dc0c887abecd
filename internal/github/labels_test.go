package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/alan/pr-checks/cmd"
	gogithub "github.com/google/go-github/v57/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_ListLabels_Paginated(t *testing.T) {
	client, mux := setupTestClient(t)

	mux.HandleFunc("GET /repos/test-org/test-repo/labels", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			fmt.Fprint(w, `[{"name": "not-signed"}]`)
			return
		}
		w.Header().Set("Link", fmt.Sprintf(`<http://%s/repos/test-org/test-repo/labels?page=2>; rel="next"`, r.Host))
		fmt.Fprint(w, `[{"name": "bug"}, {"name": "signed"}]`)
	})

	labels, err := client.ListLabels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"bug", "signed", "not-signed"}, labels)
}

func TestClient_ListIssueLabels(t *testing.T) {
	client, mux := setupTestClient(t)

	mux.HandleFunc("GET /repos/test-org/test-repo/issues/42/labels", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[{"name": "ready"}, {"name": "other"}]`)
	})

	labels, err := client.ListIssueLabels(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, []string{"ready", "other"}, labels)
}

func TestClient_ListIssueLabels_Empty(t *testing.T) {
	client, mux := setupTestClient(t)

	mux.HandleFunc("GET /repos/test-org/test-repo/issues/42/labels", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[]`)
	})

	labels, err := client.ListIssueLabels(context.Background(), 42)
	require.NoError(t, err)
	assert.Empty(t, labels)
}

func TestClient_CreateLabel(t *testing.T) {
	client, mux := setupTestClient(t)

	var got map[string]any
	mux.HandleFunc("POST /repos/test-org/test-repo/labels", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"name": "signed", "color": "0e8a16"}`)
	})

	err := client.CreateLabel(context.Background(), cmd.LabelSpec{Name: "signed", Color: "0e8a16", Description: "OCA signed"})
	require.NoError(t, err)

	assert.Equal(t, "signed", got["name"])
	assert.Equal(t, "0e8a16", got["color"])
	assert.Equal(t, "OCA signed", got["description"])
}

func TestClient_LabelMutationErrors(t *testing.T) {
	client, mux := setupTestClient(t)

	fail := func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"message": "Resource not accessible by integration"}`)
	}
	mux.HandleFunc("POST /repos/test-org/test-repo/labels", fail)
	mux.HandleFunc("POST /repos/test-org/test-repo/issues/42/labels", fail)
	mux.HandleFunc("DELETE /repos/test-org/test-repo/issues/42/labels/{name}", fail)

	ctx := context.Background()

	errs := map[string]error{
		"create": client.CreateLabel(ctx, cmd.LabelSpec{Name: "signed", Color: "0e8a16"}),
		"add":    client.AddLabel(ctx, 42, "signed"),
		"remove": client.RemoveLabel(ctx, 42, "signed"),
	}

	for op, err := range errs {
		require.ErrorIs(t, err, cmd.ErrLabelMutation, op)

		var apiErr *gogithub.ErrorResponse
		require.True(t, errors.As(err, &apiErr), "%s must keep the API error", op)
		assert.Equal(t, http.StatusForbidden, apiErr.Response.StatusCode)
		assert.Equal(t, "Resource not accessible by integration", apiErr.Message)
	}
}

func TestClient_AddAndRemoveLabel(t *testing.T) {
	client, mux := setupTestClient(t)

	var added []string
	var removed string
	mux.HandleFunc("POST /repos/test-org/test-repo/issues/42/labels", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&added))
		fmt.Fprint(w, `[{"name": "signed"}]`)
	})
	mux.HandleFunc("DELETE /repos/test-org/test-repo/issues/42/labels/{name}", func(w http.ResponseWriter, r *http.Request) {
		removed = r.PathValue("name")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `[]`)
	})

	ctx := context.Background()
	require.NoError(t, client.AddLabel(ctx, 42, "signed"))
	require.NoError(t, client.RemoveLabel(ctx, 42, "not-signed"))

	assert.Equal(t, []string{"signed"}, added)
	assert.Equal(t, "not-signed", removed)
}
