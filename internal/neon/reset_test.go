package neon

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeResetAPI struct {
	branches   []Branch
	resetPaths []string
	resetBody  string
}

func (f *fakeResetAPI) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /projects/test-project/branches", func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("search")
		var matches []Branch
		for _, branch := range f.branches {
			if strings.Contains(branch.Name, query) || branch.ID == query {
				matches = append(matches, branch)
			}
		}
		json.NewEncoder(w).Encode(map[string]any{"branches": matches})
	})
	mux.HandleFunc("POST /projects/test-project/branches/{branch}/reset", func(w http.ResponseWriter, r *http.Request) {
		f.resetPaths = append(f.resetPaths, r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		f.resetBody = string(body)
		w.Write([]byte(`{}`))
	})
	return mux
}

func TestResetBranchByID(t *testing.T) {
	api := &fakeResetAPI{}
	client := newTestClient(t, api.handler())

	require.NoError(t, client.ResetBranch("test-project", "br-x", ""))
	require.Equal(t, []string{"/projects/test-project/branches/br-x/reset"}, api.resetPaths)
	require.Empty(t, api.resetBody, "no parent means an empty payload")
}

func TestResetBranchByName(t *testing.T) {
	api := &fakeResetAPI{branches: []Branch{{ID: "br-x", Name: "ci-42"}}}
	client := newTestClient(t, api.handler())

	require.NoError(t, client.ResetBranch("test-project", "ci-42", ""))
	require.Equal(t, []string{"/projects/test-project/branches/br-x/reset"}, api.resetPaths)
}

func TestResetBranchWithParent(t *testing.T) {
	api := &fakeResetAPI{branches: []Branch{
		{ID: "br-x", Name: "ci-42"},
		{ID: "br-main", Name: "main"},
	}}
	client := newTestClient(t, api.handler())

	require.NoError(t, client.ResetBranch("test-project", "br-x", "main"))
	require.JSONEq(t, `{"parent_id":"br-main"}`, api.resetBody)
}

func TestResetBranchNotFound(t *testing.T) {
	api := &fakeResetAPI{}
	client := newTestClient(t, api.handler())

	err := client.ResetBranch("test-project", "missing", "")
	require.ErrorIs(t, err, ErrBranchNotFound)
	require.Empty(t, api.resetPaths)
}

func TestResetBranchParentNotFound(t *testing.T) {
	api := &fakeResetAPI{branches: []Branch{{ID: "br-x", Name: "ci-42"}}}
	client := newTestClient(t, api.handler())

	err := client.ResetBranch("test-project", "ci-42", "missing")
	require.ErrorIs(t, err, ErrParentNotFound)
	require.Empty(t, api.resetPaths)
}

func TestResetBranchFailure(t *testing.T) {
	handler := http.NewServeMux()
	handler.HandleFunc("POST /projects/test-project/branches/br-x/reset", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"branch is protected"}`))
	})
	client := newTestClient(t, handler)

	err := client.ResetBranch("test-project", "br-x", "")
	require.ErrorIs(t, err, ErrResetFailed)
	require.Contains(t, err.Error(), "branch is protected")
}
