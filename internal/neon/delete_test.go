package neon

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeleteBranch(t *testing.T) {
	var deletes int
	handler := http.NewServeMux()
	handler.HandleFunc("DELETE /projects/test-project/branches/br-x", func(w http.ResponseWriter, r *http.Request) {
		deletes++
		w.Write([]byte(`{}`))
	})
	client := newTestClient(t, handler)

	require.NoError(t, client.DeleteBranch("test-project", "br-x"))
	require.Equal(t, 1, deletes)
}

func TestDeleteBranchAlreadyGone(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	// Deleting a branch that no longer exists is the desired end state,
	// twice over.
	require.NoError(t, client.DeleteBranch("test-project", "br-x"))
	require.NoError(t, client.DeleteBranch("test-project", "br-x"))
}

func TestDeleteBranchFailure(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"branch has children"}`))
	}))

	err := client.DeleteBranch("test-project", "br-x")
	require.ErrorIs(t, err, ErrDeleteFailed)
	require.Contains(t, err.Error(), "branch has children")
}
