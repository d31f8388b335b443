package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListComments(t *testing.T) {
	client, mux, serverURL := setup(t)

	mux.HandleFunc("/repos/owner/repo/issues/7/comments", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		switch r.URL.Query().Get("page") {
		case "":
			w.Header().Set("Link", fmt.Sprintf(`<%s/repos/owner/repo/issues/7/comments?page=2>; rel="next"`, serverURL))
			writeJSON(t, w, []map[string]interface{}{
				{"id": 1, "body": "looks good"},
			})
		case "2":
			writeJSON(t, w, []map[string]interface{}{
				{"id": 2, "body": "managed"},
			})
		}
	})

	comments, err := client.ListComments(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, []Comment{{ID: 1, Body: "looks good"}, {ID: 2, Body: "managed"}}, comments)
}

func TestCreateComment(t *testing.T) {
	client, mux, _ := setup(t)

	mux.HandleFunc("/repos/owner/repo/issues/7/comments", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "hello", payload["body"])

		w.WriteHeader(http.StatusCreated)
		writeJSON(t, w, map[string]interface{}{"id": 55, "body": payload["body"]})
	})

	comment, err := client.CreateComment(context.Background(), 7, "hello")
	require.NoError(t, err)
	assert.Equal(t, &Comment{ID: 55, Body: "hello"}, comment)
}

func TestUpdateComment(t *testing.T) {
	client, mux, _ := setup(t)

	mux.HandleFunc("/repos/owner/repo/issues/comments/55", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "updated", payload["body"])

		writeJSON(t, w, map[string]interface{}{"id": 55, "body": payload["body"]})
	})

	comment, err := client.UpdateComment(context.Background(), 55, "updated")
	require.NoError(t, err)
	assert.Equal(t, int64(55), comment.ID)
	assert.Equal(t, "updated", comment.Body)
}

func TestUpdateCommentNotFound(t *testing.T) {
	client, mux, _ := setup(t)

	mux.HandleFunc("/repos/owner/repo/issues/comments/9", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Not Found"}`))
	})

	_, err := client.UpdateComment(context.Background(), 9, "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "comment 9")
}
