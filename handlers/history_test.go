package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shivamkr-03/plantGuardAI/models"
)

func TestHistoryRequiresAuth(t *testing.T) {
	s := defaultTestServer(t)

	w := s.doJSON(t, http.MethodGet, "/history", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.doJSON(t, http.MethodPost, "/history", "", gin.H{"label": "Rust"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHistorySaveAndList(t *testing.T) {
	s := defaultTestServer(t)
	token := s.signup(t, "h@example.com", "pw")

	w := s.doJSON(t, http.MethodPost, "/history", token, gin.H{
		"label":      "Rust",
		"confidence": 0.8,
		"treatment":  gin.H{"advice": "sulfur spray"},
		"metadata":   gin.H{"camera": "phone"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Success bool                        `json:"success"`
		Entry   models.HistoryEntryResponse `json:"entry"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.True(t, created.Success)
	assert.Equal(t, "Rust", created.Entry.Label)

	w = s.doJSON(t, http.MethodPost, "/history", token, gin.H{"label": "Healthy"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.doJSON(t, http.MethodGet, "/history", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var entries []models.HistoryEntryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	require.Len(t, entries, 2)
	// Newest first.
	assert.Equal(t, "Healthy", entries[0].Label)
	assert.Equal(t, "Rust", entries[1].Label)

	treatment, ok := entries[1].Treatment.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "sulfur spray", treatment["advice"])
}

func TestHistorySaveMissingLabel(t *testing.T) {
	s := defaultTestServer(t)
	token := s.signup(t, "h2@example.com", "pw")

	w := s.doJSON(t, http.MethodPost, "/history", token, gin.H{"confidence": 0.8})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHistoryWriteFailureIsReported(t *testing.T) {
	s := defaultTestServer(t)
	token := s.signup(t, "h3@example.com", "pw")

	// The explicit write endpoint must report storage failures truthfully.
	require.NoError(t, s.database.Migrator().DropTable(&models.PredictionHistory{}))

	w := s.doJSON(t, http.MethodPost, "/history", token, gin.H{"label": "Rust"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
