package handlers_test

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shivamkr-03/plantGuardAI/models"
)

func leafPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			img.Set(x, y, color.RGBA{G: 180, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestPredictAnonymous(t *testing.T) {
	s := defaultTestServer(t)

	w := s.doMultipart(t, "", "image", leafPNG(t))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.PredictResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Early Blight", resp.Label)
	assert.Equal(t, 1, resp.ClassIndex)
	assert.Greater(t, resp.Confidence, 0.5)
	assert.JSONEq(t, `{"advice":"prune"}`, string(resp.Treatment))
	assert.Nil(t, resp.SavedHistoryID)
	assert.NotContains(t, w.Body.String(), "saved_history_id")

	// No rows appear for anonymous callers.
	var count int64
	require.NoError(t, s.database.Model(&models.PredictionHistory{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestPredictWithInvalidTokenStillSucceeds(t *testing.T) {
	s := defaultTestServer(t)

	w := s.doMultipart(t, "garbage-token", "image", leafPNG(t))
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "saved_history_id")
}

func TestPredictAuthenticatedSavesHistory(t *testing.T) {
	s := defaultTestServer(t)
	token := s.signup(t, "grower@example.com", "pw")

	w := s.doMultipart(t, token, "image", leafPNG(t))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.PredictResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.SavedHistoryID)

	w2 := s.doJSON(t, http.MethodGet, "/history", token, nil)
	require.Equal(t, http.StatusOK, w2.Code)
	var entries []models.HistoryEntryResponse
	require.NoError(t, json.Unmarshal(w2.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, *resp.SavedHistoryID, entries[0].ID)
	assert.Equal(t, "Early Blight", entries[0].Label)
}

func TestPredictPersistenceFailureStillResponds(t *testing.T) {
	s := defaultTestServer(t)
	token := s.signup(t, "grower2@example.com", "pw")

	require.NoError(t, s.database.Migrator().DropTable(&models.PredictionHistory{}))

	w := s.doMultipart(t, token, "image", leafPNG(t))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "saved_history_id")
}

func TestPredictMissingFile(t *testing.T) {
	s := defaultTestServer(t)
	w := s.doMultipart(t, "", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No image file sent")
}

func TestPredictUndecodableImage(t *testing.T) {
	s := defaultTestServer(t)
	w := s.doMultipart(t, "", "image", []byte("this is not a picture"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Cannot open image")
}

func TestPredictModelUnavailable(t *testing.T) {
	s := newTestServer(t, nil)
	w := s.doMultipart(t, "", "image", leafPNG(t))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Model not loaded")
}
