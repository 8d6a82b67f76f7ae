package handlers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/shivamkr-03/plantGuardAI/db"
	"github.com/shivamkr-03/plantGuardAI/handlers"
	"github.com/shivamkr-03/plantGuardAI/inference"
	"github.com/shivamkr-03/plantGuardAI/routes"
	"github.com/shivamkr-03/plantGuardAI/services"
)

var testSecret = []byte("handler-test-secret")

// stubClassifier always scores class 1 highest, shaped [1, K].
type stubClassifier struct {
	scores []float32
}

func (s *stubClassifier) Run(pixels []float32) ([]float32, []int64, error) {
	return s.scores, []int64{1, int64(len(s.scores))}, nil
}

type testServer struct {
	engine   *gin.Engine
	database *gorm.DB
}

func newTestServer(t *testing.T, model services.Classifier) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := "file:handlers_" + t.Name() + "?mode=memory&cache=shared"
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(database))

	pre := &inference.Preprocessor{Height: 8, Width: 8}
	resolver := &inference.Resolver{
		Classes:    inference.ClassCatalog{"Healthy", "Early Blight", "Rust"},
		Treatments: inference.TreatmentCatalog{"Early Blight": json.RawMessage(`{"advice":"prune"}`)},
	}

	sm := services.NewServiceManager(database, testSecret, model, pre, resolver)
	engine := routes.SetupRoutes(handlers.NewHandlerManager(sm), testSecret, []string{"http://localhost:3000"})
	return &testServer{engine: engine, database: database}
}

func defaultTestServer(t *testing.T) *testServer {
	return newTestServer(t, &stubClassifier{scores: []float32{0.1, 2.5, 0.3}})
}

func (s *testServer) doJSON(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *testServer) doMultipart(t *testing.T, token, field string, payload []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if field != "" {
		part, err := mw.CreateFormFile(field, "leaf.png")
		require.NoError(t, err)
		_, err = part.Write(payload)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/predict", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

// signup registers a user and returns its access token.
func (s *testServer) signup(t *testing.T, email, password string) string {
	t.Helper()
	w := s.doJSON(t, http.MethodPost, "/auth/signup", "", gin.H{"email": email, "password": password})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}
