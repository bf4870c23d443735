package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"rumor-detection/auth"
	"rumor-detection/database"
	"rumor-detection/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func init() {
	gin.SetMode(gin.TestMode)
}

// stubClassifier answers every text with the same result.
type stubClassifier struct {
	result services.DetectionResult
}

func (s stubClassifier) Classify(context.Context, string) services.ClassifyOutcome {
	return services.ClassifyOutcome{Result: s.result}
}

func (s stubClassifier) ClassifyBatch(_ context.Context, contents []string) []services.ClassifyOutcome {
	out := make([]services.ClassifyOutcome, len(contents))
	for i := range out {
		out[i] = services.ClassifyOutcome{Result: s.result}
	}
	return out
}

type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
	tokens *auth.TokenManager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.Open(":memory:?_foreign_keys=on")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	classifier := stubClassifier{result: services.DetectionResult{
		IsRumor:         true,
		Confidence:      0.3,
		Explanation:     "Unverified claims.",
		Keywords:        []string{"vaccine"},
		Sentiment:       "negative",
		Category:        "health",
		FactCheckPoints: []string{"Check the source"},
		RiskIndicators:  []string{"No source"},
	}}

	tokens := auth.NewTokenManager(testSecret, 30*time.Minute, time.Hour)
	router := NewRouter(Deps{
		Users:      services.NewUserService(db),
		Tokens:     tokens,
		Detections: services.NewDetectionService(db, classifier, nil),
		Stats:      services.NewStatsService(db),
	})
	return &testEnv{router: router, db: db, tokens: tokens}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) login(t *testing.T, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{"username": {email}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// signup registers a user and returns its token pair.
func (e *testEnv) signup(t *testing.T, name string) auth.TokenPair {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email":    name + "@example.com",
		"username": name,
		"password": "s3cret-pass",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = e.login(t, name+"@example.com", "s3cret-pass")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var pair auth.TokenPair
	decode(t, w, &pair)
	return pair
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}
