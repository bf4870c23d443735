package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type detectionBody struct {
	ID          string         `json:"id"`
	Content     string         `json:"content"`
	IsRumor     bool           `json:"is_rumor"`
	Confidence  float64        `json:"confidence"`
	RiskLevel   string         `json:"risk_level"`
	Explanation string         `json:"explanation"`
	Analysis    map[string]any `json:"analysis"`
	CreatedAt   string         `json:"created_at"`
}

func (e *testEnv) detect(t *testing.T, token, content string, includeAnalysis bool) detectionBody {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/v1/detection/single", token, gin.H{
		"content":          content,
		"include_analysis": includeAnalysis,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var body detectionBody
	decode(t, w, &body)
	return body
}

func TestDetectSingle(t *testing.T) {
	env := newTestEnv(t)
	pair := env.signup(t, "alice")

	body := env.detect(t, pair.AccessToken, "5G towers spread the virus", true)
	assert.Equal(t, "5G towers spread the virus", body.Content)
	assert.True(t, body.IsRumor)
	assert.Equal(t, 0.3, body.Confidence)
	assert.Equal(t, "critical", body.RiskLevel)
	require.NotNil(t, body.Analysis)
	assert.Equal(t, "health", body.Analysis["category"])
	assert.Equal(t, []any{"No source"}, body.Analysis["risk_indicators"])
	assert.Equal(t, []any{}, body.Analysis["sources"])

	w := env.do(t, http.MethodPost, "/api/v1/detection/single", pair.AccessToken, gin.H{"content": "XYZ"})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &body)
	assert.NotNil(t, body.Analysis, "include_analysis defaults to true")

	w = env.do(t, http.MethodPost, "/api/v1/detection/single", pair.AccessToken, gin.H{"content": "XYZ", "include_analysis": false})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"analysis":null`)
	decode(t, w, &body)

	w = env.do(t, http.MethodGet, "/api/v1/detection/"+body.ID+"/analysis", pair.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Analysis not available for this detection"}`, w.Body.String())
}

func TestDetectSingle_Validation(t *testing.T) {
	env := newTestEnv(t)
	pair := env.signup(t, "alice")

	w := env.do(t, http.MethodPost, "/api/v1/detection/single", pair.AccessToken, gin.H{"content": ""})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/detection/single", pair.AccessToken, gin.H{"content": "   "})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/detection/single", pair.AccessToken, gin.H{"content": strings.Repeat("谣", 5001)})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "must be at most 5000 characters")

	w = env.do(t, http.MethodPost, "/api/v1/detection/single", pair.AccessToken, gin.H{"content": strings.Repeat("谣", 5000)})
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/detection/single", "", gin.H{"content": "text"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDetectBatch(t *testing.T) {
	env := newTestEnv(t)
	pair := env.signup(t, "alice")

	w := env.do(t, http.MethodPost, "/api/v1/detection/batch", pair.AccessToken, gin.H{
		"contents":         []string{"first", " ", "third"},
		"include_analysis": false,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Total   int             `json:"total"`
		Success int             `json:"success"`
		Failed  int             `json:"failed"`
		Results []detectionBody `json:"results"`
		Errors  []struct {
			Index int    `json:"index"`
			Error string `json:"error"`
		} `json:"errors"`
	}
	decode(t, w, &body)
	assert.Equal(t, 3, body.Total)
	assert.Equal(t, 2, body.Success)
	assert.Equal(t, 1, body.Failed)
	require.Len(t, body.Results, 2)
	assert.Equal(t, "first", body.Results[0].Content)
	assert.Equal(t, "third", body.Results[1].Content)
	assert.Nil(t, body.Results[0].Analysis)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, 1, body.Errors[0].Index)

	w = env.do(t, http.MethodPost, "/api/v1/detection/batch", pair.AccessToken, gin.H{"contents": []string{}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/detection/batch", pair.AccessToken, gin.H{"contents": make([]string, 101)})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "must contain at most 100 items")
}

func TestGetDetection(t *testing.T) {
	env := newTestEnv(t)
	alice := env.signup(t, "alice")
	bob := env.signup(t, "bob")

	det := env.detect(t, alice.AccessToken, "text", true)

	w := env.do(t, http.MethodGet, "/api/v1/detection/"+det.ID, alice.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got detectionBody
	decode(t, w, &got)
	assert.Equal(t, det, got)

	w = env.do(t, http.MethodGet, "/api/v1/detection/"+det.ID, bob.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Detection not found"}`, w.Body.String())

	w = env.do(t, http.MethodGet, "/api/v1/detection/"+uuid.NewString(), alice.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/detection/not-a-uuid", alice.AccessToken, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/detection/"+det.ID+"/analysis", alice.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var analysis map[string]any
	decode(t, w, &analysis)
	assert.Equal(t, "negative", analysis["sentiment"])
}

func TestGetPropagation(t *testing.T) {
	env := newTestEnv(t)
	alice := env.signup(t, "alice")
	bob := env.signup(t, "bob")
	det := env.detect(t, alice.AccessToken, "text", false)

	w := env.do(t, http.MethodGet, "/api/v1/detection/"+det.ID+"/propagation", alice.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"detection_id": "`+det.ID+`",
		"nodes": [],
		"pattern": null,
		"spread_speed": null,
		"estimated_reach": null,
		"influence_score": null
	}`, w.Body.String())

	w = env.do(t, http.MethodGet, "/api/v1/detection/"+det.ID+"/propagation", bob.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
