package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverview(t *testing.T) {
	env := newTestEnv(t)
	pair := env.signup(t, "alice")

	w := env.do(t, http.MethodGet, "/api/v1/analysis/overview", pair.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"total_detections": 0,
		"total_rumors": 0,
		"total_verified": 0,
		"rumor_rate": 0,
		"avg_confidence": 0.5
	}`, w.Body.String())

	env.detect(t, pair.AccessToken, "one", true)
	env.detect(t, pair.AccessToken, "two", true)

	w = env.do(t, http.MethodGet, "/api/v1/analysis/overview", pair.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"total_detections": 2,
		"total_rumors": 2,
		"total_verified": 0,
		"rumor_rate": 1,
		"avg_confidence": 0.3
	}`, w.Body.String())
}

func TestTrend(t *testing.T) {
	env := newTestEnv(t)
	pair := env.signup(t, "alice")
	env.detect(t, pair.AccessToken, "today", false)

	w := env.do(t, http.MethodGet, "/api/v1/analysis/trend?days=7", pair.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []struct {
			Date   string `json:"date"`
			Rumors int    `json:"rumors"`
			Total  int    `json:"total"`
		} `json:"data"`
		Period string `json:"period"`
	}
	decode(t, w, &body)
	assert.Equal(t, "daily", body.Period)
	require.Len(t, body.Data, 7)
	assert.Equal(t, 1, body.Data[6].Total)
	assert.Equal(t, 1, body.Data[6].Rumors)

	w = env.do(t, http.MethodGet, "/api/v1/analysis/trend", pair.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &body)
	assert.Len(t, body.Data, 30)

	for _, q := range []string{"days=0", "days=366", "days=abc"} {
		w = env.do(t, http.MethodGet, "/api/v1/analysis/trend?"+q, pair.AccessToken, nil)
		assert.NotEqual(t, http.StatusOK, w.Code, q)
	}
}

func TestCategoryKeywordsAndRisk(t *testing.T) {
	env := newTestEnv(t)
	pair := env.signup(t, "alice")
	env.detect(t, pair.AccessToken, "one", true)
	env.detect(t, pair.AccessToken, "two", true)
	env.detect(t, pair.AccessToken, "three", false)

	w := env.do(t, http.MethodGet, "/api/v1/analysis/category", pair.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":[{"category":"health","count":2,"percentage":100}],"total":2}`, w.Body.String())

	w = env.do(t, http.MethodGet, "/api/v1/analysis/keywords?limit=10", pair.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":[{"keyword":"vaccine","count":2,"weight":1}],"total_keywords":1}`, w.Body.String())

	w = env.do(t, http.MethodGet, "/api/v1/analysis/keywords?limit=5", pair.AccessToken, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/analysis/risk-distribution", pair.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"distribution":{"low":0,"medium":0,"high":0,"critical":3},"total":3}`, w.Body.String())
}
