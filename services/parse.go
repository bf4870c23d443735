package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
)

var errNotArray = errors.New("batch response is not a JSON array")

// rawResult mirrors the object the model is asked to emit. Pointer fields
// tell an absent field apart from a zero value.
type rawResult struct {
	Index           *int     `json:"index"`
	IsRumor         *bool    `json:"is_rumor"`
	Confidence      *float64 `json:"confidence"`
	Explanation     *string  `json:"explanation"`
	Keywords        []string `json:"keywords"`
	Sentiment       *string  `json:"sentiment"`
	Category        *string  `json:"category"`
	FactCheckPoints []string `json:"fact_check_points"`
	RiskIndicators  []string `json:"risk_indicators"`
}

// stripCodeFence returns the body of the first fenced block in s, dropping
// an optional language tag. Text without a fence is returned trimmed.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	start := strings.Index(s, "```")
	if start < 0 {
		return s
	}

	body := s[start+3:]
	tag := 0
	for tag < len(body) && isASCIILetter(body[tag]) {
		tag++
	}
	body = body[tag:]

	if end := strings.Index(body, "```"); end >= 0 {
		body = body[:end]
	}
	return strings.TrimSpace(body)
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func parseSingle(text string) (DetectionResult, error) {
	var raw rawResult
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &raw); err != nil {
		return DetectionResult{}, fmt.Errorf("decode detection result: %w", err)
	}
	return raw.normalize(), nil
}

// parseBatch maps the model's array back onto n input positions by index.
// Positions the model skipped, or whose object is malformed, get the
// fallback and are marked degraded.
func parseBatch(text string, n int) ([]ClassifyOutcome, error) {
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &items); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, errNotArray
		}
		return nil, fmt.Errorf("decode batch result: %w", err)
	}

	found := make(map[int]DetectionResult, len(items))
	for _, item := range items {
		var raw rawResult
		if err := json.Unmarshal(item, &raw); err != nil {
			continue
		}
		if raw.Index == nil || *raw.Index < 0 || *raw.Index >= n {
			continue
		}
		found[*raw.Index] = raw.normalize()
	}

	missing := errors.New("no result for this item in batch response")
	out := make([]ClassifyOutcome, n)
	for i := range out {
		if result, ok := found[i]; ok {
			out[i] = ClassifyOutcome{Result: result}
			continue
		}
		out[i] = degraded(missing)
	}
	return out, nil
}

func (r rawResult) normalize() DetectionResult {
	result := DetectionResult{
		Confidence:      0.5,
		Sentiment:       "neutral",
		Category:        "other",
		Keywords:        nonNil(r.Keywords),
		FactCheckPoints: nonNil(r.FactCheckPoints),
		RiskIndicators:  nonNil(r.RiskIndicators),
	}
	if r.IsRumor != nil {
		result.IsRumor = *r.IsRumor
	}
	if r.Confidence != nil {
		result.Confidence = clampConfidence(*r.Confidence)
	}
	if r.Explanation != nil {
		result.Explanation = *r.Explanation
	}
	if r.Sentiment != nil {
		result.Sentiment = normalizeSentiment(*r.Sentiment)
	}
	if r.Category != nil {
		if c := strings.TrimSpace(*r.Category); c != "" {
			result.Category = c
		}
	}
	return result
}

func normalizeSentiment(s string) string {
	switch s = strings.ToLower(strings.TrimSpace(s)); s {
	case "positive", "negative", "neutral":
		return s
	}
	return "neutral"
}

func clampConfidence(c float64) float64 {
	if math.IsNaN(c) {
		return 0.5
	}
	return math.Max(0, math.Min(1, c))
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
