package services

import (
	"fmt"
	"strings"
)

const systemPrompt = "You are a professional rumor detection analyst who specializes in judging the credibility of social media content. Always answer with a JSON object."

const batchSystemPrompt = "You are a professional rumor detection analyst. Always answer with a JSON array."

func buildDetectionPrompt(content string) string {
	return fmt.Sprintf(`Analyze the following social media post and decide whether it is a rumor.

## Text
%s

## Requirements
1. Decide whether the text is a rumor (is_rumor: true/false)
2. Give a credibility score (confidence: 0.0-1.0, where 1.0 is fully credible and 0.0 is not credible at all)
3. Explain your reasoning in detail (explanation)
4. Extract keywords (keywords)
5. Judge the sentiment (sentiment: positive/negative/neutral)
6. Classify the topic (category: politics/health/society/technology/entertainment/finance/other)
7. List the points a fact-checker should verify (fact_check_points)
8. List the risk indicators you found (risk_indicators)

## Output format
Respond strictly with one JSON object of this shape:
{
  "is_rumor": boolean,
  "confidence": float,
  "explanation": "string",
  "keywords": ["string"],
  "sentiment": "string",
  "category": "string",
  "fact_check_points": ["string"],
  "risk_indicators": ["string"]
}

## Criteria
- Is the source reliable?
- Does it exaggerate or try to inflame?
- Does it contradict common sense or science?
- Does the reasoning have gaps?
- Can official channels confirm it?
- Are times and places vague?
- Does it cite unverified numbers?

Output the JSON only, nothing else.`, content)
}

func buildBatchPrompt(contents []string, itemRunes int) string {
	var list strings.Builder
	for i, text := range contents {
		if i > 0 {
			list.WriteByte('\n')
		}
		fmt.Fprintf(&list, "[%d] %s", i, truncateRunes(text, itemRunes))
	}

	return fmt.Sprintf(`Analyze each of the following social media posts and decide, one by one, whether it is a rumor.

## Texts
%s

## Requirements
For every text provide:
1. Whether it is a rumor (is_rumor: true/false)
2. A credibility score (confidence: 0.0-1.0)
3. A short explanation (explanation, at most 100 words)
4. Keywords (keywords, 3-5 items)
5. Sentiment (sentiment: positive/negative/neutral)
6. Topic (category: politics/health/society/technology/entertainment/finance/other)

## Output format
Respond strictly with a JSON array holding one object per text:
[
  {
    "index": 0,
    "is_rumor": boolean,
    "confidence": float,
    "explanation": "string",
    "keywords": ["string"],
    "sentiment": "string",
    "category": "string"
  }
]

Notes:
- index must match the number of the input text (starting from 0)
- every text must get exactly one result
- output the JSON array only, nothing else`, list.String())
}

// truncateRunes cuts text to at most n runes, marking the cut with "...".
func truncateRunes(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "..."
}
