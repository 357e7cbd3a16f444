// Package heuristic classifies documents by keyword matching when no model
// server is available.
package heuristic

import (
	"context"
	"fmt"
	"strings"
	"unicode"
)

// Classifier is a keyword-matching fallback for environments where no model
// server can be reached. It scores class keywords against the document text
// and produces a determination with a coarse confidence.
type Classifier struct{}

// New returns the keyword classifier.
func New() *Classifier {
	return &Classifier{}
}

// Determination mirrors the model client's output shape.
type Determination struct {
	Label      string
	Confidence float64
	Insight    string
}

// Classify scores keyword occurrences per class and picks the strongest one.
// Text without any class keywords is treated as transitory at the floor
// confidence.
func (c *Classifier) Classify(ctx context.Context, content string) (Determination, error) {
	if err := ctx.Err(); err != nil {
		return Determination{}, err
	}
	lower := strings.ToLower(content)

	bestClass := ""
	bestCount := 0
	for _, class := range []string{"OFFICIAL", "TRANSITORY"} {
		count := 0
		for _, kw := range keywordClasses[class] {
			count += strings.Count(lower, kw)
		}
		if count > bestCount {
			bestClass = class
			bestCount = count
		}
	}

	if bestCount == 0 {
		return Determination{
			Label:      "TRANSITORY",
			Confidence: 0.5,
			Insight: fmt.Sprintf(
				"No retention keywords found in the sampled text. The document starts with: %q. The record appears transitory.",
				extractSnippet(content, "")),
		}, nil
	}

	firstMatch := ""
	for _, kw := range keywordClasses[bestClass] {
		if strings.Contains(lower, kw) {
			firstMatch = kw
			break
		}
	}

	label := bestClass
	if label == "OFFICIAL" {
		label = "KEEP"
	}
	// 0.5 floor plus 0.1 per match, capped at 0.9.
	confidence := 0.5 + float64(min(bestCount, 4))*0.1
	insight := fmt.Sprintf(
		"The file includes the keyword %q, indicating a %s record. Example text: %q.",
		firstMatch, strings.ToLower(label), extractSnippet(content, firstMatch))

	return Determination{Label: label, Confidence: confidence, Insight: insight}, nil
}

// extractSnippet returns a printable excerpt around the first occurrence of
// the keyword, or the start of the content when the keyword is empty.
func extractSnippet(content, keyword string) string {
	snippet := content
	if keyword != "" {
		if idx := strings.Index(strings.ToLower(content), strings.ToLower(keyword)); idx >= 0 {
			start := idx - snippetWindow/2
			if start < 0 {
				start = 0
			}
			snippet = content[start:]
		}
	}
	if len(snippet) > snippetWindow {
		snippet = snippet[:snippetWindow]
	}
	return sanitizeSnippet(snippet)
}

func sanitizeSnippet(text string) string {
	text = strings.TrimSpace(strings.ReplaceAll(text, "\n", " "))
	if text == "" {
		return "[file is binary or unreadable]"
	}
	printable := 0
	total := 0
	for _, r := range text {
		total++
		if unicode.IsPrint(r) {
			printable++
		}
	}
	if float64(printable)/float64(total) < 0.85 {
		return "[file is binary or unreadable]"
	}
	return text
}
