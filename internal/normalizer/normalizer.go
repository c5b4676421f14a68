// Package normalizer flattens extracted product fields into the single
// text document which becomes the product's retrieval corpus.
package normalizer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/platform/models"
)

// Normalize concatenates extracted fields, reviews and Q&A entries into
// one flat document. It is deterministic: the same fields always yield
// byte-identical text. Sections for empty fields are omitted.
func Normalize(fields *models.ProductFields) string {
	var parts []string

	if fields.Title != "" {
		parts = append(parts, "Title: "+fields.Title)
	}
	if fields.Features != "" {
		parts = append(parts, "Features:\n"+fields.Features)
	}

	if len(fields.Specifications) > 0 {
		parts = append(parts, "Specifications:")
		keys := make([]string, 0, len(fields.Specifications))
		for key := range fields.Specifications {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			parts = append(parts, fmt.Sprintf("  %s: %s", key, fields.Specifications[key]))
		}
	}

	if len(fields.Reviews) > 0 {
		parts = append(parts, "\nCustomer Reviews:")
		for _, review := range fields.Reviews {
			parts = append(parts, fmt.Sprintf(
				"Review by %s: %s - %s (Rating: %s, Helpful: %s)",
				review.CustomerName, review.Title, review.Text, review.Rating, review.HelpfulVotes,
			))
		}
	}

	if len(fields.QA) > 0 {
		parts = append(parts, "\nQuestions & Answers:")
		for _, qa := range fields.QA {
			parts = append(parts, "  "+qa)
		}
	}

	return strings.Join(parts, "\n")
}
