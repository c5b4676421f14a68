package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitDefaultPolicy(t *testing.T) {
	policy := DefaultPolicy()

	assert.Equal(t, "#productTitle", policy.TitleMarker, "title marker is the critical element")
	assert.Contains(t, policy.Title, policy.TitleMarker, "title candidates should include the marker")

	// every candidate list must have at least one selector, an empty
	// list silently disables its field
	for name, candidates := range map[string][]string{
		"Title":           policy.Title,
		"CurrentPrice":    policy.CurrentPrice,
		"OriginalPrice":   policy.OriginalPrice,
		"Features":        policy.Features,
		"Brand":           policy.Brand,
		"Availability":    policy.Availability,
		"SalesRank":       policy.SalesRank,
		"SpecRows":        policy.SpecRows,
		"Variants":        policy.Variants,
		"QASnippets":      policy.QASnippets,
		"RelatedProducts": policy.RelatedProducts,
		"Categories":      policy.Categories,
		"ShippingInfo":    policy.ShippingInfo,
		"ReviewBody":      policy.ReviewBody,
	} {
		assert.NotEmpty(t, candidates, "%s should have candidates", name)
	}

	assert.NotEmpty(t, policy.ReviewCard, "review cards need a selector")
	assert.NotEmpty(t, policy.ReviewNextPage, "review pagination needs a selector")
}

func TestUnitMustJSON(t *testing.T) {
	require.Equal(t, `["#a",".b c"]`, mustJSON([]string{"#a", ".b c"}), "should encode selector lists")
	require.Equal(t, `"it's"`, mustJSON("it's"), "should escape for javascript embedding")
}
