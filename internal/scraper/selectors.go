package scraper

// SelectorPolicy is the ordered-fallback selector strategy of the
// extractor. Every field lists its candidates in priority order; the
// first candidate yielding non-empty text wins. The policy is plain
// data so it can be replaced without touching extraction control flow
// when the page markup shifts.
type SelectorPolicy struct {
	// TitleMarker is the critical element; the extraction fails as a
	// whole when it never appears.
	TitleMarker string

	Title         []string
	CurrentPrice  []string
	OriginalPrice []string
	Features      []string
	Brand         []string
	Availability  []string
	SalesRank     []string

	SpecRows        []string
	Variants        []string
	QASnippets      []string
	RelatedProducts []string
	Categories      []string
	ShippingInfo    []string

	ReviewsSection string
	SeeAllReviews  string
	ReviewCard     string
	ReviewTitle    string
	ReviewBody     []string
	ReviewRating   string
	ReviewCustomer string
	ReviewHelpful  string
	ReviewNextPage string
}

// DefaultPolicy returns the selector policy for Amazon product pages.
func DefaultPolicy() SelectorPolicy {
	return SelectorPolicy{
		TitleMarker: "#productTitle",

		Title:         []string{"#productTitle", "#title span"},
		CurrentPrice:  []string{".a-price .a-offscreen", "#priceblock_ourprice", "#priceblock_dealprice"},
		OriginalPrice: []string{".a-text-price .a-offscreen", "#priceblock_listprice"},
		Features:      []string{"#feature-bullets"},
		Brand:         []string{"#bylineInfo", "#brand"},
		Availability:  []string{"#availability"},
		SalesRank:     []string{"#SalesRank"},

		SpecRows: []string{
			"#productDetails_techSpec_section_1 tr",
			"#productDetails_detailBullets_sections1 tr",
			"#prodDetails tr",
			".prodDetTable tr",
		},
		Variants:   []string{"#variation_size_name li", "#variation_color_name li"},
		QASnippets: []string{"#ask-btf_feature_div .a-section"},
		RelatedProducts: []string{
			"[data-automation-id='related-products'] a",
			"#similarities a",
		},
		Categories:   []string{"#wayfinding-breadcrumbs_feature_div a"},
		ShippingInfo: []string{"#mir-layout-DELIVERY_BLOCK"},

		ReviewsSection: "#customerReviews",
		SeeAllReviews:  "a[data-hook='see-all-reviews-link']",
		ReviewCard:     ".a-section.review, #cm-cr-dp-review-list .review",
		ReviewTitle:    ".review-title",
		ReviewBody: []string{
			".a-expander-content.reviewText.review-text-content.a-expander-partial-collapse-content",
			"[data-hook='review-body']",
		},
		ReviewRating:   ".review-rating",
		ReviewCustomer: "span.a-profile-name",
		ReviewHelpful:  ".a-size-small.a-color-secondary",
		ReviewNextPage: "li.a-last a",
	}
}
