package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/platform"
	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/platform/models"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"
)

// DefaultUserAgent mimics a desktop Chrome session.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

const (
	maxQASnippets      = 10
	maxRelatedProducts = 10
	minShippingTextLen = 5

	// helpfulVotesSentinel replaces an absent helpful-votes label.
	helpfulVotesSentinel = "0 people found this helpful"
)

// Config holds Scraper configuration.
type Config struct {
	UserAgent         string        `env:"SCRAPER_USER_AGENT"`
	NavigationTimeout time.Duration `env:"SCRAPER_NAVIGATION_TIMEOUT" envDefault:"60s"`
	ElementTimeout    time.Duration `env:"SCRAPER_ELEMENT_TIMEOUT" envDefault:"8s"`
	ReviewPageCap     int           `env:"SCRAPER_REVIEW_PAGE_CAP" envDefault:"5"`
	Headless          bool          `env:"SCRAPER_HEADLESS" envDefault:"true"`
}

// Option is custom configuration of Scraper.
type Option func(s *Scraper)

// Scraper extracts product fields from live product pages through a
// headless browser session.
type Scraper struct {
	cfg    Config
	policy SelectorPolicy
	logger *zerolog.Logger
}

// NewScraper returns new Scraper.
func NewScraper(cfg Config, logger *zerolog.Logger, ops ...Option) *Scraper {
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.ReviewPageCap <= 0 {
		cfg.ReviewPageCap = 5
	}

	scr := &Scraper{
		cfg:    cfg,
		policy: DefaultPolicy(),
		logger: logger,
	}

	for _, op := range ops {
		op(scr)
	}

	return scr
}

// WithPolicy sets Scraper's custom selector policy.
func WithPolicy(policy SelectorPolicy) Option {
	return func(s *Scraper) {
		s.policy = policy
	}
}

// Scrape opens one browser session against url and extracts product
// fields. Missing fields degrade to empty values; only a page which
// never shows the title marker fails the extraction. The browser
// session is released on every exit path.
func (s *Scraper) Scrape(ctx context.Context, url string) (*models.ProductFields, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", s.cfg.Headless),
		chromedp.NoSandbox,
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.UserAgent(s.cfg.UserAgent),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	navCtx, cancelNav := context.WithTimeout(browserCtx, s.cfg.NavigationTimeout)
	defer cancelNav()

	s.logger.Info().Str("url", url).Msg("navigating to product page")

	if err := chromedp.Run(navCtx, chromedp.Navigate(url)); err != nil {
		return nil, platform.WrapError(platform.KindScrape, fmt.Errorf("can't load page: %w", err))
	}

	if err := s.waitReady(browserCtx, s.policy.TitleMarker); err != nil {
		return nil, platform.WrapError(platform.KindScrape, fmt.Errorf("product title never appeared: %w", err))
	}

	fields := &models.ProductFields{}

	fields.Title = s.firstText(browserCtx, "title", s.policy.Title)
	if fields.Title == "" {
		return nil, platform.WrapError(platform.KindScrape, fmt.Errorf("page has no product title"))
	}

	fields.CurrentPrice = s.firstText(browserCtx, "current price", s.policy.CurrentPrice)
	fields.OriginalPrice = s.firstText(browserCtx, "original price", s.policy.OriginalPrice)
	fields.Features = s.firstText(browserCtx, "features", s.policy.Features)
	fields.Brand = s.firstText(browserCtx, "brand", s.policy.Brand)
	fields.Availability = s.firstText(browserCtx, "availability", s.policy.Availability)
	fields.SalesRank = s.firstText(browserCtx, "sales rank", s.policy.SalesRank)

	fields.Specifications = s.extractSpecifications(browserCtx)
	fields.Variants = s.allTexts(browserCtx, "variants", s.policy.Variants, 0, 0)
	fields.QA = s.allTexts(browserCtx, "qa snippets", s.policy.QASnippets, maxQASnippets, 0)
	fields.Categories = s.allTexts(browserCtx, "categories", s.policy.Categories, 0, 0)
	fields.ShippingInfo = s.allTexts(browserCtx, "shipping info", s.policy.ShippingInfo, 0, minShippingTextLen)
	fields.RelatedProducts = s.extractRelatedProducts(browserCtx)

	// run last, pagination may navigate away from the product page
	fields.Reviews = s.extractReviews(browserCtx)

	s.logger.Info().
		Str("url", url).
		Int("reviews", len(fields.Reviews)).
		Msg("extraction completed")

	return fields, nil
}

func (s *Scraper) waitReady(ctx context.Context, selector string) error {
	waitCtx, cancel := context.WithTimeout(ctx, s.cfg.ElementTimeout)
	defer cancel()

	return chromedp.Run(waitCtx, chromedp.WaitReady(selector, chromedp.ByQuery))
}

// firstText returns the text of the first candidate selector matching a
// non-empty element. Extraction failures degrade to empty text.
func (s *Scraper) firstText(ctx context.Context, field string, candidates []string) string {
	js := fmt.Sprintf(`(() => {
		for (const sel of %s) {
			const el = document.querySelector(sel);
			if (el) {
				const text = el.innerText.trim();
				if (text) return text;
			}
		}
		return "";
	})()`, mustJSON(candidates))

	var text string
	if err := chromedp.Run(ctx, chromedp.Evaluate(js, &text)); err != nil {
		s.logger.Warn().Err(err).Str("field", field).Msg("can't extract field")
		return ""
	}

	return text
}

// allTexts collects non-empty texts of every element matched by the
// candidate selectors, capped at limit when limit > 0 and dropping
// texts not longer than minLen.
func (s *Scraper) allTexts(ctx context.Context, field string, candidates []string, limit, minLen int) []string {
	js := fmt.Sprintf(`(() => {
		const out = [];
		for (const sel of %s) {
			for (const el of document.querySelectorAll(sel)) {
				const text = el.innerText.trim();
				if (text.length > %d) out.push(text);
			}
		}
		return out;
	})()`, mustJSON(candidates), minLen)

	var texts []string
	if err := chromedp.Run(ctx, chromedp.Evaluate(js, &texts)); err != nil {
		s.logger.Warn().Err(err).Str("field", field).Msg("can't extract field")
		return nil
	}

	if limit > 0 && len(texts) > limit {
		texts = texts[:limit]
	}

	return texts
}

func (s *Scraper) extractSpecifications(ctx context.Context) map[string]string {
	js := fmt.Sprintf(`(() => {
		const specs = {};
		for (const sel of %s) {
			for (const row of document.querySelectorAll(sel)) {
				const keyEl = row.querySelector("td:first-child, th");
				const valueEl = row.querySelector("td:last-child");
				if (!keyEl || !valueEl) continue;
				const key = keyEl.innerText.trim();
				const value = valueEl.innerText.trim();
				if (key && value && key !== value) specs[key] = value;
			}
		}
		return specs;
	})()`, mustJSON(s.policy.SpecRows))

	var specs map[string]string
	if err := chromedp.Run(ctx, chromedp.Evaluate(js, &specs)); err != nil {
		s.logger.Warn().Err(err).Msg("can't extract specifications")
		return nil
	}

	return specs
}

func (s *Scraper) extractRelatedProducts(ctx context.Context) []models.RelatedProduct {
	// el.href resolves relative urls against the page base
	js := fmt.Sprintf(`(() => {
		const out = [];
		for (const sel of %s) {
			for (const el of document.querySelectorAll(sel)) {
				const title = el.getAttribute("title");
				if (title && el.href) out.push({title: title, url: el.href});
			}
		}
		return out;
	})()`, mustJSON(s.policy.RelatedProducts))

	var related []models.RelatedProduct
	if err := chromedp.Run(ctx, chromedp.Evaluate(js, &related)); err != nil {
		s.logger.Warn().Err(err).Msg("can't extract related products")
		return nil
	}

	if len(related) > maxRelatedProducts {
		related = related[:maxRelatedProducts]
	}

	return related
}

// extractReviews collects review cards, paginating through the review
// listing up to the page cap. Cards without body text are skipped.
func (s *Scraper) extractReviews(ctx context.Context) []models.Review {
	if !s.elementExists(ctx, s.policy.ReviewsSection) {
		s.logger.Info().Msg("no reviews section")
		return nil
	}

	// expanded review list shows more cards per page when available
	if s.clickIfPresent(ctx, s.policy.SeeAllReviews) {
		if err := s.waitReady(ctx, s.policy.ReviewCard); err != nil {
			s.logger.Warn().Err(err).Msg("review list did not load after expanding")
		}
	}

	var reviews []models.Review

	for page := 1; page <= s.cfg.ReviewPageCap; page++ {
		if err := s.waitReady(ctx, s.policy.ReviewCard); err != nil {
			s.logger.Warn().Err(err).Int("page", page).Msg("no review cards loaded")
			break
		}

		pageReviews := s.reviewsOnPage(ctx)
		reviews = append(reviews, pageReviews...)

		s.logger.Info().
			Int("page", page).
			Int("reviews", len(pageReviews)).
			Msg("scraped review page")

		if page == s.cfg.ReviewPageCap {
			break
		}
		if !s.clickIfPresent(ctx, s.policy.ReviewNextPage) {
			s.logger.Info().Int("page", page).Msg("no more review pages")
			break
		}
	}

	return reviews
}

func (s *Scraper) reviewsOnPage(ctx context.Context) []models.Review {
	js := fmt.Sprintf(`(() => {
		const text = (root, sel) => {
			const el = root.querySelector(sel);
			return el ? el.innerText.trim() : "";
		};
		const firstText = (root, sels) => {
			for (const sel of sels) {
				const value = text(root, sel);
				if (value) return value;
			}
			return "";
		};
		const out = [];
		for (const card of document.querySelectorAll(%s)) {
			out.push({
				title: text(card, %s),
				text: firstText(card, %s),
				rating: text(card, %s),
				customer_name: text(card, %s),
				helpful_votes: text(card, %s),
			});
		}
		return out;
	})()`,
		mustJSON(s.policy.ReviewCard),
		mustJSON(s.policy.ReviewTitle),
		mustJSON(s.policy.ReviewBody),
		mustJSON(s.policy.ReviewRating),
		mustJSON(s.policy.ReviewCustomer),
		mustJSON(s.policy.ReviewHelpful),
	)

	var cards []struct {
		Title        string `json:"title"`
		Text         string `json:"text"`
		Rating       string `json:"rating"`
		CustomerName string `json:"customer_name"`
		HelpfulVotes string `json:"helpful_votes"`
	}
	if err := chromedp.Run(ctx, chromedp.Evaluate(js, &cards)); err != nil {
		s.logger.Warn().Err(err).Msg("can't extract review cards")
		return nil
	}

	reviews := make([]models.Review, 0, len(cards))
	for _, card := range cards {
		if card.Text == "" {
			continue
		}
		if card.HelpfulVotes == "" {
			card.HelpfulVotes = helpfulVotesSentinel
		}
		reviews = append(reviews, models.Review{
			Title:        card.Title,
			Text:         card.Text,
			Rating:       card.Rating,
			CustomerName: card.CustomerName,
			HelpfulVotes: card.HelpfulVotes,
		})
	}

	return reviews
}

func (s *Scraper) elementExists(ctx context.Context, selector string) bool {
	js := fmt.Sprintf(`document.querySelector(%s) !== null`, mustJSON(selector))

	var exists bool
	if err := chromedp.Run(ctx, chromedp.Evaluate(js, &exists)); err != nil {
		s.logger.Warn().Err(err).Str("selector", selector).Msg("can't check element presence")
		return false
	}

	return exists
}

// clickIfPresent clicks the first element matching selector and waits
// briefly for the resulting navigation. Returns false when the element
// is absent or the click failed.
func (s *Scraper) clickIfPresent(ctx context.Context, selector string) bool {
	js := fmt.Sprintf(`(() => {
		const el = document.querySelector(%s);
		if (!el) return false;
		el.click();
		return true;
	})()`, mustJSON(selector))

	var clicked bool
	err := chromedp.Run(ctx,
		chromedp.Evaluate(js, &clicked),
	)
	if err != nil {
		s.logger.Warn().Err(err).Str("selector", selector).Msg("can't click element")
		return false
	}
	if !clicked {
		return false
	}

	if err := chromedp.Run(ctx, chromedp.Sleep(time.Second)); err != nil {
		s.logger.Warn().Err(err).Msg("can't wait after click")
	}

	return true
}

// mustJSON encodes v as a javascript literal. Inputs are selector
// strings from the policy, encoding them can't fail.
func mustJSON(v any) string {
	encoded, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(encoded)
}
