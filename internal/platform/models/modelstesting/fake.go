package modelstesting

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/platform/models"
	"github.com/go-faker/faker/v4"
	"github.com/samber/lo"
)

// FakeProductFields returns models.ProductFields with fake data and a
// random number of fake reviews and Q&A snippets.
func FakeProductFields(ops ...func(f *models.ProductFields)) models.ProductFields {
	fields := models.ProductFields{
		Title:           faker.Sentence(),
		Brand:           faker.Word(),
		CurrentPrice:    faker.Word(),
		OriginalPrice:   faker.Word(),
		Availability:    faker.Word(),
		Features:        faker.Paragraph(),
		Specifications:  fakeSpecifications(),
		Categories:      fakeWords(3),
		Variants:        fakeWords(3),
		SalesRank:       faker.Word(),
		RelatedProducts: fakeRelatedProducts(),
		ShippingInfo:    fakeWords(2),
		Reviews:         fakeReviews(),
		QA:              fakeWords(3),
	}

	for _, op := range ops {
		op(&fields)
	}

	return fields
}

// FakeReview returns models.Review with fake data.
func FakeReview(ops ...func(r *models.Review)) models.Review {
	review := models.Review{
		Title:        faker.Sentence(),
		Text:         faker.Paragraph(),
		Rating:       fmt.Sprintf("%d.0 out of 5 stars", 1+rand.Intn(5)),
		CustomerName: faker.Name(),
		HelpfulVotes: fmt.Sprintf("%d people found this helpful", rand.Intn(100)),
		ReviewDate:   lo.ToPtr(time.Now().UTC().Truncate(time.Second)),
	}

	for _, op := range ops {
		op(&review)
	}

	return review
}

// FakeChatTurn returns models.ChatTurn with fake data.
func FakeChatTurn(ops ...func(t *models.ChatTurn)) models.ChatTurn {
	turn := models.ChatTurn{
		Role:    models.RoleUser,
		Content: faker.Sentence(),
	}

	for _, op := range ops {
		op(&turn)
	}

	return turn
}

func fakeSpecifications() map[string]string {
	specsLen := rand.Intn(5)
	specs := make(map[string]string, specsLen)
	for range specsLen {
		specs[faker.Word()] = faker.Word()
	}

	return specs
}

func fakeRelatedProducts() []models.RelatedProduct {
	relatedLen := rand.Intn(5)
	related := make([]models.RelatedProduct, 0, relatedLen)
	for range relatedLen {
		related = append(related, models.RelatedProduct{
			Title: faker.Sentence(),
			URL:   faker.URL(),
		})
	}

	return related
}

func fakeReviews() []models.Review {
	reviewsLen := rand.Intn(5)
	reviews := make([]models.Review, 0, reviewsLen)
	for range reviewsLen {
		reviews = append(reviews, FakeReview())
	}

	return reviews
}

func fakeWords(n int) []string {
	wordsLen := rand.Intn(n + 1)
	words := make([]string, 0, wordsLen)
	for range wordsLen {
		words = append(words, faker.Word())
	}

	return words
}
