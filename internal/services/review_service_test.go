// internal/services/review_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendora/vendora-backend/internal/apperr"
	"github.com/vendora/vendora-backend/internal/models"
	"github.com/vendora/vendora-backend/internal/utils"
)

func buyProduct(t *testing.T, env *marketplaceEnv, buyerID string, p *models.Product) *models.User {
	t.Helper()
	buyer := env.createUser(t, buyerID)
	env.fund(t, buyer.ID, p.Price)
	_, err := env.purchases.PurchaseProduct(buyer.ID, p.ID)
	require.NoError(t, err)
	return buyer
}

func TestAddReviewRequiresPurchase(t *testing.T) {
	env := newMarketplaceEnv(t)
	seller := env.createUser(t, "seller")
	outsider := env.createUser(t, "outsider")
	p := env.listProduct(t, seller.ID, "brushes", 900)

	// The purchase gate fires before the rating is even looked at.
	_, err := env.reviews.AddReview(outsider.ID, p.ID, &AddReviewRequest{Rating: 9, Body: "never bought it"})
	assert.ErrorIs(t, err, apperr.ErrNotAuthorized)

	// Same for products that do not exist: no purchase, no review.
	_, err = env.reviews.AddReview(outsider.ID, 31337, &AddReviewRequest{Rating: 5})
	assert.ErrorIs(t, err, apperr.ErrNotAuthorized)
}

func TestAddReviewValidatesRatingAfterPurchase(t *testing.T) {
	env := newMarketplaceEnv(t)
	seller := env.createUser(t, "seller")
	p := env.listProduct(t, seller.ID, "overlays", 1_200)
	buyer := buyProduct(t, env, "buyer", p)

	for _, rating := range []int{0, -1, 6, 9} {
		_, err := env.reviews.AddReview(buyer.ID, p.ID, &AddReviewRequest{Rating: rating})
		assert.ErrorIs(t, err, apperr.ErrInvalidPrice, "rating %d", rating)
	}

	review, err := env.reviews.AddReview(buyer.ID, p.ID, &AddReviewRequest{Rating: 5, Body: "crisp"})
	require.NoError(t, err)
	assert.Equal(t, 5, review.Rating)
	assert.Equal(t, "crisp", review.Body)
	assert.Equal(t, buyer.ID, review.ReviewerID)
}

func TestAddReviewOverwritesPreviousOne(t *testing.T) {
	env := newMarketplaceEnv(t)
	seller := env.createUser(t, "seller")
	p := env.listProduct(t, seller.ID, "gradients", 400)
	buyer := buyProduct(t, env, "buyer", p)

	_, err := env.reviews.AddReview(buyer.ID, p.ID, &AddReviewRequest{Rating: 4, Body: "pretty good"})
	require.NoError(t, err)

	_, err = env.reviews.AddReview(buyer.ID, p.ID, &AddReviewRequest{Rating: 2, Body: "broke after update"})
	require.NoError(t, err)

	review, err := env.reviews.GetReview(p.ID, buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, review.Rating)
	assert.Equal(t, "broke after update", review.Body)

	// Still a single review per buyer and product.
	_, total, err := env.reviews.ListReviews(p.ID, utils.PaginationParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestListReviews(t *testing.T) {
	env := newMarketplaceEnv(t)
	seller := env.createUser(t, "seller")
	p := env.listProduct(t, seller.ID, "textures", 700)

	for i, name := range []string{"r1", "r2", "r3"} {
		buyer := buyProduct(t, env, name, p)
		_, err := env.reviews.AddReview(buyer.ID, p.ID, &AddReviewRequest{Rating: i + 3})
		require.NoError(t, err)
	}

	reviews, total, err := env.reviews.ListReviews(p.ID, utils.PaginationParams{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, reviews, 2)

	_, _, err = env.reviews.ListReviews(999, utils.PaginationParams{Page: 1, Limit: 10})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = env.reviews.GetReview(p.ID, seller.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
