// internal/tests/marketplace_test.go
package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/vendora/vendora-backend/internal/config"
	"github.com/vendora/vendora-backend/internal/ledger"
	"github.com/vendora/vendora-backend/internal/models"
	"github.com/vendora/vendora-backend/internal/router"
	"github.com/vendora/vendora-backend/internal/store/storetest"
	"github.com/vendora/vendora-backend/internal/utils"
)

// MarketplaceTestSuite drives the full HTTP surface against the in-memory
// store: real router, real middleware, real services.
type MarketplaceTestSuite struct {
	suite.Suite
	store  *storetest.Memory
	cfg    *config.Config
	router *gin.Engine
	seq    int
}

func (suite *MarketplaceTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	suite.store = storetest.New()
	suite.cfg = &config.Config{
		Environment: "test",
		JWT: config.JWTConfig{
			SecretKey:       "test-secret",
			AccessTokenTTL:  1,
			RefreshTokenTTL: 24,
		},
		Platform: config.PlatformConfig{
			OperatorID:     uuid.MustParse("00000000-0000-0000-0000-000000000001"),
			TreasuryID:     uuid.MustParse("00000000-0000-0000-0000-000000000002"),
			FeeBasisPoints: 250,
		},
	}
	suite.router = router.Initialize(suite.store, suite.cfg)

	// Seed the operator account the way the database seeder does.
	operator := &models.User{
		Username: "operator",
		Email:    "operator@example.com",
		Status:   models.UserStatusActive,
	}
	operator.ID = suite.cfg.Platform.OperatorID
	suite.Require().NoError(operator.SetPassword("OperatorPass123!"))
	suite.Require().NoError(suite.store.CreateUser(operator))
	suite.Require().NoError(suite.store.CreateWallet(&models.Wallet{OwnerID: operator.ID}))
}

// request sends one HTTP request through the router. Every call gets its own
// client IP so the per-IP rate limiters never throttle a test run.
func (suite *MarketplaceTestSuite) request(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, path, &buf)
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	suite.seq++
	req.RemoteAddr = fmt.Sprintf("10.9.%d.%d:4242", suite.seq/200, suite.seq%200+1)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *MarketplaceTestSuite) envelope(w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response), "body: %s", w.Body.String())
	return response
}

// data asserts a successful envelope and returns its data object.
func (suite *MarketplaceTestSuite) data(w *httptest.ResponseRecorder) map[string]interface{} {
	response := suite.envelope(w)
	suite.Require().Equal(true, response["success"], "body: %s", w.Body.String())
	d, ok := response["data"].(map[string]interface{})
	suite.Require().True(ok, "data is not an object: %s", w.Body.String())
	return d
}

// errorCode asserts a failed envelope and returns its taxonomy code.
func (suite *MarketplaceTestSuite) errorCode(w *httptest.ResponseRecorder) string {
	response := suite.envelope(w)
	suite.Require().Equal(false, response["success"], "body: %s", w.Body.String())
	apiErr, ok := response["error"].(map[string]interface{})
	suite.Require().True(ok, "error is not an object: %s", w.Body.String())
	code, _ := apiErr["code"].(string)
	return code
}

// registerUser creates an account over the API and returns its id and token.
func (suite *MarketplaceTestSuite) registerUser(username string) (uuid.UUID, string) {
	w := suite.request(http.MethodPost, "/v1/auth/register", "", map[string]interface{}{
		"username": username,
		"email":    username + "@example.com",
		"password": "TestPass123!",
	})
	suite.Require().Equal(http.StatusCreated, w.Code, "body: %s", w.Body.String())

	d := suite.data(w)
	user := d["user"].(map[string]interface{})
	id, err := uuid.Parse(user["id"].(string))
	suite.Require().NoError(err)
	return id, d["token"].(string)
}

// operatorToken mints a JWT for the seeded operator account.
func (suite *MarketplaceTestSuite) operatorToken() string {
	token, err := utils.GenerateJWT(suite.cfg.Platform.OperatorID, "operator", 1)
	suite.Require().NoError(err)
	return token
}

// fund credits a wallet directly, standing in for a confirmed Stripe top-up.
func (suite *MarketplaceTestSuite) fund(owner uuid.UUID, amount int64) {
	_, err := ledger.Deposit(suite.store, owner, amount, "seed-"+uuid.NewString())
	suite.Require().NoError(err)
}

func (suite *MarketplaceTestSuite) listProduct(token, title string, price int64) int64 {
	w := suite.request(http.MethodPost, "/v1/products", token, map[string]interface{}{
		"title":        title,
		"description":  "a digital download",
		"price":        price,
		"resource_key": "assets/" + title + ".zip",
		"category":     "design",
		"tags":         []string{"icons"},
	})
	suite.Require().Equal(http.StatusCreated, w.Code, "body: %s", w.Body.String())

	product := suite.data(w)["product"].(map[string]interface{})
	return int64(product["id"].(float64))
}

func (suite *MarketplaceTestSuite) TestHealthCheck() {
	w := suite.request(http.MethodGet, "/health", "", nil)

	suite.Equal(http.StatusOK, w.Code)
	var body map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("healthy", body["status"])
}

func (suite *MarketplaceTestSuite) TestRegistrationAndLogin() {
	_, token := suite.registerUser("newcomer")
	suite.NotEmpty(token)

	// The registration token authenticates immediately
	w := suite.request(http.MethodGet, "/v1/auth/me", token, nil)
	suite.Equal(http.StatusOK, w.Code)
	user := suite.data(w)["user"].(map[string]interface{})
	suite.Equal("newcomer", user["username"])

	// Fresh login
	w = suite.request(http.MethodPost, "/v1/auth/login", "", map[string]interface{}{
		"email":    "newcomer@example.com",
		"password": "TestPass123!",
	})
	suite.Equal(http.StatusOK, w.Code)

	// Wrong password
	w = suite.request(http.MethodPost, "/v1/auth/login", "", map[string]interface{}{
		"email":    "newcomer@example.com",
		"password": "WrongPass123!",
	})
	suite.Equal(http.StatusUnauthorized, w.Code)

	// Duplicate registration
	w = suite.request(http.MethodPost, "/v1/auth/register", "", map[string]interface{}{
		"username": "newcomer",
		"email":    "other@example.com",
		"password": "TestPass123!",
	})
	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("ALREADY_EXISTS", suite.errorCode(w))
}

func (suite *MarketplaceTestSuite) TestMarketplacePurchaseFlow() {
	_, sellerToken := suite.registerUser("seller")
	buyerID, buyerToken := suite.registerUser("buyer")
	suite.fund(buyerID, 50_000)

	productID := suite.listProduct(sellerToken, "icon-pack", 10_000)
	suite.Equal(int64(1), productID)

	// Catalog search sees the listing
	w := suite.request(http.MethodGet, "/v1/products", "", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("1", w.Header().Get("X-Total-Count"))

	// Buyer purchases at the 2.5% fee rate
	w = suite.request(http.MethodPost, fmt.Sprintf("/v1/products/%d/purchase", productID), buyerToken, nil)
	suite.Require().Equal(http.StatusCreated, w.Code, "body: %s", w.Body.String())
	purchase := suite.data(w)["purchase"].(map[string]interface{})
	suite.Equal(float64(10_000), purchase["price_paid"])
	suite.Equal(float64(250), purchase["fee_paid"])

	// Buying the same product twice is rejected
	w = suite.request(http.MethodPost, fmt.Sprintf("/v1/products/%d/purchase", productID), buyerToken, nil)
	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("ALREADY_EXISTS", suite.errorCode(w))

	// Purchase unlocks the download; local mode returns the raw key
	w = suite.request(http.MethodGet, fmt.Sprintf("/v1/products/%d/download", productID), buyerToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code, "body: %s", w.Body.String())
	suite.Equal("assets/icon-pack.zip", suite.data(w)["download_url"])

	// Sellers cannot download what they did not buy
	w = suite.request(http.MethodGet, fmt.Sprintf("/v1/products/%d/download", productID), sellerToken, nil)
	suite.Equal(http.StatusForbidden, w.Code)
	suite.Equal("NOT_AUTHORIZED", suite.errorCode(w))

	// Anyone can check purchase state by explicit buyer id
	w = suite.request(http.MethodGet, fmt.Sprintf("/v1/products/%d/purchased?buyer=%s", productID, buyerID), "", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(true, suite.data(w)["purchased"])

	// The buyer may review what they bought
	w = suite.request(http.MethodPost, fmt.Sprintf("/v1/products/%d/reviews", productID), buyerToken, map[string]interface{}{
		"rating": 5,
		"body":   "exactly as described",
	})
	suite.Require().Equal(http.StatusCreated, w.Code, "body: %s", w.Body.String())

	w = suite.request(http.MethodGet, fmt.Sprintf("/v1/products/%d/reviews", productID), "", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("1", w.Header().Get("X-Total-Count"))

	// Earnings accrued net of fee
	w = suite.request(http.MethodGet, "/v1/earnings", sellerToken, nil)
	suite.Equal(http.StatusOK, w.Code)
	earnings := suite.data(w)["earnings"].(map[string]interface{})
	suite.Equal(float64(9_750), earnings["available_balance"])
	suite.Equal(float64(1), earnings["total_sales"])

	// Withdrawal pays the seller's wallet
	w = suite.request(http.MethodPost, "/v1/earnings/withdraw", sellerToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code, "body: %s", w.Body.String())
	withdrawal := suite.data(w)["withdrawal"].(map[string]interface{})
	suite.Equal(float64(9_750), withdrawal["amount"])

	w = suite.request(http.MethodGet, "/v1/wallet", sellerToken, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(float64(9_750), suite.data(w)["balance"])

	// Buyer paid the full price
	w = suite.request(http.MethodGet, "/v1/wallet", buyerToken, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(float64(40_000), suite.data(w)["balance"])

	// Sale and payout notices landed in the seller's inbox
	w = suite.request(http.MethodGet, "/v1/notifications", sellerToken, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("2", w.Header().Get("X-Total-Count"))
}

func (suite *MarketplaceTestSuite) TestPurchaseWithoutFunds() {
	_, sellerToken := suite.registerUser("seller")
	_, buyerToken := suite.registerUser("broke")

	productID := suite.listProduct(sellerToken, "wallpaper", 5_000)

	w := suite.request(http.MethodPost, fmt.Sprintf("/v1/products/%d/purchase", productID), buyerToken, nil)
	suite.Equal(http.StatusPaymentRequired, w.Code)
	suite.Equal("INSUFFICIENT_FUNDS", suite.errorCode(w))
}

func (suite *MarketplaceTestSuite) TestOperatorModeration() {
	sellerID, sellerToken := suite.registerUser("seller")
	productID := suite.listProduct(sellerToken, "font-bundle", 8_000)
	operator := suite.operatorToken()

	// Only the operator may deactivate listings
	w := suite.request(http.MethodPut, fmt.Sprintf("/v1/admin/products/%d/deactivate", productID), sellerToken, nil)
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.request(http.MethodPut, fmt.Sprintf("/v1/admin/products/%d/deactivate", productID), operator, nil)
	suite.Require().Equal(http.StatusOK, w.Code, "body: %s", w.Body.String())
	product := suite.data(w)["product"].(map[string]interface{})
	suite.Equal(false, product["active"])

	// Deactivated listings vanish from public view but not from the seller
	w = suite.request(http.MethodGet, fmt.Sprintf("/v1/products/%d", productID), "", nil)
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.request(http.MethodGet, fmt.Sprintf("/v1/products/%d", productID), sellerToken, nil)
	suite.Equal(http.StatusOK, w.Code)

	// Suspension blocks new logins but leaves issued tokens valid
	w = suite.request(http.MethodPut, fmt.Sprintf("/v1/admin/users/%s/suspend", sellerID), operator, nil)
	suite.Require().Equal(http.StatusOK, w.Code, "body: %s", w.Body.String())

	w = suite.request(http.MethodPost, "/v1/auth/login", "", map[string]interface{}{
		"email":    "seller@example.com",
		"password": "TestPass123!",
	})
	suite.Equal(http.StatusUnauthorized, w.Code)

	w = suite.request(http.MethodGet, "/v1/auth/me", sellerToken, nil)
	suite.Equal(http.StatusOK, w.Code)

	// Reinstatement restores login
	w = suite.request(http.MethodPut, fmt.Sprintf("/v1/admin/users/%s/reinstate", sellerID), operator, nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.request(http.MethodPost, "/v1/auth/login", "", map[string]interface{}{
		"email":    "seller@example.com",
		"password": "TestPass123!",
	})
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *MarketplaceTestSuite) TestPlatformFeeAdministration() {
	_, sellerToken := suite.registerUser("seller")
	buyerID, buyerToken := suite.registerUser("buyer")
	suite.fund(buyerID, 20_000)
	operator := suite.operatorToken()

	productID := suite.listProduct(sellerToken, "preset-pack", 10_000)

	w := suite.request(http.MethodPost, fmt.Sprintf("/v1/products/%d/purchase", productID), buyerToken, nil)
	suite.Require().Equal(http.StatusCreated, w.Code, "body: %s", w.Body.String())

	// Dashboard reflects the settled sale
	w = suite.request(http.MethodGet, "/v1/admin/dashboard/stats", operator, nil)
	suite.Require().Equal(http.StatusOK, w.Code, "body: %s", w.Body.String())
	stats := suite.data(w)["stats"].(map[string]interface{})
	suite.Equal(float64(1), stats["total_purchases"])
	suite.Equal(float64(10_000), stats["sales_volume"])
	suite.Equal(float64(250), stats["fees_collected"])

	// Fee pot pays out to the operator wallet, once
	w = suite.request(http.MethodPost, "/v1/admin/platform/fees/withdraw", operator, nil)
	suite.Require().Equal(http.StatusOK, w.Code, "body: %s", w.Body.String())
	withdrawal := suite.data(w)["withdrawal"].(map[string]interface{})
	suite.Equal(float64(250), withdrawal["amount"])

	w = suite.request(http.MethodGet, "/v1/wallet", operator, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(float64(250), suite.data(w)["balance"])

	w = suite.request(http.MethodPost, "/v1/admin/platform/fees/withdraw", operator, nil)
	suite.Equal(http.StatusPaymentRequired, w.Code)
	suite.Equal("INSUFFICIENT_FUNDS", suite.errorCode(w))

	// Rate changes bind future purchases and reject rates above 10%
	w = suite.request(http.MethodPut, "/v1/admin/platform/fee-rate", operator, map[string]interface{}{
		"fee_basis_points": 1_001,
	})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("INVALID_PRICE", suite.errorCode(w))

	w = suite.request(http.MethodPut, "/v1/admin/platform/fee-rate", operator, map[string]interface{}{
		"fee_basis_points": 500,
	})
	suite.Require().Equal(http.StatusOK, w.Code, "body: %s", w.Body.String())
	suite.Equal(float64(500), suite.data(w)["fee_basis_points"])

	w = suite.request(http.MethodGet, "/v1/platform/fee-rate", "", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(float64(500), suite.data(w)["fee_basis_points"])
}

func (suite *MarketplaceTestSuite) TestPublicFeeQuote() {
	w := suite.request(http.MethodGet, "/v1/platform/fee-quote?price=9999", "", nil)
	suite.Equal(http.StatusOK, w.Code)

	quote := suite.data(w)["quote"].(map[string]interface{})
	suite.Equal(float64(249), quote["fee"])
	suite.Equal(float64(9_750), quote["payout"])

	w = suite.request(http.MethodGet, "/v1/platform/fee-quote?price=banana", "", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *MarketplaceTestSuite) TestAccessControl() {
	_, sellerToken := suite.registerUser("seller")
	productID := suite.listProduct(sellerToken, "sticker-sheet", 2_000)

	// Wallet requires authentication
	w := suite.request(http.MethodGet, "/v1/wallet", "", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)

	w = suite.request(http.MethodGet, "/v1/wallet", "not-a-jwt", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)

	// Admin surface is operator-only
	w = suite.request(http.MethodGet, "/v1/admin/dashboard/stats", sellerToken, nil)
	suite.Equal(http.StatusForbidden, w.Code)

	// Purchased check needs a buyer from somewhere
	w = suite.request(http.MethodGet, fmt.Sprintf("/v1/products/%d/purchased", productID), "", nil)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.request(http.MethodGet, fmt.Sprintf("/v1/products/%d/purchased", productID), sellerToken, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(false, suite.data(w)["purchased"])

	// Unknown products are consistently 404
	w = suite.request(http.MethodGet, "/v1/products/999", "", nil)
	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("NOT_FOUND", suite.errorCode(w))

	w = suite.request(http.MethodGet, "/v1/products/banana", "", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func TestMarketplaceSuite(t *testing.T) {
	suite.Run(t, new(MarketplaceTestSuite))
}
