// internal/handlers/earnings.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vendora/vendora-backend/internal/services"
	"github.com/vendora/vendora-backend/internal/utils"
)

type EarningsHandler struct {
	earningsService *services.EarningsService
}

func NewEarningsHandler(earningsService *services.EarningsService) *EarningsHandler {
	return &EarningsHandler{
		earningsService: earningsService,
	}
}

// GET /earnings
func (h *EarningsHandler) GetEarnings(c *gin.Context) {
	sellerID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	account, err := h.earningsService.SellerStats(sellerID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"earnings": account,
	})
}

// POST /earnings/withdraw
func (h *EarningsHandler) WithdrawEarnings(c *gin.Context) {
	sellerID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	receipt, err := h.earningsService.WithdrawEarnings(sellerID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"withdrawal": receipt,
	})
}

// GET /platform/fee-rate
func (h *EarningsHandler) GetFeeRate(c *gin.Context) {
	rate, err := h.earningsService.FeeRate()
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"fee_basis_points": rate,
	})
}

// GET /platform/fee-quote
func (h *EarningsHandler) QuoteFee(c *gin.Context) {
	price, err := strconv.ParseInt(c.Query("price"), 10, 64)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid price", nil)
		return
	}

	quote, err := h.earningsService.Quote(price)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"quote": quote,
	})
}
