// internal/handlers/admin.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vendora/vendora-backend/internal/models"
	"github.com/vendora/vendora-backend/internal/services"
	"github.com/vendora/vendora-backend/internal/utils"
)

type AdminHandler struct {
	adminService    *services.AdminService
	catalogService  *services.CatalogService
	earningsService *services.EarningsService
}

func NewAdminHandler(
	adminService *services.AdminService,
	catalogService *services.CatalogService,
	earningsService *services.EarningsService,
) *AdminHandler {
	return &AdminHandler{
		adminService:    adminService,
		catalogService:  catalogService,
		earningsService: earningsService,
	}
}

// GET /admin/dashboard/stats
func (h *AdminHandler) GetDashboardStats(c *gin.Context) {
	callerID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	stats, err := h.adminService.GetDashboardStats(callerID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"stats": stats,
	})
}

// PUT /admin/products/:id/deactivate
func (h *AdminHandler) DeactivateProduct(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}

	callerID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	product, err := h.catalogService.DeactivateProduct(callerID, id)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"product": product,
	})
}

// PUT /admin/platform/fee-rate
func (h *AdminHandler) SetFeeRate(c *gin.Context) {
	callerID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	// Zero is a legal rate, so range checks live in the service.
	var req struct {
		FeeBasisPoints int `json:"fee_basis_points"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	cfg, err := h.earningsService.SetFeeRate(callerID, req.FeeBasisPoints)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"fee_basis_points": cfg.FeeBasisPoints,
	})
}

// POST /admin/platform/fees/withdraw
func (h *AdminHandler) WithdrawPlatformFees(c *gin.Context) {
	callerID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	receipt, err := h.earningsService.WithdrawPlatformFees(callerID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"withdrawal": receipt,
	})
}

// PUT /admin/users/:id/suspend
func (h *AdminHandler) SuspendUser(c *gin.Context) {
	h.setUserStatus(c, h.adminService.SuspendUser)
}

// PUT /admin/users/:id/reinstate
func (h *AdminHandler) ReinstateUser(c *gin.Context) {
	h.setUserStatus(c, h.adminService.ReinstateUser)
}

func (h *AdminHandler) setUserStatus(c *gin.Context, apply func(uuid.UUID, uuid.UUID) (*models.User, error)) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID", nil)
		return
	}

	callerID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	user, err := apply(callerID, userID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"user": user,
	})
}
