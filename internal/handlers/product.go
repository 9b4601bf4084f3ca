// internal/handlers/product.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vendora/vendora-backend/internal/services"
	"github.com/vendora/vendora-backend/internal/utils"
)

type ProductHandler struct {
	catalogService  *services.CatalogService
	purchaseService *services.PurchaseService
	reviewService   *services.ReviewService
	storageService  *services.StorageService
}

func NewProductHandler(
	catalogService *services.CatalogService,
	purchaseService *services.PurchaseService,
	reviewService *services.ReviewService,
	storageService *services.StorageService,
) *ProductHandler {
	return &ProductHandler{
		catalogService:  catalogService,
		purchaseService: purchaseService,
		reviewService:   reviewService,
		storageService:  storageService,
	}
}

func parseProductID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return 0, false
	}
	return id, true
}

// GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	products, total, err := h.catalogService.SearchProducts(services.ProductSearchParams{
		PaginationParams: params,
	})
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	result := utils.CreatePaginationResult(products, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}

	// Inactive listings stay visible to their seller and the operator.
	var viewerID *uuid.UUID
	if uid, exists := utils.GetUserIDFromContext(c); exists {
		viewerID = &uid
	}

	product, err := h.catalogService.GetProduct(id, viewerID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"product": product,
	})
}

// POST /products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	sellerID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.ListProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	product, err := h.catalogService.ListProduct(sellerID, &req)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"product": product,
	})
}

// PUT /products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}

	sellerID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	product, err := h.catalogService.UpdateProduct(id, sellerID, &req)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"product": product,
	})
}

// GET /products/mine
func (h *ProductHandler) GetMyProducts(c *gin.Context) {
	sellerID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	params := utils.GetPaginationParams(c)
	products, total, err := h.catalogService.SellerProducts(sellerID, params)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	result := utils.CreatePaginationResult(products, total, params)
	utils.PaginatedResponse(c, result)
}

// POST /products/upload-asset
func (h *ProductHandler) UploadAsset(c *gin.Context) {
	sellerID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, "No file uploaded", err.Error())
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.BadRequestResponse(c, "Unreadable upload", err.Error())
		return
	}
	defer file.Close()

	upload, err := h.storageService.UploadAsset(sellerID, file, fileHeader)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"asset": upload,
	})
}

// POST /products/:id/purchase
func (h *ProductHandler) PurchaseProduct(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}

	buyerID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	purchase, err := h.purchaseService.PurchaseProduct(buyerID, id)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"purchase": purchase,
	})
}

// GET /products/:id/purchase
func (h *ProductHandler) GetPurchase(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}

	buyerID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	purchase, err := h.purchaseService.GetPurchase(buyerID, id)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"purchase": purchase,
	})
}

// GET /purchases
func (h *ProductHandler) GetMyPurchases(c *gin.Context) {
	buyerID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	params := utils.GetPaginationParams(c)
	purchases, total, err := h.purchaseService.BuyerPurchases(buyerID, params)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	result := utils.CreatePaginationResult(purchases, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /products/:id/purchased
func (h *ProductHandler) CheckPurchased(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}

	// An explicit buyer wins over the authenticated caller.
	var buyerID uuid.UUID
	if buyerStr := c.Query("buyer"); buyerStr != "" {
		parsed, err := uuid.Parse(buyerStr)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid buyer ID", nil)
			return
		}
		buyerID = parsed
	} else if uid, exists := utils.GetUserIDFromContext(c); exists {
		buyerID = uid
	} else {
		utils.BadRequestResponse(c, "A buyer is required", nil)
		return
	}

	purchased, err := h.purchaseService.HasPurchased(buyerID, id)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"product_id": id,
		"buyer_id":   buyerID,
		"purchased":  purchased,
	})
}

// GET /products/:id/download
func (h *ProductHandler) DownloadProduct(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}

	buyerID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	access, err := h.purchaseService.GetDownloadAccess(buyerID, id)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	url, err := h.storageService.DownloadURL(access.ResourceKey)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"product_id":   access.ProductID,
		"title":        access.Title,
		"download_url": url,
	})
}

// POST /products/:id/reviews
func (h *ProductHandler) AddReview(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}

	reviewerID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	review, err := h.reviewService.AddReview(reviewerID, id, &req)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"review": review,
	})
}

// GET /products/:id/reviews
func (h *ProductHandler) GetReviews(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	reviews, total, err := h.reviewService.ListReviews(id, params)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	result := utils.CreatePaginationResult(reviews, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /products/:id/reviews/:reviewerId
func (h *ProductHandler) GetReview(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}

	reviewerID, err := uuid.Parse(c.Param("reviewerId"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid reviewer ID", nil)
		return
	}

	review, err := h.reviewService.GetReview(id, reviewerID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"review": review,
	})
}
