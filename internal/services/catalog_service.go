// internal/services/catalog_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/vendora/vendora-backend/internal/apperr"
	"github.com/vendora/vendora-backend/internal/config"
	"github.com/vendora/vendora-backend/internal/models"
	"github.com/vendora/vendora-backend/internal/store"
	"github.com/vendora/vendora-backend/internal/utils"
)

// CatalogService owns product listings: creation with dense id allocation,
// seller updates, and operator moderation.
type CatalogService struct {
	store         store.Store
	config        *config.Config
	notifications *NotificationService
}

type ListProductRequest struct {
	Title       string   `json:"title" validate:"max=255"`
	Description string   `json:"description" validate:"max=10000"`
	Price       int64    `json:"price"`
	ResourceKey string   `json:"resource_key" validate:"max=512"`
	Category    string   `json:"category" validate:"max=100"`
	Tags        []string `json:"tags,omitempty" validate:"max=20,dive,max=50"`
}

// UpdateProductRequest replaces every mutable product field; the seller,
// sales counter and creation time are preserved. Note that Active is part of
// the replaced set, so an update that omits it deactivates the listing.
type UpdateProductRequest struct {
	Title       string   `json:"title" validate:"max=255"`
	Description string   `json:"description" validate:"max=10000"`
	Price       int64    `json:"price"`
	ResourceKey string   `json:"resource_key" validate:"max=512"`
	Category    string   `json:"category" validate:"max=100"`
	Tags        []string `json:"tags,omitempty" validate:"max=20,dive,max=50"`
	Active      bool     `json:"active"`
}

type ProductSearchParams struct {
	utils.PaginationParams
}

func NewCatalogService(store store.Store, cfg *config.Config, notifications *NotificationService) *CatalogService {
	return &CatalogService{
		store:         store,
		config:        cfg,
		notifications: notifications,
	}
}

// ListProduct creates a listing owned by the caller. Ids come from the
// platform counter inside the same transaction as the insert, so they are
// dense and strictly increasing from 1.
func (s *CatalogService) ListProduct(sellerID uuid.UUID, req *ListProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperr.InvalidPrice("title must not be empty")
	}
	if req.Price <= 0 {
		return nil, apperr.InvalidPrice("price must be a positive amount")
	}

	seller, err := s.store.GetUser(sellerID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.NotAuthorized("unknown seller identity")
	}
	if err != nil {
		return nil, fmt.Errorf("loading seller: %w", err)
	}
	if seller.Status != models.UserStatusActive {
		return nil, apperr.NotAuthorized("seller account is suspended")
	}

	var product *models.Product
	err = s.store.Atomic(func(tx store.Store) error {
		cfg, err := tx.GetPlatformConfigForUpdate()
		if err != nil {
			return fmt.Errorf("loading platform config: %w", err)
		}
		id := cfg.NextProductID
		cfg.NextProductID++
		if err := tx.SavePlatformConfig(cfg); err != nil {
			return fmt.Errorf("advancing product counter: %w", err)
		}

		product = &models.Product{
			ID:          id,
			SellerID:    sellerID,
			Title:       title,
			Description: req.Description,
			Category:    req.Category,
			Tags:        req.Tags,
			Price:       req.Price,
			ResourceKey: req.ResourceKey,
			Active:      true,
		}
		if err := tx.CreateProduct(product); err != nil {
			return fmt.Errorf("creating product: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct returns a product. Inactive listings stay visible to their
// seller and the operator only.
func (s *CatalogService) GetProduct(id uint64, viewerID *uuid.UUID) (*models.Product, error) {
	product, err := s.store.GetProduct(id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.NotFound("product not found")
	}
	if err != nil {
		return nil, fmt.Errorf("loading product: %w", err)
	}

	if !product.Active {
		allowed := viewerID != nil &&
			(*viewerID == product.SellerID || *viewerID == s.config.Platform.OperatorID)
		if !allowed {
			return nil, apperr.NotFound("product not found")
		}
	}
	return product, nil
}

// UpdateProduct replaces the mutable fields of a listing the caller owns.
func (s *CatalogService) UpdateProduct(productID uint64, sellerID uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var product *models.Product
	err := s.store.Atomic(func(tx store.Store) error {
		var err error
		product, err = tx.GetProductForUpdate(productID)
		if errors.Is(err, store.ErrNotFound) {
			return apperr.NotFound("product not found")
		}
		if err != nil {
			return fmt.Errorf("loading product: %w", err)
		}
		if product.SellerID != sellerID {
			return apperr.NotAuthorized("only the seller may update this product")
		}

		title := strings.TrimSpace(req.Title)
		if title == "" {
			return apperr.InvalidPrice("title must not be empty")
		}
		if req.Price <= 0 {
			return apperr.InvalidPrice("price must be a positive amount")
		}

		product.Title = title
		product.Description = req.Description
		product.Price = req.Price
		product.ResourceKey = req.ResourceKey
		product.Category = req.Category
		product.Tags = req.Tags
		product.Active = req.Active

		if err := tx.SaveProduct(product); err != nil {
			return fmt.Errorf("saving product: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// DeactivateProduct is the operator's moderation override. It only flips the
// active flag; history, purchases and download access are untouched.
func (s *CatalogService) DeactivateProduct(callerID uuid.UUID, productID uint64) (*models.Product, error) {
	if callerID != s.config.Platform.OperatorID {
		return nil, apperr.NotAuthorized("operator privileges required")
	}

	var product *models.Product
	err := s.store.Atomic(func(tx store.Store) error {
		var err error
		product, err = tx.GetProductForUpdate(productID)
		if errors.Is(err, store.ErrNotFound) {
			return apperr.NotFound("product not found")
		}
		if err != nil {
			return fmt.Errorf("loading product: %w", err)
		}
		product.Active = false
		if err := tx.SaveProduct(product); err != nil {
			return fmt.Errorf("saving product: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.notifications != nil {
		s.notifications.NotifyProductPulled(product.SellerID, product)
	}
	return product, nil
}

// SearchProducts lists active products with optional search, category and
// tag filters.
func (s *CatalogService) SearchProducts(params ProductSearchParams) ([]models.Product, int64, error) {
	products, total, err := s.store.ListProducts(store.ProductFilter{
		Category: params.Category,
		Tag:      params.Tag,
		Search:   params.Search,
		Limit:    params.Limit,
		Offset:   params.Offset(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("listing products: %w", err)
	}
	return products, total, nil
}

// SellerProducts lists the caller's own products, inactive ones included.
func (s *CatalogService) SellerProducts(sellerID uuid.UUID, params utils.PaginationParams) ([]models.Product, int64, error) {
	products, total, err := s.store.ListProducts(store.ProductFilter{
		SellerID:        &sellerID,
		Search:          params.Search,
		IncludeInactive: true,
		Limit:           params.Limit,
		Offset:          params.Offset(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("listing seller products: %w", err)
	}
	return products, total, nil
}
