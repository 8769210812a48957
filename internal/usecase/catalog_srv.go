package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketplace/internal/data/entity"
	"marketplace/internal/data/repository"
	"marketplace/internal/dto/request"
	"marketplace/internal/dto/response"
	"marketplace/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CatalogService interface {
	CreateProduct(ctx context.Context, actor entity.Actor, req *request.ProductRequest) (*response.ProductResponse, error)
	ListCategories(ctx context.Context) ([]response.CategoryResponse, error)
	CreateCategory(ctx context.Context, actor entity.Actor, req *request.CategoryRequest) (*response.CategoryResponse, error)
}

type catalogService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCatalogService(repo *repository.Repository, log *zap.Logger) CatalogService {
	return &catalogService{
		repo: repo,
		log:  log.With(zap.String("service", "catalog")),
	}
}

// CreateProduct lists a product for the actor, who must be a seller or an
// admin. The category is optional but must exist and be active.
func (s *catalogService) CreateProduct(ctx context.Context, actor entity.Actor, req *request.ProductRequest) (*response.ProductResponse, error) {
	if actor.UserID == uuid.Nil {
		return nil, ErrForbidden
	}
	if !CanActOn(actor, actor.UserID, ActionSell) {
		s.log.Warn("Product creation refused",
			zap.String("user_id", actor.UserID.String()),
			zap.String("user_type", string(actor.UserType)))
		return nil, ErrSellerRequired
	}

	verrs := newValidationError(utils.ValidateStruct(req))
	var cents int64
	if req.Price != "" {
		var err error
		cents, err = utils.ParseCents(req.Price.String())
		if err != nil || cents == 0 {
			verrs.add("price", "Must be a positive amount with at most 2 decimal places")
		}
	}
	if !verrs.empty() {
		return nil, verrs
	}

	var category *entity.Category
	if req.CategoryID != nil {
		found, err := s.repo.Category.FindByID(ctx, uuid.MustParse(*req.CategoryID))
		if err != nil {
			return nil, fmt.Errorf("check category: %w", err)
		}
		if found == nil || !found.IsActive {
			return nil, newValidationError(map[string]string{"category": "Category not found"})
		}
		category = found
	}

	product := &entity.Product{
		Record:      entity.NewRecord(time.Now()),
		SellerID:    actor.UserID,
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  cents,
		Stock:       req.Stock,
	}
	if category != nil {
		product.CategoryID = &category.ID
	}

	if err := s.repo.Product.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.log.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("seller_id", actor.UserID.String()),
		zap.Int64("price_cents", cents))

	resp := response.ProductToResponse(product, category)
	return &resp, nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]response.CategoryResponse, error) {
	categories, err := s.repo.Category.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	out := make([]response.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, response.CategoryToResponse(c))
	}
	return out, nil
}

func (s *catalogService) CreateCategory(ctx context.Context, actor entity.Actor, req *request.CategoryRequest) (*response.CategoryResponse, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	verrs := newValidationError(utils.ValidateStruct(req))
	slug := req.Slug
	switch {
	case slug == "":
		if slug = utils.Slugify(req.Name); slug == "" && req.Name != "" {
			verrs.add("slug", "Cannot be derived from name, please provide one")
		}
	case utils.Slugify(slug) != slug:
		verrs.add("slug", "Use lowercase letters, numbers and hyphens only")
	}
	if !verrs.empty() {
		return nil, verrs
	}

	category := &entity.Category{
		Record:   entity.NewRecord(time.Now()),
		Name:     req.Name,
		Slug:     slug,
		IsActive: true,
	}

	if err := s.repo.Category.Create(ctx, category); err != nil {
		var dup *repository.DuplicateError
		if errors.As(err, &dup) {
			return nil, &ConflictError{Fields: map[string]string{
				dup.Field: fmt.Sprintf("A category with this %s already exists", dup.Field),
			}}
		}
		return nil, fmt.Errorf("create category: %w", err)
	}

	s.log.Info("Category created",
		zap.String("category_id", category.ID.String()),
		zap.String("slug", category.Slug),
		zap.String("admin_id", actor.UserID.String()))

	resp := response.CategoryToResponse(repository.CategoryCount{Category: *category})
	return &resp, nil
}
