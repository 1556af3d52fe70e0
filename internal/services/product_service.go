package services

import (
	"context"
	"errors"
	"time"

	"catalog/internal/apperrors"
	"catalog/internal/models"
	"catalog/internal/repositories"

	"go.uber.org/zap"
)

const productResource = "Product"

// DescriptionGenerator produces marketing copy for a product name.
type DescriptionGenerator interface {
	GenerateDescription(ctx context.Context, productName string) (string, error)
}

// EventPublisher delivers product change events to interested consumers.
type EventPublisher interface {
	PublishProductEvent(event models.ProductEvent) error
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	generator DescriptionGenerator
	publisher EventPublisher // optional
	logger    *zap.Logger
}

// NewProductService creates a new ProductService. publisher may be nil.
func NewProductService(repo repositories.ProductRepository, generator DescriptionGenerator, publisher EventPublisher, logger *zap.Logger) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		repo:      repo,
		generator: generator,
		publisher: publisher,
		logger:    logger,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.GetAll(ctx)
}

// GetProductByID retrieves a product and replaces its description with freshly
// generated text. The stored description is left untouched.
func (s *ProductService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return nil, apperrors.NewNotFoundError(productResource, id)
		}
		return nil, err
	}

	description, err := s.generator.GenerateDescription(ctx, product.Name)
	if err != nil {
		s.logger.Error("Description generation failed",
			zap.String("product_id", id),
			zap.String("product_name", product.Name),
			zap.Error(err),
		)
		return nil, apperrors.NewGenerationError(err)
	}
	product.Description = description

	return product, nil
}

// CreateProduct stores a new product and returns it with its assigned ID.
func (s *ProductService) CreateProduct(ctx context.Context, req models.CreateProductRequest) (*models.Product, error) {
	product := req.ToProduct()
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.publish(models.ProductCreated, product.ID, product)
	return product, nil
}

// UpdateProduct applies a sparse patch and returns the product as stored afterwards.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, req models.UpdateProductRequest) (*models.Product, error) {
	if err := s.repo.Update(ctx, id, req); err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return nil, apperrors.NewNotFoundError(productResource, id)
		}
		return nil, err
	}

	// The row can vanish between the update and the read under a concurrent delete.
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return nil, apperrors.NewNotFoundError(productResource, id)
		}
		return nil, err
	}

	s.publish(models.ProductUpdated, product.ID, product)
	return product, nil
}

// DeleteProduct deletes a product by its ID. Deleting a missing product is not an error.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(models.ProductDeleted, id, nil)
	return nil
}

// CountProducts returns the number of stored products.
func (s *ProductService) CountProducts(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *ProductService) publish(eventType, productID string, product *models.Product) {
	if s.publisher == nil {
		return
	}

	event := models.ProductEvent{
		Type:       eventType,
		ProductID:  productID,
		Product:    product,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.publisher.PublishProductEvent(event); err != nil {
		s.logger.Warn("Failed to publish product event",
			zap.String("type", eventType),
			zap.String("product_id", productID),
			zap.Error(err),
		)
	}
}
