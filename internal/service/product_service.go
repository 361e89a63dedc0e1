package service

import (
	"fmt"

	"satay/internal/domain"
	"satay/pkg/logger"
)

type ProductService struct {
	repo   domain.ProductRepository
	logger logger.Logger
}

func NewProductService(repo domain.ProductRepository, logger logger.Logger) domain.ProductService {
	return &ProductService{
		repo:   repo,
		logger: logger,
	}
}

func (s *ProductService) CreateProduct(product *domain.Product) error {
	if err := s.repo.Create(product); err != nil {
		s.logger.Error("Ürün oluşturma sırasında hata oluştu", map[string]interface{}{"name": product.Name, "error": err.Error()})
		return fmt.Errorf("ürün oluşturulamadı: %w", err)
	}

	return nil
}

func (s *ProductService) GetProducts(categoryID *int64) ([]*domain.Product, error) {
	products, err := s.repo.FindAll(categoryID)
	if err != nil {
		s.logger.Error("Ürünler listelenemedi", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("ürünler listelenemedi: %w", err)
	}

	return products, nil
}

func (s *ProductService) GetProductByID(id int64) (*domain.Product, error) {
	product, err := s.repo.FindByID(id)
	if err != nil {
		s.logger.Error("Ürün ID'ye göre bulunamadı", map[string]interface{}{"id": id, "error": err.Error()})
		return nil, fmt.Errorf("ürün bulunamadı: %w", err)
	}

	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	return product, nil
}

func (s *ProductService) UpdateProduct(product *domain.Product) error {
	if err := s.repo.Update(product); err != nil {
		s.logger.Error("Ürün güncelleme sırasında hata oluştu", map[string]interface{}{"id": product.ID, "error": err.Error()})
		return fmt.Errorf("ürün güncellenemedi: %w", err)
	}

	return nil
}

func (s *ProductService) DeleteProduct(id int64) error {
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("Ürün silme sırasında hata oluştu", map[string]interface{}{"id": id, "error": err.Error()})
		return fmt.Errorf("ürün silinemedi: %w", err)
	}

	return nil
}

func (s *ProductService) ListCategories() ([]*domain.Category, error) {
	categories, err := s.repo.FindAllCategories()
	if err != nil {
		s.logger.Error("Kategoriler listelenemedi", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("kategoriler listelenemedi: %w", err)
	}

	return categories, nil
}

func (s *ProductService) AdjustStock(id int64, delta int64) error {
	if err := s.repo.AdjustStock(id, delta); err != nil {
		s.logger.Error("Stok güncelleme sırasında hata oluştu", map[string]interface{}{"id": id, "delta": delta, "error": err.Error()})
		return fmt.Errorf("stok güncellenemedi: %w", err)
	}

	return nil
}
