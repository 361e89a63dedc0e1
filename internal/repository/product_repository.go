package repository

import (
	"database/sql"
	"fmt"
	"time"

	"satay/internal/domain"
	"satay/pkg/logger"
	"satay/pkg/metrics"
)

type ProductRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewProductRepository(db *sql.DB, logger logger.Logger) domain.ProductRepository {
	return &ProductRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ProductRepository) FindByID(id int64) (*domain.Product, error) {
	query := `
		SELECT p.id, p.category_id, c.name, p.name, p.description, p.price, p.stock_quantity, p.image_path, p.created_at
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE p.id = $1
	`

	var product domain.Product
	err := r.db.QueryRow(query, id).Scan(
		&product.ID,
		&product.CategoryID,
		&product.CategoryName,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.StockQuantity,
		&product.ImagePath,
		&product.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.Error("Ürün ID'ye göre bulunamadı", map[string]interface{}{"id": id, "error": err.Error()})
		return nil, fmt.Errorf("ürün bulunamadı: %w", err)
	}

	metrics.RecordDatabaseOperation("select", "products")

	return &product, nil
}

// FindAll kategori adıyla birlikte listeler; kategorisi olmayan ürünler
// LEFT JOIN sayesinde filtresiz listede yer alır.
func (r *ProductRepository) FindAll(categoryID *int64) ([]*domain.Product, error) {
	query := `
		SELECT p.id, p.category_id, c.name, p.name, p.description, p.price, p.stock_quantity, p.image_path, p.created_at
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
	`
	args := []interface{}{}

	if categoryID != nil {
		query += ` WHERE p.category_id = $1`
		args = append(args, *categoryID)
	}

	query += ` ORDER BY p.created_at DESC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		r.logger.Error("Ürünler listelenemedi", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("ürünler listelenemedi: %w", err)
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		var product domain.Product
		err := rows.Scan(
			&product.ID,
			&product.CategoryID,
			&product.CategoryName,
			&product.Name,
			&product.Description,
			&product.Price,
			&product.StockQuantity,
			&product.ImagePath,
			&product.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("ürün satırı okunamadı: %w", err)
		}
		products = append(products, &product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ürünler listelenemedi: %w", err)
	}

	metrics.RecordDatabaseOperation("select", "products")

	return products, nil
}

func (r *ProductRepository) Create(product *domain.Product) error {
	query := `
		INSERT INTO products (category_id, name, description, price, stock_quantity, image_path, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	product.CreatedAt = time.Now()

	err := r.db.QueryRow(
		query,
		product.CategoryID,
		product.Name,
		product.Description,
		product.Price,
		product.StockQuantity,
		product.ImagePath,
		product.CreatedAt,
	).Scan(&product.ID)

	if err != nil {
		r.logger.Error("Ürün oluşturulamadı", map[string]interface{}{"error": err.Error()})
		return fmt.Errorf("ürün oluşturulamadı: %w", err)
	}

	metrics.RecordDatabaseOperation("insert", "products")

	return nil
}

func (r *ProductRepository) Update(product *domain.Product) error {
	query := `
		UPDATE products
		SET category_id = $1, name = $2, description = $3, price = $4, stock_quantity = $5, image_path = $6
		WHERE id = $7
	`

	_, err := r.db.Exec(
		query,
		product.CategoryID,
		product.Name,
		product.Description,
		product.Price,
		product.StockQuantity,
		product.ImagePath,
		product.ID,
	)

	if err != nil {
		r.logger.Error("Ürün güncellenemedi", map[string]interface{}{"id": product.ID, "error": err.Error()})
		return fmt.Errorf("ürün güncellenemedi: %w", err)
	}

	metrics.RecordDatabaseOperation("update", "products")

	return nil
}

func (r *ProductRepository) Delete(id int64) error {
	query := `DELETE FROM products WHERE id = $1`

	_, err := r.db.Exec(query, id)
	if err != nil {
		r.logger.Error("Ürün silinemedi", map[string]interface{}{"id": id, "error": err.Error()})
		return fmt.Errorf("ürün silinemedi: %w", err)
	}

	metrics.RecordDatabaseOperation("delete", "products")

	return nil
}

func (r *ProductRepository) FindAllCategories() ([]*domain.Category, error) {
	query := `SELECT id, name FROM categories ORDER BY name ASC`

	rows, err := r.db.Query(query)
	if err != nil {
		r.logger.Error("Kategoriler listelenemedi", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("kategoriler listelenemedi: %w", err)
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(&category.ID, &category.Name); err != nil {
			return nil, fmt.Errorf("kategori satırı okunamadı: %w", err)
		}
		categories = append(categories, &category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("kategoriler listelenemedi: %w", err)
	}

	metrics.RecordDatabaseOperation("select", "categories")

	return categories, nil
}

// AdjustStock delta kadar düşer; stok eklemek için negatif delta verilir.
// Yeterlilik kontrolü yapılmaz, stok eksiye düşebilir.
func (r *ProductRepository) AdjustStock(id int64, delta int64) error {
	query := `UPDATE products SET stock_quantity = stock_quantity - $1 WHERE id = $2`

	_, err := r.db.Exec(query, delta, id)
	if err != nil {
		r.logger.Error("Ürün stoğu güncellenemedi", map[string]interface{}{"id": id, "error": err.Error()})
		return fmt.Errorf("stok güncellenemedi: %w", err)
	}

	metrics.RecordDatabaseOperation("update", "products")

	return nil
}
