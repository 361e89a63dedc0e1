package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID            int64           `json:"id"`
	CategoryID    *int64          `json:"category_id,omitempty"`
	CategoryName  *string         `json:"category_name,omitempty"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int64           `json:"stock_quantity"`
	ImagePath     *string         `json:"image_path,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

type ProductRepository interface {
	FindByID(id int64) (*Product, error)
	FindAll(categoryID *int64) ([]*Product, error)
	Create(product *Product) error
	Update(product *Product) error
	Delete(id int64) error
	FindAllCategories() ([]*Category, error)
	AdjustStock(id int64, delta int64) error
}

type ProductService interface {
	CreateProduct(product *Product) error
	GetProducts(categoryID *int64) ([]*Product, error)
	GetProductByID(id int64) (*Product, error)
	UpdateProduct(product *Product) error
	DeleteProduct(id int64) error
	ListCategories() ([]*Category, error)
	AdjustStock(id int64, delta int64) error
}
