package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// Ödeme onayı bu servise gelmeden önce gerçekleşmiş kabul edilir;
	// siparişin başka bir durumu yoktur.
	PaymentStatusPaid = "paid"

	DefaultPaymentMethod = "Credit Card"
)

type Order struct {
	ID            int64           `json:"id"`
	UserID        int64           `json:"user_id"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaymentMethod string          `json:"payment_method"`
	PaymentStatus string          `json:"payment_status"`
	OrderDate     time.Time       `json:"order_date"`

	UserFullName string       `json:"full_name,omitempty"`
	UserEmail    string       `json:"email,omitempty"`
	Items        []*OrderItem `json:"items,omitempty"`
}

type OrderItem struct {
	ID              int64           `json:"id"`
	OrderID         int64           `json:"order_id"`
	ProductID       int64           `json:"product_id"`
	ProductName     *string         `json:"product_name,omitempty"`
	Quantity        int64           `json:"quantity"`
	PriceAtPurchase decimal.Decimal `json:"price_at_purchase"`
}

// OrderLine sipariş isteğindeki tek bir satırdır. Fiyat çağıran taraftan
// gelir ve sipariş anında price_at_purchase olarak saklanır.
type OrderLine struct {
	ProductID int64           `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type OrderRepository interface {
	CreateOrder(order *Order, items []OrderLine) error
	FindByID(id int64) (*Order, error)
	FindByUserID(userID int64) ([]*Order, error)
	FindAll() ([]*Order, error)
}

type OrderService interface {
	CreateOrder(userID int64, items []OrderLine, paymentMethod string) (*Order, error)
	GetOrderDetails(id int64) (*Order, error)
	GetUserOrders(userID int64) ([]*Order, error)
	GetAllOrders() ([]*Order, error)
}
