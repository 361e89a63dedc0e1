package repository

import (
	"database/sql"
	"fmt"
	"time"

	"satay/internal/domain"
	"satay/pkg/logger"
	"satay/pkg/metrics"
)

type OrderRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewOrderRepository(db *sql.DB, logger logger.Logger) domain.OrderRepository {
	return &OrderRepository{
		db:     db,
		logger: logger,
	}
}

// CreateOrder sipariş başlığını, satırlarını ve stok düşümlerini tek
// transaction içinde uygular. Herhangi bir adım başarısız olursa tüm
// değişiklikler geri alınır ve order.ID atanmaz.
func (r *OrderRepository) CreateOrder(order *domain.Order, items []domain.OrderLine) error {
	tx, err := r.db.Begin()
	if err != nil {
		r.logger.Error("Transaction başlatılamadı", map[string]interface{}{"error": err.Error()})
		return fmt.Errorf("sipariş oluşturulamadı: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	order.OrderDate = time.Now()

	queryOrder := `
		INSERT INTO orders (user_id, total_amount, payment_method, payment_status, order_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var orderID int64
	err = tx.QueryRow(
		queryOrder,
		order.UserID,
		order.TotalAmount,
		order.PaymentMethod,
		order.PaymentStatus,
		order.OrderDate,
	).Scan(&orderID)

	if err != nil {
		r.logger.Error("Sipariş başlığı eklenemedi", map[string]interface{}{"user_id": order.UserID, "error": err.Error()})
		return fmt.Errorf("sipariş oluşturulamadı: %w", err)
	}

	queryItem := `
		INSERT INTO order_items (order_id, product_id, quantity, price_at_purchase)
		VALUES ($1, $2, $3, $4)
	`
	queryStock := `UPDATE products SET stock_quantity = stock_quantity - $1 WHERE id = $2`

	for _, item := range items {
		if _, err = tx.Exec(queryItem, orderID, item.ProductID, item.Quantity, item.Price); err != nil {
			r.logger.Error("Sipariş satırı eklenemedi", map[string]interface{}{
				"order_id":   orderID,
				"product_id": item.ProductID,
				"error":      err.Error(),
			})
			return fmt.Errorf("sipariş oluşturulamadı: %w", err)
		}

		if _, err = tx.Exec(queryStock, item.Quantity, item.ProductID); err != nil {
			r.logger.Error("Stok düşümü yapılamadı", map[string]interface{}{
				"order_id":   orderID,
				"product_id": item.ProductID,
				"error":      err.Error(),
			})
			return fmt.Errorf("sipariş oluşturulamadı: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		r.logger.Error("Transaction commit edilemedi", map[string]interface{}{"error": err.Error()})
		return fmt.Errorf("sipariş oluşturulamadı: %w", err)
	}
	committed = true

	order.ID = orderID

	metrics.RecordDatabaseOperation("insert", "orders")

	return nil
}

// FindByID sipariş başlığını kullanıcı bilgisiyle, satırlarını ürün adıyla
// döner. Silinmiş ürünün satırı LEFT JOIN sayesinde adsız da olsa gelir.
func (r *OrderRepository) FindByID(id int64) (*domain.Order, error) {
	queryOrder := `
		SELECT o.id, o.user_id, o.total_amount, o.payment_method, o.payment_status, o.order_date, u.full_name, u.email
		FROM orders o
		JOIN users u ON o.user_id = u.id
		WHERE o.id = $1
	`

	var order domain.Order
	err := r.db.QueryRow(queryOrder, id).Scan(
		&order.ID,
		&order.UserID,
		&order.TotalAmount,
		&order.PaymentMethod,
		&order.PaymentStatus,
		&order.OrderDate,
		&order.UserFullName,
		&order.UserEmail,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.Error("Sipariş bulunamadı", map[string]interface{}{"id": id, "error": err.Error()})
		return nil, fmt.Errorf("sipariş bulunamadı: %w", err)
	}

	queryItems := `
		SELECT oi.id, oi.order_id, oi.product_id, p.name, oi.quantity, oi.price_at_purchase
		FROM order_items oi
		LEFT JOIN products p ON oi.product_id = p.id
		WHERE oi.order_id = $1
	`

	rows, err := r.db.Query(queryItems, id)
	if err != nil {
		r.logger.Error("Sipariş satırları okunamadı", map[string]interface{}{"id": id, "error": err.Error()})
		return nil, fmt.Errorf("sipariş satırları okunamadı: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.ProductName,
			&item.Quantity,
			&item.PriceAtPurchase,
		)
		if err != nil {
			return nil, fmt.Errorf("sipariş satırı okunamadı: %w", err)
		}
		order.Items = append(order.Items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sipariş satırları okunamadı: %w", err)
	}

	metrics.RecordDatabaseOperation("select", "orders")

	return &order, nil
}

func (r *OrderRepository) FindByUserID(userID int64) ([]*domain.Order, error) {
	query := `
		SELECT id, user_id, total_amount, payment_method, payment_status, order_date
		FROM orders
		WHERE user_id = $1
		ORDER BY order_date DESC
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		r.logger.Error("Kullanıcı siparişleri listelenemedi", map[string]interface{}{"user_id": userID, "error": err.Error()})
		return nil, fmt.Errorf("siparişler listelenemedi: %w", err)
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		var order domain.Order
		err := rows.Scan(
			&order.ID,
			&order.UserID,
			&order.TotalAmount,
			&order.PaymentMethod,
			&order.PaymentStatus,
			&order.OrderDate,
		)
		if err != nil {
			return nil, fmt.Errorf("sipariş satırı okunamadı: %w", err)
		}
		orders = append(orders, &order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("siparişler listelenemedi: %w", err)
	}

	metrics.RecordDatabaseOperation("select", "orders")

	return orders, nil
}

func (r *OrderRepository) FindAll() ([]*domain.Order, error) {
	query := `
		SELECT o.id, o.user_id, o.total_amount, o.payment_method, o.payment_status, o.order_date, u.full_name
		FROM orders o
		JOIN users u ON o.user_id = u.id
		ORDER BY o.order_date DESC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		r.logger.Error("Siparişler listelenemedi", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("siparişler listelenemedi: %w", err)
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		var order domain.Order
		err := rows.Scan(
			&order.ID,
			&order.UserID,
			&order.TotalAmount,
			&order.PaymentMethod,
			&order.PaymentStatus,
			&order.OrderDate,
			&order.UserFullName,
		)
		if err != nil {
			return nil, fmt.Errorf("sipariş satırı okunamadı: %w", err)
		}
		orders = append(orders, &order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("siparişler listelenemedi: %w", err)
	}

	metrics.RecordDatabaseOperation("select", "orders")

	return orders, nil
}
