package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"satay/internal/domain"
	"satay/pkg/logger"
	"satay/pkg/metrics"
)

type OrderService struct {
	repo   domain.OrderRepository
	logger logger.Logger
}

func NewOrderService(repo domain.OrderRepository, logger logger.Logger) domain.OrderService {
	return &OrderService{
		repo:   repo,
		logger: logger,
	}
}

// CreateOrder toplamı çağıranın gönderdiği fiyatlar üzerinden hesaplar;
// güncel ürün fiyatıyla yeniden fiyatlandırma yapılmaz.
func (s *OrderService) CreateOrder(userID int64, items []domain.OrderLine, paymentMethod string) (*domain.Order, error) {
	if paymentMethod == "" {
		paymentMethod = domain.DefaultPaymentMethod
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(item.Quantity)))
	}

	order := &domain.Order{
		UserID:        userID,
		TotalAmount:   total,
		PaymentMethod: paymentMethod,
		PaymentStatus: domain.PaymentStatusPaid,
	}

	if err := s.repo.CreateOrder(order, items); err != nil {
		s.logger.Error("Sipariş oluşturma sırasında hata oluştu", map[string]interface{}{"user_id": userID, "error": err.Error()})
		metrics.RecordOrderCreated("failed")
		return nil, fmt.Errorf("sipariş oluşturulamadı: %w", err)
	}

	s.logger.Info("Sipariş oluşturuldu", map[string]interface{}{
		"order_id":     order.ID,
		"user_id":      userID,
		"total_amount": total.String(),
		"item_count":   len(items),
	})
	metrics.RecordOrderCreated("success")

	return order, nil
}

func (s *OrderService) GetOrderDetails(id int64) (*domain.Order, error) {
	order, err := s.repo.FindByID(id)
	if err != nil {
		s.logger.Error("Sipariş detayı okunamadı", map[string]interface{}{"id": id, "error": err.Error()})
		return nil, fmt.Errorf("sipariş bulunamadı: %w", err)
	}

	if order == nil {
		return nil, domain.ErrOrderNotFound
	}

	return order, nil
}

func (s *OrderService) GetUserOrders(userID int64) ([]*domain.Order, error) {
	orders, err := s.repo.FindByUserID(userID)
	if err != nil {
		s.logger.Error("Kullanıcı siparişleri listelenemedi", map[string]interface{}{"user_id": userID, "error": err.Error()})
		return nil, fmt.Errorf("siparişler listelenemedi: %w", err)
	}

	return orders, nil
}

func (s *OrderService) GetAllOrders() ([]*domain.Order, error) {
	orders, err := s.repo.FindAll()
	if err != nil {
		s.logger.Error("Siparişler listelenemedi", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("siparişler listelenemedi: %w", err)
	}

	return orders, nil
}
