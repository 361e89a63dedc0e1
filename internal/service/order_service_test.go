package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"satay/internal/domain"
	"satay/pkg/logger"
)

type fakeOrderRepo struct {
	orders    map[int64]*domain.Order
	itemsByID map[int64][]domain.OrderLine
	nextID    int64
	fail      bool
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders:    make(map[int64]*domain.Order),
		itemsByID: make(map[int64][]domain.OrderLine),
		nextID:    1,
	}
}

func (r *fakeOrderRepo) CreateOrder(order *domain.Order, items []domain.OrderLine) error {
	if r.fail {
		return errStorage
	}
	order.ID = r.nextID
	r.nextID++
	clone := *order
	r.orders[order.ID] = &clone
	r.itemsByID[order.ID] = append([]domain.OrderLine(nil), items...)
	return nil
}

func (r *fakeOrderRepo) FindByID(id int64) (*domain.Order, error) {
	if r.fail {
		return nil, errStorage
	}
	order, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	clone := *order
	return &clone, nil
}

func (r *fakeOrderRepo) FindByUserID(userID int64) ([]*domain.Order, error) {
	var orders []*domain.Order
	for _, order := range r.orders {
		if order.UserID == userID {
			clone := *order
			orders = append(orders, &clone)
		}
	}
	return orders, nil
}

func (r *fakeOrderRepo) FindAll() ([]*domain.Order, error) {
	var orders []*domain.Order
	for _, order := range r.orders {
		clone := *order
		orders = append(orders, &clone)
	}
	return orders, nil
}

func newTestOrderService(repo domain.OrderRepository) domain.OrderService {
	return NewOrderService(repo, logger.New(logger.ErrorLevel, nil))
}

func TestCreateOrderComputesTotalAndSnapshotsPrice(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := newTestOrderService(repo)

	items := []domain.OrderLine{
		{ProductID: 1, Quantity: 2, Price: decimal.RequireFromString("12.00")},
	}

	order, err := svc.CreateOrder(7, items, "")
	require.NoError(t, err)
	require.Positive(t, order.ID)
	require.True(t, order.TotalAmount.Equal(decimal.RequireFromString("24.00")), "toplam %s", order.TotalAmount)
	require.Equal(t, domain.PaymentStatusPaid, order.PaymentStatus)
	require.Equal(t, domain.DefaultPaymentMethod, order.PaymentMethod)

	saved := repo.itemsByID[order.ID]
	require.Len(t, saved, 1)
	require.True(t, saved[0].Price.Equal(decimal.RequireFromString("12.00")))
}

func TestCreateOrderMultipleLines(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := newTestOrderService(repo)

	items := []domain.OrderLine{
		{ProductID: 1, Quantity: 3, Price: decimal.RequireFromString("5.50")},
		{ProductID: 2, Quantity: 1, Price: decimal.RequireFromString("10.25")},
	}

	order, err := svc.CreateOrder(7, items, "Bank Transfer")
	require.NoError(t, err)
	require.True(t, order.TotalAmount.Equal(decimal.RequireFromString("26.75")), "toplam %s", order.TotalAmount)
	require.Equal(t, "Bank Transfer", order.PaymentMethod)
}

func TestCreateOrderEmptyItemsAccepted(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := newTestOrderService(repo)

	order, err := svc.CreateOrder(7, nil, "")
	require.NoError(t, err)
	require.True(t, order.TotalAmount.IsZero())
}

func TestCreateOrderRepoFailureReturnsNoOrder(t *testing.T) {
	repo := newFakeOrderRepo()
	repo.fail = true
	svc := newTestOrderService(repo)

	items := []domain.OrderLine{
		{ProductID: 1, Quantity: 2, Price: decimal.RequireFromString("12.00")},
	}

	order, err := svc.CreateOrder(7, items, "")
	require.Error(t, err)
	require.Nil(t, order)
	require.Empty(t, repo.orders)
}

func TestGetOrderDetailsNotFound(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := newTestOrderService(repo)

	_, err := svc.GetOrderDetails(99)
	require.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestGetUserOrdersOnlyOwn(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := newTestOrderService(repo)

	_, err := svc.CreateOrder(1, []domain.OrderLine{{ProductID: 1, Quantity: 1, Price: decimal.RequireFromString("3.00")}}, "")
	require.NoError(t, err)
	_, err = svc.CreateOrder(2, []domain.OrderLine{{ProductID: 1, Quantity: 1, Price: decimal.RequireFromString("3.00")}}, "")
	require.NoError(t, err)

	orders, err := svc.GetUserOrders(1)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Equal(t, int64(1), orders[0].UserID)
}
