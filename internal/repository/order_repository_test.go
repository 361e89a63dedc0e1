package repository

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"satay/internal/domain"
	"satay/pkg/logger"
)

// stubConn database/sql sürücüsü olarak transaction akışını kaydeder;
// failOn alt dizesini içeren ilk sorguda hata döner.
type stubConn struct {
	failOn     string
	execs      []string
	committed  bool
	rolledBack bool
}

var errStubConn = errors.New("bağlantı koptu")

type stubDriver struct{ conn *stubConn }

func (d *stubDriver) Open(name string) (driver.Conn, error) { return d.conn, nil }

func (c *stubConn) Prepare(query string) (driver.Stmt, error) {
	return &stubStmt{conn: c, query: query}, nil
}

func (c *stubConn) Close() error { return nil }

func (c *stubConn) Begin() (driver.Tx, error) { return &stubTx{conn: c}, nil }

type stubTx struct{ conn *stubConn }

func (tx *stubTx) Commit() error {
	tx.conn.committed = true
	return nil
}

func (tx *stubTx) Rollback() error {
	tx.conn.rolledBack = true
	return nil
}

type stubStmt struct {
	conn  *stubConn
	query string
}

func (s *stubStmt) Close() error { return nil }

func (s *stubStmt) NumInput() int { return -1 }

func (s *stubStmt) Exec(args []driver.Value) (driver.Result, error) {
	if s.conn.failOn != "" && strings.Contains(s.query, s.conn.failOn) {
		return nil, errStubConn
	}
	s.conn.execs = append(s.conn.execs, s.query)
	return driver.RowsAffected(1), nil
}

func (s *stubStmt) Query(args []driver.Value) (driver.Rows, error) {
	if s.conn.failOn != "" && strings.Contains(s.query, s.conn.failOn) {
		return nil, errStubConn
	}
	s.conn.execs = append(s.conn.execs, s.query)
	return &stubRows{}, nil
}

// stubRows RETURNING id için tek satır (id=1) döner.
type stubRows struct{ done bool }

func (r *stubRows) Columns() []string { return []string{"id"} }

func (r *stubRows) Close() error { return nil }

func (r *stubRows) Next(dest []driver.Value) error {
	if r.done {
		return io.EOF
	}
	r.done = true
	dest[0] = int64(1)
	return nil
}

var stubDriverSeq int64

func newStubDB(t *testing.T, failOn string) (*sql.DB, *stubConn) {
	t.Helper()

	conn := &stubConn{failOn: failOn}
	name := fmt.Sprintf("satay-stub-%d", atomic.AddInt64(&stubDriverSeq, 1))
	sql.Register(name, &stubDriver{conn: conn})

	db, err := sql.Open(name, "")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db, conn
}

func testOrderInput() (*domain.Order, []domain.OrderLine) {
	order := &domain.Order{
		UserID:        7,
		TotalAmount:   decimal.RequireFromString("24.00"),
		PaymentMethod: domain.DefaultPaymentMethod,
		PaymentStatus: domain.PaymentStatusPaid,
	}
	items := []domain.OrderLine{
		{ProductID: 1, Quantity: 2, Price: decimal.RequireFromString("12.00")},
	}
	return order, items
}

func TestCreateOrderCommitsHeaderItemsAndStock(t *testing.T) {
	db, conn := newStubDB(t, "")
	repo := NewOrderRepository(db, logger.New(logger.ErrorLevel, nil))

	order, items := testOrderInput()
	require.NoError(t, repo.CreateOrder(order, items))

	require.Equal(t, int64(1), order.ID)
	require.True(t, conn.committed)
	require.False(t, conn.rolledBack)

	require.Len(t, conn.execs, 3)
	require.Contains(t, conn.execs[0], "INSERT INTO orders")
	require.Contains(t, conn.execs[1], "INSERT INTO order_items")
	require.Contains(t, conn.execs[2], "UPDATE products")
}

func TestCreateOrderHeaderFailureRollsBack(t *testing.T) {
	db, conn := newStubDB(t, "INSERT INTO orders")
	repo := NewOrderRepository(db, logger.New(logger.ErrorLevel, nil))

	order, items := testOrderInput()
	err := repo.CreateOrder(order, items)

	require.Error(t, err)
	require.Zero(t, order.ID)
	require.True(t, conn.rolledBack)
	require.False(t, conn.committed)
	require.Empty(t, conn.execs)
}

func TestCreateOrderStockFailureRollsBack(t *testing.T) {
	db, conn := newStubDB(t, "UPDATE products")
	repo := NewOrderRepository(db, logger.New(logger.ErrorLevel, nil))

	order, items := testOrderInput()
	err := repo.CreateOrder(order, items)

	require.Error(t, err)
	require.Zero(t, order.ID)
	require.True(t, conn.rolledBack)
	require.False(t, conn.committed)
}
