package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rl1809/console-cart/internal/core/domain"
)

func getMySQLDB(t *testing.T) *sql.DB {
	dsn := os.Getenv("RECEIPT_MYSQL_DSN")
	if dsn == "" {
		dsn = "root:root@tcp(localhost:3306)/cart?parseTime=true"
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Skipf("MySQL not available: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Skipf("MySQL not available: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

func sampleReceipt() domain.Receipt {
	return domain.Receipt{
		ID:        uuid.NewString(),
		SessionID: uuid.NewString(),
		Lines: []domain.ReceiptLine{
			{Code: "P001", Name: "Dell Laptop", UnitPrice: decimal.RequireFromString("800.00"), Quantity: 1},
			{Code: "P010", Name: "USB-C Charger", UnitPrice: decimal.RequireFromString("15.00"), Quantity: 2},
		},
		Subtotal:  decimal.RequireFromString("830.00"),
		Tax:       decimal.RequireFromString("107.90"),
		Total:     decimal.RequireFromString("937.90"),
		Status:    domain.ReceiptStatusConfirmed,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
}

func TestSaveReceipt(t *testing.T) {
	db := getMySQLDB(t)
	ctx := context.Background()
	adapter := NewMySQLAdapter(db)

	receipt := sampleReceipt()
	t.Cleanup(func() {
		db.ExecContext(ctx, `DELETE FROM receipt_lines WHERE receipt_id = ?`, receipt.ID)
		db.ExecContext(ctx, `DELETE FROM receipts WHERE id = ?`, receipt.ID)
	})

	require.NoError(t, adapter.SaveReceipt(ctx, receipt))

	got, err := adapter.GetReceipt(ctx, receipt.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.ReceiptStatusArchived, got.Status)
	assert.True(t, receipt.Total.Equal(got.Total))
	require.Len(t, got.Lines, 2)
	assert.Equal(t, "P001", got.Lines[0].Code)
	assert.Equal(t, 2, got.Lines[1].Quantity)
}

func TestSaveReceipt_Duplicate(t *testing.T) {
	db := getMySQLDB(t)
	ctx := context.Background()
	adapter := NewMySQLAdapter(db)

	receipt := sampleReceipt()
	t.Cleanup(func() {
		db.ExecContext(ctx, `DELETE FROM receipt_lines WHERE receipt_id = ?`, receipt.ID)
		db.ExecContext(ctx, `DELETE FROM receipts WHERE id = ?`, receipt.ID)
	})

	require.NoError(t, adapter.SaveReceipt(ctx, receipt))
	assert.ErrorIs(t, adapter.SaveReceipt(ctx, receipt), ErrDuplicateReceipt)
}

func TestGetReceipt_NotFound(t *testing.T) {
	db := getMySQLDB(t)
	adapter := NewMySQLAdapter(db)

	got, err := adapter.GetReceipt(context.Background(), "nonexistent")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestIsDuplicateKey(t *testing.T) {
	dup := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'x' for key 'PRIMARY'"}
	truncated := &mysql.MySQLError{Number: 1406, Message: "Data too long for column 'code'"}

	assert.True(t, isDuplicateKey(dup))
	assert.True(t, isDuplicateKey(fmt.Errorf("exec: %w", dup)))
	assert.False(t, isDuplicateKey(truncated))
	assert.False(t, isDuplicateKey(errors.New("connection reset")))
	assert.False(t, isDuplicateKey(nil))
}
