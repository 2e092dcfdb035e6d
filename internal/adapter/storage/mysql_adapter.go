package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/rl1809/console-cart/internal/core/domain"
)

var ErrDuplicateReceipt = errors.New("receipt already archived")

const mysqlErrDuplicateEntry = 1062

func isDuplicateKey(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrDuplicateEntry
}

// MySQLAdapter archives confirmed purchases. Expected schema:
//
//	CREATE TABLE receipts (
//	    id VARCHAR(36) PRIMARY KEY,
//	    session_id VARCHAR(36) NOT NULL,
//	    subtotal DECIMAL(12,2) NOT NULL,
//	    tax DECIMAL(12,2) NOT NULL,
//	    total DECIMAL(12,2) NOT NULL,
//	    status VARCHAR(16) NOT NULL,
//	    created_at DATETIME(3) NOT NULL
//	);
//	CREATE TABLE receipt_lines (
//	    receipt_id VARCHAR(36) NOT NULL,
//	    line_no INT NOT NULL,
//	    code VARCHAR(32) NOT NULL,
//	    name VARCHAR(128) NOT NULL,
//	    unit_price DECIMAL(12,2) NOT NULL,
//	    quantity INT NOT NULL,
//	    PRIMARY KEY (receipt_id, line_no)
//	);
type MySQLAdapter struct {
	db *sql.DB
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

func (m *MySQLAdapter) SaveReceipt(ctx context.Context, receipt domain.Receipt) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO receipts (id, session_id, subtotal, tax, total, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		receipt.ID, receipt.SessionID, receipt.Subtotal, receipt.Tax, receipt.Total,
		domain.ReceiptStatusArchived, receipt.CreatedAt,
	)
	if isDuplicateKey(err) {
		return ErrDuplicateReceipt
	}
	if err != nil {
		return fmt.Errorf("insert receipt: %w", err)
	}

	for i, line := range receipt.Lines {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO receipt_lines (receipt_id, line_no, code, name, unit_price, quantity)
			VALUES (?, ?, ?, ?, ?, ?)`,
			receipt.ID, i+1, line.Code, line.Name, line.UnitPrice, line.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert receipt line %d: %w", i+1, err)
		}
	}

	return tx.Commit()
}

func (m *MySQLAdapter) GetReceipt(ctx context.Context, id string) (*domain.Receipt, error) {
	var r domain.Receipt
	var status string
	err := m.db.QueryRowContext(ctx, `
		SELECT id, session_id, subtotal, tax, total, status, created_at
		FROM receipts WHERE id = ?`, id,
	).Scan(&r.ID, &r.SessionID, &r.Subtotal, &r.Tax, &r.Total, &status, &r.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query receipt: %w", err)
	}
	r.Status = domain.ReceiptStatus(status)

	rows, err := m.db.QueryContext(ctx, `
		SELECT code, name, unit_price, quantity
		FROM receipt_lines WHERE receipt_id = ? ORDER BY line_no`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("query receipt lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.ReceiptLine
		if err := rows.Scan(&line.Code, &line.Name, &line.UnitPrice, &line.Quantity); err != nil {
			return nil, fmt.Errorf("scan receipt line: %w", err)
		}
		r.Lines = append(r.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate receipt lines: %w", err)
	}

	return &r, nil
}
