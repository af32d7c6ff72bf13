package common

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// BatchInserter копит строки и вставляет их одним INSERT ... VALUES (...), (...).
type BatchInserter struct {
	exec        sqlx.ExecerContext
	query       string
	batchSize   int
	fieldsCount int
	values      []interface{}
	rowCount    int
	inserted    int
}

// NewBatchInserter создаёт inserter. baseQuery без VALUES, например
// "INSERT INTO competencias (id_candidatura, nombre_competencia, nota)".
func NewBatchInserter(exec sqlx.ExecerContext, baseQuery string, fieldsCount, batchSize int) *BatchInserter {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &BatchInserter{
		exec:        exec,
		query:       baseQuery,
		batchSize:   batchSize,
		fieldsCount: fieldsCount,
		values:      make([]interface{}, 0, batchSize*fieldsCount),
	}
}

// Add добавляет строку и сбрасывает буфер при заполнении батча.
func (bi *BatchInserter) Add(ctx context.Context, rowValues ...interface{}) error {
	if len(rowValues) != bi.fieldsCount {
		return fmt.Errorf("batch insert: ожидалось %d полей, получено %d", bi.fieldsCount, len(rowValues))
	}

	bi.values = append(bi.values, rowValues...)
	bi.rowCount++

	if bi.rowCount >= bi.batchSize {
		return bi.Flush(ctx)
	}
	return nil
}

// Flush вставляет накопленные строки.
func (bi *BatchInserter) Flush(ctx context.Context) error {
	if bi.rowCount == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(bi.query)
	sb.WriteString(" VALUES ")
	for i := 0; i < bi.rowCount; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('(')
		for j := 0; j < bi.fieldsCount; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "$%d", i*bi.fieldsCount+j+1)
		}
		sb.WriteByte(')')
	}

	if _, err := bi.exec.ExecContext(ctx, sb.String(), bi.values...); err != nil {
		return fmt.Errorf("batch insert: %w", err)
	}

	bi.inserted += bi.rowCount
	bi.values = bi.values[:0]
	bi.rowCount = 0
	return nil
}

// Inserted количество строк, уже отправленных в базу.
func (bi *BatchInserter) Inserted() int {
	return bi.inserted
}

// WithTransaction выполняет fn в транзакции: ошибка или паника откатывают её.
func WithTransaction(ctx context.Context, db *sqlx.DB, fn func(*sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx error: %w, rollback error: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
