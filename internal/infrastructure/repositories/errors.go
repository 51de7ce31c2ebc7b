package repositories

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
	domainerrors "keephy.backend/internal/domain/errors"
	"keephy.backend/pkg/utils"
)

const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgUniqueViolation
	}
	// sqlite
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// translateError maps driver errors onto domain sentinels
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domainerrors.ErrNotFound
	case isUniqueViolation(err):
		return domainerrors.ErrAlreadyExists
	default:
		return err
	}
}

func paginate(q *gorm.DB, p utils.PaginationParams) *gorm.DB {
	if !p.Paginated() {
		return q
	}
	return q.Offset(p.CalculateOffset()).Limit(p.Limit)
}

func affected(result *gorm.DB) error {
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// listPage counts query, then loads one page of it in the given order
func listPage[M any](query *gorm.DB, order string, p utils.PaginationParams) ([]M, int64, error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []M
	if err := paginate(query.Session(&gorm.Session{}).Order(order), p).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
