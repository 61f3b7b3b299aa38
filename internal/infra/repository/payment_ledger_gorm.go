package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type PaymentLedgerGormRepository struct {
	db *gorm.DB
}

func NewPaymentLedgerGormRepository(db *gorm.DB) *PaymentLedgerGormRepository {
	return &PaymentLedgerGormRepository{db: db}
}

// Record はpayment_idを台帳に書く。
// ユニーク制約違反＝既に処理済みなのでfalseを返す。エラーにはしない。
func (r *PaymentLedgerGormRepository) Record(ctx context.Context, paymentID string, status string) (bool, error) {
	entry := model.ProcessedPayment{
		PaymentID: paymentID,
		Status:    status,
	}

	err := r.db.WithContext(ctx).Create(&entry).Error
	if err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
