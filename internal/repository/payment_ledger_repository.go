package repository

import "context"

// 処理済み決済の台帳。
// Record は payment_id が初見なら true、既に処理済みなら false を返す。
type PaymentLedgerRepository interface {
	Record(ctx context.Context, paymentID string, status string) (bool, error)
}
