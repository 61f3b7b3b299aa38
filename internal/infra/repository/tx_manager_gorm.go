package repository

import (
	"context"

	repo "app/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	orders    repo.OrderRepository
	wines     repo.WineRepository
	combos    repo.ComboRepository
	inventory repo.InventoryRepository
	ledger    repo.PaymentLedgerRepository
}

func (r *txReposGorm) Orders() repo.OrderRepository                { return r.orders }
func (r *txReposGorm) Wines() repo.WineRepository                  { return r.wines }
func (r *txReposGorm) Combos() repo.ComboRepository                { return r.combos }
func (r *txReposGorm) Inventory() repo.InventoryRepository         { return r.inventory }
func (r *txReposGorm) PaymentLedger() repo.PaymentLedgerRepository { return r.ledger }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			orders:    NewOrderGormRepository(tx),
			wines:     NewWineGormRepository(tx),
			combos:    NewComboGormRepository(tx),
			inventory: NewInventoryGormRepository(tx),
			ledger:    NewPaymentLedgerGormRepository(tx),
		}
		return fn(r)
	})
}
