package usecase_test

import (
	"context"
	"strings"
	"testing"

	"app/internal/domain/model"
	"app/internal/payment"
	repo "app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// TxManager / TxRepos mocks
// =====================

// TxManagerMock は WithinTx の中で渡す repos を固定して unit テストを回す
type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	// 呼ばれた事実だけ記録（ctxの具体値は問わない）
	m.Called(ctx)
	return fn(m.Repos)
}

type TxReposMock struct {
	orders    repo.OrderRepository
	wines     repo.WineRepository
	combos    repo.ComboRepository
	inventory repo.InventoryRepository
	ledger    repo.PaymentLedgerRepository
}

func (r *TxReposMock) Orders() repo.OrderRepository                { return r.orders }
func (r *TxReposMock) Wines() repo.WineRepository                  { return r.wines }
func (r *TxReposMock) Combos() repo.ComboRepository                { return r.combos }
func (r *TxReposMock) Inventory() repo.InventoryRepository         { return r.inventory }
func (r *TxReposMock) PaymentLedger() repo.PaymentLedgerRepository { return r.ledger }

// =====================
// Repository mocks
// =====================

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) FindByOrderNumber(ctx context.Context, orderNumber string) (model.Order, bool, error) {
	args := m.Called(ctx, orderNumber)
	o, _ := args.Get(0).(model.Order)
	return o, args.Bool(1), args.Error(2)
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *OrderRepoMock) UpdatePaymentInfo(ctx context.Context, orderID int64, paymentID string, paymentStatus string) error {
	args := m.Called(ctx, orderID, paymentID, paymentStatus)
	return args.Error(0)
}

func (m *OrderRepoMock) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, f)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepoMock) HardDelete(ctx context.Context, orderID int64) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

type WineRepoMock struct{ mock.Mock }

func (m *WineRepoMock) List(ctx context.Context, q repo.WineListQuery) ([]model.Wine, int64, error) {
	args := m.Called(ctx, q)
	wines, _ := args.Get(0).([]model.Wine)
	return wines, args.Get(1).(int64), args.Error(2)
}

func (m *WineRepoMock) FindByID(ctx context.Context, wineID int64) (model.Wine, error) {
	args := m.Called(ctx, wineID)
	w, _ := args.Get(0).(model.Wine)
	return w, args.Error(1)
}

func (m *WineRepoMock) Create(ctx context.Context, w model.Wine) (model.Wine, error) {
	args := m.Called(ctx, w)
	out, _ := args.Get(0).(model.Wine)
	return out, args.Error(1)
}

func (m *WineRepoMock) Update(ctx context.Context, w model.Wine) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *WineRepoMock) SoftDelete(ctx context.Context, wineID int64) error {
	args := m.Called(ctx, wineID)
	return args.Error(0)
}

type ComboRepoMock struct{ mock.Mock }

func (m *ComboRepoMock) List(ctx context.Context, page int, limit int) ([]model.Combo, int64, error) {
	args := m.Called(ctx, page, limit)
	combos, _ := args.Get(0).([]model.Combo)
	return combos, args.Get(1).(int64), args.Error(2)
}

func (m *ComboRepoMock) FindByID(ctx context.Context, comboID int64) (model.Combo, error) {
	args := m.Called(ctx, comboID)
	c, _ := args.Get(0).(model.Combo)
	return c, args.Error(1)
}

func (m *ComboRepoMock) Create(ctx context.Context, c model.Combo) (model.Combo, error) {
	args := m.Called(ctx, c)
	out, _ := args.Get(0).(model.Combo)
	return out, args.Error(1)
}

func (m *ComboRepoMock) Update(ctx context.Context, c model.Combo) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *ComboRepoMock) SoftDelete(ctx context.Context, comboID int64) error {
	args := m.Called(ctx, comboID)
	return args.Error(0)
}

type InventoryRepoMock struct{ mock.Mock }

func (m *InventoryRepoMock) SetStock(ctx context.Context, wineID int64, newStock int64) error {
	args := m.Called(ctx, wineID, newStock)
	return args.Error(0)
}

func (m *InventoryRepoMock) DecreaseStockIfEnough(ctx context.Context, wineID int64, qty int64) (bool, error) {
	args := m.Called(ctx, wineID, qty)
	return args.Bool(0), args.Error(1)
}

func (m *InventoryRepoMock) IncreaseStock(ctx context.Context, wineID int64, qty int64) error {
	args := m.Called(ctx, wineID, qty)
	return args.Error(0)
}

func (m *InventoryRepoMock) GetStock(ctx context.Context, wineID int64) (int64, error) {
	args := m.Called(ctx, wineID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *InventoryRepoMock) CreateAdjustment(ctx context.Context, adjustment model.InventoryAdjustment) error {
	args := m.Called(ctx, adjustment)
	return args.Error(0)
}

type LedgerRepoMock struct{ mock.Mock }

func (m *LedgerRepoMock) Record(ctx context.Context, paymentID string, status string) (bool, error) {
	args := m.Called(ctx, paymentID, status)
	return args.Bool(0), args.Error(1)
}

type AuditRepoMock struct{ mock.Mock }

func (m *AuditRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *AuditRepoMock) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	args := m.Called(ctx, filter)
	logs, _ := args.Get(0).([]model.AuditLog)
	return logs, args.Error(1)
}

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// =====================
// Gateway mock
// =====================

type GatewayMock struct{ mock.Mock }

func (m *GatewayMock) CreatePreference(ctx context.Context, req payment.PreferenceRequest) (payment.Preference, error) {
	args := m.Called(ctx, req)
	p, _ := args.Get(0).(payment.Preference)
	return p, args.Error(1)
}

func (m *GatewayMock) GetPayment(ctx context.Context, paymentID string) (payment.PaymentDetails, error) {
	args := m.Called(ctx, paymentID)
	d, _ := args.Get(0).(payment.PaymentDetails)
	return d, args.Error(1)
}

// =====================
// Helper: error contains（HTTPErrorの実装詳細に依存しない）
// =====================

func assertErrContains(t *testing.T, err error, wantSubstr string) {
	t.Helper()
	if assert.Error(t, err) {
		assert.True(t, strings.Contains(err.Error(), wantSubstr), "err=%q want contains %q", err.Error(), wantSubstr)
	}
}
