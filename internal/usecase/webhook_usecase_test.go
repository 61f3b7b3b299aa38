package usecase_test

import (
	"context"
	"testing"

	"app/internal/domain/model"
	"app/internal/payment"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newWebhookFixture() (*usecase.WebhookUsecase, *GatewayMock, *OrderRepoMock, *InventoryRepoMock, *LedgerRepoMock) {
	tx := new(TxManagerMock)
	gw := new(GatewayMock)
	orders := new(OrderRepoMock)
	inv := new(InventoryRepoMock)
	ledger := new(LedgerRepoMock)

	tx.Repos = &TxReposMock{orders: orders, inventory: inv, ledger: ledger}
	tx.On("WithinTx", mock.Anything).Return(nil)

	stock := usecase.NewStockUsecase(tx)
	uc := usecase.NewWebhookUsecase(gw, tx, stock)
	return uc, gw, orders, inv, ledger
}

func TestWebhook_IgnoresNonPaymentEvents(t *testing.T) {
	uc, gw, _, _, _ := newWebhookFixture()

	err := uc.ProcessPaymentNotification(context.Background(), "plan", "123")
	assert.NoError(t, err)

	gw.AssertNotCalled(t, "GetPayment", mock.Anything, mock.Anything)
}

func TestWebhook_Approved_ReducesStockPerItem(t *testing.T) {
	ctx := context.Background()
	uc, gw, orders, inv, ledger := newWebhookFixture()

	gw.On("GetPayment", mock.Anything, "pay-1").Return(payment.PaymentDetails{
		ID:                "pay-1",
		Status:            payment.StatusApproved,
		ExternalReference: "VIN-20260901-ABCD1234",
		Items: []payment.MetadataItem{
			{WineID: 1, Quantity: 2},
			{WineID: 2, Quantity: 1},
		},
	}, nil)

	ledger.On("Record", mock.Anything, "pay-1", "approved").Return(true, nil)
	orders.On("FindByOrderNumber", mock.Anything, "VIN-20260901-ABCD1234").
		Return(model.Order{ID: 10, OrderNumber: "VIN-20260901-ABCD1234"}, true, nil)
	orders.On("UpdatePaymentInfo", mock.Anything, int64(10), "pay-1", "approved").Return(nil)

	inv.On("DecreaseStockIfEnough", mock.Anything, int64(1), int64(2)).Return(true, nil)
	inv.On("GetStock", mock.Anything, int64(1)).Return(int64(8), nil)
	inv.On("DecreaseStockIfEnough", mock.Anything, int64(2), int64(1)).Return(true, nil)
	inv.On("GetStock", mock.Anything, int64(2)).Return(int64(0), nil)

	err := uc.ProcessPaymentNotification(ctx, "payment", "pay-1")
	assert.NoError(t, err)

	// 注文ステータスは自動では進めない
	orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	inv.AssertExpectations(t)
}

func TestWebhook_Approved_OneItemShort_OthersStillReduced(t *testing.T) {
	ctx := context.Background()
	uc, gw, orders, inv, ledger := newWebhookFixture()

	gw.On("GetPayment", mock.Anything, "pay-2").Return(payment.PaymentDetails{
		ID:                "pay-2",
		Status:            payment.StatusApproved,
		ExternalReference: "VIN-X",
		Items: []payment.MetadataItem{
			{WineID: 1, Quantity: 5},
			{WineID: 2, Quantity: 1},
		},
	}, nil)

	ledger.On("Record", mock.Anything, "pay-2", "approved").Return(true, nil)
	orders.On("FindByOrderNumber", mock.Anything, "VIN-X").Return(model.Order{ID: 11}, true, nil)
	orders.On("UpdatePaymentInfo", mock.Anything, int64(11), "pay-2", "approved").Return(nil)

	// wine 1 は在庫不足で負ける
	inv.On("DecreaseStockIfEnough", mock.Anything, int64(1), int64(5)).Return(false, nil)
	inv.On("GetStock", mock.Anything, int64(1)).Return(int64(1), nil)
	// wine 2 は成功する
	inv.On("DecreaseStockIfEnough", mock.Anything, int64(2), int64(1)).Return(true, nil)
	inv.On("GetStock", mock.Anything, int64(2)).Return(int64(3), nil)

	err := uc.ProcessPaymentNotification(ctx, "payment", "pay-2")
	assert.NoError(t, err)

	// 失敗行があっても成功行を巻き戻さない
	inv.AssertNotCalled(t, "IncreaseStock", mock.Anything, mock.Anything, mock.Anything)
	inv.AssertExpectations(t)
}

func TestWebhook_DuplicateDelivery_NoSecondReduction(t *testing.T) {
	ctx := context.Background()
	uc, gw, orders, inv, ledger := newWebhookFixture()

	gw.On("GetPayment", mock.Anything, "pay-3").Return(payment.PaymentDetails{
		ID:                "pay-3",
		Status:            payment.StatusApproved,
		ExternalReference: "VIN-Y",
		Items:             []payment.MetadataItem{{WineID: 1, Quantity: 1}},
	}, nil)

	// 台帳が「既に処理済み」と答える
	ledger.On("Record", mock.Anything, "pay-3", "approved").Return(false, nil)

	err := uc.ProcessPaymentNotification(ctx, "payment", "pay-3")
	assert.NoError(t, err)

	orders.AssertNotCalled(t, "FindByOrderNumber", mock.Anything, mock.Anything)
	orders.AssertNotCalled(t, "UpdatePaymentInfo", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	inv.AssertNotCalled(t, "DecreaseStockIfEnough", mock.Anything, mock.Anything, mock.Anything)
}

func TestWebhook_NonApproved_StampsOrderOnly(t *testing.T) {
	ctx := context.Background()
	uc, gw, orders, inv, ledger := newWebhookFixture()

	gw.On("GetPayment", mock.Anything, "pay-4").Return(payment.PaymentDetails{
		ID:                "pay-4",
		Status:            payment.StatusRejected,
		ExternalReference: "VIN-Z",
		Items:             []payment.MetadataItem{{WineID: 1, Quantity: 1}},
	}, nil)

	ledger.On("Record", mock.Anything, "pay-4", "rejected").Return(true, nil)
	orders.On("FindByOrderNumber", mock.Anything, "VIN-Z").Return(model.Order{ID: 12}, true, nil)
	orders.On("UpdatePaymentInfo", mock.Anything, int64(12), "pay-4", "rejected").Return(nil)

	err := uc.ProcessPaymentNotification(ctx, "payment", "pay-4")
	assert.NoError(t, err)

	inv.AssertNotCalled(t, "DecreaseStockIfEnough", mock.Anything, mock.Anything, mock.Anything)
	orders.AssertExpectations(t)
}

func TestWebhook_UnknownExternalReference_NoError(t *testing.T) {
	ctx := context.Background()
	uc, gw, orders, inv, ledger := newWebhookFixture()

	gw.On("GetPayment", mock.Anything, "pay-5").Return(payment.PaymentDetails{
		ID:                "pay-5",
		Status:            payment.StatusApproved,
		ExternalReference: "VIN-MISSING",
		Items:             []payment.MetadataItem{{WineID: 1, Quantity: 1}},
	}, nil)

	ledger.On("Record", mock.Anything, "pay-5", "approved").Return(true, nil)
	orders.On("FindByOrderNumber", mock.Anything, "VIN-MISSING").Return(model.Order{}, false, nil)

	// 対応注文が無くても在庫照合自体は走る（metadataが正）
	inv.On("DecreaseStockIfEnough", mock.Anything, int64(1), int64(1)).Return(true, nil)
	inv.On("GetStock", mock.Anything, int64(1)).Return(int64(4), nil)

	err := uc.ProcessPaymentNotification(ctx, "payment", "pay-5")
	assert.NoError(t, err)

	orders.AssertNotCalled(t, "UpdatePaymentInfo", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
