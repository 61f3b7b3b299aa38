package usecase_test

import (
	"context"
	"errors"
	"testing"

	"app/internal/cart"
	"app/internal/domain/model"
	"app/internal/payment"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newCartWithItems(ctx context.Context) (*cart.Store, string) {
	store := cart.NewStore(nil)
	sessionID := "sess-checkout"
	store.AddItem(ctx, sessionID, cart.Item{
		Key:       "wine-1",
		WineID:    1,
		Kind:      cart.KindWine,
		Name:      "Malbec Reserva",
		UnitPrice: 1210,
	}, 2)
	store.AddItem(ctx, sessionID, cart.Item{
		Key:       "combo-3",
		Kind:      cart.KindCombo,
		Name:      "Trio Tinto",
		UnitPrice: 3000,
	}, 1)
	return store, sessionID
}

func validShipping() usecase.ShippingInput {
	return usecase.ShippingInput{
		Address:    "Av. Corrientes 123",
		Phone:      "+54 11 5555",
		PostalCode: "C1043",
	}
}

func TestCheckoutWithGateway_MissingShipping_NoWrites(t *testing.T) {
	ctx := context.Background()
	store, sessionID := newCartWithItems(ctx)

	orders := new(OrderRepoMock)
	gw := new(GatewayMock)

	uc := usecase.NewCheckoutUsecase(store, orders, gw, 500, 0)

	_, err := uc.CheckoutWithGateway(ctx, sessionID, usecase.ShippingInput{Phone: "x", PostalCode: "y"}, "a@b.c")
	assertErrContains(t, err, "invalid shipping")

	gw.AssertNotCalled(t, "CreatePreference", mock.Anything, mock.Anything)
	orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCheckoutWithGateway_EmptyCart(t *testing.T) {
	ctx := context.Background()
	store := cart.NewStore(nil)

	orders := new(OrderRepoMock)
	gw := new(GatewayMock)

	uc := usecase.NewCheckoutUsecase(store, orders, gw, 500, 0)

	_, err := uc.CheckoutWithGateway(ctx, "empty", validShipping(), "a@b.c")
	assertErrContains(t, err, "cart empty")
}

func TestCheckoutWithGateway_Success(t *testing.T) {
	ctx := context.Background()
	store, sessionID := newCartWithItems(ctx)

	orders := new(OrderRepoMock)
	gw := new(GatewayMock)

	var gotReq payment.PreferenceRequest
	gw.On("CreatePreference", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		gotReq = args.Get(1).(payment.PreferenceRequest)
	}).Return(payment.Preference{ID: "pref-1", RedirectURL: "https://mp/init"}, nil)

	var gotOrder model.Order
	orders.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		gotOrder = args.Get(1).(model.Order)
	}).Return(int64(10), nil)

	uc := usecase.NewCheckoutUsecase(store, orders, gw, 500, 0)

	out, err := uc.CheckoutWithGateway(ctx, sessionID, validShipping(), "a@b.c")
	assert.NoError(t, err)
	assert.Equal(t, "pref-1", out.PreferenceID)
	assert.Equal(t, "https://mp/init", out.RedirectURL)
	assert.NotEmpty(t, out.OrderNumber)

	// metadataにはワイン行だけ
	assert.Equal(t, 1, len(gotReq.MetadataItems))
	assert.Equal(t, int64(1), gotReq.MetadataItems[0].WineID)
	assert.Equal(t, int64(2), gotReq.MetadataItems[0].Quantity)
	assert.Equal(t, 2, len(gotReq.Items))
	assert.Equal(t, out.OrderNumber, gotReq.ExternalReference)

	// FinalAmount = TotalAmount + ShippingCost
	assert.Equal(t, model.OrderStatusPending, gotOrder.Status)
	assert.Equal(t, model.PaymentMethodMercadoPago, gotOrder.PaymentMethod)
	assert.InDelta(t, 1210*2+3000, gotOrder.TotalAmount, 1e-9)
	assert.InDelta(t, 500.0, gotOrder.ShippingCost, 1e-9)
	assert.InDelta(t, gotOrder.TotalAmount+gotOrder.ShippingCost, gotOrder.FinalAmount, 1e-9)
	assert.Equal(t, "pref-1", gotOrder.MPPreferenceID)
	assert.Equal(t, 2, len(gotOrder.Items))

	// ゲートウェイ決済ではカートを残す（ユーザーが戻ってくるため）
	c := store.Get(ctx, sessionID)
	assert.Equal(t, int64(3), c.TotalItems)
}

func TestCheckoutWithGateway_FreeShippingAboveThreshold(t *testing.T) {
	ctx := context.Background()
	store, sessionID := newCartWithItems(ctx) // total 5420

	orders := new(OrderRepoMock)
	gw := new(GatewayMock)

	gw.On("CreatePreference", mock.Anything, mock.Anything).Return(payment.Preference{ID: "p"}, nil)

	var gotOrder model.Order
	orders.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		gotOrder = args.Get(1).(model.Order)
	}).Return(int64(1), nil)

	uc := usecase.NewCheckoutUsecase(store, orders, gw, 500, 5000)

	_, err := uc.CheckoutWithGateway(ctx, sessionID, validShipping(), "a@b.c")
	assert.NoError(t, err)

	assert.InDelta(t, 0.0, gotOrder.ShippingCost, 1e-9)
	assert.InDelta(t, gotOrder.TotalAmount, gotOrder.FinalAmount, 1e-9)
}

func TestCheckoutWithGateway_PreferenceFails_NoOrderWritten(t *testing.T) {
	ctx := context.Background()
	store, sessionID := newCartWithItems(ctx)

	orders := new(OrderRepoMock)
	gw := new(GatewayMock)

	gw.On("CreatePreference", mock.Anything, mock.Anything).
		Return(payment.Preference{}, errors.New("provider down"))

	uc := usecase.NewCheckoutUsecase(store, orders, gw, 500, 0)

	_, err := uc.CheckoutWithGateway(ctx, sessionID, validShipping(), "a@b.c")
	assertErrContains(t, err, "payment provider error")

	orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)

	// カートはそのまま
	c := store.Get(ctx, sessionID)
	assert.Equal(t, int64(3), c.TotalItems)
}

func TestCheckoutCustom_Success_ClearsCart(t *testing.T) {
	ctx := context.Background()
	store, sessionID := newCartWithItems(ctx)

	orders := new(OrderRepoMock)
	gw := new(GatewayMock)

	var gotOrder model.Order
	orders.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		gotOrder = args.Get(1).(model.Order)
	}).Return(int64(5), nil)

	uc := usecase.NewCheckoutUsecase(store, orders, gw, 500, 0)

	out, err := uc.CheckoutCustom(ctx, sessionID, validShipping())
	assert.NoError(t, err)
	assert.NotEmpty(t, out.OrderNumber)

	assert.Equal(t, model.PaymentMethodCustom, gotOrder.PaymentMethod)
	assert.Equal(t, model.OrderStatusPending, gotOrder.Status)

	c := store.Get(ctx, sessionID)
	assert.Equal(t, int64(0), c.TotalItems)
	assert.False(t, c.Open)
}

func TestCheckoutCustom_CreateFails_KeepsCart(t *testing.T) {
	ctx := context.Background()
	store, sessionID := newCartWithItems(ctx)

	orders := new(OrderRepoMock)
	gw := new(GatewayMock)

	orders.On("Create", mock.Anything, mock.Anything).Return(int64(0), errors.New("db down"))

	uc := usecase.NewCheckoutUsecase(store, orders, gw, 500, 0)

	_, err := uc.CheckoutCustom(ctx, sessionID, validShipping())
	assertErrContains(t, err, "db error")

	c := store.Get(ctx, sessionID)
	assert.Equal(t, int64(3), c.TotalItems)
}
