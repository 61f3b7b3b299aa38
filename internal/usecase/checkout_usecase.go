package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"app/internal/cart"
	"app/internal/domain/model"
	"app/internal/payment"
	repo "app/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// 2つのチェックアウトを束ねる。
// ゲートウェイ: preference作成→PENDING注文→リダイレクトURL返却（カートは残す）。
// カスタム: ゲートウェイを通さずPENDING注文→カートを空にして閉じる。
type CheckoutUsecase struct {
	store     *cart.Store
	orderRepo repo.OrderRepository
	gateway   payment.Gateway
	validate  *validator.Validate

	shippingFlatRate  float64
	freeShippingAbove float64
}

func NewCheckoutUsecase(
	store *cart.Store,
	orderRepo repo.OrderRepository,
	gateway payment.Gateway,
	shippingFlatRate float64,
	freeShippingAbove float64,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		store:             store,
		orderRepo:         orderRepo,
		gateway:           gateway,
		validate:          validator.New(),
		shippingFlatRate:  shippingFlatRate,
		freeShippingAbove: freeShippingAbove,
	}
}

// 必須項目は注文を書く前に弾く。
type ShippingInput struct {
	Address    string `json:"address" validate:"required"`
	Phone      string `json:"phone" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
}

type GatewayCheckoutOutput struct {
	OrderNumber  string `json:"order_number"`
	PreferenceID string `json:"preference_id"`
	RedirectURL  string `json:"redirect_url"`
}

type CustomCheckoutOutput struct {
	OrderNumber string `json:"order_number"`
}

// ゲートウェイ経由のチェックアウト。
// preference作成に失敗したら注文は一切書かない（中途半端な状態を残さない）。
func (u *CheckoutUsecase) CheckoutWithGateway(ctx context.Context, sessionID string, in ShippingInput, payerEmail string) (GatewayCheckoutOutput, error) {
	if sessionID == "" {
		return GatewayCheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "missing session")
	}
	if err := u.validate.Struct(in); err != nil {
		return GatewayCheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "invalid shipping info")
	}

	c := u.store.Get(ctx, sessionID)
	if c.TotalItems == 0 {
		return GatewayCheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "cart empty")
	}
	u.store.SetShipping(ctx, sessionID, cart.Shipping{
		Address:    strings.TrimSpace(in.Address),
		Phone:      strings.TrimSpace(in.Phone),
		PostalCode: strings.TrimSpace(in.PostalCode),
	})

	orderNumber := newOrderNumber()
	shippingCost := u.shippingCost(c.TotalAmount)

	prefItems := make([]payment.PreferenceItem, 0, len(c.Items))
	metaItems := make([]payment.MetadataItem, 0, len(c.Items))
	for _, it := range c.Items {
		prefItems = append(prefItems, payment.PreferenceItem{
			ID:         it.Key,
			Title:      it.Name,
			PictureURL: it.ImageURL,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
		})
		//在庫照合の対象はワイン行だけ
		if it.Kind == cart.KindWine {
			metaItems = append(metaItems, payment.MetadataItem{
				WineID:   it.WineID,
				Quantity: it.Quantity,
			})
		}
	}

	pref, err := u.gateway.CreatePreference(ctx, payment.PreferenceRequest{
		ExternalReference: orderNumber,
		Items:             prefItems,
		ShippingCost:      shippingCost,
		Payer: payment.Payer{
			Email:      payerEmail,
			Phone:      strings.TrimSpace(in.Phone),
			Address:    strings.TrimSpace(in.Address),
			PostalCode: strings.TrimSpace(in.PostalCode),
		},
		MetadataItems: metaItems,
	})
	if err != nil {
		log.Error().Err(err).Str("order_number", orderNumber).Msg("checkout: preference creation failed")
		return GatewayCheckoutOutput{}, NewHTTPError(http.StatusBadGateway, "payment provider error, please retry")
	}

	order := u.buildOrder(orderNumber, c, in, shippingCost, model.PaymentMethodMercadoPago)
	order.MPPreferenceID = pref.ID

	if _, err := u.orderRepo.Create(ctx, order); err != nil {
		log.Error().Err(err).Str("order_number", orderNumber).Msg("checkout: order create failed after preference")
		return GatewayCheckoutOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return GatewayCheckoutOutput{
		OrderNumber:  orderNumber,
		PreferenceID: pref.ID,
		RedirectURL:  pref.RedirectURL,
	}, nil
}

// 手動決済のチェックアウト。
// 注文が書けたときだけカートを空にする。失敗時は選択を失わせない。
func (u *CheckoutUsecase) CheckoutCustom(ctx context.Context, sessionID string, in ShippingInput) (CustomCheckoutOutput, error) {
	if sessionID == "" {
		return CustomCheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "missing session")
	}
	if err := u.validate.Struct(in); err != nil {
		return CustomCheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "invalid shipping info")
	}

	c := u.store.Get(ctx, sessionID)
	if c.TotalItems == 0 {
		return CustomCheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "cart empty")
	}

	orderNumber := newOrderNumber()
	shippingCost := u.shippingCost(c.TotalAmount)
	order := u.buildOrder(orderNumber, c, in, shippingCost, model.PaymentMethodCustom)

	if _, err := u.orderRepo.Create(ctx, order); err != nil {
		log.Error().Err(err).Str("order_number", orderNumber).Msg("checkout: custom order create failed")
		return CustomCheckoutOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.store.Clear(ctx, sessionID)
	u.store.Close(ctx, sessionID)

	return CustomCheckoutOutput{OrderNumber: orderNumber}, nil
}

// FinalAmount = TotalAmount + ShippingCost はここで1か所だけで決める。
func (u *CheckoutUsecase) buildOrder(orderNumber string, c cart.Cart, in ShippingInput, shippingCost float64, method model.PaymentMethod) model.Order {
	items := make([]model.OrderItem, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, model.OrderItem{
			ItemKey:           it.Key,
			WineID:            it.WineID,
			Kind:              it.Kind,
			NameSnapshot:      it.Name,
			WinerySnapshot:    it.Winery,
			UnitPriceSnapshot: it.UnitPrice,
			Quantity:          it.Quantity,
		})
	}

	return model.Order{
		OrderNumber:   orderNumber,
		Status:        model.OrderStatusPending,
		PaymentMethod: method,
		TotalAmount:   c.TotalAmount,
		ShippingCost:  shippingCost,
		FinalAmount:   c.TotalAmount + shippingCost,
		Address:       strings.TrimSpace(in.Address),
		Phone:         strings.TrimSpace(in.Phone),
		PostalCode:    strings.TrimSpace(in.PostalCode),
		Items:         items,
	}
}

// しきい値以上は送料無料。しきい値0は「常に定額」の意味にする。
func (u *CheckoutUsecase) shippingCost(totalAmount float64) float64 {
	if u.freeShippingAbove > 0 && totalAmount >= u.freeShippingAbove {
		return 0
	}
	return u.shippingFlatRate
}

// 人が読める注文番号（日付＋短いランダム）
func newOrderNumber() string {
	suffix := strings.ToUpper(uuid.NewString()[:8])
	return "VIN-" + time.Now().Format("20060102") + "-" + suffix
}
