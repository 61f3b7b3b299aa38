package payment

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	domain "app/internal/payment"

	"github.com/mercadopago/sdk-go/pkg/config"
	mppay "github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

// Mercado Pago実装。SDKはここから外に出さない。
type MercadoPagoGateway struct {
	prefClient preference.Client
	payClient  mppay.Client

	successURL      string
	pendingURL      string
	failureURL      string
	notificationURL string
}

func NewMercadoPagoGateway(accessToken string, frontendURL string, publicBaseURL string) (*MercadoPagoGateway, error) {
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago: config: %w", err)
	}

	fe := strings.TrimRight(frontendURL, "/")
	base := strings.TrimRight(publicBaseURL, "/")

	return &MercadoPagoGateway{
		prefClient:      preference.NewClient(cfg),
		payClient:       mppay.NewClient(cfg),
		successURL:      fe + "/checkout/success",
		pendingURL:      fe + "/checkout/pending",
		failureURL:      fe + "/checkout/failure",
		notificationURL: base + "/webhooks/mercadopago",
	}, nil
}

func (g *MercadoPagoGateway) CreatePreference(ctx context.Context, req domain.PreferenceRequest) (domain.Preference, error) {
	items := make([]preference.ItemRequest, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, preference.ItemRequest{
			ID:         it.ID,
			Title:      it.Title,
			PictureURL: it.PictureURL,
			Quantity:   int(it.Quantity),
			UnitPrice:  it.UnitPrice,
		})
	}

	metaItems := make([]map[string]any, 0, len(req.MetadataItems))
	for _, mi := range req.MetadataItems {
		metaItems = append(metaItems, map[string]any{
			"wine_id":  mi.WineID,
			"quantity": mi.Quantity,
		})
	}

	prefReq := preference.Request{
		ExternalReference: req.ExternalReference,
		Items:             items,
		NotificationURL:   g.notificationURL,
		BackURLs: &preference.BackURLsRequest{
			Success: g.successURL,
			Pending: g.pendingURL,
			Failure: g.failureURL,
		},
		Payer: &preference.PayerRequest{
			Name:  req.Payer.Name,
			Email: req.Payer.Email,
			Phone: &preference.PhoneRequest{
				Number: req.Payer.Phone,
			},
			Address: &preference.AddressRequest{
				ZipCode:    req.Payer.PostalCode,
				StreetName: req.Payer.Address,
			},
		},
		Metadata: map[string]any{
			"items": metaItems,
		},
	}

	if req.ShippingCost > 0 {
		prefReq.Shipments = &preference.ShipmentsRequest{
			Mode: "not_specified",
			Cost: req.ShippingCost,
		}
	}

	resp, err := g.prefClient.Create(ctx, prefReq)
	if err != nil {
		return domain.Preference{}, fmt.Errorf("mercadopago: create preference: %w", err)
	}

	return domain.Preference{
		ID:          resp.ID,
		RedirectURL: resp.InitPoint,
	}, nil
}

// Webhookの通知内容は信用せず、payment_idで詳細を取り直す。
func (g *MercadoPagoGateway) GetPayment(ctx context.Context, paymentID string) (domain.PaymentDetails, error) {
	id, err := strconv.Atoi(paymentID)
	if err != nil {
		return domain.PaymentDetails{}, fmt.Errorf("mercadopago: invalid payment id %q: %w", paymentID, err)
	}

	resp, err := g.payClient.Get(ctx, id)
	if err != nil {
		return domain.PaymentDetails{}, fmt.Errorf("mercadopago: get payment %d: %w", id, err)
	}

	return domain.PaymentDetails{
		ID:                strconv.Itoa(resp.ID),
		Status:            resp.Status,
		ExternalReference: resp.ExternalReference,
		Items:             parseMetadataItems(resp.Metadata),
	}, nil
}

// metadataはJSON経由でmap[string]any/float64になって返ってくる。
func parseMetadataItems(meta map[string]any) []domain.MetadataItem {
	raw, ok := meta["items"].([]any)
	if !ok {
		return nil
	}

	out := make([]domain.MetadataItem, 0, len(raw))
	for _, e := range raw {
		m, ok := e.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, domain.MetadataItem{
			WineID:   toInt64(m["wine_id"]),
			Quantity: toInt64(m["quantity"]),
		})
	}
	return out
}

func toInt64(v any) int64 {
	switch t := v.(type) {
	case float64:
		return int64(t)
	case int64:
		return t
	case int:
		return int64(t)
	case string:
		i, _ := strconv.ParseInt(t, 10, 64)
		return i
	default:
		return 0
	}
}
