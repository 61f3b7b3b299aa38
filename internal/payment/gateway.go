package payment

import "context"

// ゲートウェイの決済ステータス（プロバイダ側の文字列をそのまま持つ）
const (
	StatusApproved = "approved"
	StatusPending  = "pending"
	StatusRejected = "rejected"
)

// preferenceに載せる明細行。単価は税込スナップショット。
type PreferenceItem struct {
	ID         string
	Title      string
	PictureURL string
	Quantity   int64
	UnitPrice  float64
}

// 後で在庫照合するためにmetadataへ埋めるペア。
// コンボ行は含めない（在庫センチネルのため減算対象外）。
type MetadataItem struct {
	WineID   int64 `json:"wine_id"`
	Quantity int64 `json:"quantity"`
}

type Payer struct {
	Name       string
	Email      string
	Phone      string
	Address    string
	PostalCode string
}

type PreferenceRequest struct {
	// 注文番号。Webhookの逆引きキーになる。
	ExternalReference string
	Items             []PreferenceItem
	ShippingCost      float64
	Payer             Payer
	MetadataItems     []MetadataItem
}

type Preference struct {
	ID          string
	RedirectURL string
}

// 決済の詳細。Webhookの中身は信用せず、必ずこれを取り直す。
type PaymentDetails struct {
	ID                string
	Status            string
	ExternalReference string
	Items             []MetadataItem
}

type Gateway interface {
	CreatePreference(ctx context.Context, req PreferenceRequest) (Preference, error)
	GetPayment(ctx context.Context, paymentID string) (PaymentDetails, error)
}
