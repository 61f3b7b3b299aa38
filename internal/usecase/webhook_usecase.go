package usecase

import (
	"context"
	"errors"

	"app/internal/payment"
	repo "app/internal/repository"

	"github.com/rs/zerolog/log"
)

// ゲートウェイからの非同期通知を受けて注文と在庫を照合する。
// 通知本文のstatusは信用しない。必ずpayment_idで詳細を取り直す。
type WebhookUsecase struct {
	gateway payment.Gateway
	tx      repo.TransactionManager
	stock   *StockUsecase
}

func NewWebhookUsecase(gateway payment.Gateway, tx repo.TransactionManager, stock *StockUsecase) *WebhookUsecase {
	return &WebhookUsecase{gateway: gateway, tx: tx, stock: stock}
}

// ProcessPaymentNotification はWebhook1件を処理する。
// エラーはログに残すだけで、handlerはプロバイダに常に200を返す。
func (u *WebhookUsecase) ProcessPaymentNotification(ctx context.Context, eventType string, paymentID string) error {
	if eventType != "payment" || paymentID == "" {
		log.Debug().Str("type", eventType).Str("payment_id", paymentID).Msg("webhook: ignoring notification")
		return nil
	}

	details, err := u.gateway.GetPayment(ctx, paymentID)
	if err != nil {
		log.Error().Err(err).Str("payment_id", paymentID).Msg("webhook: payment fetch failed")
		return err
	}

	// 台帳に先に書く。重複配信（at-least-once）はここで止まる。
	// 注文へのid/statusの書き戻しも同じトランザクションで行う。
	first := false
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		recorded, err := r.PaymentLedger().Record(ctx, details.ID, details.Status)
		if err != nil {
			return err
		}
		first = recorded
		if !first {
			return nil
		}

		order, found, err := r.Orders().FindByOrderNumber(ctx, details.ExternalReference)
		if err != nil {
			return err
		}
		if !found {
			log.Warn().Str("payment_id", details.ID).Str("external_reference", details.ExternalReference).
				Msg("webhook: no order for external reference")
			return nil
		}
		return r.Orders().UpdatePaymentInfo(ctx, order.ID, details.ID, details.Status)
	})
	if err != nil {
		log.Error().Err(err).Str("payment_id", details.ID).Msg("webhook: reconciliation write failed")
		return err
	}
	if !first {
		log.Info().Str("payment_id", details.ID).Msg("webhook: duplicate delivery, already processed")
		return nil
	}

	switch details.Status {
	case payment.StatusApproved:
		u.reduceStockForItems(ctx, details)
	default:
		//pending/rejected等はログだけ。注文ステータスは手動運用のまま。
		log.Info().Str("payment_id", details.ID).Str("status", details.Status).
			Str("external_reference", details.ExternalReference).
			Msg("webhook: non-approved payment, no stock action")
	}

	return nil
}

// metadataの明細を1つずつ減算する。1件の失敗で残りを止めない。
// 明細をまたぐロールバックもしない（ベストエフォート）。
func (u *WebhookUsecase) reduceStockForItems(ctx context.Context, details payment.PaymentDetails) {
	for _, item := range details.Items {
		newStock, err := u.stock.ReduceStock(ctx, item.WineID, item.Quantity)
		if err != nil {
			var ins *ErrInsufficientStock
			if errors.As(err, &ins) {
				log.Warn().Str("payment_id", details.ID).Int64("wine_id", item.WineID).
					Int64("available", ins.Available).Int64("requested", ins.Requested).
					Msg("webhook: insufficient stock, skipping item")
				continue
			}
			log.Error().Err(err).Str("payment_id", details.ID).Int64("wine_id", item.WineID).
				Msg("webhook: stock reduction failed")
			continue
		}
		log.Info().Str("payment_id", details.ID).Int64("wine_id", item.WineID).
			Int64("quantity", item.Quantity).Int64("new_stock", newStock).
			Msg("webhook: stock reduced")
	}
}
