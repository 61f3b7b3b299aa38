package handler

import (
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// Mercado Pagoが送ってくる通知の形
type WebhookNotification struct {
	Type string `json:"type"`
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

type WebhookHandler struct {
	uc *usecase.WebhookUsecase
}

func NewWebhookHandler(uc *usecase.WebhookUsecase) *WebhookHandler {
	return &WebhookHandler{uc: uc}
}

func (h *WebhookHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/webhooks/mercadopago", h.mercadopago)
}

// 通知は処理結果に関わらず200で受ける。失敗を返すと再送ループになる。
func (h *WebhookHandler) mercadopago(c echo.Context) error {
	var n WebhookNotification
	if err := c.Bind(&n); err != nil {
		log.Warn().Err(err).Msg("webhook: unreadable notification body")
		return c.NoContent(http.StatusOK)
	}

	if err := h.uc.ProcessPaymentNotification(c.Request().Context(), n.Type, n.Data.ID); err != nil {
		log.Error().Err(err).Str("payment_id", n.Data.ID).Msg("webhook: notification processing failed")
	}

	return c.NoContent(http.StatusOK)
}
