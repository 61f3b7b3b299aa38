package handler

import (
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type CheckoutRequest struct {
	Address    string `json:"address"`
	Phone      string `json:"phone"`
	PostalCode string `json:"postal_code"`
	PayerEmail string `json:"payer_email"`
}

// /checkout のAPI
type CheckoutHandler struct {
	uc *usecase.CheckoutUsecase
}

func NewCheckoutHandler(uc *usecase.CheckoutUsecase) *CheckoutHandler {
	return &CheckoutHandler{uc: uc}
}

func (h *CheckoutHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/checkout/preference", h.preference)
	e.POST("/checkout/custom", h.custom)
}

// 決済ゲートウェイのpreferenceを作ってリダイレクト先を返す
func (h *CheckoutHandler) preference(c echo.Context) error {
	sessionID, ok := getCartSessionID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "no cart session"})
	}

	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.CheckoutWithGateway(c.Request().Context(), sessionID, usecase.ShippingInput{
		Address:    req.Address,
		Phone:      req.Phone,
		PostalCode: req.PostalCode,
	}, req.PayerEmail)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

// ゲートウェイを通さない手動決済の注文確定
func (h *CheckoutHandler) custom(c echo.Context) error {
	sessionID, ok := getCartSessionID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "no cart session"})
	}

	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.CheckoutCustom(c.Request().Context(), sessionID, usecase.ShippingInput{
		Address:    req.Address,
		Phone:      req.Phone,
		PostalCode: req.PostalCode,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
