package handler

import (
	"net/http"

	"app/internal/cart"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type CartAddRequest struct {
	WineID   int64 `json:"wine_id"`
	ComboID  int64 `json:"combo_id"`
	Quantity int64 `json:"quantity"`
}

type CartQuantityRequest struct {
	Quantity int64 `json:"quantity"`
}

type CartShippingRequest struct {
	Address    string `json:"address"`
	Phone      string `json:"phone"`
	PostalCode string `json:"postal_code"`
}

// /cart のAPI。セッションCookieでカートを識別する。
type CartHandler struct {
	uc *usecase.CartUsecase
}

func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

func (h *CartHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/cart", h.get)
	e.POST("/cart/items", h.addItem)
	e.PATCH("/cart/items/:key", h.updateQuantity)
	e.DELETE("/cart/items/:key", h.removeItem)
	e.DELETE("/cart", h.clear)
	e.POST("/cart/toggle", h.toggle)
	e.PUT("/cart/shipping", h.setShipping)
}

func (h *CartHandler) get(c echo.Context) error {
	sessionID, ok := getCartSessionID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "no cart session"})
	}

	out, err := h.uc.GetCart(c.Request().Context(), sessionID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// wine_idかcombo_idのどちらか片方を指定する
func (h *CartHandler) addItem(c echo.Context) error {
	sessionID, ok := getCartSessionID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "no cart session"})
	}

	var req CartAddRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if (req.WineID > 0) == (req.ComboID > 0) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "specify wine_id or combo_id"})
	}

	var out cart.Cart
	var err error
	if req.WineID > 0 {
		out, err = h.uc.AddWine(c.Request().Context(), sessionID, req.WineID, req.Quantity)
	} else {
		out, err = h.uc.AddCombo(c.Request().Context(), sessionID, req.ComboID, req.Quantity)
	}
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) updateQuantity(c echo.Context) error {
	sessionID, ok := getCartSessionID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "no cart session"})
	}

	key := c.Param("key")
	if key == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid key"})
	}

	var req CartQuantityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.UpdateQuantity(c.Request().Context(), sessionID, key, req.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) removeItem(c echo.Context) error {
	sessionID, ok := getCartSessionID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "no cart session"})
	}

	key := c.Param("key")
	if key == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid key"})
	}

	out, err := h.uc.RemoveItem(c.Request().Context(), sessionID, key)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) clear(c echo.Context) error {
	sessionID, ok := getCartSessionID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "no cart session"})
	}

	out, err := h.uc.ClearCart(c.Request().Context(), sessionID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) toggle(c echo.Context) error {
	sessionID, ok := getCartSessionID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "no cart session"})
	}

	out, err := h.uc.ToggleCart(c.Request().Context(), sessionID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) setShipping(c echo.Context) error {
	sessionID, ok := getCartSessionID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "no cart session"})
	}

	var req CartShippingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.SetShipping(c.Request().Context(), sessionID, cart.Shipping{
		Address:    req.Address,
		Phone:      req.Phone,
		PostalCode: req.PostalCode,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
