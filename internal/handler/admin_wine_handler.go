package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// WineCreateRequest は管理画面のワイン作成/更新の入力です。
type WineCreateRequest struct {
	Name        string  `json:"name"`
	Winery      string  `json:"winery"`
	Varietal    string  `json:"varietal"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Cost        float64 `json:"cost"`
	IVA         float64 `json:"iva"`
	Stock       int64   `json:"stock"`
	Region      string  `json:"region"`
	Vintage     int     `json:"vintage"`
	Alcohol     float64 `json:"alcohol"`
	ImageURL    string  `json:"image_url"`
	IsFeatured  bool    `json:"is_featured"`
}

// StockUpdateRequest は在庫更新の入力です。
type StockUpdateRequest struct {
	Stock  int64  `json:"stock"`
	Reason string `json:"reason"`
}

// /admin/wines をまとめる
type AdminWineHandler struct {
	uc *usecase.WineUsecase
}

// DI
func NewAdminWineHandler(uc *usecase.WineUsecase) *AdminWineHandler {
	return &AdminWineHandler{uc: uc}
}

// adminを登録
func (h *AdminWineHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	admin := e.Group("/admin")

	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.AdminRoleGuard())

	admin.POST("/wines", h.createWine)
	admin.PUT("/wines/:id", h.updateWine)
	admin.DELETE("/wines/:id", h.deleteWine)
	admin.PUT("/wines/:id/stock", h.updateStock)
}

func (h *AdminWineHandler) createWine(c echo.Context) error {
	var req WineCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := h.uc.AdminCreateWine(c.Request().Context(), adminID, toAdminWineInput(req))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]int64{"id": id})
}

func (h *AdminWineHandler) updateWine(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req WineCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.uc.AdminUpdateWine(c.Request().Context(), adminID, id, toAdminWineInput(req)); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "updated"})
}

func (h *AdminWineHandler) deleteWine(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.uc.AdminDeleteWine(c.Request().Context(), adminID, id); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}

func (h *AdminWineHandler) updateStock(c echo.Context) error {
	wineID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req StockUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.uc.AdminUpdateStock(
		c.Request().Context(),
		adminID,
		wineID,
		req.Stock,
		req.Reason,
	); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "stock updated"})
}

func toAdminWineInput(req WineCreateRequest) usecase.AdminWineInput {
	return usecase.AdminWineInput{
		Name:        req.Name,
		Winery:      req.Winery,
		Varietal:    req.Varietal,
		Category:    req.Category,
		Description: req.Description,
		Price:       req.Price,
		Cost:        req.Cost,
		IVA:         req.IVA,
		Stock:       req.Stock,
		Region:      req.Region,
		Vintage:     req.Vintage,
		Alcohol:     req.Alcohol,
		ImageURL:    req.ImageURL,
		IsFeatured:  req.IsFeatured,
	}
}
