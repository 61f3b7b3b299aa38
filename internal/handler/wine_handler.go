package handler

import (
	"net/http"
	"strconv"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /wines の公開API
type WineHandler struct {
	uc *usecase.WineUsecase
}

// DI
func NewWineHandler(uc *usecase.WineUsecase) *WineHandler {
	return &WineHandler{uc: uc}
}

// 公開カタログのルートを登録
func (h *WineHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/wines", h.list)
	e.GET("/wines/:id", h.detail)
}

func (h *WineHandler) list(c echo.Context) error {
	// page（default 1）
	page := 1
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid page"})
		}
		page = p
	}

	// limit（default 20）
	limit := 20
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = l
	}

	q := c.QueryParam("q")
	category := c.QueryParam("category")
	region := c.QueryParam("region")
	sort := c.QueryParam("sort")

	var minPrice *float64
	if v := c.QueryParam("min_price"); v != "" {
		x, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid min_price"})
		}
		minPrice = &x
	}

	var maxPrice *float64
	if v := c.QueryParam("max_price"); v != "" {
		x, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid max_price"})
		}
		maxPrice = &x
	}

	var featured *bool
	if v := c.QueryParam("featured"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid featured"})
		}
		featured = &b
	}

	out, err := h.uc.ListWines(c.Request().Context(), usecase.ListWinesInput{
		Page:     page,
		Limit:    limit,
		Q:        q,
		Category: category,
		Region:   region,
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		Featured: featured,
		Sort:     sort,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *WineHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	w, err := h.uc.GetWineDetail(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, w)
}
