package server

import (
	"app/internal/config"
	"app/internal/handler"
	"app/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Handlers はルート登録に必要なハンドラ一式
type Handlers struct {
	Wine       *handler.WineHandler
	Combo      *handler.ComboHandler
	Cart       *handler.CartHandler
	Checkout   *handler.CheckoutHandler
	Webhook    *handler.WebhookHandler
	Auth       *handler.AuthHandler
	AdminWine  *handler.AdminWineHandler
	AdminCombo *handler.AdminComboHandler
	AdminOrder *handler.AdminOrderHandler
	Image      *handler.ImageHandler
}

// New はechoを組み立てて返す。Startは呼び出し側で。
func New(cfg config.Config, h Handlers, uploadDir string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())
	e.Use(middleware.CartSession())

	// アップロード画像の静的配信
	e.Static("/uploads", uploadDir)

	h.Wine.RegisterRoutes(e)
	h.Combo.RegisterRoutes(e)
	h.Cart.RegisterRoutes(e)
	h.Checkout.RegisterRoutes(e)
	h.Webhook.RegisterRoutes(e)
	h.Auth.RegisterRoutes(e)
	h.AdminWine.RegisterRoutes(e, cfg)
	h.AdminCombo.RegisterRoutes(e, cfg)
	h.AdminOrder.RegisterRoutes(e, cfg)
	h.Image.RegisterRoutes(e, cfg)

	return e
}
