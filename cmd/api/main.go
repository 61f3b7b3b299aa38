package main

import (
	"context"
	"time"

	"app/internal/cart"
	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infrapay "app/internal/infra/payment"
	infraRepo "app/internal/infra/repository"
	"app/internal/infra/storage"
	"app/internal/server"
	"app/internal/usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func (i *jwtIssuer) Issue(userID int64, role model.Role, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":  userID,
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	// .envはローカル開発用。無ければ環境変数だけで動く。
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}

	if err := gormDB.AutoMigrate(
		&model.Wine{},
		&model.Combo{},
		&model.ComboWineRef{},
		&model.Order{},
		&model.OrderItem{},
		&model.ProcessedPayment{},
		&model.InventoryAdjustment{},
		&model.AuditLog{},
		&model.CartSnapshot{},
		&model.User{},
	); err != nil {
		log.Fatal().Err(err).Msg("db migrate failed")
	}

	//Repository（GORM実装）生成
	wineRepo := infraRepo.NewWineGormRepository(gormDB)
	comboRepo := infraRepo.NewComboGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	inventoryRepo := infraRepo.NewInventoryGormRepository(gormDB)
	snapshotRepo := infraRepo.NewCartSnapshotGormRepository(gormDB)
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//カート（プロセス内。スナップショットはDBへ）
	cartStore := cart.NewStore(cart.NewRepoPersister(snapshotRepo))

	//決済ゲートウェイ
	gateway, err := infrapay.NewMercadoPagoGateway(cfg.MPAccessToken, cfg.FEURL, cfg.PublicBaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("payment gateway init failed")
	}

	//画像ストア
	imageStore, err := storage.NewLocalImageStore(cfg.UploadDir, cfg.PublicBaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("image store init failed")
	}

	//JWT issuer
	issuer := &jwtIssuer{
		secret:    []byte(cfg.JWTSecret),
		accessTTL: 15 * time.Minute,
	}

	//Usecase生成
	wineUC := usecase.NewWineUsecase(wineRepo, inventoryRepo, auditRepo)
	comboUC := usecase.NewComboUsecase(comboRepo, wineRepo)
	cartUC := usecase.NewCartUsecase(cartStore, wineRepo, comboRepo)
	stockUC := usecase.NewStockUsecase(txManager)
	checkoutUC := usecase.NewCheckoutUsecase(cartStore, orderRepo, gateway, cfg.ShippingFlatRate, cfg.FreeShippingThreshold)
	webhookUC := usecase.NewWebhookUsecase(gateway, txManager, stockUC)
	adminOrderUC := usecase.NewAdminOrderUsecase(txManager, auditRepo)
	authUC := usecase.NewAuthUsecase(userRepo, issuer)

	//起動時に管理者アカウントを用意する
	if err := authUC.EnsureAdmin(context.Background(), cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("admin bootstrap failed")
	}

	//Handler生成
	handlers := server.Handlers{
		Wine:       handler.NewWineHandler(wineUC),
		Combo:      handler.NewComboHandler(comboUC),
		Cart:       handler.NewCartHandler(cartUC),
		Checkout:   handler.NewCheckoutHandler(checkoutUC),
		Webhook:    handler.NewWebhookHandler(webhookUC),
		Auth:       handler.NewAuthHandler(authUC),
		AdminWine:  handler.NewAdminWineHandler(wineUC),
		AdminCombo: handler.NewAdminComboHandler(comboUC),
		AdminOrder: handler.NewAdminOrderHandler(adminOrderUC),
		Image:      handler.NewImageHandler(imageStore),
	}

	//Server起動
	e := server.New(cfg, handlers, imageStore.Dir())

	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	log.Info().Str("addr", addr).Str("env", cfg.GoEnv).Msg("api server starting")
	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
