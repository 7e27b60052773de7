package main

import (
	"context"
	"log"
	"time"

	"laptop-admin/internal/config"
	"laptop-admin/internal/domain/model"
	"laptop-admin/internal/handler"
	"laptop-admin/internal/infra/db"
	infraRepo "laptop-admin/internal/infra/repository"
	"laptop-admin/internal/realtime"
	"laptop-admin/internal/server"
	"laptop-admin/internal/usecase"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

func main() {
	//.envは無くてもよい（本番は環境変数で渡す）
	_ = godotenv.Load("../.env")

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		panic(err)
	}
	if err := gormDB.AutoMigrate(
		&model.Order{},
		&model.OrderItem{},
		&model.Conversation{},
		&model.Message{},
		&model.Banner{},
		&model.Profile{},
		&model.Product{},
		&model.InventoryAdjustment{},
		&model.AuditLog{},
	); err != nil {
		panic(err)
	}

	//Repository（GORM実装）生成
	convRepo := infraRepo.NewConversationGormRepository(gormDB)
	msgRepo := infraRepo.NewMessageGormRepository(gormDB)
	bannerRepo := infraRepo.NewBannerGormRepository(gormDB)
	profileRepo := infraRepo.NewProfileGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	inventoryRepo := infraRepo.NewInventoryGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//行イベントのHub。自プロセスの書き込みとpg側のNOTIFYを合流させる。
	hub := realtime.NewHub()
	go func() {
		ctx := context.Background()
		for {
			if err := realtime.ListenAndForward(ctx, db.DSN(), hub); err != nil {
				log.Printf("listen: %v", err)
			}
			time.Sleep(3 * time.Second)
		}
	}()

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}

	//Usecase生成
	orderUC := usecase.NewAdminOrderUsecase(txManager, auditRepo)
	chatUC := usecase.NewChatUsecase(txManager, convRepo, msgRepo, hub, idGen, clock)
	bannerUC := usecase.NewBannerUsecase(bannerRepo)
	userUC := usecase.NewAdminUserUsecase(profileRepo, auditRepo)
	productUC := usecase.NewProductUsecase(productRepo, inventoryRepo, auditRepo)

	//Handler生成・ルート登録
	e := server.New(cfg)
	handler.NewAdminOrderHandler(orderUC).RegisterRoutes(e, cfg, profileRepo)
	handler.NewChatHandler(chatUC).RegisterRoutes(e, cfg, profileRepo)
	handler.NewBannerHandler(bannerUC).RegisterRoutes(e, cfg, profileRepo)
	handler.NewAdminUserHandler(userUC).RegisterRoutes(e, cfg, profileRepo)
	handler.NewAdminProductHandler(productUC).RegisterRoutes(e, cfg, profileRepo)
	handler.NewRealtimeHandler(hub).RegisterRoutes(e, cfg, profileRepo)

	//Server起動
	if err := server.Start(e, cfg); err != nil {
		panic(err)
	}
}
