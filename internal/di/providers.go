package di

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	chathandler "gochat/internal/chat/handler"
	"gochat/internal/chat/repository"
	"gochat/internal/chat/service"
	"gochat/internal/config"
	"gochat/internal/dbmongo"
	"gochat/internal/dbmysql"
	"gochat/internal/media"
	"gochat/internal/user"
)

// Application bundles everything cmd/chat-server needs.
type Application struct {
	Config         *config.Config
	DB             *gorm.DB
	Registry       *service.Registry
	Engine         *service.DeliveryEngine
	SessionHandler *chathandler.SessionHandler
	ChatHandler    *chathandler.ChatHandler
	UserHandler    *user.Handler
	MediaHandler   *media.Handler
}

func ProvideDeliveryEngine(cfg *config.Config, registry *service.Registry, repo repository.MessageRepository) (*service.DeliveryEngine, func()) {
	engine := service.NewDeliveryEngine(registry, repo, cfg.Delivery.MaxRetries, cfg.RetryDelay())
	return engine, engine.Shutdown
}

// ProvideMediaHandler connects to Mongo unless media storage is disabled, in
// which case upload/download endpoints 404.
func ProvideMediaHandler(cfg *config.Config) (*media.Handler, func(), error) {
	if !cfg.Mongo.Enabled {
		log.Println("media storage disabled, skipping Mongo connection")
		return nil, func() {}, nil
	}

	client, err := dbmongo.NewMongoConnection(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		client.Close(ctx)
	}
	return media.NewHandler(dbmongo.NewMediaStorage(client)), cleanup, nil
}

func provideApplication(
	cfg *config.Config,
	db *gorm.DB,
	registry *service.Registry,
	engine *service.DeliveryEngine,
	sessionHandler *chathandler.SessionHandler,
	chatHandler *chathandler.ChatHandler,
	userHandler *user.Handler,
	mediaHandler *media.Handler,
) *Application {
	return &Application{
		Config:         cfg,
		DB:             db,
		Registry:       registry,
		Engine:         engine,
		SessionHandler: sessionHandler,
		ChatHandler:    chatHandler,
		UserHandler:    userHandler,
		MediaHandler:   mediaHandler,
	}
}

// Migrate creates/updates the relational schema.
func (a *Application) Migrate() error {
	return a.DB.AutoMigrate(
		&dbmysql.User{},
		&dbmysql.Chat{},
		&dbmysql.ChatParticipant{},
		&dbmysql.Message{},
	)
}
