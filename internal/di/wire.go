//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	chathandler "gochat/internal/chat/handler"
	"gochat/internal/chat/repository"
	"gochat/internal/chat/service"
	"gochat/internal/config"
	"gochat/internal/dbmysql"
	"gochat/internal/user"
)

// InitializeApplication builds the full object graph; wire generates the body.
func InitializeApplication() (*Application, func(), error) {
	wire.Build(
		config.Load,
		dbmysql.NewMySQL,
		repository.NewMessageRepository,
		repository.NewChatRepository,
		service.NewRegistry,
		service.NewFanoutResolver,
		ProvideDeliveryEngine,
		service.NewChatService,
		chathandler.NewSessionHandler,
		chathandler.NewChatHandler,
		user.NewUserRepository,
		user.NewUserService,
		user.NewHandler,
		ProvideMediaHandler,
		provideApplication,
	)
	return nil, nil, nil
}
