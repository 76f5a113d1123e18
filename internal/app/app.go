package app

import (
	"log"

	"simplechat/internal/config"
	"simplechat/internal/handler"
	"simplechat/internal/repository"
	"simplechat/internal/service"
	"simplechat/internal/validation"
	"simplechat/internal/ws"
)

func Run(cfg *config.Config) {
	db, err := repository.NewDB(cfg.DSN())
	if err != nil {
		log.Fatal(err)
	}

	var presence repository.PresenceRepository
	if cfg.RedisAddr != "" {
		rdb, err := repository.NewRedisClient(cfg.RedisAddr)
		if err != nil {
			log.Fatal(err)
		}
		presence = repository.NewPresenceRepository(rdb)
	} else {
		log.Println("REDIS_ADDR is not set, presence tracking disabled")
	}

	userRepo := repository.NewUserRepository(db)
	chatRepo := repository.NewChatRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	hub := ws.NewHub()
	defer hub.Shutdown()

	userService := service.NewUserService(userRepo, validation.NewUserValidator(userRepo))
	chatService := service.NewChatService(chatRepo, messageRepo,
		validation.NewChatValidator(chatRepo, userRepo), hub)
	messageService := service.NewMessageService(messageRepo,
		validation.NewMessageValidator(messageRepo, chatRepo, userRepo))

	userHandler := handler.NewUserHandler(userService)
	chatHandler := handler.NewChatHandler(chatService)
	messageHandler := handler.NewMessageHandler(messageService)
	wsHandler := handler.NewWSHandler(hub, presence)

	server := NewServer(userHandler, chatHandler, messageHandler, wsHandler)
	server.Run(cfg.ServerPort)
}
