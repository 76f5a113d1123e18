// @title SimpleChat
// @version 0.1
// @description Chat backend with users, chats, memberships and messages.

// @host localhost:8080
// @BasePath /
// @schemes http

package main

import (
	"log"

	"simplechat/internal/app"
	"simplechat/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	app.Run(cfg)
}
