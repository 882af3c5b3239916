// cmd/server/main.go
package main

import (
	"log"
	"net/http"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/Gauhar-1/Ludo-game/internal/auth"
	"github.com/Gauhar-1/Ludo-game/internal/cache"
	"github.com/Gauhar-1/Ludo-game/internal/database"
	"github.com/Gauhar-1/Ludo-game/internal/handlers"
	"github.com/Gauhar-1/Ludo-game/internal/middleware"
)

func main() {
	auth.Init()
	database.ConnectDB()

	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	// The action history queue is optional; the game runs without it.
	if err := cache.ConnectRedis(); err != nil {
		logger.Warnf("redis unavailable, action history disabled: %v", err)
	}

	mux := http.NewServeMux()

	// user endpoints
	mux.HandleFunc("/user/create", handlers.CreateUserHandler(logger))
	mux.HandleFunc("/user/login", handlers.LoginHandler(logger))

	// room websocket
	srv := handlers.NewRoomServer(logger)

	mux.Handle("/ws/", middleware.LogMiddleware(logger)(http.HandlerFunc(
		handlers.RoomWSHandler(srv, logger),
	)))

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	logger.Infof("Running on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
