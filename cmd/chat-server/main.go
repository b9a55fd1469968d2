package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"gochat/internal/common"
	"gochat/internal/di"
)

func main() {
	log.Println("Starting Chat Server...")

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	app, cleanup, err := di.InitializeApplication()
	if err != nil {
		log.Fatalf("Failed to initialize chat server: %v", err)
	}
	defer cleanup()

	if err := app.Migrate(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	router := mux.NewRouter()
	router.Use(common.RequestLogger)

	// Public routes: auth, media download and the websocket endpoint, which
	// does its own token check before any frame is exchanged.
	app.UserHandler.RegisterRoutes(router)
	router.HandleFunc("/ws/chat", app.SessionHandler.ServeWS)
	if app.MediaHandler != nil {
		app.MediaHandler.RegisterDownload(router)
	}

	// Everything else requires a Bearer token.
	api := router.NewRoute().Subrouter()
	api.Use(common.AuthMiddleware)
	app.ChatHandler.RegisterRoutes(api)
	if app.MediaHandler != nil {
		app.MediaHandler.RegisterUpload(api)
	}

	addr := app.Config.Server.Host + ":" + app.Config.Server.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(app.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(app.Config.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Printf("Chat Server running on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down Chat Server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
	log.Println("Chat Server stopped")
}
