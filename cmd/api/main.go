package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/huellitas/huellitas-api/internal/config"
	"github.com/huellitas/huellitas-api/internal/handler"
	"github.com/huellitas/huellitas-api/internal/mail"
	"github.com/huellitas/huellitas-api/internal/middleware"
	"github.com/huellitas/huellitas-api/internal/repository"
	"github.com/huellitas/huellitas-api/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := repository.NewDB(cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := repository.Migrate(context.Background(), db); err != nil {
		slog.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	mailer, err := mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)
	if err != nil {
		slog.Error("smtp client setup failed", "error", err)
		os.Exit(1)
	}

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	communityRepo := repository.NewCommunityRepository(db)
	storyRepo := repository.NewStoryRepository(db)
	helpRepo := repository.NewHelpCaseRepository(db)

	authHandler := handler.NewAuthHandler(service.NewAuthService(
		userRepo, mailer, cfg.JWTSecret, cfg.JWTExpiry, cfg.ResetTokenTTL, cfg.MailTimeout, cfg.ResetURLBase))
	userHandler := handler.NewUserHandler(service.NewUserService(userRepo))
	postHandler := handler.NewPostHandler(service.NewPostService(postRepo))
	communityHandler := handler.NewCommunityHandler(service.NewCommunityService(communityRepo))
	storyHandler := handler.NewStoryHandler(service.NewStoryService(storyRepo))
	helpHandler := handler.NewHelpCaseHandler(service.NewHelpCaseService(helpRepo))
	searchHandler := handler.NewSearchHandler(service.NewSearchService(postRepo))

	auth := middleware.Auth(cfg.JWTSecret, userRepo)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", middleware.TokenHeader, "Authorization"},
		AllowCredentials: true,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/login", authHandler.HandleLogin)
		r.Post("/forgot-password", authHandler.HandleForgotPassword)
		r.Post("/reset-password/{token}", authHandler.HandleResetPassword)
		r.With(auth).Get("/me", authHandler.HandleMe)
	})

	r.Route("/api/usuarios", func(r chi.Router) {
		r.Post("/", userHandler.HandleRegister)
		r.Group(func(r chi.Router) {
			r.Use(auth)
			r.Get("/perfil", userHandler.HandleProfile)
			r.Put("/perfil", userHandler.HandleUpdateProfile)
			r.Get("/{id}", userHandler.HandleGet)
			r.Put("/{id}", userHandler.HandleUpdate)
			r.With(middleware.RequireAdmin).Get("/", userHandler.HandleList)
			r.With(middleware.RequireAdmin).Delete("/{id}", userHandler.HandleDelete)
		})
	})

	r.Route("/api/publicaciones", func(r chi.Router) {
		r.Get("/", postHandler.HandleList)
		r.Get("/{id}", postHandler.HandleGet)
		r.Group(func(r chi.Router) {
			r.Use(auth)
			r.Get("/usuario/{id}", postHandler.HandleListByUser)
			r.Get("/contacto/{id}", postHandler.HandleContact)
			r.With(middleware.RequireAdmin).Get("/admin/todas", postHandler.HandleAdminList)
			r.Post("/", postHandler.HandleCreate)
			r.Put("/{id}", postHandler.HandleUpdate)
			r.Delete("/{id}", postHandler.HandleDelete)
			r.With(middleware.RequireAdmin).Put("/{id}/restaurar", postHandler.HandleRestore)
		})
	})

	r.Route("/api/comunidad", func(r chi.Router) {
		r.Get("/", communityHandler.HandleList)
		r.Get("/{id}", communityHandler.HandleGet)
		r.Group(func(r chi.Router) {
			r.Use(auth)
			r.Post("/", communityHandler.HandleCreate)
			r.Put("/{id}", communityHandler.HandleUpdate)
			r.Delete("/{id}", communityHandler.HandleDelete)
		})
	})

	r.Route("/api/casosExito", func(r chi.Router) {
		r.Get("/", storyHandler.HandleList)
		r.With(auth).Post("/", storyHandler.HandleCreate)
		r.With(auth).Delete("/{id}", storyHandler.HandleDelete)
	})

	r.Route("/api/casosAyuda", func(r chi.Router) {
		r.Get("/", helpHandler.HandleList)
		r.Get("/usuario/{id}", helpHandler.HandleListByUser)
		r.With(auth).Post("/", helpHandler.HandleCreate)
		r.With(auth).Delete("/{id}", helpHandler.HandleDelete)
	})

	r.Get("/api/buscar/{coleccion}", searchHandler.HandleSearch)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
