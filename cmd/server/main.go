package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/mwesigwa/tunestream-backend/internal/gateway"
	"github.com/mwesigwa/tunestream-backend/internal/gateway/middleware"
	"github.com/mwesigwa/tunestream-backend/internal/modules/artist"
	"github.com/mwesigwa/tunestream-backend/internal/modules/auth"
	"github.com/mwesigwa/tunestream-backend/internal/modules/catalog"
	"github.com/mwesigwa/tunestream-backend/internal/modules/contact"
	"github.com/mwesigwa/tunestream-backend/internal/modules/engagement"
	"github.com/mwesigwa/tunestream-backend/internal/modules/filestorage"
	"github.com/mwesigwa/tunestream-backend/internal/modules/notification"
	"github.com/mwesigwa/tunestream-backend/internal/modules/playlist"
	"github.com/mwesigwa/tunestream-backend/internal/shared/infrastructure/config"
	"github.com/mwesigwa/tunestream-backend/internal/shared/infrastructure/database"
	"github.com/mwesigwa/tunestream-backend/pkg/migration"
)

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	log.Println("Connecting to DB...")
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer db.Close()
	log.Println("Database connected successfully")

	if err := migration.AutoMigrate(cfg.Database.URL(), cfg.Server.MigrationsPath, logger); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redisClient, err := database.NewRedis(cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	ctx := context.Background()

	fileModule, err := filestorage.NewModule(ctx, cfg.FileStorage)
	if err != nil {
		log.Fatalf("Failed to initialize file storage: %v", err)
	}

	notificationModule := notification.NewModule()
	defer notificationModule.Shutdown()

	authModule := auth.NewModule(db, cfg.JWT.Secret, cfg.JWT.Expiry, fileModule.Service(), cfg.Google.ClientID)
	catalogModule := catalog.NewModule(db, fileModule.Service(), notificationModule.Service(), redisClient)
	artistModule := artist.NewModule(db)
	engagementModule := engagement.NewModule(db, cfg.Retention.HistoryWindow)
	playlistModule := playlist.NewModule(db)
	contactModule := contact.NewModule(db)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	mux := gateway.SetupRoutes(gateway.RouterConfig{
		AuthHandler:        authModule.HTTPHandler(),
		AuthMiddleware:     authMiddleware,
		CatalogHandler:     catalogModule.HTTPHandler(),
		ArtistHandler:      artistModule.HTTPHandler(),
		EngagementHandler:  engagementModule.HTTPHandler(),
		PlaylistHandler:    playlistModule.HTTPHandler(),
		ContactHandler:     contactModule.HTTPHandler(),
		NotificationModule: notificationModule,
	})

	// Serve locally stored uploads when S3 is disabled
	if !cfg.FileStorage.UseS3 {
		mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.FileStorage.LocalPath))))
	}

	var handler http.Handler = mux
	handler = middleware.PrometheusMiddleware(handler)
	handler = middleware.CORSMiddleware(handler, cfg.Server.AllowedOrigins)

	server := gateway.NewServer(cfg.Server.Port, handler)
	if err := server.Start(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
