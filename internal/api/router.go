package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/quantive/kb-catalog/internal/api/handler"
	custommw "github.com/quantive/kb-catalog/internal/api/middleware"
	"github.com/quantive/kb-catalog/internal/config"
	mongorepo "github.com/quantive/kb-catalog/internal/repository/mongo"
	redisrepo "github.com/quantive/kb-catalog/internal/repository/redis"
	"github.com/quantive/kb-catalog/internal/service"
	"github.com/quantive/kb-catalog/internal/storage"
)

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, db *mongorepo.DB, redisClient *redisrepo.Client, objects *storage.ObjectStore) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommw.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.MiddlewareTimeout))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	rateLimiter := redisrepo.NewRateLimiter(
		redisClient,
		cfg.Security.RateLimit.Requests,
		cfg.Security.RateLimit.Burst,
		cfg.Security.RateLimit.Window,
	)
	r.Use(custommw.RateLimit(rateLimiter))

	// Repositories and adapters
	docRepo := mongorepo.NewDocumentRepository(db)
	wsRepo := mongorepo.NewWorkspaceRepository(db)
	cache := redisrepo.NewDocumentCache(redisClient, cfg.Catalog.CacheTTL)
	index := storage.NewSearchIndex(objects, cfg.Storage.DataSourceBucket)

	// Services
	catalogSvc := service.NewCatalogService(docRepo, wsRepo, cache, objects, cfg.Storage.ProcessingBucket, cfg.Catalog.PageSize)
	deletionSvc := service.NewDeletionService(
		docRepo, wsRepo, objects, index, cache,
		cfg.Storage.UploadBucket, cfg.Storage.ProcessingBucket,
	)
	subscriptionSvc := service.NewSubscriptionService(catalogSvc)
	uploadSvc := service.NewUploadService(objects, cfg.Storage.UploadBucket, cfg.Catalog.UploadExpiry)

	// Handlers
	documentHandler := handler.NewDocumentHandler(catalogSvc, deletionSvc)
	uploadHandler := handler.NewUploadHandler(uploadSvc)
	subscriptionHandler := handler.NewSubscriptionHandler(subscriptionSvc)

	r.Get("/health", handler.Health)

	r.Route("/api/v1/workspaces/{workspaceID}", func(r chi.Router) {
		r.Delete("/", documentHandler.DeleteWorkspace)

		r.Route("/documents", func(r chi.Router) {
			r.Get("/", documentHandler.List)
			r.Post("/upload-url", uploadHandler.GetUploadURL)
			r.Post("/text", documentHandler.AddText)
			r.Post("/qna", documentHandler.AddQnA)
			r.Post("/website", documentHandler.AddWebsite)
			r.Post("/rssfeed", documentHandler.AddRSSFeed)

			r.Route("/{documentID}", func(r chi.Router) {
				r.Get("/", documentHandler.Get)
				r.Patch("/", documentHandler.Update)
				r.Delete("/", documentHandler.Delete)
				r.Get("/posts", documentHandler.ListRSSPosts)
				r.Put("/subscription", subscriptionHandler.SetStatus)
			})
		})
	})

	return r
}
