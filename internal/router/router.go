package router

import (
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ossiecodes/mingle/internal/handlers"
	"github.com/ossiecodes/mingle/internal/models"
	"github.com/ossiecodes/mingle/internal/repositories"
	"github.com/ossiecodes/mingle/internal/services"
	"github.com/ossiecodes/mingle/pkg/clock"
	"github.com/ossiecodes/mingle/pkg/config"
	"github.com/ossiecodes/mingle/pkg/hash"
	"github.com/ossiecodes/mingle/pkg/media"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(eMiddleware.Logger())
}

// Engines bundles the wired workflow services so the caller can own
// lifecycle concerns like the story sweeper.
type Engines struct {
	Accounts  *services.AccountService
	Social    *services.SocialService
	Content   *services.ContentService
	Stories   *services.StoryService
	Messaging *services.MessageService
	Notifier  *services.Notifier
}

// SetupRoutes wires repositories, services and handlers onto the Echo
// instance and returns the engines.
func SetupRoutes(e *echo.Echo, cfg *config.Config, db *config.DB, store *media.DiskStore, logger *zap.Logger) (*Engines, error) {
	if err := db.Postgres.AutoMigrate(&models.Notification{}); err != nil {
		return nil, err
	}

	handlers.SetDevMode(cfg.IsDevelopment())

	mongoDB := db.Mongo.Database("mingle")
	userRepo := repositories.NewMongoUserRepository(mongoDB)
	requestRepo := repositories.NewMongoFollowRequestRepository(mongoDB)
	postRepo := repositories.NewMongoPostRepository(mongoDB)
	storyRepo := repositories.NewMongoStoryRepository(mongoDB)
	messageRepo := repositories.NewMongoMessageRepository(mongoDB)
	notificationRepo := repositories.NewPostgresNotificationRepository(db.Postgres)

	clk := clock.System()
	notifier := services.NewNotifier(notificationRepo, clk, logger)

	engines := &Engines{
		Accounts:  services.NewAccountService(userRepo, requestRepo, hash.NewBcrypt()),
		Social:    services.NewSocialService(userRepo, requestRepo, notifier, clk),
		Content:   services.NewContentService(userRepo, postRepo, notifier, store, clk, logger),
		Stories:   services.NewStoryService(userRepo, storyRepo, clk, logger),
		Messaging: services.NewMessageService(userRepo, messageRepo, notifier, clk),
		Notifier:  notifier,
	}

	// Liveness, metrics and static media sit outside the API group.
	e.GET("/health", handlers.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.Static("/uploads", store.Dir())

	api := e.Group("/api/v1")

	handlers.NewAuthHandler(engines.Accounts, store).RegisterAuthRoutes(api)
	handlers.NewUserHandler(engines.Accounts, store).RegisterUserRoutes(api)
	handlers.NewFollowHandler(engines.Social).RegisterFollowRoutes(api)
	handlers.NewPostHandler(engines.Content, store).RegisterPostRoutes(api)
	handlers.NewStoryHandler(engines.Stories, store).RegisterStoryRoutes(api)
	handlers.NewMessageHandler(engines.Messaging).RegisterMessageRoutes(api)
	handlers.NewNotificationHandler(engines.Notifier).RegisterNotificationRoutes(api)

	logger.Info("all routes configured")
	return engines, nil
}
