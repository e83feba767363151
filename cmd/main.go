package main

import (
	"api"
	"api/internal/api/handler/endpoints"
	"api/internal/api/models"
	"api/internal/api/service"
	"api/internal/realtime"
	"api/pkg"
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
)

func main() {
	api.InitConfig(".env")
	gin.SetMode(gin.ReleaseMode)

	if api.GetConfig().Mode == "dev" {
		if err := api.DB.AutoMigrate(
			&models.Host{},
			&models.OAS{},
			&models.Endpoint{},
			&models.Node{},
			&models.Edge{},
			&models.Builder{},
			&models.BuilderTemplate{},
			&models.EventBuilder{},
			&models.IntegrationBuilder{},
			&models.EventStruc{},
			&models.SeraEvent{},
			&models.Settings{},
		); err != nil {
			api.Logger.Fatal().Err(err).Msg("Failed to migrate database")
		}
		api.Logger.Info().Msg("Database migrated successfully")
		gin.SetMode(gin.DebugMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	router, err := graceful.Default(graceful.WithAddr(api.GetConfig().ApiPort))
	if err != nil {
		panic(err)
	}
	defer stop()
	defer router.Close()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "x-sera-builder"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	publisher, err := realtime.NewNATSPublisher(api.GetConfig().NatsURL)
	if err != nil {
		api.Logger.Fatal().Err(err).Msg("Failed to connect to NATS")
	}
	defer publisher.Close()

	mutationService := service.NewMutationService(publisher, pkg.NewSequencerClient())

	initAPI(router, mutationService)

	api.Logger.Debug().Msgf("Starting CORE API on port %s", api.GetConfig().ApiPort)
	if err = router.RunWithContext(ctx); err != nil && !errors.Is(err, context.Canceled) {
		api.Logger.Fatal().Msg(err.Error())
		panic(err)
	}

}

func initAPI(router *graceful.Graceful, mutationService *service.MutationService) {
	endpoints.BuilderHandler(router, mutationService)
	endpoints.HostHandler(router)
	endpoints.EndpointHandler(router)
	endpoints.PlaybookHandler(router)
	endpoints.IntegrationHandler(router)
}
