// Command server boots the vault gRPC service: Mongo metadata store,
// S3-compatible object store, dual-mode authentication, and the
// Project/Dataset/ObjectGroup/Load RPC groups.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/scidatahub/vault/common"
	"github.com/scidatahub/vault/common/mmongo"
	"github.com/scidatahub/vault/common/mopentelemetry"
	"github.com/scidatahub/vault/common/mzap"
	"github.com/scidatahub/vault/internal/adapters/identity"
	"github.com/scidatahub/vault/internal/adapters/objectstore"
	"github.com/scidatahub/vault/internal/config"
	grpcin "github.com/scidatahub/vault/internal/grpc/in"
	"github.com/scidatahub/vault/internal/services"
)

func main() {
	logger := mzap.InitializeLogger()

	tracer, shutdownTelemetry := mopentelemetry.InitializeTelemetry("vault", "dev", os.Getenv("ENV_NAME"))
	defer shutdownTelemetry()

	cfg := config.Load()

	ctx := context.Background()

	conn := &mmongo.MongoConnection{
		ConnectionStringSource: cfg.MongoConnectionString(),
		Database:               cfg.MongoDatabase,
	}

	if err := conn.Connect(ctx); err != nil {
		logger.Errorf("failed to connect to mongodb: %v", err)
		os.Exit(1)
	}

	objects, err := objectstore.NewAdapter(ctx, cfg.ObjectStoreConfig(), logger)
	if err != nil {
		logger.Errorf("failed to initialize object store adapter: %v", err)
		os.Exit(1)
	}

	handlers := services.NewHandlers(conn, objects, logger)

	authenticator := identity.NewAuthenticator(cfg.AuthMode(), cfg.OAuth2UserInfoURL, handlers.LookupAPIToken)

	router := grpcin.NewRouterGRPC(logger, tracer, authenticator, handlers)

	grpcServer, err := grpcin.NewServerGRPC(cfg.ServerAddress, router, logger)
	if err != nil {
		logger.Errorf("failed to bind grpc server: %v", err)
		os.Exit(1)
	}

	fmt.Println("vault server starting on", cfg.ServerAddress)

	common.NewLauncher(
		common.WithLogger(logger),
		common.RunApp("grpc", grpcServer),
	).Run()
}
