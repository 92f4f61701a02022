package main

import (
	"context"
	"time"

	"github.com/secureshare/secureshare/config"
	"github.com/secureshare/secureshare/models"
	"github.com/secureshare/secureshare/routes"
	"github.com/secureshare/secureshare/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}
	defer func() { _ = utils.Logger.Sync() }()

	db := config.InitDatabase()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = config.CloseDatabase(ctx)
	}()

	// Out-of-band bootstrap: the make-ops-user endpoint requires an existing
	// ops caller, so the first elevated account comes from configuration.
	if cfg.BootstrapOpsEmail != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if _, err := models.NewUserModel(db).MakeOps(ctx, cfg.BootstrapOpsEmail); err != nil {
			utils.Sugar.Warnf("bootstrap ops elevation skipped for %s: %v", cfg.BootstrapOpsEmail, err)
		} else {
			utils.Sugar.Infof("bootstrapped ops user %s", cfg.BootstrapOpsEmail)
		}
		cancel()
	}

	r := routes.SetupRouter(db)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
