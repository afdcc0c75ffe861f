// Command createadmin creates an operator account for the admin pages, or
// resets the password of an existing one.
package main

import (
	"fmt"
	"log"
	"os"

	"trello/internal/app/admin"
	"trello/internal/config"
	"trello/internal/db"
	"trello/internal/utils"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	logger, err := utils.NewLogger()
	if err != nil {
		log.Fatalf("Failed to initialize zap logger: %v", err)
	}
	defer logger.Sync()

	utils.LoadEnv(logger)

	app := &cli.App{
		Name:  "createadmin",
		Usage: "create or update an operator allowed into /admin/",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "username",
				Aliases:  []string{"u"},
				EnvVars:  []string{"ADMIN_USERNAME"},
				Required: true,
			},
			&cli.StringFlag{
				Name:     "password",
				Aliases:  []string{"p"},
				EnvVars:  []string{"ADMIN_PASSWORD"},
				Required: true,
			},
		},
		Action: func(c *cli.Context) error {
			cfg := config.LoadConfig()

			conn, err := db.Connect(&cfg, logger)
			if err != nil {
				return cli.Exit(fmt.Sprintf("failed to connect to database: %v", err), 1)
			}
			if err := db.Migrate(conn, logger); err != nil {
				return cli.Exit(fmt.Sprintf("failed to migrate database: %v", err), 1)
			}

			service := admin.NewService(admin.NewRepository(conn), logger)
			op, err := service.EnsureOperator(c.Context, c.String("username"), c.String("password"))
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			logger.Info("Operator ready", zap.String("username", op.Username), zap.Uint64("id", op.ID))
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Fatal("createadmin failed", zap.Error(err))
	}
}
