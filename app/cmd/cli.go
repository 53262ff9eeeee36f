package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/Rakhulsr/go-ecommerce-cart/app/configs"
	"github.com/Rakhulsr/go-ecommerce-cart/app/db/seeders"
	"github.com/Rakhulsr/go-ecommerce-cart/app/models"
	"github.com/Rakhulsr/go-ecommerce-cart/app/models/migrations"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func bootstrap() (configs.ENV, *zap.Logger, error) {
	env, err := configs.LoadEnv()
	if err != nil {
		return configs.ENV{}, nil, err
	}
	logger, err := configs.NewLogger(env)
	if err != nil {
		return configs.ENV{}, nil, err
	}
	return env, logger, nil
}

func NewApp() *cli.Command {
	return &cli.Command{
		Name:  "cart",
		Usage: "Storefront cart and order pricing service",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Run the cart HTTP API",
				Action: func(ctx context.Context, c *cli.Command) error {
					env, logger, err := bootstrap()
					if err != nil {
						return err
					}
					defer logger.Sync()
					return runServer(ctx, env, logger)
				},
			},
			{
				Name:  "migrate",
				Usage: "Run database migration",
				Action: func(ctx context.Context, c *cli.Command) error {
					env, logger, err := bootstrap()
					if err != nil {
						return err
					}
					defer logger.Sync()
					db, err := configs.OpenConnection(env, logger.Sugar())
					if err != nil {
						return err
					}
					if err := migrations.AutoMigrate(db); err != nil {
						return err
					}
					logger.Info("Migration complete")
					return nil
				},
			},
			{
				Name:  "seed",
				Usage: "Fill the catalog with fake products",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "count", Value: 20, Usage: "number of products"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					env, logger, err := bootstrap()
					if err != nil {
						return err
					}
					defer logger.Sync()
					db, err := configs.OpenConnection(env, logger.Sugar())
					if err != nil {
						return err
					}
					if err := seeders.DBSeed(ctx, db, int(c.Int("count"))); err != nil {
						return err
					}
					logger.Sugar().Infof("Seeded %d products", c.Int("count"))
					return nil
				},
			},
			{
				Name:  "generate-keys",
				Usage: "Generate new session authentication and encryption keys for .env",
				Action: func(ctx context.Context, c *cli.Command) error {
					return configs.GenerateSessionKeys(os.Stdout)
				},
			},
			{
				Name:      "quote",
				Usage:     "Print checkout totals for a JSON cart snapshot",
				ArgsUsage: "<cart.json>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "promo", Usage: "promo code to apply"},
					&cli.StringFlag{Name: "tax-model", Value: string(models.TaxModelGST), Usage: "gst or flat"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					path := c.Args().First()
					if path == "" {
						return fmt.Errorf("quote needs a cart file")
					}
					return quoteCart(os.Stdout, path, c.String("promo"), models.TaxModel(c.String("tax-model")))
				},
			},
		},
	}
}

func RunCli() error {
	return NewApp().Run(context.Background(), os.Args)
}
