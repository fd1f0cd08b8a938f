// backend-go/cmd/seed/main.go
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/sopcenter/backend-go/internal/dataset"
)

type ctxKey string

const dbKey ctxKey = "db"

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func newDatasetDirFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "dataset-dir",
		Usage:   "Directory containing the dataset CSV files",
		Value:   "./data/default",
		EnvVars: []string{"DATASET_DIR"},
	}
}

func newS3Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "s3-endpoint", EnvVars: []string{"S3_ENDPOINT"}, Required: true},
		&cli.StringFlag{Name: "s3-access-key", EnvVars: []string{"S3_ACCESS_KEY"}, Required: true},
		&cli.StringFlag{Name: "s3-secret-key", EnvVars: []string{"S3_SECRET_KEY"}, Required: true},
		&cli.StringFlag{Name: "s3-bucket", EnvVars: []string{"S3_BUCKET"}, Required: true},
		&cli.StringFlag{Name: "s3-region", EnvVars: []string{"S3_REGION"}},
		&cli.BoolFlag{Name: "s3-use-ssl", EnvVars: []string{"S3_USE_SSL"}, Value: true},
		&cli.StringFlag{Name: "prefix", Usage: "Object key prefix for the dataset", Value: "datasets/default"},
	}
}

func initDB(c *cli.Context) error {
	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	c.Context = context.WithValue(c.Context, dbKey, db)
	return nil
}

func closeDB(c *cli.Context) error {
	if db, ok := c.Context.Value(dbKey).(*sql.DB); ok && db != nil {
		return db.Close()
	}
	return nil
}

func dbFromContext(ctx context.Context) (*sql.DB, error) {
	db, ok := ctx.Value(dbKey).(*sql.DB)
	if !ok || db == nil {
		return nil, fmt.Errorf("no database connection in context")
	}
	return db, nil
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Manage the reference datasets for the S&OP simulator",
		Commands: []*cli.Command{
			{
				Name:  "master",
				Usage: "Seed the promotions, stores, demand, inventory and products tables from a dataset directory",
				Flags: []cli.Flag{
					newDBURLFlag(),
					newDatasetDirFlag(),
				},
				Before: initDB,
				After:  closeDB,
				Action: runMasterSeeder,
			},
			{
				Name:   "download",
				Usage:  "Download a dataset from S3-compatible object storage",
				Flags:  append(newS3Flags(), newDatasetDirFlag()),
				Action: runDownloader,
			},
			{
				Name:   "upload",
				Usage:  "Upload a local dataset to S3-compatible object storage",
				Flags:  append(newS3Flags(), newDatasetDirFlag()),
				Action: runUploader,
			},
			{
				Name:  "scenario",
				Usage: "Apply demo scenarios to a dataset",
				Subcommands: []*cli.Command{
					{
						Name:  "stockout",
						Usage: "Lower on-hand inventory for the given SKUs to force stockout classifications",
						Flags: []cli.Flag{
							newDatasetDirFlag(),
							&cli.StringSliceFlag{
								Name:     "sku",
								Usage:    "SKU to reduce inventory for (repeatable)",
								Required: true,
							},
							&cli.Float64Flag{
								Name:  "factor",
								Usage: "Multiplier applied to current inventory",
								Value: 0.1,
							},
						},
						Action: runStockoutScenario,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runMasterSeeder(c *cli.Context) error {
	db, err := dbFromContext(c.Context)
	if err != nil {
		return err
	}

	dir := c.String("dataset-dir")
	loader := dataset.NewLoader(dir)
	log.Printf("seeding from %s", dir)

	if err := createSchema(c.Context, db); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if err := seedPromotions(c.Context, db, loader); err != nil {
		return err
	}
	if err := seedStores(c.Context, db, loader); err != nil {
		return err
	}
	if err := seedDemand(c.Context, db, loader); err != nil {
		return err
	}
	if err := seedInventory(c.Context, db, loader); err != nil {
		return err
	}
	if err := seedProducts(c.Context, db, loader); err != nil {
		return err
	}

	log.Printf("seeding completed")
	return nil
}

func runDownloader(c *cli.Context) error {
	d, err := newDatasetDownloader(c)
	if err != nil {
		return err
	}

	files, err := d.download(c.Context, c.String("prefix"))
	if err != nil {
		return err
	}

	log.Printf("downloaded %d files to %s", len(files), c.String("dataset-dir"))
	for _, f := range files {
		log.Printf("  %s", filepath.Base(f))
	}
	return nil
}

func runUploader(c *cli.Context) error {
	u, err := newDatasetUploader(c)
	if err != nil {
		return err
	}

	keys, err := u.upload(c.Context, c.String("prefix"))
	if err != nil {
		return err
	}

	log.Printf("uploaded %d files from %s", len(keys), c.String("dataset-dir"))
	for _, key := range keys {
		log.Printf("  %s", key)
	}
	return nil
}
