package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"chatshop.GO/config"
	entity "chatshop.GO/model/entity/catalog"
	"chatshop.GO/model/repository/catalog"
)

var (
	seedFile    string
	seedBackend string
)

var catalogSeedCmd = &cobra.Command{
	Use:   "catalog:seed",
	Short: "Load products from a JSON file into the SQL or Elasticsearch catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		start := time.Now()
		products, err := catalog.LoadFile(seedFile)
		if err != nil {
			return err
		}
		backend := seedBackend
		if backend == "" {
			backend = config.LoadAppConfig().CatalogBackend
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		if err := seedCatalog(ctx, backend, products); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d products into %s catalog in %s\n",
			len(products), backend, time.Since(start).Round(time.Millisecond))
		return nil
	},
}

func seedCatalog(ctx context.Context, backend string, products []entity.Product) error {
	switch backend {
	case "elastic":
		client, err := config.NewElasticClient()
		if err != nil {
			return errors.Wrap(err, "elasticsearch client")
		}
		repo := catalog.NewElasticRepository(client, config.ElasticIndex())
		if err := repo.EnsureIndex(ctx); err != nil {
			return err
		}
		return repo.Index(ctx, products)
	case "sql":
		db, err := config.NewDB()
		if err != nil {
			return errors.Wrap(err, "connect database")
		}
		repo := catalog.NewSQLRepository(db)
		if config.GetEnv("DB_DRIVER", "mysql") == "sqlite" {
			if err := repo.AutoMigrate(); err != nil {
				return errors.Wrap(err, "migrate sqlite catalog")
			}
		}
		return repo.Upsert(ctx, products)
	default:
		return errors.Errorf("catalog backend %q cannot be seeded", backend)
	}
}

func init() {
	catalogSeedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "products JSON file (required)")
	catalogSeedCmd.MarkFlagRequired("file")
	catalogSeedCmd.Flags().StringVarP(&seedBackend, "backend", "b", "", "sql or elastic (default CATALOG_BACKEND)")
	rootCmd.AddCommand(catalogSeedCmd)
}
