package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"keephy.backend/internal/config"
	"keephy.backend/internal/domain/entities"
	"keephy.backend/internal/infrastructure/datasources/postgres"
	"keephy.backend/internal/infrastructure/models"
	"keephy.backend/internal/infrastructure/repositories"
	"keephy.backend/internal/usecases"
)

var openSeedDB = func(cfg config.DatabaseConfig) (*gorm.DB, io.Closer, error) {
	sqlDB, err := postgres.NewConnection(cfg)
	if err != nil {
		return nil, nil, err
	}
	db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB}), &gorm.Config{})
	if err != nil {
		_ = sqlDB.Close()
		return nil, nil, err
	}
	return db, sqlDB, nil
}

type categorySeeder interface {
	CreateCategories(ctx context.Context, input *entities.CreateCategoriesInput) ([]*entities.Category, error)
}

type seedDeps struct {
	loadEnv  func() error
	loadCfg  func() *config.Config
	prepare  func(cfg *config.Config) (categorySeeder, io.Closer, error)
	readFile func(name string) ([]byte, error)
	out      io.Writer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func defaultSeedDeps() seedDeps {
	return seedDeps{
		loadEnv: func() error { return godotenv.Load() },
		loadCfg: config.Load,
		prepare: func(cfg *config.Config) (categorySeeder, io.Closer, error) {
			db, closer, err := openSeedDB(cfg.Database)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to connect db: %w", err)
			}
			if cfg.Database.AutoMigrate {
				if err := models.AutoMigrate(db); err != nil {
					_ = closer.Close()
					return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
				}
			}
			categoryRepo := repositories.NewCategoryRepository(db)
			return usecases.NewCategoryUsecase(categoryRepo, repositories.NewUnitOfWork(db)), closer, nil
		},
		readFile: os.ReadFile,
		out:      os.Stdout,
	}
}

// parseSeedFile accepts either {"categories": [...]} or a bare array
func parseSeedFile(raw []byte) (*entities.CreateCategoriesInput, error) {
	var input entities.CreateCategoriesInput
	if err := json.Unmarshal(raw, &input); err != nil {
		var list []entities.CategoryInput
		if listErr := json.Unmarshal(raw, &list); listErr != nil {
			return nil, fmt.Errorf("invalid seed file: %w", err)
		}
		input.Categories = list
	}
	if len(input.Categories) == 0 {
		return nil, errors.New("seed file has no categories")
	}
	for i, c := range input.Categories {
		if c.Name == "" {
			return nil, fmt.Errorf("categories[%d]: name is required", i)
		}
		for j, s := range c.Subcategories {
			if s.Name == "" {
				return nil, fmt.Errorf("categories[%d].subcategories[%d]: name is required", i, j)
			}
		}
	}
	return &input, nil
}

func runSeed(args []string, deps seedDeps) error {
	def := defaultSeedDeps()
	if deps.loadEnv == nil {
		deps.loadEnv = def.loadEnv
	}
	if deps.loadCfg == nil {
		deps.loadCfg = def.loadCfg
	}
	if deps.prepare == nil {
		deps.prepare = def.prepare
	}
	if deps.readFile == nil {
		deps.readFile = def.readFile
	}
	if deps.out == nil {
		deps.out = def.out
	}

	fs := flag.NewFlagSet("seed-categories", flag.ContinueOnError)
	fileFlag := fs.String("file", "", "path to a JSON file of categories (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *fileFlag == "" {
		return errors.New("--file is required")
	}

	raw, err := deps.readFile(*fileFlag)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", *fileFlag, err)
	}
	input, err := parseSeedFile(raw)
	if err != nil {
		return err
	}

	if err := deps.loadEnv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := deps.loadCfg()
	seeder, closer, err := deps.prepare(cfg)
	if err != nil {
		return err
	}
	if closer == nil {
		closer = nopCloser{}
	}
	defer closer.Close()

	created, err := seeder.CreateCategories(context.Background(), input)
	if err != nil {
		return fmt.Errorf("failed creating categories: %w", err)
	}

	for _, c := range created {
		_, _ = fmt.Fprintf(deps.out, "category_id=%s name=%s subcategories=%d\n", c.ID, c.Name, len(c.Subcategories))
	}
	_, _ = fmt.Fprintf(deps.out, "Created %d categories\n", len(created))
	return nil
}

func main() {
	if err := runSeed(os.Args[1:], defaultSeedDeps()); err != nil {
		log.Fatal(err)
	}
}
