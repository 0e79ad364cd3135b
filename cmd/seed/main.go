package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"timetrack/internal/config"
	"timetrack/internal/db"
	"timetrack/internal/logger"
	"timetrack/internal/repository"
	"timetrack/internal/service"
)

// seedCategory is one entry of a seed file.
type seedCategory struct {
	Name    string `json:"name"`
	Start   *bool  `json:"start"`
	Code    string `json:"code"`
	Context string `json:"context"`
}

var (
	emailFlag string
	fileFlag  string
	urlFlag   string
	rootCmd   = &cobra.Command{
		Use:           "seed",
		Short:         "Database maintenance and seed data for the time tracking service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func main() {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, gormDB, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			if err := db.Migrate(gormDB, cfg.ResetDB); err != nil {
				return err
			}
			log.Info().Bool("reset", cfg.ResetDB).Msg("Database migrations completed")
			return nil
		},
	}
	rootCmd.AddCommand(migrateCmd)

	categoriesCmd := &cobra.Command{
		Use:   "categories",
		Short: "Create categories for a user from a JSON file or URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			if (fileFlag == "") == (urlFlag == "") {
				return fmt.Errorf("exactly one of --file or --url is required")
			}
			return runSeedCategories(cmd.Context())
		},
	}
	categoriesCmd.Flags().StringVarP(&emailFlag, "email", "e", "", "Email of the user to seed (required)")
	categoriesCmd.Flags().StringVarP(&fileFlag, "file", "f", "", "Path to a JSON array of categories")
	categoriesCmd.Flags().StringVarP(&urlFlag, "url", "u", "", "URL serving a JSON array of categories")
	_ = categoriesCmd.MarkFlagRequired("email")
	rootCmd.AddCommand(categoriesCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		zlog.Fatal().Err(err).Msg("seed failed")
	}
}

func connect(ctx context.Context) (*config.Config, zerolog.Logger, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), nil, err
	}
	log := logger.New("timetrack-seed", cfg.LogLevel)
	gormDB, err := db.Open(ctx, cfg.DBDriver, cfg.DSN(), cfg.DBConnectTimeout, log)
	if err != nil {
		return nil, log, nil, err
	}
	log.Info().Str("driver", cfg.DBDriver).Msg("Connected to database")
	return cfg, log, gormDB, nil
}

func runSeedCategories(ctx context.Context) error {
	cfg, log, gormDB, err := connect(ctx)
	if err != nil {
		return err
	}
	if err := db.Migrate(gormDB, false); err != nil {
		return err
	}

	var items []seedCategory
	if fileFlag != "" {
		items, err = readCategoriesFile(fileFlag)
	} else {
		log.Info().Str("url", urlFlag).Msg("Fetching categories")
		items, err = fetchCategories(ctx, urlFlag)
	}
	if err != nil {
		return err
	}

	user, err := repository.NewUserRepository(gormDB).FindByEmail(ctx, strings.ToLower(strings.TrimSpace(emailFlag)))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("no user with email %s", emailFlag)
	}
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}

	categories := service.NewCategoryService(repository.NewCategoryRepository(gormDB), cfg.DefaultPageSize, log)
	created, skipped := 0, 0
	for _, item := range items {
		if _, err := categories.Create(ctx, user.ID, service.CategoryInput{
			Name:    item.Name,
			Start:   item.Start,
			Code:    item.Code,
			Context: item.Context,
		}); err != nil {
			log.Warn().Err(err).Str("name", item.Name).Msg("Skipping category")
			skipped++
			continue
		}
		created++
	}

	log.Info().Int("created", created).Int("skipped", skipped).Str("user_id", user.ID.String()).Msg("Seed completed")
	return nil
}

func readCategoriesFile(path string) ([]seedCategory, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var items []seedCategory
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return items, nil
}

func fetchCategories(ctx context.Context, url string) ([]seedCategory, error) {
	client := resty.New().
		SetTimeout(30 * time.Second).
		SetRetryCount(3).
		SetHeader("Accept", "application/json")

	var items []seedCategory
	resp, err := client.R().
		SetContext(ctx).
		ForceContentType("application/json").
		SetResult(&items).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch categories: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch categories: unexpected status %s", resp.Status())
	}
	return items, nil
}
