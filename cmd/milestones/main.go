package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/babygenie/service-planner/internal/application"
	"github.com/babygenie/service-planner/internal/config"
	"github.com/babygenie/service-planner/internal/platform/database"
	"github.com/babygenie/service-planner/internal/platform/logger"
	"github.com/babygenie/service-planner/internal/repository"
)

func main() {
	app := &cli.App{
		Name:        "milestones",
		Usage:       "manage the developmental milestone table",
		Description: "Loads the bundled milestone catalogue into postgres and queries it by week.",
		Commands: []*cli.Command{
			{
				Name:  "seed",
				Usage: "replace every stored milestone with the bundled catalogue",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "migrate",
						Usage: "auto-migrate the milestone table before seeding",
					},
				},
				Action: func(c *cli.Context) error {
					return withService(func(svc *application.MilestoneService, db *gorm.DB, log *zap.Logger) error {
						if c.Bool("migrate") {
							if err := db.AutoMigrate(&repository.MilestoneModel{}); err != nil {
								return fmt.Errorf("auto-migrate milestones: %w", err)
							}
						}
						n, err := svc.Seed(c.Context)
						if err != nil {
							return err
						}
						log.Info("milestones seeded", zap.Int("count", n))
						return nil
					})
				},
			},
			{
				Name:  "show",
				Usage: "print the milestones stored for a week of the first year",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:     "week",
						Usage:    "week of life, 1 to 52",
						Required: true,
					},
				},
				Action: func(c *cli.Context) error {
					return withService(func(svc *application.MilestoneService, _ *gorm.DB, _ *zap.Logger) error {
						milestones, err := svc.ForWeek(c.Context, c.Int("week"))
						if err != nil {
							return err
						}
						for _, m := range milestones {
							fmt.Fprintf(c.App.Writer, "[%s] weeks %d-%d: %s\n", m.Domain, m.WeekStart, m.WeekEnd, m.Milestone)
						}
						return nil
					})
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "milestones: %v\n", err)
		os.Exit(1)
	}
}

func withService(fn func(*application.MilestoneService, *gorm.DB, *zap.Logger) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewNamed(cfg.AppEnv, "milestones")
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	db, err := database.Connect(cfg.DBConfig, log)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer func() { _ = sqlDB.Close() }()
	}

	svc := application.NewMilestoneService(repository.NewGormMilestoneRepository(db), log)
	return fn(svc, db, log)
}
