package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/learningcommons/coverage/internal/config"
	"github.com/learningcommons/coverage/pkg/catalog"
	"github.com/learningcommons/coverage/pkg/clients/calendarclient"
	"github.com/learningcommons/coverage/pkg/core/schedule"
	"github.com/learningcommons/coverage/pkg/core/services"
	"github.com/learningcommons/coverage/pkg/db"
	"github.com/learningcommons/coverage/pkg/postgres"
	"github.com/learningcommons/coverage/pkg/utils/logging"
)

// App holds the application dependencies
type App struct {
	cfg            *config.Config
	oauthCfg       *config.OAuthClientConfig
	calendarClient *calendarclient.Client
	store          db.SnapshotStore
	logger         *zap.Logger
	ctx            context.Context
}

var (
	env string
	app *App
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "coverage",
		Short: "Learning commons coverage - compute staffed coverage windows per course",
		Long:  `A CLI tool for building weekly course coverage schedules from location staffing calendars.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.logger != nil {
				app.logger.Sync()
			}
		},
	}

	// Add persistent environment flag
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	// Add all commands
	rootCmd.AddCommand(buildScheduleCmd())
	rootCmd.AddCommand(viewCoverageCmd())
	rootCmd.AddCommand(listCoursesCmd())
	rootCmd.AddCommand(listEventsCmd())
	rootCmd.AddCommand(historyCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, calendar client, and database
func initApp() error {
	var err error
	app = &App{
		ctx: context.Background(),
	}

	// Initialize logger
	app.logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.logger.Info("Starting application", zap.String("environment", env))

	// Load configuration
	app.logger.Info("Loading configuration")
	app.cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.logger.Debug("Configuration loaded successfully")

	// Load OAuth client configuration
	app.logger.Info("Loading OAuth client configuration")
	app.oauthCfg, err = config.LoadOAuthClientWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load OAuth client config: %w", err)
	}
	app.logger.Debug("OAuth configuration loaded successfully")

	// Initialize calendar client
	app.logger.Info("Initializing calendar client")
	app.calendarClient, err = calendarclient.NewClient(app.ctx, app.oauthCfg)
	if err != nil {
		return fmt.Errorf("failed to create calendar client: %w", err)
	}
	app.logger.Debug("Calendar client initialized successfully")

	// Initialize snapshot store when persistence is configured
	if app.cfg.DatabaseURL != "" {
		app.logger.Info("Connecting to database")
		database, err := postgres.NewDB(app.ctx, app.cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}

		if err := database.RunMigrations(app.ctx); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		app.store = database
		app.logger.Info("Database initialized successfully")
	} else {
		app.logger.Info("No database configured, snapshots will not be saved")
	}

	return nil
}

// Command definitions

func buildScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buildSchedule",
		Short: "Build the weekly coverage schedule from the staffing calendars",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			week, _ := cmd.Flags().GetString("week")
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			opts := services.BuildOptions{DryRun: dryRun}
			if week != "" {
				weekStart, err := time.Parse("2006-01-02", week)
				if err != nil {
					return fmt.Errorf("week must be YYYY-MM-DD: %w", err)
				}
				opts.WeekStart = &weekStart
			}

			result, err := services.BuildSchedule(app.ctx, app.cfg, app.calendarClient, app.store, app.logger, opts)
			if err != nil {
				return err
			}

			// Display results
			fmt.Printf("\n✓ Coverage schedule built for week of %s\n\n", result.WeekStart.Format("2006-01-02"))
			printSchedule(result.Schedule)

			if len(result.Diagnostics) > 0 {
				fmt.Printf("⚠️  %d tags were dropped:\n", len(result.Diagnostics))
				for _, d := range result.Diagnostics {
					fmt.Printf("  ✗ %q at %s (%s): %s\n",
						d.Tag, d.Location, time.Weekday(d.WeekDay), d.Kind)
				}
				fmt.Println()
			}

			if result.Snapshot != nil {
				fmt.Printf("Snapshot saved: %s\n", result.Snapshot.ID)
			} else if dryRun {
				fmt.Println("Dry run - snapshot not saved.")
			}

			return nil
		},
	}

	cmd.Flags().String("week", "", "Week start date (YYYY-MM-DD, defaults to the current term week)")
	cmd.Flags().Bool("dry-run", false, "Build without saving a snapshot")

	return cmd
}

// printSchedule prints the non-empty cells of a resolved schedule
func printSchedule(s schedule.Schedule) {
	for _, cs := range s {
		printed := false
		for _, ls := range cs.Locations {
			for _, ds := range ls.Days {
				if len(ds.Intervals) == 0 {
					continue
				}
				if !printed {
					fmt.Printf("%s:\n", cs.Course.Abbreviation)
					printed = true
				}
				fmt.Printf("  %-12s %s:", ls.Location, time.Weekday(ds.WeekDay))
				for _, iv := range ds.Intervals {
					fmt.Printf("  %s-%s", iv.Start.Format("15:04"), iv.End.Format("15:04"))
				}
				fmt.Println()
			}
		}
		if printed {
			fmt.Println()
		}
	}
}

func viewCoverageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "viewCoverage <course> <location> <weekday>",
		Short: "Show the coverage windows for one course, location and weekday",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			course := args[0]
			location := args[1]
			weekDay, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("weekday must be a number 0 (Sunday) to 6 (Saturday): %w", err)
			}

			if app.store == nil {
				return fmt.Errorf("viewCoverage requires a configured database")
			}

			snapshot, err := app.store.GetLatestSnapshot(app.ctx)
			if err != nil {
				return fmt.Errorf("failed to load latest snapshot: %w", err)
			}
			if snapshot == nil {
				return fmt.Errorf("no snapshots stored yet - run buildSchedule first")
			}

			windows, err := services.ViewCoverage(snapshot.Schedule, course, location, weekDay)
			if err != nil {
				return err
			}

			fmt.Printf("\n%s at %s on %s (week of %s):\n", course, location, time.Weekday(weekDay), snapshot.WeekStart)
			if len(windows) == 0 {
				fmt.Println("  no coverage")
				return nil
			}
			for _, w := range windows {
				fmt.Printf("  %s - %s\n", w.Start.Format("15:04"), w.End.Format("15:04"))
			}
			fmt.Println()

			return nil
		},
	}
}

func listCoursesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "listCourses",
		Short: "List the course catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			courses, err := catalog.LoadFile(app.cfg.CatalogPath)
			if err != nil {
				return err
			}

			fmt.Printf("\nFound %d courses:\n\n", len(courses))
			for i, c := range courses {
				fmt.Printf("  %3d. %s\n", i+1, c.Abbreviation)
			}
			fmt.Println()

			return nil
		},
	}
}

func listEventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listEvents <location>",
		Short: "List the raw week events for one location's calendar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			locationName := args[0]

			var calendarID string
			for _, l := range app.cfg.Locations {
				if l.Name == locationName {
					calendarID = l.CalendarID
					break
				}
			}
			if calendarID == "" {
				return fmt.Errorf("location %q is not configured", locationName)
			}

			week, _ := cmd.Flags().GetString("week")
			weekStart := time.Now()
			if week != "" {
				var err error
				weekStart, err = time.Parse("2006-01-02", week)
				if err != nil {
					return fmt.Errorf("week must be YYYY-MM-DD: %w", err)
				}
			}

			events, err := app.calendarClient.ListWeekEvents(calendarID, weekStart)
			if err != nil {
				return err
			}

			fmt.Printf("\nFound %d events for %s:\n\n", len(events), locationName)
			for _, e := range events {
				marker := " "
				if e.IsCancelled() {
					marker = "✗"
				}
				fmt.Printf("%s %s  %s - %s  %q\n",
					marker,
					e.Start.Format("Mon"),
					e.Start.Format("15:04"),
					e.End.Format("15:04"),
					e.Summary,
				)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().String("week", "", "Week start date (YYYY-MM-DD, defaults to now)")

	return cmd
}

func historyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List stored schedule snapshots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.store == nil {
				return fmt.Errorf("history requires a configured database")
			}

			snapshots, err := services.ListSnapshots(app.ctx, app.store, app.logger)
			if err != nil {
				return err
			}

			if len(snapshots) == 0 {
				fmt.Println("No snapshots stored yet.")
				return nil
			}

			fmt.Printf("\nFound %d snapshots:\n\n", len(snapshots))
			for _, s := range snapshots {
				fmt.Printf("  %s  week of %s  created %s  (%d dropped tags)\n",
					s.ID, s.WeekStart, s.CreatedAt, len(s.Diagnostics))
			}
			fmt.Println()

			return nil
		},
	}
}
