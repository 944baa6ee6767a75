package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"career-backend/internal/bootstrap"
	"career-backend/internal/shared/config"
	"career-backend/internal/shared/storage/db"
	"career-backend/internal/users"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "advisor",
		Short:         "Career recommendation tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRecommendCmd(), newMigrateCmd())
	return root
}

type recommendOptions struct {
	name    string
	email   string
	skills  []string
	hobbies []string
	goal    string
	dryRun  bool
}

func newRecommendCmd() *cobra.Command {
	var opts recommendOptions
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Generate a recommendation for a profile and print it as JSON",
		Long: "Generate a recommendation through the configured provider chain. " +
			"Unless --dry-run is set, the profile is resolved and the recommendation appended to its history.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRecommend(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.name, "name", "", "Profile name")
	cmd.Flags().StringVar(&opts.email, "email", "", "Profile email (required unless --dry-run)")
	cmd.Flags().StringSliceVar(&opts.skills, "skills", nil, "Comma separated skills")
	cmd.Flags().StringSliceVar(&opts.hobbies, "hobbies", nil, "Comma separated hobbies")
	cmd.Flags().StringVar(&opts.goal, "goal", "", "Career goal")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Print the recommendation without storing it")
	_ = cmd.MarkFlagRequired("goal")
	return cmd
}

func runRecommend(cmd *cobra.Command, opts recommendOptions) error {
	if strings.TrimSpace(opts.goal) == "" {
		return fmt.Errorf("--goal must not be empty")
	}
	if !opts.dryRun && strings.TrimSpace(opts.email) == "" {
		return fmt.Errorf("--email is required unless --dry-run is set")
	}

	cfg := config.Load()
	app, err := bootstrap.BuildWithOptions(cfg, db.OptionsFromEnv(db.DefaultMigrateOptions()))
	if err != nil {
		return err
	}
	defer app.Close()

	profile := users.Profile{
		Name:       strings.TrimSpace(opts.name),
		Email:      users.NormalizeEmail(opts.email),
		Skills:     trimAll(opts.skills),
		Hobbies:    trimAll(opts.hobbies),
		CareerGoal: strings.TrimSpace(opts.goal),
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var out any
	if opts.dryRun {
		res, err := app.Chain.Generate(ctx, profile.Input())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "source: %s\n", res.Source)
		out = res.Recommendation
	} else {
		rec, err := app.RecommendService.Recommend(ctx, profile)
		if err != nil {
			return fmt.Errorf("recommend: %w", err)
		}
		out = rec
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply embedded database migrations to DATABASE_URL",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultMigrateOptions()))
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			defer sqlDB.Close()
			if err := db.RunMigrations(ctx, sqlDB); err != nil {
				return fmt.Errorf("run migrations: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}

func trimAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
