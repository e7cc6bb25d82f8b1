package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/pageza/recipegen/backend/config"
	"github.com/pageza/recipegen/backend/internal/database"
	"github.com/pageza/recipegen/backend/internal/extract"
	"github.com/pageza/recipegen/backend/internal/logger"
	"github.com/pageza/recipegen/backend/internal/service"
	"github.com/pageza/recipegen/backend/internal/types"
)

var errNoPrompts = errors.New("seed: at least one prompt is required")

var defaultSeedPrompts = []string{
	"a traditional Italian pasta dish with a unique twist",
	"a healthy vegan salad with seasonal ingredients",
	"a quick protein breakfast smoothie",
	"a spicy Indian curry",
	"a gluten-free bread using alternative flours",
	"a Mediterranean seafood dinner with fresh herbs",
	"a vegetarian stir-fry with Asian flavors",
	"a budget-friendly weeknight casserole",
}

// newCLIApp creates the CLI application with all commands.
func newCLIApp(in io.Reader, out io.Writer) *cli.App {
	app := &cli.App{
		Name:    "recipectl",
		Usage:   "Operate the recipe generation backend",
		Version: Version,
		Reader:  in,
		Writer:  out,
		Commands: []*cli.Command{
			extractCmd(),
			migrateCmd(),
			seedCmd(),
			tokenCmd(),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

type extractOutput struct {
	Recipe extract.Recipe `json:"recipe"`
	Source extract.Source `json:"source"`
}

// extractCmd runs the extraction pipeline over a file or stdin.
func extractCmd() *cli.Command {
	return &cli.Command{
		Name:      "extract",
		Usage:     "Extract a recipe from raw model output (reads stdin without a file)",
		ArgsUsage: "[file]",
		Action: func(c *cli.Context) error {
			var r io.Reader = c.App.Reader
			if c.NArg() > 0 {
				f, err := os.Open(c.Args().First())
				if err != nil {
					return fmt.Errorf("failed to open input: %w", err)
				}
				defer f.Close()
				r = f
			}

			raw, err := io.ReadAll(r)
			if err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
			draft := extract.Interpret(string(raw))
			return writeJSON(c.App.Writer, extractOutput{Recipe: draft.Finalize(), Source: draft.Source})
		},
	}
}

// migrateCmd applies pending database migrations.
func migrateCmd() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply database migrations",
		Action: func(c *cli.Context) error {
			cfg, log, db, err := openDatabase(c.Context)
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			if err := database.RunMigrations(db, log); err != nil {
				return err
			}
			log.Info("migrations applied", zap.String("driver", cfg.DBDriver))
			return nil
		},
	}
}

// seedCmd generates and stores recipes through the LLM.
func seedCmd() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Generate recipes with the LLM and store them",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "count", Aliases: []string{"n"}, Value: len(defaultSeedPrompts), Usage: "Number of recipes to generate"},
			&cli.IntFlag{Name: "concurrency", Aliases: []string{"c"}, Value: 3, Usage: "Parallel generation calls"},
			&cli.StringSliceFlag{Name: "prompt", Aliases: []string{"p"}, Usage: "Prompt to cycle through (repeatable)"},
		},
		Action: func(c *cli.Context) error {
			cfg, log, db, err := openDatabase(c.Context)
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			llm, err := service.NewLLMService(cfg.LLM, log)
			if err != nil {
				return err
			}
			generator := service.NewGenerationService(llm, nil, service.NewImageService(cfg.ImageCheckTimeout),
				service.NewRecipeService(db), log)

			prompts := c.StringSlice("prompt")
			if len(prompts) == 0 {
				prompts = defaultSeedPrompts
			}
			saved, err := seed(c.Context, generator, prompts, c.Int("count"), c.Int("concurrency"), log)
			fmt.Fprintf(c.App.Writer, "seeded %d of %d recipes\n", saved, c.Int("count"))
			return err
		},
	}
}

// seed runs count generations cycling through prompts. Individual failures
// are logged and skipped; only cancellation stops the run.
func seed(ctx context.Context, generator service.IGenerationService, prompts []string, count, concurrency int, log *zap.Logger) (int64, error) {
	if count > 0 && len(prompts) == 0 {
		return 0, errNoPrompts
	}
	if concurrency < 1 {
		concurrency = 1
	}
	var saved atomic.Int64

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i := 0; i < count; i++ {
		prompt := prompts[i%len(prompts)]
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			result, err := generator.Generate(gCtx, service.GenerateRequest{Prompt: prompt})
			if err != nil {
				log.Warn("seed generation failed", zap.String("prompt", prompt), zap.Error(err))
				return nil
			}
			if result.Saved {
				saved.Add(1)
				log.Info("seeded recipe", zap.String("id", result.Recipe.ID), zap.String("title", result.Recipe.Title))
			}
			return nil
		})
	}
	err := g.Wait()
	return saved.Load(), err
}

// tokenCmd mints a bearer token for local testing.
func tokenCmd() *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "Mint a signed bearer token",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "secret", EnvVars: []string{"JWT_SECRET"}, Required: true, Usage: "HMAC signing secret"},
			&cli.StringFlag{Name: "user", Aliases: []string{"u"}, Usage: "User ID (random when empty)"},
			&cli.StringFlag{Name: "username", Value: "recipectl", Usage: "Username claim"},
			&cli.StringFlag{Name: "role", Value: types.RoleUser, Usage: "Role claim: user|admin"},
			&cli.DurationFlag{Name: "ttl", Value: 24 * time.Hour, Usage: "Token lifetime"},
		},
		Action: func(c *cli.Context) error {
			userID := uuid.New()
			if s := c.String("user"); s != "" {
				id, err := uuid.Parse(s)
				if err != nil {
					return fmt.Errorf("invalid user ID: %w", err)
				}
				userID = id
			}
			role := c.String("role")
			if role != types.RoleUser && role != types.RoleAdmin {
				return fmt.Errorf("invalid role %q", role)
			}

			token, err := service.NewTokenService(c.String("secret")).
				GenerateToken(userID, c.String("username"), role, c.Duration("ttl"))
			if err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, token)
			return nil
		},
	}
}

func openDatabase(ctx context.Context) (*config.Config, *zap.Logger, *gorm.DB, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	log := logger.New(cfg.LogLevel, cfg.Env == config.Production)
	db, err := database.Open(ctx, cfg, log)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, log, db, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
