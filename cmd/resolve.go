package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/kozaktomas/namevibe/internal/config"
	"github.com/kozaktomas/namevibe/internal/database"
	"github.com/kozaktomas/namevibe/internal/database/mariadb"
	"github.com/kozaktomas/namevibe/internal/database/postgres"
	"github.com/kozaktomas/namevibe/internal/recommend"
	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <name-id>",
	Short: "Print the shared result for a name ID",
	Long: `Resolve a shared result the same way GET /api/v1/result/{nameId} does:
the name record plus every companion sharing its base identity.

Examples:
  namevibe resolve 42
  namevibe resolve --json 42`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().Bool("json", false, "Output as JSON")
}

// ResolveResult is the JSON output of the resolve command.
type ResolveResult struct {
	ID         int64              `json:"id"`
	Identifier string             `json:"identifier"`
	Gender     database.Gender    `json:"gender"`
	Unisex     bool               `json:"unisex"`
	Vibes      []string           `json:"vibes"`
	Hangul     string             `json:"hangul"`
	Romanized  string             `json:"romanized"`
	Meaning    string             `json:"meaning"`
	Companions []ResolveCompanion `json:"companions"`
}

type ResolveCompanion struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	ImageURL string `json:"image_url,omitempty"`
}

func runResolve(cmd *cobra.Command, args []string) error {
	jsonOutput := mustGetBool(cmd, "json")

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid name ID %q", args[0])
	}

	cfg := config.Load()
	ctx := context.Background()

	dataset, closeFn, err := openReadOnlyDataset(cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	matcher := recommend.NewMatcher(dataset, nil, nil, recommend.WithTimeouts(0, cfg.Timeouts.Store))
	result, err := matcher.ResolveShared(ctx, id)
	if err != nil {
		return err
	}

	out := ResolveResult{
		ID:         result.Name.ID,
		Identifier: result.Name.Identifier,
		Gender:     result.Name.Gender,
		Unisex:     result.Name.Unisex,
		Vibes:      result.Name.Vibes(),
		Hangul:     result.Name.Hangul,
		Romanized:  result.Name.Romanized,
		Meaning:    result.Name.Meaning,
		Companions: make([]ResolveCompanion, 0, len(result.Companions)),
	}
	for _, c := range result.Companions {
		out.Companions = append(out.Companions, ResolveCompanion{Name: c.Name, Category: c.Category, ImageURL: c.ImageURL})
	}
	if jsonOutput {
		return outputJSON(out)
	}

	fmt.Printf("%s (%s) #%d\n", out.Romanized, out.Hangul, out.ID)
	fmt.Printf("  Identifier: %s\n", out.Identifier)
	fmt.Printf("  Gender:     %s (unisex: %t)\n", out.Gender, out.Unisex)
	fmt.Printf("  Vibes:      %v\n", out.Vibes)
	fmt.Printf("  Meaning:    %s\n", out.Meaning)
	if len(out.Companions) == 0 {
		fmt.Println("  No companions")
		return nil
	}
	fmt.Printf("  Companions (%d):\n", len(out.Companions))
	for _, c := range out.Companions {
		fmt.Printf("    - %s, %s\n", c.Name, c.Category)
	}
	return nil
}

// openReadOnlyDataset connects to the dataset without running migrations.
func openReadOnlyDataset(cfg *config.Config) (database.DatasetReader, func(), error) {
	if cfg.Dataset.MySQLDSN != "" {
		pool, err := mariadb.NewPool(cfg.Dataset.MySQLDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to MariaDB dataset: %w", err)
		}
		return pool, func() { _ = pool.Close() }, nil
	}

	if cfg.Database.URL == "" {
		return nil, nil, errors.New("DATABASE_URL environment variable is required")
	}
	pool, err := postgres.NewPool(&cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize PostgreSQL: %w", err)
	}
	return postgres.NewDatasetRepository(pool), func() { _ = pool.Close() }, nil
}
