package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/kozaktomas/namevibe/internal/config"
	"github.com/kozaktomas/namevibe/internal/constants"
	"github.com/kozaktomas/namevibe/internal/database"
	"github.com/kozaktomas/namevibe/internal/database/postgres"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed <file.yaml>",
	Short: "Load names and companions into PostgreSQL",
	Long: `Load names and companions from a YAML file into PostgreSQL.
Existing records are updated in place: names are keyed by identifier,
companions by identifier and name. Migrations are applied first.

Examples:
  # Load the dataset
  namevibe seed names.yaml

  # Validate the file without touching the database
  namevibe seed --dry-run names.yaml

  # Output as JSON
  namevibe seed --json names.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().Bool("dry-run", false, "Validate the file without writing")
	seedCmd.Flags().Bool("json", false, "Output as JSON")
}

// SeedResult is the JSON summary printed by the seed command.
type SeedResult struct {
	Success    bool     `json:"success"`
	File       string   `json:"file"`
	Names      int      `json:"names"`
	Companions int      `json:"companions"`
	Migrations []string `json:"migrations,omitempty"`
	DryRun     bool     `json:"dry_run"`
}

func runSeed(cmd *cobra.Command, args []string) error {
	dryRun := mustGetBool(cmd, "dry-run")
	jsonOutput := mustGetBool(cmd, "json")
	path := args[0]

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading seed file: %w", err)
	}
	file, err := database.ParseSeed(data)
	if err != nil {
		return err
	}

	result := SeedResult{
		Success:    true,
		File:       path,
		Names:      len(file.Names),
		Companions: len(file.Companions),
		DryRun:     dryRun,
	}

	if !dryRun {
		applied, err := seedDatabase(cmd.Context(), file, jsonOutput)
		if err != nil {
			return err
		}
		result.Migrations = applied
	}

	if jsonOutput {
		return outputJSON(result)
	}
	if dryRun {
		fmt.Printf("%s is valid: %d names, %d companions (dry run, nothing written)\n", path, result.Names, result.Companions)
		return nil
	}
	for _, name := range result.Migrations {
		fmt.Printf("Applied migration %s\n", name)
	}
	fmt.Printf("Seeded %d names and %d companions from %s\n", result.Names, result.Companions, path)
	return nil
}

func seedDatabase(ctx context.Context, file *database.SeedFile, jsonOutput bool) ([]string, error) {
	cfg := config.Load()
	if cfg.Database.URL == "" {
		return nil, errors.New("DATABASE_URL environment variable is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	pool, applied, err := postgres.Open(ctx, &cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize PostgreSQL: %w", err)
	}
	defer pool.Close()

	bar := newSeedProgressBar(file.Len(), jsonOutput)
	var tick func()
	if bar != nil {
		tick = func() { _ = bar.Add(1) }
	}

	if err := file.Apply(ctx, postgres.NewDatasetRepository(pool), tick); err != nil {
		return nil, fmt.Errorf("seeding dataset: %w", err)
	}
	if bar != nil {
		_ = bar.Finish()
		fmt.Println()
	}
	return applied, nil
}

// newSeedProgressBar returns nil for small files and JSON output.
func newSeedProgressBar(count int, jsonOutput bool) *progressbar.ProgressBar {
	if jsonOutput || count < constants.SeedProgressThreshold {
		return nil
	}
	return progressbar.NewOptions(count,
		progressbar.OptionSetDescription("Seeding"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("records"),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionFullWidth(),
	)
}
