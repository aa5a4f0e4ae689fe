package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/kozaktomas/namevibe/internal/ai"
	"github.com/kozaktomas/namevibe/internal/config"
	"github.com/kozaktomas/namevibe/internal/constants"
	"github.com/kozaktomas/namevibe/internal/vibe"
	"github.com/spf13/cobra"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <image>",
	Short: "Run the vision provider on a local image",
	Long: `Send a local image to the configured vision provider and print the
detected faces, their expression likelihoods and the vibe each one maps to.
Nothing is recorded and no admission check applies.

Examples:
  namevibe classify portrait.jpg
  VISION_PROVIDER=openai namevibe classify --json portrait.png`,
	Args: cobra.ExactArgs(1),
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)

	classifyCmd.Flags().Bool("json", false, "Output as JSON")
}

// ClassifyResult is the JSON output of the classify command.
type ClassifyResult struct {
	Provider   string        `json:"provider"`
	MIMEType   string        `json:"mime_type"`
	FaceCount  int           `json:"face_count"`
	Faces      []FaceSummary `json:"faces"`
	DurationMs int64         `json:"duration_ms"`
}

// FaceSummary is one detected face and its derived vibe.
type FaceSummary struct {
	ai.FaceExpression
	Vibe vibe.Category `json:"vibe"`
}

func runClassify(cmd *cobra.Command, args []string) error {
	jsonOutput := mustGetBool(cmd, "json")

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading image: %w", err)
	}
	if len(data) > constants.MaxUploadSize {
		return fmt.Errorf("image exceeds %d MB", constants.MaxUploadSize>>20)
	}

	cfg := config.Load()
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeouts.Classify)
	defer cancel()

	provider, err := ai.NewFromConfig(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create vision provider: %w", err)
	}

	mimeType := ai.DetectMIMEType(data)
	start := time.Now()
	faces, err := provider.ClassifyFaces(ctx, data, mimeType)
	if err != nil {
		return fmt.Errorf("classifying %s: %w", args[0], err)
	}

	result := ClassifyResult{
		Provider:   provider.Name(),
		MIMEType:   mimeType,
		FaceCount:  len(faces),
		Faces:      make([]FaceSummary, 0, len(faces)),
		DurationMs: time.Since(start).Milliseconds(),
	}
	for _, f := range faces {
		result.Faces = append(result.Faces, FaceSummary{FaceExpression: f, Vibe: vibe.Classify(f.Signals())})
	}

	if jsonOutput {
		return outputJSON(result)
	}
	printClassifyResult(&result)
	return nil
}

func printClassifyResult(result *ClassifyResult) {
	fmt.Printf("Provider: %s (%s, %dms)\n", result.Provider, result.MIMEType, result.DurationMs)
	fmt.Printf("Faces:    %d\n", result.FaceCount)
	if result.FaceCount == 0 {
		return
	}
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FACE\tJOY\tSORROW\tANGER\tSURPRISE\tVIBE")
	fmt.Fprintln(w, "----\t---\t------\t-----\t--------\t----")
	for i, f := range result.Faces {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", i+1, f.Joy, f.Sorrow, f.Anger, f.Surprise, f.Vibe)
	}
	w.Flush()

	if result.FaceCount != 1 {
		fmt.Printf("\nThe API rejects this photo: it needs exactly one face.\n")
	}
}
