package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "namevibe",
	Short: "Recommend a name that fits the vibe of a face photo",
	Long: `namevibe reads the facial expression in a photo with a vision model
(Gemini or OpenAI), derives a vibe and recommends a name carrying that vibe
together with well-known people who share it.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}
