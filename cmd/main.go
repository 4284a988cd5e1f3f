package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:           "seatsavvy",
	Short:         "Event ticketing demo backend",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if envFile == "" {
			return nil
		}
		if err := godotenv.Load(envFile); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				slog.Warn("env file not found, using process environment", "path", envFile)
				return nil
			}
			return err
		}
		return nil
	},
	// Running the binary without a subcommand starts the server.
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading configuration")
	rootCmd.AddCommand(serveCmd, qrCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("seatsavvy failed", "error", err)
		os.Exit(1)
	}
}
