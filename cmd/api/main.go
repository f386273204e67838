package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "medicine-reminder",
	Short: "Medicine reminder API",
	Long: `API de recordatorio de medicinas con schedule diario asistido por IA.

Sin subcomando arranca el servidor (igual que "serve").
La configuración sale de variables de entorno (y .env en desarrollo).`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, tokenCmd)
}

// @title Medicine Reminder API
// @version 1.0
// @description Recordatorio de medicinas para adultos mayores con schedule diario asistido por IA.
// @BasePath /
func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
