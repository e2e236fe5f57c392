// scheduler-cli — инструмент командной строки для управления задачами и
// фоновым опросом через HTTP API планировщика.
//
// Использование:
//
//	scheduler-cli [--api-url URL] [--json] <command> <subcommand> [flags]
//
// Команды:
//
//	task       Управление задачами
//	scheduler  Управление фоновым опросом
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shaiso/tasksched/internal/cliclient"
)

// version задаётся через ldflags при сборке.
var version = "dev"

func main() {
	var apiURL string
	var jsonOutput bool

	rootCmd := &cobra.Command{
		Use:           "scheduler-cli",
		Short:         "Client for the persistent task scheduler HTTP API",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "http://localhost:8080", "API server URL")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	clientFn := func() *cliclient.Client { return cliclient.NewClient(apiURL) }
	outputFn := func() *cliclient.Output { return cliclient.NewOutput(jsonOutput) }

	rootCmd.AddCommand(
		cliclient.NewTaskCmd(clientFn, outputFn),
		cliclient.NewSchedulerCmd(clientFn, outputFn),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
