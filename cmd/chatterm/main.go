package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/fx"
	"gopkg.in/yaml.v3"

	"github.com/chatterm/chatterm/internal/auth"
	"github.com/chatterm/chatterm/internal/chat"
	"github.com/chatterm/chatterm/internal/config"
	"github.com/chatterm/chatterm/internal/logger"
	"github.com/chatterm/chatterm/internal/requester"
	"github.com/chatterm/chatterm/internal/session"
	"github.com/chatterm/chatterm/internal/tui"
)

func main() {
	Execute()
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "chatterm",
	Short: "A terminal client for the chat service",
	Long: `chatterm is a terminal client for the chat service.
It signs you in, keeps your session across restarts and lets you chat
from the comfort of your terminal.`,
	Run: runClient,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage client configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config.yaml",
	RunE:  runConfigInit,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	// Place version check in PreRun to ensure flags are parsed first
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		versionFlag, _ := cmd.Flags().GetBool("version")
		if versionFlag {
			pterm.Info.Println(config.GetVersionInfo())
			os.Exit(0)
		}
	}

	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func init() {
	config.InitFlags()
	rootCmd.Flags().AddFlagSet(pflag.CommandLine)
	rootCmd.PersistentFlags().BoolP("version", "v", false, "Show version information")

	configInitCmd.Flags().String("output", "config.yaml", "Where to write the starter config")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

// runClient wires the client together and hands the terminal to the TUI
func runClient(cmd *cobra.Command, args []string) {
	defer func() {
		if r := recover(); r != nil {
			pterm.Error.Printf("\nCaught panic: %v\n", r)
			pterm.Error.Printf("%s\n", debug.Stack())
			os.Exit(2)
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		pterm.Error.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.InitLogger(&cfg.Logging); err != nil {
		pterm.Error.Printf("Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	var runner *tui.Runner
	app := fx.New(
		fx.NopLogger,
		fx.Supply(cfg),
		session.Module,
		requester.Module,
		auth.Module,
		chat.Module,
		tui.Module,
		fx.Populate(&runner),
	)
	if err := app.Err(); err != nil {
		pterm.Error.Printf("Error building application: %v\n", err)
		os.Exit(1)
	}

	startCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		pterm.Error.Printf("Error starting application: %v\n", err)
		os.Exit(1)
	}

	runErr := runner.Run()

	stopCtx, cancelStop := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelStop()
	if err := app.Stop(stopCtx); err != nil {
		pterm.Warning.Printf("Error during shutdown: %v\n", err)
	}

	if runErr != nil {
		pterm.Error.Printf("Error running client: %v\n", runErr)
		os.Exit(1)
	}
}

// runConfigInit writes a starter configuration file
func runConfigInit(cmd *cobra.Command, args []string) error {
	out, _ := cmd.Flags().GetString("output")
	if _, err := os.Stat(out); err == nil {
		return fmt.Errorf("%s already exists, refusing to overwrite", out)
	}

	defaults := config.Default()
	data, err := yaml.Marshal(map[string]interface{}{
		"server": map[string]interface{}{
			"base_url": defaults.Server.BaseURL,
			"timeout":  defaults.Server.Timeout,
		},
		"logging": map[string]interface{}{
			"level":           defaults.Logging.Level,
			"format":          defaults.Logging.Format,
			"output_path":     defaults.Logging.OutputPath,
			"append_to_file":  defaults.Logging.AppendToFile,
			"disable_console": defaults.Logging.DisableConsole,
		},
		"storage": map[string]interface{}{
			"ephemeral": defaults.Storage.Ephemeral,
		},
	})
	if err != nil {
		return fmt.Errorf("marshalling defaults: %w", err)
	}

	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	pterm.Info.Printfln("Wrote starter configuration to %s", out)
	return nil
}
