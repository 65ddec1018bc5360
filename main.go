package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	flagServer string
	flagUser   string
	flagLog    string
	flagDemo   bool
)

var rootCmd = &cobra.Command{
	Use:   "notemap [file]",
	Short: "Spatial canvas for your notes and folders",
	Long: `notemap renders a note service's mindmap view in the terminal:
drag cards with the mouse, pan on empty canvas, zoom with the wheel,
and connect cards with 'c'. Without --server it works on a local JSON
file and picks up external edits to it live.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCanvas,
}

func init() {
	rootCmd.Flags().StringVar(&flagServer, "server", "", "note service base URL (overrides config)")
	rootCmd.Flags().StringVar(&flagUser, "user", "", "user id for entity listing")
	rootCmd.Flags().StringVar(&flagLog, "log", "", "log file path")
	rootCmd.Flags().BoolVar(&flagDemo, "demo", false, "seed the map file with demo entities if empty")
}

func runCanvas(cmd *cobra.Command, args []string) error {
	config := loadConfig()
	if flagServer != "" {
		config.ServerURL = flagServer
	}
	if flagUser != "" {
		config.UserID = flagUser
	}
	if flagLog != "" {
		config.LogFile = flagLog
	}

	logger, logFile, err := setupLogger(config.LogFile)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	var (
		gateway Gateway
		updates chan tea.Msg
		stop    func()
	)
	if config.ServerURL != "" {
		gw, err := newHTTPGateway(config.ServerURL, logger)
		if err != nil {
			return err
		}
		gateway = gw
		if updates, stop, err = watchServer(config.ServerURL, logger); err != nil {
			logger.Warn().Err(err).Msg("no live updates; entity stream unavailable")
			updates, stop = nil, nil
		}
	} else {
		path := defaultDataPath(config)
		if len(args) == 1 {
			path = args[0]
		}
		if flagDemo {
			if err := seedDemoFile(path); err != nil {
				return fmt.Errorf("seed demo: %w", err)
			}
		}
		gateway = newFileGateway(path, logger)
		if updates, stop, err = watchFile(path, logger); err != nil {
			logger.Warn().Err(err).Msg("no live updates; file watch unavailable")
			updates, stop = nil, nil
		}
	}
	if stop != nil {
		defer stop()
	}

	p := tea.NewProgram(
		newModel(gateway, updates, config, logger),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
