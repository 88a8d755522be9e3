package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"meigen/internal/app"
	"meigen/internal/config"
	"meigen/internal/logging"
	"meigen/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var cfgPath, message string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/meigen/config.yaml if not provided)")
	flag.StringVar(&message, "m", "", "Reply to a single message and exit instead of starting the chat")
	flag.Parse()

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatalf("failed to open log: %v", err)
	}
	defer logger.Close()

	svc, err := app.Build(cfg, logger)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}

	if message != "" {
		fmt.Println(svc.Reply(message))
		return
	}

	// The terminal belongs to the UI from here on.
	if cfg.Logging.Output == "stdout" || cfg.Logging.Output == "stderr" {
		logger.SetOutput(io.Discard)
	}
	if _, err := tea.NewProgram(tui.New(svc), tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
