package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"docpane/internal/api"
	"docpane/internal/app"
	"docpane/internal/config"
	"docpane/internal/ui/styles"
)

func main() {
	// A local .env can carry DOCPANE_* overrides during development.
	_ = godotenv.Load()

	configPath := flag.String("config", config.DefaultPath(), "path to the config file")
	flag.Parse()

	if os.Getenv("DOCPANE_DEBUG") != "" {
		f, err := tea.LogToFile("docpane-debug.log", "docpane")
		if err != nil {
			fmt.Fprintf(os.Stderr, "docpane: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "docpane: %v\n", err)
		os.Exit(1)
	}

	styles.Apply(cfg.Theme)
	client := api.NewClient(cfg.ServiceURL, cfg.Timeout())

	p := tea.NewProgram(
		app.NewModel(client, cfg, *configPath),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "docpane: %v\n", err)
		os.Exit(1)
	}
}
