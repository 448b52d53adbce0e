package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"listd/internal/model"
	"listd/internal/storage"
	"listd/internal/update"
)

func main() {
	cfg := update.RuntimeConfigFromEnv(update.DefaultRuntimeConfig())

	repo, err := openRepository(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "listd: open storage: %v\n", err)
		os.Exit(1)
	}
	defer repo.Close()

	records, err := repo.Load(context.Background())
	if err != nil {
		// A failed read degrades to an empty list, it never blocks startup.
		records = []model.Record{}
	}

	m := update.NewModelWithRepository(model.NewStore(records), repo, cfg)
	program := tea.NewProgram(m)
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "listd failed: %v\n", err)
		os.Exit(1)
	}
}

func openRepository(cfg update.RuntimeConfig) (storage.Repository, error) {
	path := cfg.DefaultSlotPath()
	if cfg.Backend == update.BackendSQLite {
		return storage.OpenSQLite(path)
	}
	return storage.NewFileRepository(path)
}
