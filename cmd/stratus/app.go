package main

import (
	"log/slog"
	"os"

	"stratus/internal/config"
	"stratus/internal/provider"
	"stratus/internal/service"
	"stratus/internal/ui/prompt"
	"stratus/pkg/formatter"
)

// appContainer holds all the shared dependencies for the application
// This includes configuration, service clients, formatters, and the logger
type appContainer struct {
	Config           *config.Config
	ConfigManager    *config.ConfigManager
	ProviderFactory  *provider.Factory
	StorageService   *service.StorageService
	StorageFormatter *formatter.StorageFormatter
	Prompter         prompt.Prompter
	Logger           *slog.Logger
}

// Creates and initializes a new application container
func newApp(logger *slog.Logger) (*appContainer, error) {
	cfgManager, err := config.NewConfigManager()
	if err != nil {
		return nil, err
	}

	cfg, err := cfgManager.LoadConfig()
	if err != nil {
		return nil, err
	}

	providerFactory := provider.NewFactory(cfg, logger)
	storageService := service.NewStorageService(providerFactory, logger)
	storageFormatter := formatter.NewStorageFormatter()
	prompter := prompt.NewStandardPrompter(os.Stdin, os.Stdout)

	return &appContainer{
		Config:           cfg,
		ConfigManager:    cfgManager,
		ProviderFactory:  providerFactory,
		StorageService:   storageService,
		StorageFormatter: storageFormatter,
		Prompter:         prompter,
		Logger:           logger,
	}, nil
}
