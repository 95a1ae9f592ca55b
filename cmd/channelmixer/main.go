// Package main is the entry point for the RGB Channel Mixer.
package main

import (
	"os"

	"channel-mixer-go/application"
	"channel-mixer-go/core/eventbus"
	"channel-mixer-go/infrastructure/config"
	"channel-mixer-go/infrastructure/logging"
	"channel-mixer-go/presentation"
	"channel-mixer-go/resources"

	"fyne.io/fyne/v2/app"
)

const appID = "io.github.channelmixer"

func main() {
	// Defaults are embedded; the override file is optional
	cfg, err := config.Load(resources.ConfigFiles, resources.DefaultConfigPath, config.DefaultOverridePath())
	if err != nil {
		os.Stderr.WriteString("Failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Initialize logging (dev: console only, prod: rotating file)
	logger, closeLog, err := logging.Setup(cfg.LogConfig())
	if err != nil {
		// Fallback to stderr if logging setup fails
		os.Stderr.WriteString("Failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer closeLog()

	logger.Info("Starting RGB Channel Mixer", "config_override", config.DefaultOverridePath())

	// Initialize event bus
	eventBus := eventbus.New(100, logger)
	defer eventBus.Close()

	workbench := application.NewWorkbench(&application.WorkbenchConfig{
		EventBus:          eventBus,
		MixerOptions:      cfg.MixerOptions(),
		ExportSizes:       cfg.Export.Sizes,
		DefaultExportSize: cfg.Export.DefaultSize,
		SlotPreviewSize:   cfg.Preview.SlotSize,
		ResultPreviewSize: cfg.Preview.ResultSize,
		Logger:            logger,
	})

	// Initialize UI event bridge
	bridge := presentation.NewUIEventBridge(&presentation.BridgeConfig{
		Workbench: workbench,
		EventBus:  eventBus,
		Logger:    logger,
	})
	defer bridge.Close()

	// Initialize Fyne app
	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.GetAppIcon())

	mainWindow := presentation.NewMainWindow(&presentation.MainWindowConfig{
		App:    fyneApp,
		Bridge: bridge,
		Logger: logger,
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
	})
	defer mainWindow.Cleanup()

	// Show and run
	mainWindow.Show()
	fyneApp.Run()

	logger.Info("Application shutdown complete")
}
