package main

import (
	"embed"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"

	"github.com/glotkey/glotkey/pkg/config"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	// Secrets such as GLOTKEY_API_KEY may live in a .env next to the binary.
	_ = godotenv.Load()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(log)

	cfgPath, err := config.DefaultPath()
	if err != nil {
		log.Error("resolve config path", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Warn("load config, falling back to defaults", "path", cfgPath, "error", err)
		cfg = config.Default()
	}

	app := NewApp(cfg, cfgPath, log)

	err = wails.Run(&options.App{
		Title:  "glotkey",
		Width:  480,
		Height: 640,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		OnStartup:  app.startup,
		OnShutdown: app.shutdown,
		Bind: []interface{}{
			app,
		},
	})
	if err != nil {
		log.Error("run app", "error", err)
		os.Exit(1)
	}
}
