package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MaskiCoding/StreaMaski/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	settingsPath := flag.String("settings", "", "override settings path (optional)")
	theme := flag.String("theme", "", "color theme name (optional)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath:   *configPath,
		SettingsPath: *settingsPath,
		ThemeName:    *theme,
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "streamaski: %v\n", err)
		return 1
	}
	return 0
}
