//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"nile/app"
	"nile/hal"
	"nile/viz/program"
)

func main() {
	var cfg hal.HeadlessConfig
	var scale int
	var appCfg app.Config
	flag.BoolVar(&cfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&cfg.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&cfg.Frames, "frames", 0, "Stop after N frames in headless mode (0 = run until interrupted).")
	flag.IntVar(&cfg.Width, "width", 960, "Framebuffer width in pixels.")
	flag.IntVar(&cfg.Height, "height", 320, "Framebuffer height in pixels.")
	flag.IntVar(&scale, "scale", 1, "Window zoom factor.")
	flag.StringVar(&appCfg.Demo, "demo", "plot", "Program to show: "+strings.Join(program.DemoNames(), ", ")+".")
	flag.BoolVar(&appCfg.Editable, "edit", false, "Start with editing enabled (Tab toggles).")
	flag.BoolVar(&appCfg.HighContrast, "high-contrast", false, "Start in high contrast mode (F1 toggles).")
	flag.IntVar(&appCfg.CanvasWidth, "canvas-width", 0, "Width of every view (0 = fit the window).")
	flag.IntVar(&appCfg.CanvasHeight, "canvas-height", 0, "Height of every view (0 = fit the window).")
	flag.IntVar(&appCfg.Columns, "columns", 0, "Show at most N program columns (0 = all).")
	flag.Parse()

	newApp := func(h hal.HAL) func() error {
		return app.New(h, appCfg)
	}

	if cfg.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, newApp, cfg); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := hal.RunWindow(hal.WindowConfig{HostConfig: cfg.HostConfig, Scale: scale}, newApp); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
