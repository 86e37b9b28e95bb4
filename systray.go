//go:build !darwin

package main

import (
	"context"
	_ "embed"

	"github.com/getlantern/systray"
	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

func runSystray(ctx context.Context) {
	go func() {
		systray.Run(func() {
			systray.SetIcon(icon)
			systray.SetTitle("BotMeet")
			systray.SetTooltip("BotMeet Launcher")

			mShow := systray.AddMenuItem("Show", "Show Launcher")
			mHide := systray.AddMenuItem("Hide", "Hide Launcher")
			systray.AddSeparator()
			mQuit := systray.AddMenuItem("Quit", "Quit Launcher")

			go func() {
				for {
					select {
					case <-mShow.ClickedCh:
						wailsRuntime.WindowShow(ctx)
					case <-mHide.ClickedCh:
						wailsRuntime.WindowHide(ctx)
					case <-mQuit.ClickedCh:
						systray.Quit()
						wailsRuntime.Quit(ctx)
					}
				}
			}()
		}, func() {
			// Cleanup
		})
	}()
}
