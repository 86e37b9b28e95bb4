//go:build darwin

package main

import "context"

// The tray icon conflicts with the macOS app menu handling in the systray
// library, so macOS runs without one.
func runSystray(ctx context.Context) {}
