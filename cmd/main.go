package main

import (
	"os"
	"os/signal"
	"syscall"

	"degenindex/internal/bootstrap"
)

func main() {
	container := bootstrap.NewContainer()
	container.MustInit()

	if err := container.Start(); err != nil {
		container.Log.Fatalf("Failed to start: %v", err)
	}

	// Wait for shutdown signal or fatal component failure
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		container.Log.Infof("Received signal %s, shutting down...", sig)
	case <-container.Context.Done():
		container.Log.Warn("Component failure detected, shutting down...")
	}

	container.Shutdown()
}
