package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

func main() {
	root, err := NewCompositionRoot()
	if err != nil {
		fmt.Printf("Failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	defer func() {
		if err := root.Cleanup(); err != nil {
			root.Logger.Error("Failed to cleanup resources", zap.Error(err))
		}
	}()

	root.Start()

	socketPath := root.GetSocketPath()
	root.Logger.Info("Starting cache server on Unix socket", zap.String("socket_path", socketPath))
	go func() {
		if err := root.HTTPServer.StartUnixSocket(socketPath); err != nil {
			root.Logger.Error("Server failed to start on Unix socket", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	root.Logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := root.HTTPServer.Stop(ctx); err != nil {
		root.Logger.Error("HTTP server forced to shutdown", zap.Error(err))
	}
	root.Stop(ctx)

	root.Logger.Info("Server exited")
}
