// Command s3mirror mirrors S3 buckets into local directory trees.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	initSignalHandler(cancel)

	if err := execute(ctx, cfg); err != nil {
		os.Exit(1)
	}
}

// initSignalHandler cancels the root context on interrupt so in-flight
// downloads stop scheduling and report the tally accumulated so far.
func initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigs
		cancelFunc()
	}()
}
