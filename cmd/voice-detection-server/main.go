package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/AbhishekDeveloper2k22/ai-voice-detection/internal/bootstrap"
)

func main() {
	configPath := flag.String("config", "", "path to the yaml config file (default .config.yaml)")
	flag.Parse()

	if err := bootstrap.Run(context.Background(), *configPath); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "voice-detection-server failed: %v\n", err)
		os.Exit(1)
	}
}
