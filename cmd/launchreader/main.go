package main

import (
	"context"
	"fmt"
	"os"

	"github.com/iafilius/LaunchRecordsDashboard/src/logging"
)

func main() {
	defer logging.Sync()
	if err := NewRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
