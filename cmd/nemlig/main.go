package main

import (
	"context"
	"fmt"
	"os"

	"nemlig-cli/cmd/nemlig/commands"
	"nemlig-cli/lib/telemetry"
)

func main() {
	ctx := context.Background()

	telemetry.InitSlog(false)

	// telemetry config is optional for a CLI, spans go nowhere without it
	tel, err := telemetry.SetupFromEnv(ctx, "nemlig-cli")
	if err == nil {
		defer tel.Shutdown(ctx)
	}

	if err := commands.Execute(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		tel.Shutdown(ctx)
		os.Exit(1)
	}
}
