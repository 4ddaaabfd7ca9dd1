package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/abdidvp/preflight/internal/adapters/inbound/cli"
	"github.com/abdidvp/preflight/internal/domain"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cli.ExecuteContext(ctx)
	stop()

	var failed *domain.ValidationFailedError
	if err != nil && !errors.As(err, &failed) {
		fmt.Fprintln(os.Stderr, "preflight:", err)
	}
	os.Exit(domain.ExitCodeFor(err))
}
