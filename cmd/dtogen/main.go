package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	a := &app{}
	err := newRootCmd(a).ExecuteContext(ctx)
	a.close(context.WithoutCancel(ctx))
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, formatFailure(err))
		os.Exit(1)
	}
}
