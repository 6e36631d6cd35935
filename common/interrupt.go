package common

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// InterruptContext is canceled on SIGINT, SIGTERM, or SIGQUIT.
func InterruptContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
}
