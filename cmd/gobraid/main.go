package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/plan-systems/klog"
)

// gLogFlags holds klog's flags so verbosity can be set once the config is known.
var gLogFlags = flag.NewFlagSet("", flag.ContinueOnError)

func main() {
	klog.InitFlags(gLogFlags)
	gLogFlags.Set("logtostderr", "true")
	gLogFlags.Set("v", "0")
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)
	cancel()
	klog.Flush()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
