package mcpconsole

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nsqlite/nsqlite-mcp/internal/gateway"
	"github.com/nsqlite/nsqlite-mcp/internal/log"
	"github.com/nsqlite/nsqlite-mcp/internal/mcpconsole/config"
	"github.com/nsqlite/nsqlite-mcp/internal/mcpconsole/repl"
	"github.com/nsqlite/nsqlite-mcp/internal/stats"
	"github.com/nsqlite/nsqlite-mcp/internal/version"
)

// Run runs the interactive console.
func Run(ctx context.Context) error {
	conf := config.MustParse(os.Args)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Println(version.ConsoleVersion())

	driver, err := gateway.ParseDriver(conf.Driver)
	if err != nil {
		return err
	}

	gw, err := gateway.New(gateway.Config{
		Logger:         log.NewLogger(os.Stderr, "error"),
		DBPath:         conf.DBPath,
		Driver:         driver,
		KeepConnection: true,
		BusyTimeout:    conf.BusyTimeout,
	})
	if err != nil {
		return err
	}
	defer gw.Close()

	toolStats := stats.NewToolStats()
	defer toolStats.Close()

	rp := repl.NewRepl(ctx, stop, gw, toolStats)
	defer rp.Shutdown()
	go func() {
		if err := rp.Start(); err != nil {
			fmt.Println(err)
			stop()
		}
	}()

	<-ctx.Done()
	fmt.Printf("\nGoodbye!\n\n")
	return nil
}
