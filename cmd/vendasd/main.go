package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/CharlissonFagundes/app-gereciamento-estoque/config"
	"github.com/CharlissonFagundes/app-gereciamento-estoque/internal/adminapi"
	"github.com/CharlissonFagundes/app-gereciamento-estoque/internal/app"
	"github.com/CharlissonFagundes/app-gereciamento-estoque/internal/webserver"
)

var (
	conffile = flag.String("conf", "/etc/vendasd.yml", "config file")
	initdb   = flag.Bool("initdb", false, "drop and recreate the database schema, then exit")
	showVer  = flag.Bool("v", false, "print version and exit")
)

var version = "dev"

func main() {
	flag.Parse()

	if *showVer {
		fmt.Println("vendasd", version)
		return
	}

	cfg := config.LoadConfig(*conffile)

	application := app.NewApplication(cfg)
	if err := application.Init(cfg); err != nil {
		fmt.Fprintln(os.Stderr, "init failed:", err)
		os.Exit(1)
	}
	defer application.Release()

	if *initdb {
		application.InitDb()
		zap.L().Info("database schema recreated")
		return
	}

	ws := webserver.Init(cfg, application.DB())
	adminapi.RegisterRoutes()

	errchan := make(chan error, 1)
	go func() {
		errchan <- ws.Start()
	}()

	sigchan := make(chan os.Signal, 1)
	signal.Notify(sigchan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errchan:
		zap.L().Error("web server stopped", zap.Error(err))
	case sig := <-sigchan:
		zap.L().Info("shutting down", zap.String("signal", sig.String()))
	}
}
