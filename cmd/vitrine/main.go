package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/talkincode/vitrine/config"
	"github.com/talkincode/vitrine/internal/adminapi"
	"github.com/talkincode/vitrine/internal/app"
	"github.com/talkincode/vitrine/internal/webserver"
	"github.com/talkincode/vitrine/internal/webui"
)

var (
	h        = flag.Bool("h", false, "help usage")
	conffile = flag.String("c", "", "config yaml file")
	initdb   = flag.Bool("initdb", false, "reset the catalog to the seed records")
	restore  = flag.String("restore", "", "replace the catalog with a CSV backup")
	backup   = flag.Bool("backup", false, "write a CSV backup and exit")
	x        = flag.Bool("x", false, "print the effective config")
)

func main() {
	flag.Parse()

	if *h {
		flag.Usage()
		return
	}

	cfg, err := config.LoadConfig(*conffile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *x {
		out, err := cfg.Dump()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Print(string(out))
		return
	}

	os.Exit(run(cfg))
}

func run(cfg *config.AppConfig) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application := app.NewApplication(cfg)
	if err := application.Init(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "init failed:", err)
		application.Release()
		return 1
	}
	defer application.Release()

	var err error
	switch {
	case *initdb:
		err = application.InitDb()
	case *restore != "":
		err = application.RestoreCSV(*restore)
	case *backup:
		var name string
		if name, err = application.BackupNow(); err == nil {
			fmt.Println(name)
		}
	default:
		srv := webserver.NewWebServer(cfg, application.Store())
		webui.Register(srv)
		adminapi.Init(srv)
		err = application.Run(ctx, srv)
	}
	if err != nil {
		zap.S().Error(err)
		return 1
	}
	return 0
}
