package main

import (
	"context"
	"embed"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/abiiranathan/recordroom/browser"
	"github.com/abiiranathan/recordroom/cli"
	"github.com/abiiranathan/recordroom/database"
	"github.com/abiiranathan/recordroom/importer"
	"github.com/abiiranathan/recordroom/server"
	"github.com/abiiranathan/recordroom/tui"
)

//go:embed static
var staticFs embed.FS

// Effective configuration. Flags are parsed into it after loading.
var config *cli.Config

func startServer() {
	server.Run(config, staticFs)
}

func browse() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := tui.Run(ctx, browser.NewClient(config.APIURL, nil)); err != nil {
		log.Fatalln(err)
	}
}

func openStore(ctx context.Context) *database.Store {
	store, err := database.Open(ctx, config.Driver, config.DataSource())
	if err != nil {
		log.Fatalln(err)
	}
	return store
}

func initDB() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	store := openStore(ctx)
	defer store.Close()

	if err := store.CreateTables(ctx); err != nil {
		log.Fatalln(err)
	}
	log.Println("tables created")

	if config.SeedDir == "" {
		return
	}
	if _, err := importer.Load(ctx, store, config.SeedDir, config.Workers); err != nil {
		log.Fatalln(err)
	}
}

func ping() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store := openStore(ctx)
	defer store.Close()
	log.Printf("%s database is reachable\n", config.Driver)
}

func main() {
	log.SetPrefix("[recordroom]: ")
	log.SetFlags(log.Lshortfile)

	var err error
	config, err = cli.LoadConfig(os.Getenv("RECORDROOM_CONFIG"))
	if err != nil {
		log.Fatalln(err)
	}

	// Parse the command line arguments
	ctx := cli.DefineFlags(config, cli.Commands{
		RunServer: startServer,
		Browse:    browse,
		InitDB:    initDB,
		Ping:      ping,
	})
	subcmd, err := ctx.Parse(os.Args)
	if err != nil {
		log.Fatalln(err)
	}

	// If the subcommand is nil, print the usage and exit
	if subcmd == nil {
		ctx.PrintUsage(os.Stdout)
		os.Exit(1)
	}

	// Run the subcommand
	subcmd.Handler()
}
