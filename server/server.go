package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/abiiranathan/recordroom/cli"
	"github.com/abiiranathan/recordroom/database"
	"github.com/abiiranathan/recordroom/routes"
	"github.com/abiiranathan/recordroom/ui"
)

// New builds the http server for the record browser. The caller owns store.
func New(config *cli.Config, store routes.Querier, staticFS fs.FS) (*http.Server, error) {
	renderer, err := ui.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("unable to parse templates: %w", err)
	}

	// Create a new http server to customize the timeouts.
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Port),
		Handler:           routes.SetupRoutes(os.Stdout, staticFS, renderer, store),
		ReadTimeout:       time.Second * 10,
		WriteTimeout:      time.Second * 10,
		ReadHeaderTimeout: time.Second * 5,
	}, nil
}

func Run(config *cli.Config, staticFS fs.FS) {
	store, err := database.Connect(config.Driver, config.DataSource())
	if err != nil {
		log.Fatalln(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := store.Ping(ctx); err != nil {
		// Requests report the failure until the database comes back.
		log.Printf("warning: %v\n", err)
	}
	cancel()
	defer store.Close()

	server, err := New(config, store, staticFS)
	if err != nil {
		// we cannot proceed without the templates
		log.Fatalln(err)
	}

	go func() {
		log.Printf("Listening on http://0.0.0.0:%d\n", config.Port)

		// Start the server
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server terminated with error: %v\n", err)
		}
	}()

	GracefulShutdown(server)
}

// Gracefully shuts down the server. The default timeout is 10 seconds
// To wait for pending connections.
func GracefulShutdown(server *http.Server, timeout ...time.Duration) {
	var t time.Duration
	if len(timeout) > 0 {
		t = timeout[0]
	} else {
		t = 10 * time.Second
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	log.Println("waiting on os.Interrupt")

	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), t)
	defer cancel()

	log.Println("Shutting down the server")
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalln(err)
	}
	log.Println("shutting down gracefully")
}
