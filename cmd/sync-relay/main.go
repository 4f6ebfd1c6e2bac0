// Command sync-relay rebroadcasts sync channel frames between websocket viewers
//
// Usage:
//
//	sync-relay [-addr 127.0.0.1:8787] [-path /sync]
//
// Viewers join with: zengarden -role ws -addr ws://127.0.0.1:8787/sync
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lixenwraith/zengarden/network/ws"
)

const shutdownGrace = 3 * time.Second

func main() {
	addr := flag.String("addr", "127.0.0.1:8787", "listen address")
	path := flag.String("path", "/sync", "websocket endpoint path")
	maxSize := flag.Int64("max-frame", 0, "largest accepted frame in bytes, 0 for the default")
	flag.Parse()

	logger := log.New(os.Stderr, "[relay] ", log.LstdFlags)
	relay := ws.NewRelay(ws.RelayConfig{Logger: logger, MaxMessageSize: *maxSize})

	srv := &http.Server{
		Addr:              *addr,
		Handler:           newMux(relay, *path),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		relay.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Printf("shutdown: %v", err)
		}
	}()

	logger.Printf("listening on ws://%s%s", *addr, *path)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal(err)
	}
	logger.Printf("stopped after relaying %d frames, %d deliveries dropped", relay.Frames(), relay.Dropped())
}

// newMux routes the websocket endpoint and a plain-text health check
func newMux(relay *ws.Relay, path string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc(path, relay.Handle)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok\n"))
	})
	return mux
}
