package main

import (
	"log/slog"
	"net/http"
	"os"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/kashifm/lunchledger/internal/api"
	"github.com/kashifm/lunchledger/internal/audit"
	"github.com/kashifm/lunchledger/internal/config"
	"github.com/kashifm/lunchledger/internal/service"
	"github.com/kashifm/lunchledger/internal/storage/sqlite"
	"github.com/kashifm/lunchledger/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.LogLevel)

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	events := audit.NewWorker(audit.NewSQLSink(store.DB()), cfg.AuditBuffer)
	events.Start()
	defer events.Shutdown()

	a := api.New(
		service.NewLedgerService(store, events),
		service.NewMemberService(store, events),
		service.NewOrderService(store, events),
	)

	// h2c allows HTTP/2 without TLS for clients behind a local proxy.
	handler := h2c.NewHandler(a.Router(), &http2.Server{})

	slog.Info("Server starting", "address", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
