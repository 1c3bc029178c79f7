// Command bank runs the minibank demonstration: two accounts are opened, the first
// user signs in, deposits, withdraws, and the ledger and account summary are printed.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/mmynk/minibank/internal/auth"
	"github.com/mmynk/minibank/internal/bank"
	"github.com/mmynk/minibank/internal/config"
	"github.com/mmynk/minibank/internal/metrics"
	"github.com/mmynk/minibank/internal/storage"
	"github.com/mmynk/minibank/internal/storage/memory"
	"github.com/mmynk/minibank/internal/storage/sqlite"
	"github.com/mmynk/minibank/pkg/logging"
)

func main() {
	// Load .env for local development; a missing file is fine.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Failed to load .env: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.Setup(cfg.Level())

	store, err := openStore(cfg)
	if err != nil {
		logger.Error("Failed to initialize storage", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	logger.Debug("Storage initialized", "driver", cfg.StoreDriver)

	recorder := metrics.New()
	dir := bank.NewDirectory(
		store,
		auth.NewPasswordAuthenticator(store, cfg.BcryptCost),
		auth.NewSessionManager(cfg.SessionSecret, cfg.SessionTTL),
		recorder,
		logger,
	)

	code := run(context.Background(), dir, os.Stdout, os.Stderr)

	logMetrics(logger, recorder)
	if err := store.Close(); err != nil {
		logger.Error("Failed to close storage", "error", err)
	}
	os.Exit(code)
}

func openStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverSQLite:
		if !config.IsMemoryDSN(cfg.SQLiteDSN) {
			return nil, fmt.Errorf("refusing file-backed database %q: accounts must not outlive the run", cfg.SQLiteDSN)
		}
		return sqlite.New(cfg.SQLiteDSN)
	default:
		return memory.New(), nil
	}
}

// run performs the fixed demonstration against dir and returns the process exit code.
func run(ctx context.Context, dir *bank.Directory, stdout, stderr io.Writer) int {
	accounts := []struct {
		username, password, owner string
		balance                   int64
	}{
		{"user1", "password1", "John Doe", 1000},
		{"user2", "password2", "Jane Smith", 2000},
	}
	for _, a := range accounts {
		if err := dir.CreateAccount(ctx, a.username, a.password, a.owner, decimal.NewFromInt(a.balance)); err != nil {
			fmt.Fprintf(stderr, "Setup failed: %v\n", err)
			return 1
		}
	}

	session, err := dir.Authenticate(ctx, "user1", "password1")
	if err != nil {
		fmt.Fprintf(stderr, "Authentication failed: %v\n", err)
		return 1
	}

	if _, err := dir.Deposit(ctx, session.Token, decimal.NewFromInt(500)); err != nil {
		fmt.Fprintf(stderr, "Transaction failed: %v\n", err)
		return 1
	}
	if _, err := dir.Withdraw(ctx, session.Token, decimal.NewFromInt(200)); err != nil {
		fmt.Fprintf(stderr, "Transaction failed: %v\n", err)
		return 1
	}

	history, err := dir.History(ctx, session.Token)
	if err != nil {
		fmt.Fprintf(stderr, "Transaction failed: %v\n", err)
		return 1
	}
	for _, e := range history {
		fmt.Fprintln(stdout, e)
	}

	account, err := dir.CurrentAccount(ctx, session.Token)
	if err != nil {
		fmt.Fprintf(stderr, "Transaction failed: %v\n", err)
		return 1
	}
	fmt.Fprintln(stdout, account)

	return 0
}

// logMetrics writes the operation counters at debug level.
func logMetrics(logger *slog.Logger, recorder *metrics.Recorder) {
	families, err := recorder.Registry().Gather()
	if err != nil {
		logger.Warn("Failed to gather metrics", "error", err)
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			attrs := []any{"metric", mf.GetName(), "value", m.GetCounter().GetValue()}
			for _, lp := range m.GetLabel() {
				attrs = append(attrs, lp.GetName(), lp.GetValue())
			}
			logger.Debug("Metric", attrs...)
		}
	}
}
