package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/abhisek/repaso/internal/app"
	"github.com/abhisek/repaso/internal/config"
	"github.com/abhisek/repaso/internal/history"
	"github.com/abhisek/repaso/internal/logging"
	"github.com/abhisek/repaso/internal/questionbank"
	"github.com/abhisek/repaso/internal/screen"
	"github.com/abhisek/repaso/internal/selector"
	"github.com/abhisek/repaso/internal/store"
)

// deps is everything a command needs once configuration is resolved.
type deps struct {
	cfg     *config.Config
	ctx     context.Context
	log     zerolog.Logger
	bank    *questionbank.Bank
	ledger  *history.Ledger
	closers []io.Closer
}

func (d *deps) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i].Close(); err != nil {
			d.log.Warn().Err(err).Msg("close")
		}
	}
}

// setup loads configuration, opens history storage and loads the
// question bank. Interactive runs log to a file so the TUI keeps the
// terminal; other commands log to stderr.
func setup(cmd *cobra.Command, interactive bool) (*deps, error) {
	dataDir, err := store.DataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	dotenv := ".env"
	if _, err := os.Stat(dotenv); err != nil {
		dotenv = filepath.Join(dataDir, ".env")
	}
	cfg, err := config.Load(dotenv)
	if err != nil {
		return nil, err
	}
	applyFlags(cmd, cfg)
	cfg.WithDataDir(dataDir)

	d := &deps{cfg: cfg}
	ok := false
	defer func() {
		if !ok {
			d.Close()
		}
	}()

	if err := d.openLog(dataDir, interactive); err != nil {
		return nil, err
	}
	d.ctx = logging.IntoContext(cmd.Context(), d.log)

	kv, err := d.openKV()
	if err != nil {
		return nil, err
	}
	d.ledger = history.New(kv, d.log)

	loadCtx, cancel := context.WithTimeout(d.ctx, cfg.Runtime.LoadTimeout)
	defer cancel()
	loader := questionbank.NewLoader(cfg.QuestionsURL, cfg.ModulesURL)
	loader.RequiredModules = cfg.RequiredModules
	d.bank, err = loader.Load(loadCtx)
	if err != nil {
		d.log.Error().Err(err).Str("questions", cfg.QuestionsURL).Str("modules", cfg.ModulesURL).Msg("load question bank")
		return nil, err
	}
	d.log.Info().Int("modules", len(d.bank.Modules())).Msg("question bank loaded")

	ok = true
	return d, nil
}

// applyFlags lets persistent flags override the environment.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DB = p
	}
	if p, _ := cmd.Flags().GetString("questions"); p != "" {
		cfg.QuestionsURL = p
	}
	if p, _ := cmd.Flags().GetString("modules"); p != "" {
		cfg.ModulesURL = p
	}
}

func (d *deps) openLog(dataDir string, interactive bool) error {
	path := d.cfg.Log.File
	if path == "" && interactive {
		path = filepath.Join(dataDir, "repaso.log")
	}
	if path == "" {
		d.log = logging.New(os.Stderr, d.cfg.Log.Level)
		return nil
	}
	if err := store.EnsureDir(path); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	log, closer, err := logging.OpenFile(path, d.cfg.Log.Level)
	if err != nil {
		return err
	}
	d.log = log
	d.closers = append(d.closers, closer)
	return nil
}

// openKV opens the configured history backend.
func (d *deps) openKV() (store.KV, error) {
	switch d.cfg.Store.Backend {
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:        d.cfg.Store.RedisAddr,
			DB:          d.cfg.Store.RedisDB,
			DialTimeout: d.cfg.Runtime.LoadTimeout,
		})
		kv := store.NewRedisKV(client, d.cfg.Store.RedisPrefix)
		d.closers = append(d.closers, kv)

		ctx, cancel := context.WithTimeout(d.ctx, d.cfg.Runtime.LoadTimeout)
		defer cancel()
		if err := kv.Ping(ctx); err != nil {
			return nil, fmt.Errorf("connect to redis at %s: %w", d.cfg.Store.RedisAddr, err)
		}
		d.log.Debug().Str("addr", d.cfg.Store.RedisAddr).Msg("using redis history")
		return kv, nil

	case config.BackendMemory:
		d.log.Warn().Msg("history is kept in memory and will not persist")
		return store.NewMemoryKV(), nil

	default:
		if err := store.EnsureDir(d.cfg.DB); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
		st, err := store.Open(d.cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		d.closers = append(d.closers, st)
		return st.KV(), nil
	}
}

// runApp builds the quiz services and launches the TUI.
func runApp(cmd *cobra.Command) error {
	d, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer d.Close()

	svc := &screen.Services{
		Ctx:    d.ctx,
		Bank:   d.bank,
		Ledger: d.ledger,
		Selector: selector.New(d.bank, d.ledger, nil, selector.Config{
			MaxDrawAttempts: d.cfg.Runtime.MaxDrawAttempts,
		}),
		DefaultCount: d.cfg.Runtime.DefaultCount,
	}
	return app.Run(svc)
}
