package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"

	"github.com/umputun/thaimap/app/enum"
	"github.com/umputun/thaimap/app/provinces"
	"github.com/umputun/thaimap/app/server"
	"github.com/umputun/thaimap/app/server/auth"
	"github.com/umputun/thaimap/app/store"
)

type options struct {
	Server struct {
		Address         string        `long:"address" env:"ADDRESS" default:":8080" description:"listen address"`
		BaseURL         string        `long:"base-url" env:"BASE_URL" description:"base URL path for reverse proxy (e.g., /thaimap)"`
		ReadTimeout     time.Duration `long:"read-timeout" env:"READ_TIMEOUT" default:"5s" description:"read header timeout"`
		WriteTimeout    time.Duration `long:"write-timeout" env:"WRITE_TIMEOUT" default:"30s" description:"write timeout"`
		IdleTimeout     time.Duration `long:"idle-timeout" env:"IDLE_TIMEOUT" default:"60s" description:"idle timeout"`
		ShutdownTimeout time.Duration `long:"shutdown-timeout" env:"SHUTDOWN_TIMEOUT" default:"10s" description:"graceful shutdown timeout"`
	} `group:"server" namespace:"server" env-namespace:"SERVER"`

	Auth struct {
		User      string `long:"user" env:"USER" description:"login username"`
		Password  string `long:"password" env:"PASSWORD" description:"login password"`
		File      string `long:"file" env:"FILE" description:"auth config file (yaml, toml, ini or hcl)"`
		HotReload bool   `long:"hot-reload" env:"HOT_RELOAD" description:"reload auth config file on change"`
	} `group:"auth" namespace:"auth" env-namespace:"AUTH"`

	Limits struct {
		BodySize         int64   `long:"body-size" env:"BODY_SIZE" default:"65536" description:"max request body size in bytes"`
		RequestsPerSec   float64 `long:"rps" env:"RPS" default:"100" description:"max requests per second per client"`
		MaxConcurrent    int64   `long:"max-concurrent" env:"MAX_CONCURRENT" default:"1000" description:"max concurrent requests"`
		LoginConcurrency int64   `long:"login-concurrency" env:"LOGIN_CONCURRENCY" default:"5" description:"max concurrent login attempts"`
	} `group:"limits" namespace:"limits" env-namespace:"LIMITS"`

	Audit struct {
		Enabled    bool          `long:"enabled" env:"ENABLED" description:"record login and logout attempts"`
		DB         string        `long:"db" env:"DB" default:"thaimap-audit.db" description:"audit database (sqlite file or postgres:// URL)"`
		Retention  time.Duration `long:"retention" env:"RETENTION" default:"720h" description:"keep audit entries for this long"`
		QueryLimit int           `long:"query-limit" env:"QUERY_LIMIT" default:"1000" description:"max entries per audit query"`
	} `group:"audit" namespace:"audit" env-namespace:"AUDIT"`

	Mode string `long:"mode" env:"MODE" choice:"development" choice:"production" default:"development" description:"deployment mode, production sets Secure cookies"`
	Data string `long:"data" env:"DATA" description:"province GeoJSON file, embedded data used if not set"`
	Dbg  bool   `long:"dbg" env:"DEBUG" description:"debug mode"`
}

var revision = "unknown"

const auditCleanupInterval = time.Hour

func main() {
	fmt.Printf("thaimap %s\n", revision)

	if err := loadEnvFile(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	var opts options
	p := flags.NewParser(&opts, flags.PrintErrors|flags.PassDoubleDash|flags.HelpFlag)
	if _, err := p.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	setupLog(opts.Dbg, opts.Auth.Password)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, opts); err != nil {
		lgr.Printf("[ERROR] %v", err)
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	baseURL, err := normalizeBaseURL(opts.Server.BaseURL)
	if err != nil {
		return err
	}

	mode, err := enum.ParseMode(opts.Mode)
	if err != nil {
		return fmt.Errorf("invalid mode: %w", err)
	}

	authSvc, err := makeAuth(opts)
	if err != nil {
		return err
	}
	// password from the auth file is only known now, mask it and any reloaded one
	setupLog(opts.Dbg, opts.Auth.Password, authSvc.Secret())
	authSvc.OnReload(func(creds auth.Credentials) { setupLog(opts.Dbg, opts.Auth.Password, creds.Password) })
	if err := authSvc.Activate(ctx); err != nil {
		return fmt.Errorf("failed to activate auth: %w", err)
	}

	atlas, err := loadAtlas(opts.Data)
	if err != nil {
		return err
	}

	deps := server.Deps{
		Auth:  authSvc,
		Gate:  auth.NewGate(auth.GateOpts{Secure: mode.Secure(), LoginURL: baseURL + "/login", ProtectedURL: baseURL + "/map"}),
		Atlas: atlas,
	}

	if opts.Audit.Enabled {
		auditStore, err := store.New(opts.Audit.DB)
		if err != nil {
			return fmt.Errorf("failed to open audit store: %w", err)
		}
		defer func() {
			if err := auditStore.Close(); err != nil {
				lgr.Printf("[WARN] failed to close audit store: %v", err)
			}
		}()
		deps.AuditStore = auditStore
		go cleanupAudit(ctx, auditStore, opts.Audit.Retention, auditCleanupInterval)
	}

	lgr.Printf("[INFO] starting server on %s, mode %s, user %q, %d provinces",
		opts.Server.Address, mode, authSvc.Username(), len(atlas.Provinces()))

	srv, err := server.New(deps, server.Config{
		Address:          opts.Server.Address,
		ReadTimeout:      opts.Server.ReadTimeout,
		WriteTimeout:     opts.Server.WriteTimeout,
		IdleTimeout:      opts.Server.IdleTimeout,
		ShutdownTimeout:  opts.Server.ShutdownTimeout,
		Version:          revision,
		BaseURL:          baseURL,
		Debug:            opts.Dbg,
		BodySizeLimit:    opts.Limits.BodySize,
		RequestsPerSec:   opts.Limits.RequestsPerSec,
		MaxConcurrent:    opts.Limits.MaxConcurrent,
		LoginConcurrency: opts.Limits.LoginConcurrency,
		AuditEnabled:     opts.Audit.Enabled,
		AuditQueryLimit:  opts.Audit.QueryLimit,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	return srv.Run(ctx)
}

// makeAuth creates the credential validator from the auth file or from the user/password pair.
func makeAuth(opts options) (*auth.Service, error) {
	if opts.Auth.File != "" {
		vldt, err := auth.SchemaValidator()
		if err != nil {
			return nil, fmt.Errorf("failed to build auth schema validator: %w", err)
		}
		svc, err := auth.NewFromFile(opts.Auth.File, opts.Auth.HotReload, vldt)
		if err != nil {
			return nil, fmt.Errorf("failed to load auth file: %w", err)
		}
		return svc, nil
	}

	if opts.Auth.User == "" || opts.Auth.Password == "" {
		return nil, errors.New("credentials are required, set --auth.user and --auth.password or --auth.file")
	}
	if opts.Auth.HotReload {
		lgr.Printf("[WARN] --auth.hot-reload ignored without --auth.file")
	}
	svc, err := auth.New(auth.Credentials{Username: opts.Auth.User, Password: opts.Auth.Password})
	if err != nil {
		return nil, fmt.Errorf("invalid credentials config: %w", err)
	}
	return svc, nil
}

// loadAtlas loads province data from a file if set, embedded data otherwise.
func loadAtlas(path string) (*provinces.Atlas, error) {
	if path == "" {
		atlas, err := provinces.Embedded()
		if err != nil {
			return nil, fmt.Errorf("failed to load embedded provinces: %w", err)
		}
		return atlas, nil
	}
	atlas, err := provinces.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load provinces: %w", err)
	}
	return atlas, nil
}

// normalizeBaseURL makes base URL start with a slash and drops the trailing one. Empty stays empty.
func normalizeBaseURL(baseURL string) (string, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" || baseURL == "/" {
		return "", nil
	}
	if strings.ContainsAny(baseURL, "?# ") || strings.Contains(baseURL, "://") {
		return "", fmt.Errorf("invalid base URL %q, expected a path like /thaimap", baseURL)
	}
	if !strings.HasPrefix(baseURL, "/") {
		baseURL = "/" + baseURL
	}
	return strings.TrimRight(baseURL, "/"), nil
}

// auditCleaner removes old audit entries.
type auditCleaner interface {
	DeleteAuditOlderThan(ctx context.Context, olderThan time.Time) (int64, error)
}

// cleanupAudit removes audit entries older than retention right away and then on every interval tick.
func cleanupAudit(ctx context.Context, st auditCleaner, retention, interval time.Duration) {
	if retention <= 0 {
		lgr.Printf("[INFO] audit retention disabled")
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		deleted, err := st.DeleteAuditOlderThan(ctx, time.Now().Add(-retention))
		switch {
		case err != nil && ctx.Err() == nil:
			lgr.Printf("[WARN] failed to clean up audit log: %v", err)
		case deleted > 0:
			lgr.Printf("[INFO] removed %d audit entries older than %v", deleted, retention)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// loadEnvFile loads variables from the file set by THAIMAP_ENV_FILE, or from .env if present.
// Variables already set in the environment are not overridden.
func loadEnvFile() error {
	if f := os.Getenv("THAIMAP_ENV_FILE"); f != "" {
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", f, err)
		}
		return nil
	}
	if _, err := os.Stat(".env"); err != nil {
		return nil //nolint:nilerr // no default env file is fine
	}
	if err := godotenv.Load(".env"); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

func setupLog(dbg bool, secrets ...string) {
	logOpts := logOptions(dbg, secrets...)
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}

// logOptions makes lgr options for the debug mode, empty secrets are skipped.
func logOptions(dbg bool, secrets ...string) []lgr.Option {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	var masked []string
	for _, s := range secrets {
		if s != "" {
			masked = append(masked, s)
		}
	}
	if len(masked) > 0 {
		logOpts = append(logOpts, lgr.Secret(masked...))
	}
	return logOpts
}
