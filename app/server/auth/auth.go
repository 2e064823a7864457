// Package auth provides the login gate for the map UI.
//
// It has two parts:
//   - Service validates submitted credentials against a single configured username/password pair
//   - Gate issues, reads and revokes the session marker cookie and decides, per request,
//     whether to let it through or redirect it
//
// The session marker is a fixed literal cookie value, so the server keeps no session state at all.
// The credential pair comes from CLI/env options or from a config file (YAML, TOML, INI or HCL)
// with optional hot-reload support.
package auth

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/go-pkgz/lgr"
)

// Credentials is a username/password pair.
type Credentials struct {
	Username string
	Password string
}

// Service validates credentials against the configured pair.
type Service struct {
	mu        sync.RWMutex    // protects creds
	creds     Credentials     // the only accepted pair
	authFile  string          // path to auth config file for reloading, empty if pair came from options
	validator ConfigValidator // validates auth config, may be nil
	hotReload bool            // watch auth config for changes and reload
	onReload  func(Credentials)
}

// New creates a Service for a fixed credential pair. Both fields are required.
func New(creds Credentials) (*Service, error) {
	if err := checkCredentials(creds); err != nil {
		return nil, err
	}
	return &Service{creds: creds}, nil
}

// NewFromFile creates a Service with the credential pair loaded from authFile.
// hotReload enables watching the config file for changes, see Activate.
func NewFromFile(authFile string, hotReload bool, vldt ConfigValidator) (*Service, error) {
	if authFile == "" {
		return nil, errors.New("auth file path not set")
	}

	creds, err := loadCredentials(authFile, vldt)
	if err != nil {
		return nil, err
	}

	return &Service{
		creds:     creds,
		authFile:  authFile,
		validator: vldt,
		hotReload: hotReload,
	}, nil
}

// Validate returns true only if both username and password exactly match the configured pair.
// Empty input never matches.
func (s *Service) Validate(username, password string) bool {
	if s == nil || username == "" || password == "" {
		return false
	}
	s.mu.RLock()
	creds := s.creds
	s.mu.RUnlock()
	return username == creds.Username && password == creds.Password
}

// Username returns the configured username.
func (s *Service) Username() string {
	if s == nil {
		return ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds.Username
}

// Activate starts the config file watcher if hot-reload is enabled.
// Should be called once after New/NewFromFile, typically from main.go.
func (s *Service) Activate(ctx context.Context) error {
	if s == nil {
		return nil
	}
	return s.startWatcher(ctx)
}

// Secret returns the configured password, for masking in logs.
func (s *Service) Secret() string {
	if s == nil {
		return ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds.Password
}

// OnReload sets fn to be called with the new pair after every successful reload.
func (s *Service) OnReload(fn func(Credentials)) {
	s.mu.Lock()
	s.onReload = fn
	s.mu.Unlock()
}

// Reload reloads the credential pair from the config file.
// On error, keeps the existing pair and returns the error.
// Issued session markers stay valid, they carry no identity to invalidate.
func (s *Service) Reload() error {
	if s == nil {
		return errors.New("auth not configured")
	}
	if s.authFile == "" {
		return errors.New("auth file path not set")
	}

	creds, err := loadCredentials(s.authFile, s.validator)
	if err != nil {
		return err
	}

	s.mu.Lock()
	changed := s.creds != creds
	s.creds = creds
	hook := s.onReload
	s.mu.Unlock()

	if hook != nil {
		hook(creds)
	}

	log.Printf("[INFO] auth config reloaded from %s, credentials changed: %v", s.authFile, changed)
	return nil
}

// loadCredentials loads and checks the credential pair from the config file.
func loadCredentials(authFile string, vldt ConfigValidator) (Credentials, error) {
	cfg, err := LoadConfig(authFile, vldt)
	if err != nil {
		return Credentials{}, fmt.Errorf("failed to load auth config: %w", err)
	}
	creds := Credentials{Username: cfg.Username, Password: cfg.Password}
	if err := checkCredentials(creds); err != nil {
		return Credentials{}, err
	}
	return creds, nil
}

// checkCredentials rejects incomplete pairs.
func checkCredentials(creds Credentials) error {
	if creds.Username == "" {
		return errors.New("username cannot be empty")
	}
	if creds.Password == "" {
		return errors.New("password cannot be empty")
	}
	return nil
}

// startWatcher starts watching the auth config file for changes.
// when the file changes, it reloads the configuration automatically.
// the watcher stops when the context is canceled.
func (s *Service) startWatcher(ctx context.Context) error {
	if !s.hotReload {
		return nil // hot reload not enabled, nothing to do
	}
	if s.authFile == "" {
		return errors.New("auth file path not set")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	// watch the directory, not the file, to catch atomic renames used by editors
	dir := filepath.Dir(s.authFile)
	filename := filepath.Base(s.authFile)

	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}

	log.Printf("[INFO] watching auth config file %s for changes", s.authFile)

	go func() {
		defer watcher.Close()

		var debounceTimer *time.Timer
		const debounceDelay = 100 * time.Millisecond

		for {
			select {
			case <-ctx.Done():
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				log.Printf("[INFO] auth config watcher stopped")
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != filename {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}

				// debounce rapid changes
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(debounceDelay, func() {
					if ctx.Err() != nil {
						return
					}
					if err := s.Reload(); err != nil {
						log.Printf("[WARN] failed to reload auth config: %v", err)
					}
				})

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("[WARN] auth config watcher error: %v", err)
			}
		}
	}()

	return nil
}
