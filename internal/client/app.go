package client

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/service"
	"github.com/MKhiriev/go-pass-vault/internal/store"
	"github.com/MKhiriev/go-pass-vault/models"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// App is the vault command-line application. One App serves one
// invocation: Run parses args, wires the services and executes the chosen
// command.
type App struct {
	root *cobra.Command

	buildInfo models.AppBuildInfo
	prompter  Prompter
	clipboard Clipboard
	fs        afero.Fs
	out       io.Writer
	errOut    io.Writer

	services  *service.Services
	generator service.PasswordGenerator

	cfg       *config.StructuredConfig
	logger    *logger.Logger
	logCloser io.Closer
}

// Option customises an App.
type Option func(*App)

// WithPrompter replaces the terminal prompter.
func WithPrompter(p Prompter) Option {
	return func(a *App) { a.prompter = p }
}

// WithClipboard replaces the system clipboard.
func WithClipboard(c Clipboard) Option {
	return func(a *App) { a.clipboard = c }
}

// WithFs sets the filesystem the vault files live on.
func WithFs(fs afero.Fs) Option {
	return func(a *App) { a.fs = fs }
}

// WithOutput redirects command output and error messages.
func WithOutput(out, errOut io.Writer) Option {
	return func(a *App) {
		a.out = out
		a.errOut = errOut
	}
}

// WithServices makes the App use services instead of building them from
// the configuration.
func WithServices(services *service.Services) Option {
	return func(a *App) { a.services = services }
}

// NewApp constructs the application. Without options it reads secrets from
// the terminal, writes to stdout/stderr and keeps the vault on the OS
// filesystem.
func NewApp(buildInfo models.AppBuildInfo, opts ...Option) *App {
	a := &App{
		buildInfo: buildInfo,
		clipboard: NewSystemClipboard(),
		fs:        afero.NewOsFs(),
		out:       os.Stdout,
		errOut:    os.Stderr,
		generator: service.NewPasswordGenerator(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.prompter == nil {
		a.prompter = NewTerminalPrompter(os.Stdin, a.errOut)
	}

	a.root = a.newRootCommand()
	return a
}

// Run executes the command named by args. A failed command has its error
// printed to the error output and returned.
func (a *App) Run(ctx context.Context, args []string) error {
	a.root.SetArgs(args)
	err := a.root.ExecuteContext(ctx)
	if err != nil {
		if a.logger != nil {
			a.logger.Err(err).Msg("command failed")
		}
		fmt.Fprintf(a.errOut, "Error: %s\n", userMessage(err))
	}

	a.shutdown()
	return err
}

// prepare loads the configuration and sets up logging before a command
// runs.
func (a *App) prepare(cmd *cobra.Command, _ []string) error {
	cfg, err := config.GetStructuredConfig(cmd.Flags())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg

	log, closer, err := logger.NewFileLogger("cli", cfg.App.LogFile, cfg.App.LogLevel)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	a.logger = log
	a.logCloser = closer
	cmd.SetContext(log.WithContext(cmd.Context()))

	log.Debug().Str("command", cmd.Name()).Msg("running command")
	return nil
}

// openVault wires storages and services on first use. Commands that never
// touch the vault files do not call it.
func (a *App) openVault() error {
	if a.services != nil {
		return nil
	}

	storages, err := store.NewStorages(a.cfg.Storage, a.fs, a.logger)
	if err != nil {
		return err
	}
	a.services = service.NewServices(storages, a.cfg.Crypto, a.logger)
	return nil
}

func (a *App) shutdown() {
	if a.services != nil {
		a.services.AuthService.Lock()
	}
	if a.logCloser != nil {
		if err := a.logCloser.Close(); err != nil {
			fmt.Fprintf(a.errOut, "close log file: %v\n", err)
		}
		a.logCloser = nil
	}
}

// unlock asks for the master passphrase and unlocks the session.
func (a *App) unlock(ctx context.Context) error {
	if err := a.openVault(); err != nil {
		return err
	}

	auth := a.services.AuthService
	if !auth.Initialized(ctx) {
		return service.ErrNotInitialized
	}

	passphrase, err := a.prompter.ReadSecret("Master passphrase: ")
	if err != nil {
		return err
	}
	return auth.Unlock(ctx, passphrase)
}

// readNewPassphrase asks for a passphrase twice and checks both answers
// match.
func (a *App) readNewPassphrase(prompt string) (string, error) {
	first, err := a.prompter.ReadSecret(prompt)
	if err != nil {
		return "", err
	}
	second, err := a.prompter.ReadSecret("Repeat " + lowerFirst(prompt))
	if err != nil {
		return "", err
	}
	if first != second {
		return "", ErrPassphraseMismatch
	}
	return first, nil
}

func lowerFirst(s string) string {
	if s == "" || s[0] < 'A' || s[0] > 'Z' {
		return s
	}
	return string(s[0]+'a'-'A') + s[1:]
}
