package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/reedham/waxwing/internal/adapter"
	"github.com/reedham/waxwing/internal/api"
	"github.com/reedham/waxwing/internal/domain"
	"github.com/reedham/waxwing/internal/query"
	"github.com/reedham/waxwing/internal/session"
	"github.com/reedham/waxwing/internal/tui"
	"github.com/reedham/waxwing/internal/validate"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.Parse()

	if showVersion {
		fmt.Printf("waxwing %s\n", Version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := adapter.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting waxwing", "version", Version)

	// Open the session store
	store, err := session.NewStore(cfg.Data.Dir)
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}
	defer store.Close()

	client := api.NewClient(cfg.Server.URL, store, logger)

	// Sign in when no session survives from a previous run
	if _, ok := store.Get(); !ok {
		if err := runLoginFlow(client); err != nil {
			return err
		}
	}

	cache := query.NewCache(logger)
	model := tui.NewModel(client, cache, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// runLoginFlow prompts for credentials and signs in.
func runLoginFlow(client *api.Client) error {
	fmt.Println()
	fmt.Println("Welcome to Waxwing!")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Print("Email: ")
		email, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		email = strings.TrimSpace(email)

		fmt.Print("Password: ")
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}

		form := validate.LoginForm{Email: email, Password: string(password)}
		if fields := validate.Struct(form); fields != nil {
			for _, msg := range fields {
				fmt.Println("✗ " + msg)
			}
			fmt.Println()
			continue
		}

		sess, err := client.Login(context.Background(), api.Credentials{
			Email:    email,
			Password: string(password),
		})
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrUnauthorized):
				fmt.Println("✗ Invalid email or password.")
			case errors.Is(err, domain.ErrServerOffline):
				return fmt.Errorf("server unreachable: %w", err)
			default:
				fmt.Printf("✗ Login failed: %v\n", err)
			}
			fmt.Println()
			continue
		}

		fmt.Printf("✓ Signed in as %s\n", sess.Username)
		fmt.Println()
		return nil
	}
}
