package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ajramos/mailsort/internal/classifier"
	"github.com/ajramos/mailsort/internal/config"
	"github.com/ajramos/mailsort/internal/db"
	"github.com/ajramos/mailsort/internal/services"
	"github.com/ajramos/mailsort/internal/tui"
	"github.com/ajramos/mailsort/internal/version"
)

func main() {
	// Essential command line flags only (GNU-style double dashes)
	configPathFlag := flag.String("config", "", "Path to JSON configuration file (default: ~/.config/mailsort/config.json)")
	apiURLFlag := flag.String("api-url", "", "Base URL of the classification API (default: http://localhost:8000)")
	checkFlag := flag.Bool("check", false, "Check the API health and exit")
	setupFlag := flag.Bool("setup", false, "Write the default configuration and theme files")
	versionFlag := flag.Bool("version", false, "Show version information and exit")

	// Override flag usage text to show clean, simple usage
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s\n\n", version.GetVersionString())
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Examples:\n")
		fmt.Fprintf(os.Stderr, "  %s                                  # Run with default configuration\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --api-url http://api:8000        # Use another API server\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --check                          # Check the API and exit\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --setup                          # Write default config and themes\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		fmt.Fprintf(os.Stderr, "  --config string\n        %s\n", "Path to JSON configuration file (default: ~/.config/mailsort/config.json)")
		fmt.Fprintf(os.Stderr, "  --api-url string\n        %s\n", "Base URL of the classification API (default: http://localhost:8000)")
		fmt.Fprintf(os.Stderr, "  --check\n        %s\n", "Check the API health and exit")
		fmt.Fprintf(os.Stderr, "  --setup\n        %s\n", "Write the default configuration and theme files")
		fmt.Fprintf(os.Stderr, "  --version\n        %s\n\n", "Show version information and exit")
		fmt.Fprintf(os.Stderr, "Environment Variables:\n")
		fmt.Fprintf(os.Stderr, "  MAILSORT_CONFIG   Override default config file path\n")
		fmt.Fprintf(os.Stderr, "  MAILSORT_API_URL  Override the API base URL\n\n")
		fmt.Fprintf(os.Stderr, "For all other settings (limits, keys, themes), edit the config file.\n")
	}

	flag.Parse()

	// Handle version flag
	if *versionFlag {
		fmt.Println(version.GetDetailedVersionString())
		return
	}

	configPath := getConfigPath(*configPathFlag)

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Printf("Warning: could not load configuration: %v", err)
		cfg = config.DefaultConfig()
	}
	cfg.API.BaseURL = getAPIURL(*apiURLFlag, cfg.API.BaseURL)

	if *setupFlag {
		if err := runSetup(cfg, configPath, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Setup failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	logger, closeLog := tui.OpenLogger(cfg.GetLogPath())
	defer closeLog()
	logger.Printf("starting %s, api=%s", version.GetVersionString(), cfg.API.BaseURL)

	client := classifier.NewClient(cfg.API.BaseURL, cfg.GetAPITimeout(), logger)

	if *checkFlag {
		code := runCheck(context.Background(), client, os.Stdout)
		closeLog()
		os.Exit(code)
	}

	// Preferences are optional: without a database the app runs with defaults
	var prefs services.PreferenceStore
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	store, err := db.Open(ctx, cfg.GetPreferencesPath())
	cancel()
	if err != nil {
		logger.Printf("Warning: could not open preferences store: %v", err)
	} else {
		defer func() { _ = store.Close() }()
		prefs = db.NewPreferenceStore(store)
	}

	app := tui.NewApp(cfg, client, prefs, logger)
	if err := app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
		os.Exit(1)
	}
}

// runCheck prints the API health line; the exit code is non-zero when the
// API is unreachable or reports itself unhealthy
func runCheck(ctx context.Context, client services.Classifier, out io.Writer) int {
	health := services.NewHealthService(client, nil)
	h, err := health.Check(ctx)
	if err != nil {
		fmt.Fprintf(out, "API indisponível: %s\n", services.UserMessage(err))
		return 1
	}
	fmt.Fprintln(out, services.FormatHealth(h))
	if !h.Healthy() {
		return 1
	}
	return 0
}

// runSetup writes the configuration file (when missing) and the built-in
// themes as editable YAML files
func runSetup(cfg *config.Config, configPath string, out io.Writer) error {
	if configPath == "" {
		return fmt.Errorf("no configuration path available")
	}

	if _, err := os.Stat(configPath); err == nil {
		fmt.Fprintf(out, "✅ Configuration file already exists: %s\n", configPath)
	} else {
		if err := cfg.SaveConfig(configPath); err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
		fmt.Fprintf(out, "✅ Created configuration file: %s\n", configPath)
	}

	loader := config.NewThemeLoader(cfg.GetThemesDir())
	for _, name := range []string{"light", "dark"} {
		path := filepath.Join(cfg.GetThemesDir(), name+".yaml")
		if _, err := os.Stat(path); err == nil {
			fmt.Fprintf(out, "✅ Theme already exists: %s\n", path)
			continue
		}
		if err := loader.SaveThemeToFile(config.BuiltinColors(name), name); err != nil {
			return err
		}
		fmt.Fprintf(out, "✅ Created theme: %s\n", path)
	}

	themes, err := loader.ListAvailableThemes()
	if err != nil {
		return fmt.Errorf("failed to list themes: %w", err)
	}
	fmt.Fprintf(out, "🎨 Available themes: %s\n", strings.Join(themes, ", "))
	return nil
}

// getConfigPath returns the configuration file path using the following priority:
// 1. CLI flag
// 2. Environment variable MAILSORT_CONFIG
// 3. Default path ~/.config/mailsort/config.json
func getConfigPath(flagValue string) string {
	if flagValue != "" {
		return expandPath(flagValue)
	}

	if envPath := os.Getenv("MAILSORT_CONFIG"); envPath != "" {
		return expandPath(envPath)
	}

	return config.DefaultConfigPath()
}

// getAPIURL returns the API base URL using the following priority:
// 1. CLI flag
// 2. Environment variable MAILSORT_API_URL
// 3. Config file setting (already defaulted)
func getAPIURL(flagValue, configValue string) string {
	if flagValue != "" {
		return flagValue
	}

	if env := os.Getenv("MAILSORT_API_URL"); env != "" {
		return env
	}

	return configValue
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	if path == "~" {
		return home
	}

	return filepath.Join(home, path[2:])
}
