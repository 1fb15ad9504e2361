package cfg

import (
	"cmp"
	"fmt"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Database configuration
	DBHost     string `long:"db-host" env:"DB_HOST" default:"localhost" description:"Database host"`
	DBPort     string `long:"db-port" env:"DB_PORT" default:"5432" description:"Database port"`
	DBUser     string `long:"db-user" env:"DB_USER" default:"scraper_user" description:"Database user"`
	DBPassword string `long:"db-password" env:"DB_PASSWORD" default:"scraper_password" description:"Database password (required)" required:"true"`
	DBName     string `long:"db-name" env:"DB_NAME" default:"smarter_poker" description:"Database name"`
	DBSSLMode  string `long:"db-sslmode" env:"DB_SSLMODE" default:"disable" description:"Database SSL mode"`

	// Venue selection
	State      string `long:"state" description:"Restrict run to venues in this state (two-letter abbreviation)"`
	Venue      string `long:"venue" description:"Restrict run to venues whose name contains this substring"`
	Source     string `long:"source" description:"Restrict run to venues with this scrape source (pokeratlas, direct_website, cardplayer)"`
	Limit      int    `long:"limit" description:"Cap the number of venues processed"`
	Force      bool   `long:"force" description:"Ignore the 24-hour re-scrape cooldown"`
	Prune      bool   `long:"prune" description:"Deactivate schedule entries not seen within the grace window"`
	VenuesFile string `long:"venues-file" env:"VENUES_FILE" default:"./venues.yml" description:"Venue source-of-truth file (optional)"`

	// Scraping behavior
	WorkerCount    int    `long:"worker-count" env:"WORKER_COUNT" default:"3" description:"Number of concurrent scrape workers"`
	HostInterval   int    `long:"host-interval" env:"HOST_INTERVAL" default:"2" description:"Minimum seconds between requests to the same host"`
	RequestTimeout int    `long:"request-timeout" env:"REQUEST_TIMEOUT" default:"10" description:"HTTP request timeout in seconds"`
	FetchRetries   int    `long:"fetch-retries" env:"FETCH_RETRIES" default:"3" description:"Retries for transient connection errors"`
	SettleDelay    int    `long:"settle-delay" env:"SETTLE_DELAY" default:"2" description:"Seconds to wait for client-side rendering after page load"`
	ChromePath     string `long:"chrome-path" env:"CHROME_PATH" description:"Chrome/Chromium executable path (auto-detected when empty)"`
	Headless       bool   `long:"headless" env:"HEADLESS" description:"Run the browser headless (daemon deployments)"`

	// Daemon mode
	Serve             bool   `long:"serve" env:"SERVE" description:"Run as a daemon with scheduler and HTTP API instead of a one-shot run"`
	Port              string `long:"port" env:"PORT" default:"8080" description:"HTTP server port (daemon mode)"`
	SchedulerInterval int    `long:"scheduler-interval" env:"SCHEDULER_INTERVAL" default:"3600" description:"Scheduler interval in seconds (daemon mode)"`
	APIAccessKey      string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for authentication (optional)"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36" description:"User agent string for HTTP requests"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DBHost:            raw.DBHost,
		DBPort:            raw.DBPort,
		DBUser:            raw.DBUser,
		DBPassword:        raw.DBPassword,
		DBName:            raw.DBName,
		DBSSLMode:         raw.DBSSLMode,
		State:             raw.State,
		Venue:             raw.Venue,
		Source:            raw.Source,
		Limit:             raw.Limit,
		Force:             raw.Force,
		Prune:             raw.Prune,
		VenuesFile:        raw.VenuesFile,
		WorkerCount:       raw.WorkerCount,
		HostInterval:      raw.HostInterval,
		RequestTimeout:    raw.RequestTimeout,
		FetchRetries:      raw.FetchRetries,
		SettleDelay:       raw.SettleDelay,
		ChromePath:        raw.ChromePath,
		Headless:          raw.Headless,
		Serve:             raw.Serve,
		Port:              raw.Port,
		SchedulerInterval: raw.SchedulerInterval,
		APIAccessKey:      raw.APIAccessKey,
		UserAgent:         raw.UserAgent,
		Debug:             raw.Debug,
		Version:           GetVersion(),
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

// Set replaces the global configuration. Used by tests.
func Set(cfg *Cfg) {
	globalCfg = cfg
}
