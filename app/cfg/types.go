package cfg

type Cfg struct {
	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Venue selection
	State      string
	Venue      string
	Source     string
	Limit      int
	Force      bool
	Prune      bool
	VenuesFile string

	// Scraping behavior
	WorkerCount    int
	HostInterval   int
	RequestTimeout int
	FetchRetries   int
	SettleDelay    int
	ChromePath     string
	Headless       bool

	// Daemon mode
	Serve             bool
	Port              string
	SchedulerInterval int
	APIAccessKey      string

	// Application metadata
	UserAgent string
	Debug     bool
	Version   string
}
