package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultTimezone  = "UTC"
	configPathEnv    = "LONGEVITY_SCRAPER_CONFIG"
	openAIAPIKeyEnv  = "OPENAI_API_KEY"
	openAIModelEnv   = "OPENAI_MODEL"
	outputFileEnv    = "OUTPUT_FILE"
	userAgentEnv     = "SCRAPER_USER_AGENT"
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging   LoggingConfig   `yaml:"logging"`
	Scraping  ScrapingConfig  `yaml:"scraping"`
	Filter    FilterConfig    `yaml:"filter"`
	Keywords  KeywordConfig   `yaml:"keywords"`
	Output    OutputConfig    `yaml:"output"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	OpenAI    OpenAIConfig    `yaml:"openai"`
	Sources   []SourceConfig  `yaml:"sources"`
}

// LoggingConfig controls the slog handler. Format is "text" for console use
// or "json" for headless scheduled runs.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ScrapingConfig groups fetch-side knobs shared by every strategy.
// DetailExtraction is a pointer so a config file that omits the key leaves
// the base value alone during merging.
type ScrapingConfig struct {
	MaxArticlesPerSource  int    `yaml:"maxArticlesPerSource"`
	RequestTimeoutSeconds int    `yaml:"requestTimeoutSeconds"`
	RequestDelaySeconds   int    `yaml:"requestDelaySeconds"`
	UserAgent             string `yaml:"userAgent"`
	DetailExtraction      *bool  `yaml:"detailExtraction"`
}

// ExtractDetails reports whether per-article page extraction is enabled.
func (s ScrapingConfig) ExtractDetails() bool {
	return s.DetailExtraction != nil && *s.DetailExtraction
}

// Timeout resolves the per-request timeout.
func (s ScrapingConfig) Timeout() time.Duration {
	return time.Duration(s.RequestTimeoutSeconds) * time.Second
}

// Delay resolves the fixed inter-request pause.
func (s ScrapingConfig) Delay() time.Duration {
	return time.Duration(s.RequestDelaySeconds) * time.Second
}

// FilterConfig selects the relevance and date policies.
type FilterConfig struct {
	// Policy is "score" (additive keyword scoring, the default), "title"
	// (the stricter primary-keyword-in-title gate), or "off" (accept every
	// well-formed candidate, still recording its score).
	Policy    string `yaml:"policy"`
	Threshold int    `yaml:"threshold"`

	// DatePolicy is "year", "window", or "off".
	DatePolicy   string `yaml:"datePolicy"`
	TargetYear   int    `yaml:"targetYear"`
	LookbackDays int    `yaml:"lookbackDays"`
}

// KeywordConfig carries the tiered vocabulary driving relevance scoring.
type KeywordConfig struct {
	Primary        []string `yaml:"primary"`
	Secondary      []string `yaml:"secondary"`
	Tertiary       []string `yaml:"tertiary"`
	Irrelevant     []string `yaml:"irrelevant"`
	SourceAffinity []string `yaml:"sourceAffinity"`
}

// OutputConfig names the primary result file and its backup.
type OutputConfig struct {
	File       string `yaml:"file"`
	BackupFile string `yaml:"backupFile"`
}

// SchedulerConfig defines when the recurring scrape should run.
type SchedulerConfig struct {
	CronExpression string         `yaml:"cronExpression"`
	Timezone       string         `yaml:"timezone"`
	location       *time.Location `yaml:"-"`
}

// Location resolves the scheduler timezone string to a time.Location.
func (s SchedulerConfig) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

// OpenAIConfig defines how to contact the summarization API. An empty APIKey
// disables the generative engine entirely.
type OpenAIConfig struct {
	Endpoint    string  `yaml:"endpoint"`
	Model       string  `yaml:"model"`
	APIKey      string  `yaml:"apiKey"`
	MaxTokens   int     `yaml:"maxTokens"`
	Temperature float64 `yaml:"temperature"`
}

// SourceConfig describes a single content origin and its fetch strategy.
type SourceConfig struct {
	Name       string `yaml:"name"`
	Strategy   string `yaml:"strategy"`
	URL        string `yaml:"url"`
	FeedURL    string `yaml:"feedUrl"`
	SearchURL  string `yaml:"searchUrl"`
	SearchPath string `yaml:"searchPath"`
	SearchHost string `yaml:"searchHost"`
	Disabled   bool   `yaml:"disabled"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()

	if len(cfg.Sources) == 0 {
		cfg.Sources = defaultConfig().Sources
	}

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(openAIAPIKeyEnv); v != "" {
		c.OpenAI.APIKey = v
	}

	if v := os.Getenv(openAIModelEnv); v != "" {
		c.OpenAI.Model = v
	}

	if v := os.Getenv(outputFileEnv); v != "" {
		c.Output.File = v
	}

	if v := os.Getenv(userAgentEnv); v != "" {
		c.Scraping.UserAgent = v
	}
}

func (c *Config) bindTimezone() {
	tz := c.Scheduler.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		loc, _ = time.LoadLocation(defaultTimezone)
	}
	c.Scheduler.location = loc
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.Format != "" {
		base.Logging.Format = override.Logging.Format
	}

	if override.Scraping.MaxArticlesPerSource > 0 {
		base.Scraping.MaxArticlesPerSource = override.Scraping.MaxArticlesPerSource
	}
	if override.Scraping.RequestTimeoutSeconds > 0 {
		base.Scraping.RequestTimeoutSeconds = override.Scraping.RequestTimeoutSeconds
	}
	if override.Scraping.RequestDelaySeconds > 0 {
		base.Scraping.RequestDelaySeconds = override.Scraping.RequestDelaySeconds
	}
	if override.Scraping.UserAgent != "" {
		base.Scraping.UserAgent = override.Scraping.UserAgent
	}
	if override.Scraping.DetailExtraction != nil {
		base.Scraping.DetailExtraction = override.Scraping.DetailExtraction
	}

	if override.Filter.Policy != "" {
		base.Filter.Policy = override.Filter.Policy
	}
	if override.Filter.Threshold > 0 {
		base.Filter.Threshold = override.Filter.Threshold
	}
	if override.Filter.DatePolicy != "" {
		base.Filter.DatePolicy = override.Filter.DatePolicy
	}
	if override.Filter.TargetYear > 0 {
		base.Filter.TargetYear = override.Filter.TargetYear
	}
	if override.Filter.LookbackDays > 0 {
		base.Filter.LookbackDays = override.Filter.LookbackDays
	}

	if len(override.Keywords.Primary) > 0 {
		base.Keywords.Primary = override.Keywords.Primary
	}
	if len(override.Keywords.Secondary) > 0 {
		base.Keywords.Secondary = override.Keywords.Secondary
	}
	if len(override.Keywords.Tertiary) > 0 {
		base.Keywords.Tertiary = override.Keywords.Tertiary
	}
	if len(override.Keywords.Irrelevant) > 0 {
		base.Keywords.Irrelevant = override.Keywords.Irrelevant
	}
	if len(override.Keywords.SourceAffinity) > 0 {
		base.Keywords.SourceAffinity = override.Keywords.SourceAffinity
	}

	if override.Output.File != "" {
		base.Output.File = override.Output.File
	}
	if override.Output.BackupFile != "" {
		base.Output.BackupFile = override.Output.BackupFile
	}

	if override.Scheduler.CronExpression != "" {
		base.Scheduler.CronExpression = override.Scheduler.CronExpression
	}
	if override.Scheduler.Timezone != "" {
		base.Scheduler.Timezone = override.Scheduler.Timezone
	}

	if override.OpenAI.Endpoint != "" {
		base.OpenAI.Endpoint = override.OpenAI.Endpoint
	}
	if override.OpenAI.Model != "" {
		base.OpenAI.Model = override.OpenAI.Model
	}
	if override.OpenAI.APIKey != "" {
		base.OpenAI.APIKey = override.OpenAI.APIKey
	}
	if override.OpenAI.MaxTokens > 0 {
		base.OpenAI.MaxTokens = override.OpenAI.MaxTokens
	}
	if override.OpenAI.Temperature > 0 {
		base.OpenAI.Temperature = override.OpenAI.Temperature
	}

	if len(override.Sources) > 0 {
		base.Sources = override.Sources
	}

	return base
}

func defaultConfig() Config {
	tz, _ := time.LoadLocation(defaultTimezone)
	return Config{
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Scraping: ScrapingConfig{
			MaxArticlesPerSource:  50,
			RequestTimeoutSeconds: 30,
			RequestDelaySeconds:   1,
			UserAgent:             defaultUserAgent,
		},
		Filter: FilterConfig{
			Policy:       "score",
			Threshold:    2,
			DatePolicy:   "year",
			TargetYear:   time.Now().Year(),
			LookbackDays: 30,
		},
		Keywords: KeywordConfig{
			Primary: []string{"anti-aging", "longevity", "senescence"},
			Secondary: []string{
				"aging", "gerontology", "telomere", "sirtuin", "rapamycin",
				"metformin", "nad+", "mitochondria", "autophagy", "inflammation",
				"oxidative stress", "cellular aging", "biological age",
				"epigenetic clock", "senolytics",
			},
			Tertiary: []string{"research", "study", "clinical", "trial"},
			Irrelevant: []string{
				"celebrity", "gossip", "sports", "football", "fashion",
				"horoscope", "recipe", "box office",
			},
			SourceAffinity: []string{
				"aging", "longevity", "nature", "cell", "science",
				"medical", "medicine", "jama",
			},
		},
		Output: OutputConfig{
			File:       "anti_aging_research.csv",
			BackupFile: "anti_aging_research_backup.csv",
		},
		Scheduler: SchedulerConfig{CronExpression: "0 7 * * *", Timezone: defaultTimezone, location: tz},
		OpenAI: OpenAIConfig{
			Endpoint:    "https://api.openai.com/v1/chat/completions",
			Model:       "gpt-3.5-turbo",
			APIKey:      "",
			MaxTokens:   150,
			Temperature: 0.7,
		},
		Sources: defaultSources(),
	}
}

func defaultSources() []SourceConfig {
	return []SourceConfig{
		{Name: "Medical News Today", Strategy: "rss", URL: "https://www.medicalnewstoday.com", FeedURL: "https://www.medicalnewstoday.com/rss.xml"},
		{Name: "JAMA Network", Strategy: "rss", URL: "https://jamanetwork.com", FeedURL: "https://jamanetwork.com/rss/site_3/67.xml"},
		{Name: "Science Daily", Strategy: "rss", URL: "https://www.sciencedaily.com", FeedURL: "https://www.sciencedaily.com/rss/health_medicine.xml"},
		{Name: "Cell", Strategy: "rss", URL: "https://www.cell.com", FeedURL: "https://www.cell.com/rss/current.xml"},
		{Name: "Nature", Strategy: "rss", URL: "https://www.nature.com", FeedURL: "https://www.nature.com/nature.rss"},
		{
			Name:       "ScienceDirect",
			Strategy:   "search",
			URL:        "https://www.sciencedirect.com",
			SearchURL:  "https://www.sciencedirect.com/search?query=anti-aging%20longevity%20senescence",
			SearchPath: "/science/article/",
			SearchHost: "https://www.sciencedirect.com",
		},
		{Name: "News Medical", Strategy: "rss", URL: "https://www.news-medical.net", FeedURL: "https://www.news-medical.net/rss/feed.aspx"},
		{Name: "Yale Medicine", Strategy: "scrape", URL: "https://medicine.yale.edu/news/"},
		{Name: "Nature Aging", Strategy: "rss", URL: "https://www.nature.com/nataging", FeedURL: "https://www.nature.com/nataging.rss"},
		{Name: "Wiley Aging Cell", Strategy: "rss", URL: "https://onlinelibrary.wiley.com/journal/14749726", FeedURL: "https://onlinelibrary.wiley.com/rss/journal/14749726"},
		{Name: "SciTech Daily", Strategy: "rss", URL: "https://scitechdaily.com", FeedURL: "https://scitechdaily.com/feed/"},
		{Name: "Science Alert", Strategy: "rss", URL: "https://www.sciencealert.com", FeedURL: "https://www.sciencealert.com/feed"},
	}
}
