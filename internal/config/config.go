package config

import (
	"log/slog"
	"sync"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfighcl"
)

type Config struct {
	Features            []string      `hcl:"features" env:"FEATURES" default:"Feat422,Feat424,Feat425"`
	PageSize            int           `hcl:"page_size" env:"PAGE_SIZE" default:"20"`
	EnableLogging       bool          `hcl:"enable_logging" env:"ENABLE_LOGGING" default:"true"`
	HTTPAddr            string        `hcl:"http_addr" env:"HTTP_ADDR" default:"127.0.0.1:8088"`
	DatabaseDSN         string        `hcl:"database_dsn" env:"DATABASE_DSN"`
	APIType             string        `hcl:"api_type" env:"API_TYPE" default:"fake"`
	RSSURLTemplate      string        `hcl:"rss_url_template" env:"RSS_URL_TEMPLATE"`
	RSSInsecure         bool          `hcl:"rss_insecure" env:"RSS_INSECURE"`
	PingBaseURL         string        `hcl:"ping_base_url" env:"PING_BASE_URL"`
	PingTimeout         time.Duration `hcl:"ping_timeout" env:"PING_TIMEOUT" default:"10s"`
	BenchInterval       time.Duration `hcl:"bench_interval" env:"BENCH_INTERVAL" default:"10m"`
	BenchUsers          int           `hcl:"bench_users" env:"BENCH_USERS" default:"1000"`
	BenchConcurrency    int           `hcl:"bench_concurrency" env:"BENCH_CONCURRENCY" default:"4"`
	TelegramBotToken    string        `hcl:"telegram_bot_token" env:"TELEGRAM_BOT_TOKEN"`
	TelegramAdminChatID int64         `hcl:"telegram_admin_chat_id" env:"TELEGRAM_ADMIN_CHAT_ID"`
}

// DefaultFiles are searched in order; missing files are skipped.
var DefaultFiles = []string{"./config.hcl", "./config.local.hcl", "$HOME/.config/featfeed/config.hcl"}

var (
	cfg  Config
	once sync.Once
)

// Get loads the configuration from DefaultFiles and the environment once.
func Get() Config {
	once.Do(func() {
		loaded, err := Load(DefaultFiles...)
		if err != nil {
			slog.Error("failed to load config", "err", err)
		}
		cfg = loaded
	})

	return cfg
}

// Load reads the given HCL files and FEATFEED_* environment variables on top
// of the defaults. Command line flags are left to the caller.
func Load(files ...string) (Config, error) {
	var c Config

	loader := aconfig.LoaderFor(&c, aconfig.Config{
		SkipFlags: true,
		EnvPrefix: "FEATFEED",
		Files:     files,
		FileDecoders: map[string]aconfig.FileDecoder{
			".hcl": aconfighcl.New(),
		},
	})

	err := loader.Load()

	return c, err
}
