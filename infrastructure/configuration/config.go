package configuration

import (
	"fmt"
	"os"
	"strconv"

	"social-dashboard/infrastructure/logger"

	"github.com/spf13/viper"
)

type Config struct {
	App         App         `json:"app"`
	Database    Database    `json:"database"`
	RedisClient RedisClient `json:"redisClient"`
	Parsers     Parsers     `json:"parsers"`
	Monday      Monday      `json:"monday"`
	Refresh     Refresh     `json:"refresh"`
	Logger      Logger      `json:"logger"`
}

type App struct {
	Port      int    `json:"port"`
	SecretKey string `json:"secretKey"`
}

type Database struct {
	Psql Db `json:"psql"`
}

type Db struct {
	Name     string `json:"name"`
	Host     string `json:"host"`
	Port     string `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
}

type RedisClient struct {
	Host         string `json:"host"`
	Port         string `json:"port"`
	Password     string `json:"password"`
	DatabaseName string `json:"databaseName"`
	Username     string `json:"username"`
}

// Parsers carries the credentials for each platform extractor. Any key may
// be empty; the matching platform is then disabled at startup instead of
// failing the whole service.
type Parsers struct {
	YouTube     YouTube     `json:"youtube"`
	Apify       Apify       `json:"apify"`
	ScrapeNinja ScrapeNinja `json:"scrapeNinja"`
	Facebook    Facebook    `json:"facebook"`

	// EngagementRate drives Instagram view estimation when a page exposes
	// no view count. Zero means the default of 0.02.
	EngagementRate float64 `json:"engagementRate"`
}

type YouTube struct {
	APIKey string `json:"apiKey"`
}

type Apify struct {
	Token   string `json:"token"`
	ActorID string `json:"actorId"`
}

type ScrapeNinja struct {
	RapidAPIKey string `json:"rapidApiKey"`
	APIKey      string `json:"apiKey"`
}

type Facebook struct {
	RapidAPIKey string `json:"rapidApiKey"`
}

type Monday struct {
	APIToken string `json:"apiToken"`
}

// Refresh controls the background metrics refresher.
type Refresh struct {
	IntervalMinutes int `json:"intervalMinutes"`
	Concurrency     int `json:"concurrency"`
}

type Logger struct {
	Format string `json:"format"`
}

var C Config

func init() {
	LoadConfig()
	initDatabase(&C)
	initApp(&C)
	initParsers(&C)
}

func LoadConfig() {
	name := getConfig()
	viper.SetConfigName(name)
	viper.SetConfigType("json")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")
	viper.AddConfigPath("../../")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logger.GetLogger().Warn("Config file not found")
		} else {
			logger.GetLogger().WithField("error", err).Error("Error reading config file")
		}
	}

	logger.GetLogger().WithField("config", name).Info("Config set up successfully")
	if err := viper.Unmarshal(&C); err != nil {
		logger.GetLogger().WithField("error", err).Error("Viper unable to decode into struct")
	}
}

func getConfig() string {
	name := "config"
	env := os.Getenv("ENV")
	if env != "" {
		name = fmt.Sprintf("%s-%s", name, env)
	}
	return name
}

func initDatabase(C *Config) {
	if C.Database.Psql.Name == "" {
		C.Database.Psql.Name = os.Getenv("DB_NAME")
	}
	if C.Database.Psql.Host == "" {
		C.Database.Psql.Host = os.Getenv("DB_HOST")
	}
	if C.Database.Psql.User == "" {
		C.Database.Psql.User = os.Getenv("DB_USER")
	}
	if C.Database.Psql.Password == "" {
		C.Database.Psql.Password = os.Getenv("DB_PASSWORD")
	}
	if C.Database.Psql.Port == "" {
		C.Database.Psql.Port = os.Getenv("DB_PORT")
	}
	if C.Database.Psql.Port == "" {
		C.Database.Psql.Port = "5432"
	}
}

func initApp(C *Config) {
	// SECRET_KEY from environment overrides the config file when provided
	if v := os.Getenv("SECRET_KEY"); v != "" {
		C.App.SecretKey = v
	}
	// Port resolution order (env overrides config): APP_PORT -> PORT -> config -> default 10001
	if v := os.Getenv("APP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	} else if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	}
	if C.App.Port == 0 {
		C.App.Port = 10001
	}
	if C.App.SecretKey == "" {
		logger.GetLogger().Warn("App.SecretKey not set; JWT authentication will fail. Provide SECRET_KEY via environment.")
	}
}

func initParsers(C *Config) {
	if v := os.Getenv("YOUTUBE_API_KEY"); v != "" {
		C.Parsers.YouTube.APIKey = v
	}
	if v := os.Getenv("APIFY_TOKEN"); v != "" {
		C.Parsers.Apify.Token = v
	}
	if v := os.Getenv("SCRAPENINJA_API_KEY"); v != "" {
		C.Parsers.ScrapeNinja.APIKey = v
	}
	if v := os.Getenv("RAPIDAPI_KEY"); v != "" {
		C.Parsers.ScrapeNinja.RapidAPIKey = v
	}
	if v := os.Getenv("FACEBOOK_RAPIDAPI_KEY"); v != "" {
		C.Parsers.Facebook.RapidAPIKey = v
	} else if C.Parsers.Facebook.RapidAPIKey == "" {
		// The Facebook scraper rides on the same RapidAPI subscription
		// unless its own key is configured.
		C.Parsers.Facebook.RapidAPIKey = C.Parsers.ScrapeNinja.RapidAPIKey
	}
	if v := os.Getenv("MONDAY_API_TOKEN"); v != "" {
		C.Monday.APIToken = v
	}
	if C.Parsers.EngagementRate <= 0 {
		C.Parsers.EngagementRate = 0.02
	}
	if C.Refresh.IntervalMinutes <= 0 {
		C.Refresh.IntervalMinutes = 60
	}
	if C.Refresh.Concurrency <= 0 {
		C.Refresh.Concurrency = 3
	}
}
