package config

import (
	"time"

	"github.com/spf13/viper"
)

type AppConfig struct {
	Env                 string `mapstructure:"env"`
	Port                int    `mapstructure:"port"`
	ReadTimeoutSeconds  int    `mapstructure:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `mapstructure:"write_timeout_seconds"`
	IdleTimeoutSeconds  int    `mapstructure:"idle_timeout_seconds"`
	PublicURL           string `mapstructure:"public_url"`
}

type MongoConfig struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type KafkaConfig struct {
	Brokers       []string `mapstructure:"brokers"`
	EmailTopic    string   `mapstructure:"email_topic"`
	ConsumerGroup string   `mapstructure:"consumer_group"`
	Workers       int      `mapstructure:"workers"`
}

type MailConfig struct {
	APIKey      string `mapstructure:"api_key"`
	SenderEmail string `mapstructure:"sender_email"`
	SenderName  string `mapstructure:"sender_name"`
	BaseURL     string `mapstructure:"base_url"`
}

type JWTConfig struct {
	Secret   string `mapstructure:"secret"`
	TTLHours int    `mapstructure:"ttl_hours"`
}

type CacheConfig struct {
	TTLSeconds int `mapstructure:"ttl_seconds"`
}

type QueueConfig struct {
	Attempts       int `mapstructure:"attempts"`
	BackoffSeconds int `mapstructure:"backoff_seconds"`
}

type Config struct {
	App   AppConfig   `mapstructure:"app"`
	Mongo MongoConfig `mapstructure:"mongodb"`
	Redis RedisConfig `mapstructure:"redis"`
	Kafka KafkaConfig `mapstructure:"kafka"`
	Mail  MailConfig  `mapstructure:"mail"`
	JWT   JWTConfig   `mapstructure:"jwt"`
	Cache CacheConfig `mapstructure:"cache"`
	Queue QueueConfig `mapstructure:"queue"`

	// derived values
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	CacheTTL     time.Duration
	Backoff      time.Duration
	JWTTTL       time.Duration
}

// Load reads the yaml config at path and applies env overrides.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}

	// sensible defaults
	if c.App.Env == "" {
		c.App.Env = "development"
	}
	if c.App.Port == 0 {
		c.App.Port = 8080
	}
	if c.App.ReadTimeoutSeconds == 0 {
		c.App.ReadTimeoutSeconds = 10
	}
	if c.App.WriteTimeoutSeconds == 0 {
		c.App.WriteTimeoutSeconds = 10
	}
	if c.App.IdleTimeoutSeconds == 0 {
		c.App.IdleTimeoutSeconds = 60
	}
	if c.App.PublicURL == "" {
		c.App.PublicURL = "http://localhost:8080"
	}
	if c.Mongo.URI == "" {
		c.Mongo.URI = "mongodb://localhost:27017"
	}
	if c.Mongo.Database == "" {
		c.Mongo.Database = "blogdb"
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
	if len(c.Kafka.Brokers) == 0 {
		c.Kafka.Brokers = []string{"localhost:9092"}
	}
	if c.Kafka.EmailTopic == "" {
		c.Kafka.EmailTopic = "email.jobs"
	}
	if c.Kafka.ConsumerGroup == "" {
		c.Kafka.ConsumerGroup = "email-workers"
	}
	if c.Kafka.Workers == 0 {
		c.Kafka.Workers = 2
	}
	if c.Cache.TTLSeconds == 0 {
		c.Cache.TTLSeconds = 3600
	}
	if c.Queue.Attempts == 0 {
		c.Queue.Attempts = 3
	}
	if c.Queue.BackoffSeconds == 0 {
		c.Queue.BackoffSeconds = 5
	}
	if c.JWT.TTLHours == 0 {
		c.JWT.TTLHours = 24
	}

	c.ReadTimeout = time.Duration(c.App.ReadTimeoutSeconds) * time.Second
	c.WriteTimeout = time.Duration(c.App.WriteTimeoutSeconds) * time.Second
	c.IdleTimeout = time.Duration(c.App.IdleTimeoutSeconds) * time.Second
	c.CacheTTL = time.Duration(c.Cache.TTLSeconds) * time.Second
	c.Backoff = time.Duration(c.Queue.BackoffSeconds) * time.Second
	c.JWTTTL = time.Duration(c.JWT.TTLHours) * time.Hour
	return &c, nil
}
