package config

import (
	"time"

	"github.com/spf13/viper"

	"github.com/sudo-hablu/chatter/internal/directory"
	"github.com/sudo-hablu/chatter/internal/hub"
	"github.com/sudo-hablu/chatter/internal/kvstore"
	pkgconfig "github.com/sudo-hablu/chatter/pkg/config"
	"github.com/sudo-hablu/chatter/pkg/idgen"
	"github.com/sudo-hablu/chatter/pkg/log"
)

type Config struct {
	Server       ServerConfig
	Log          log.Config
	Simulator    SimulatorConfig
	Conversation ConversationConfig
	Directory    directory.Config
	OTP          OTPConfig `mapstructure:"otp"`
	Auth         AuthConfig
	Storage      kvstore.Config
	IDs          idgen.Config `mapstructure:"ids"`
	WebSocket    hub.Config
	MockData     MockDataConfig `mapstructure:"mock_data"`
}

type ServerConfig struct {
	Host            string
	Port            int
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type SimulatorConfig struct {
	SentDelay  time.Duration `mapstructure:"sent_delay"`
	ReplyDelay time.Duration `mapstructure:"reply_delay"`
}

type ConversationConfig struct {
	HistorySize int `mapstructure:"history_size"`
}

type OTPConfig struct {
	CodeLength  int           `mapstructure:"code_length"`
	ResendAfter time.Duration `mapstructure:"resend_after"`
	VerifyDelay time.Duration `mapstructure:"verify_delay"`
	Expiry      time.Duration `mapstructure:"expiry"`
}

type AuthConfig struct {
	ProfileDelay time.Duration `mapstructure:"profile_delay"`
}

// MockDataConfig seeds the sample data. Zero picks a random seed.
type MockDataConfig struct {
	Seed uint64
}

// Load reads path (or the default search locations), applies defaults and
// environment overrides.
func Load(path string) (*Config, error) {
	v, err := pkgconfig.Load(path)
	if err != nil {
		return nil, err
	}

	setDefaults(v)

	// Override from environment
	v.BindEnv("server.port", "PORT")
	v.BindEnv("log.level", "LOG_LEVEL")
	v.BindEnv("storage.driver", "STORAGE_DRIVER")
	v.BindEnv("storage.file.base_path", "STORAGE_PATH")
	v.BindEnv("storage.redis.address", "REDIS_ADDRESS")
	v.BindEnv("storage.redis.password", "REDIS_PASSWORD")
	v.BindEnv("storage.database.driver", "DB_DRIVER")
	v.BindEnv("storage.database.host", "DB_HOST")
	v.BindEnv("storage.database.port", "DB_PORT")
	v.BindEnv("storage.database.user", "DB_USER")
	v.BindEnv("storage.database.password", "DB_PASSWORD")
	v.BindEnv("storage.database.dbname", "DB_NAME")
	v.BindEnv("ids.type", "ID_TYPE")
	v.BindEnv("mock_data.seed", "MOCK_SEED")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Parse durations
	cfg.Server.ShutdownTimeout = parseDuration(v, "server.shutdown_timeout", 10*time.Second)
	cfg.Simulator.SentDelay = parseDuration(v, "simulator.sent_delay", time.Second)
	cfg.Simulator.ReplyDelay = parseDuration(v, "simulator.reply_delay", 3*time.Second)
	cfg.OTP.ResendAfter = parseDuration(v, "otp.resend_after", 60*time.Second)
	cfg.OTP.VerifyDelay = parseDuration(v, "otp.verify_delay", 1500*time.Millisecond)
	cfg.OTP.Expiry = parseDuration(v, "otp.expiry", 10*time.Minute)
	cfg.Auth.ProfileDelay = parseDuration(v, "auth.profile_delay", 1500*time.Millisecond)
	cfg.WebSocket.PingInterval = parseDuration(v, "websocket.ping_interval", 30*time.Second)
	cfg.WebSocket.PongWait = parseDuration(v, "websocket.pong_wait", 60*time.Second)
	cfg.WebSocket.WriteWait = parseDuration(v, "websocket.write_wait", 10*time.Second)

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("log.service_name", "chatter")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("simulator.sent_delay", "1s")
	v.SetDefault("simulator.reply_delay", "3s")
	v.SetDefault("conversation.history_size", 20)
	v.SetDefault("directory.chats", 15)
	v.SetDefault("directory.contacts", 25)
	v.SetDefault("directory.new_chat_contacts", 15)
	v.SetDefault("directory.calls", 12)
	v.SetDefault("otp.code_length", 4)
	v.SetDefault("otp.resend_after", "60s")
	v.SetDefault("otp.verify_delay", "1500ms")
	v.SetDefault("otp.expiry", "10m")
	v.SetDefault("auth.profile_delay", "1500ms")
	v.SetDefault("storage.driver", kvstore.DriverFile)
	v.SetDefault("storage.file.base_path", "./data")
	v.SetDefault("storage.redis.address", "localhost:6379")
	v.SetDefault("storage.redis.password", "")
	v.SetDefault("storage.redis.db", 0)
	v.SetDefault("storage.redis.prefix", "chatter")
	v.SetDefault("storage.database.driver", "sqlite")
	v.SetDefault("storage.database.file_path", "chatter.db")
	v.SetDefault("storage.database.log_level", "warn")
	v.SetDefault("ids.type", idgen.TypeULID)
	v.SetDefault("websocket.ping_interval", "30s")
	v.SetDefault("websocket.pong_wait", "60s")
	v.SetDefault("websocket.write_wait", "10s")
	v.SetDefault("websocket.max_message_size", 4096)
	v.SetDefault("websocket.send_buffer", 256)
	v.SetDefault("mock_data.seed", 0)
}

func parseDuration(v *viper.Viper, key string, defaultVal time.Duration) time.Duration {
	str := v.GetString(key)
	d, err := time.ParseDuration(str)
	if err != nil {
		return defaultVal
	}
	return d
}
