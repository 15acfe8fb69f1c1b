package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel   string     `yaml:"log-level"   env:"LOG_LEVEL"   env-default:"info"`
	HTTPPort   string     `yaml:"http-port"   env:"HTTP_PORT"   env-default:"9090"`
	SocketPort string     `yaml:"socket-port" env:"SOCKET_PORT" env-default:"5000"`
	Game       Game       `yaml:"game"`
	Matchmaker Matchmaker `yaml:"matchmaker"`
	Redis      Redis      `yaml:"redis"`
}

type Game struct {
	// BoardAxis of 145 fits the whole 72 tile deck in any shape.
	BoardAxis   int           `yaml:"board-axis"   env:"GAME_BOARD_AXIS"   env-default:"145"`
	MoveTimeout time.Duration `yaml:"move-timeout" env:"GAME_MOVE_TIMEOUT" env-default:"5s"`
	// Seed of 0 seeds every session from the clock.
	Seed int64 `yaml:"seed" env:"GAME_SEED" env-default:"0"`
}

type Matchmaker struct {
	Redirect      bool          `yaml:"redirect"       env:"MATCHMAKER_REDIRECT"       env-default:"false"`
	AcceptTimeout time.Duration `yaml:"accept-timeout" env:"MATCHMAKER_ACCEPT_TIMEOUT" env-default:"30s"`
	AcceptRate    float64       `yaml:"accept-rate"    env:"MATCHMAKER_ACCEPT_RATE"    env-default:"50"`
	AcceptBurst   int           `yaml:"accept-burst"   env:"MATCHMAKER_ACCEPT_BURST"   env-default:"10"`
}

type Redis struct {
	Host       string        `yaml:"host"        env:"REDIS_HOST"        env-default:"localhost"`
	Port       string        `yaml:"port"        env:"REDIS_PORT"        env-default:"6379"`
	SessionTTL time.Duration `yaml:"session-ttl" env:"REDIS_SESSION_TTL" env-default:"10m"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
