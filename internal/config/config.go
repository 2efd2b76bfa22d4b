package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Port           string `mapstructure:"port"`
		OutputFilename string `mapstructure:"output_filename"`
	} `mapstructure:"app"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`
	Rebuild struct {
		BaseURL string `mapstructure:"base_url"`
	} `mapstructure:"rebuild"`
	History struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"history"`
}

func LoadConfig() (cfg Config, err error) {

	err = godotenv.Load()
	if err != nil {
		log.Println("warning: .env file not found, use default.")
	}

	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if err = viper.ReadInConfig(); err != nil {
		log.Printf("note: config.yaml not found, read .env only. Error: %v", err)
	}

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("app.port", "3000")
	viper.SetDefault("app.output_filename", "Tailored_Resume.pdf")
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("rebuild.base_url", "http://localhost:8000")

	viper.BindEnv("app.port", "APP_PORT")
	viper.BindEnv("app.output_filename", "OUTPUT_FILENAME")
	viper.BindEnv("redis.addr", "REDIS_ADDR")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")
	viper.BindEnv("rebuild.base_url", "REBUILD_SERVICE_URL")
	viper.BindEnv("history.dsn", "HISTORY_DATABASE_URL")

	err = viper.Unmarshal(&cfg)
	return
}
