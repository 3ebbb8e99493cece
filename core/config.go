package core

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	DatabaseConfig struct {
		Engine        string
		Host          string
		Port          int
		Name          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		DisableTLS    bool
	}

	ServerConfig struct {
		Host string
		Port int
	}

	Config struct {
		AppName          string
		Env              string // DEV (default), TEST, QA, PROD
		Debug            bool
		TestMode         bool
		Build            string
		SecretKey        string
		FrontendBaseURL  string
		DefaultFromEmail string
		SendgridApiKey   string
		RollbarToken     string

		JWTExpirationDelta        time.Duration
		JWTRefreshExpirationDelta time.Duration

		Server   ServerConfig
		Database DatabaseConfig
	}
)

func (c DatabaseConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// NewConfig loads configuration from the environment with sane DEV defaults.
// A config/.env.<env> file is loaded first if it exists.
func NewConfig() *Config {
	conf := viper.New()
	conf.SetTypeByDefaultValue(true)

	// defaults
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "MSTC")
	conf.SetDefault("secretKey", "w3-b41l-a7-m1dn16h7-4nd-5h1p-a7-d4wn")
	conf.SetDefault("frontendBaseURL", "http://localhost:3000")
	conf.SetDefault("defaultFromEmail", "noreply@localhost")
	conf.SetDefault("jwtExpirationDelta", 7*24*time.Hour)
	conf.SetDefault("jwtRefreshExpirationDelta", 4*time.Hour)
	conf.SetDefault("serverHost", "0.0.0.0")
	conf.SetDefault("serverPort", 8080)
	conf.SetDefault("databaseEngine", "postgres")
	conf.SetDefault("databaseHost", "localhost")
	conf.SetDefault("databasePort", 5432)
	conf.SetDefault("databaseName", "mstc")
	conf.SetDefault("databaseUser", "mstc")
	conf.SetDefault("databaseDisableTLS", true)

	env := strings.ToUpper(os.Getenv("ENV"))
	if env == "" {
		env = "DEV"
	}
	conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	return &Config{
		AppName:          conf.GetString("appName"),
		Env:              env,
		Debug:            conf.GetBool("debug"),
		TestMode:         env == "TEST",
		Build:            conf.GetString("build"),
		SecretKey:        conf.GetString("secretKey"),
		FrontendBaseURL:  conf.GetString("frontendBaseURL"),
		DefaultFromEmail: conf.GetString("defaultFromEmail"),
		SendgridApiKey:   conf.GetString("sendgridApiKey"),
		RollbarToken:     conf.GetString("rollbarToken"),

		JWTExpirationDelta:        conf.GetDuration("jwtExpirationDelta"),
		JWTRefreshExpirationDelta: conf.GetDuration("jwtRefreshExpirationDelta"),

		Server: ServerConfig{
			Host: conf.GetString("serverHost"),
			Port: conf.GetInt("serverPort"),
		},
		Database: DatabaseConfig{
			Engine:        conf.GetString("databaseEngine"),
			Host:          conf.GetString("databaseHost"),
			Port:          conf.GetInt("databasePort"),
			Name:          conf.GetString("databaseName"),
			User:          conf.GetString("databaseUser"),
			Password:      conf.GetString("databasePassword"),
			AdminUser:     conf.GetString("databaseAdminUser"),
			AdminPassword: conf.GetString("databaseAdminPassword"),
			DisableTLS:    conf.GetBool("databaseDisableTLS"),
		},
	}
}
