package core

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type (
	Config struct {
		AppName      string
		Build        string
		Env          string // DEV (local; default), TEST, QA, PROD
		Debug        bool
		TestMode     bool
		RollbarToken string

		// APIURL is the base URL of the REST backend.
		APIURL string
		// APITimeout bounds every API call when positive; zero means no timeout.
		APITimeout time.Duration
		// DataDir holds the local session database.
		DataDir string

		DevAPI DevAPIConfig
	}

	DevAPIConfig struct {
		Addr               string
		SecretKey          string
		JWTExpirationDelta time.Duration
		ShutdownTimeout    time.Duration
	}
)

// SessionDBPath is the location of the local session database.
func (c *Config) SessionDBPath() string {
	return filepath.Join(c.DataDir, "session.db")
}

// NewConfig loads the configuration from the environment and an optional `config/.env.<env>` file.
func NewConfig() (*Config, error) {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("appName", "Estudos")
	conf.SetDefault("build", "develop")
	conf.SetDefault("debug", true)
	conf.SetDefault("testMode", false)
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("apiURL", "http://localhost:3000")
	conf.SetDefault("apiTimeout", time.Duration(0))
	conf.SetDefault("dataDir", defaultDataDir())
	conf.SetDefault("devapi.addr", ":3000")
	conf.SetDefault("devapi.secretKey", "k3#b8@x!r2m$-estudos-dev-only-v9q^z7w&t4")
	conf.SetDefault("devapi.jwtExpirationDelta", 7*24*time.Hour)
	conf.SetDefault("devapi.shutdownTimeout", 5*time.Second)

	env := strings.ToUpper(os.Getenv("ENV"))
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	case "QA", "PROD":
		conf.SetDefault("debug", false)
	}
	conf.SetEnvPrefix(env)
	conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "checking %s", dotEnvPath)
	}
	conf.AutomaticEnv()

	apiURL := strings.TrimRight(conf.GetString("apiURL"), "/")
	if apiURL == "" {
		return nil, errors.New("apiURL is required")
	}

	return &Config{
		AppName:      conf.GetString("appName"),
		Build:        conf.GetString("build"),
		Env:          env,
		Debug:        conf.GetBool("debug"),
		TestMode:     conf.GetBool("testMode"),
		RollbarToken: conf.GetString("rollbarToken"),
		APIURL:       apiURL,
		APITimeout:   conf.GetDuration("apiTimeout"),
		DataDir:      conf.GetString("dataDir"),
		DevAPI: DevAPIConfig{
			Addr:               conf.GetString("devapi.addr"),
			SecretKey:          conf.GetString("devapi.secretKey"),
			JWTExpirationDelta: conf.GetDuration("devapi.jwtExpirationDelta"),
			ShutdownTimeout:    conf.GetDuration("devapi.shutdownTimeout"),
		},
	}, nil
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".estudos"
	}
	return filepath.Join(home, ".estudos")
}
