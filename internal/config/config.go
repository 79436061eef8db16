package config

import (
	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/kbenedict/customer-orders/pkg/logger"
	"github.com/pkg/errors"
)

const ConfigTagName = "env"
const ConfigDefaultTagName = "default"

var config *Config

// Config holds every env-sourced value used by the service. It is built
// once at process start and must be the only source of configuration;
// no direct os.Getenv access elsewhere.
type Config struct {
	AppEnv  string `env:"APP_ENV" default:"dev"`
	AppName string `env:"APP_NAME" default:"customer_orders"`

	HttpListenAddr      string `env:"HTTP_LISTEN_ADDR" default:":8000"`
	AppDebugMetricsAddr string `env:"APP_DEBUG_METRIC_ADDR"`
	AppDebugMetricsURI  string `env:"APP_DEBUG_METRIC_URI" default:"/metrics"`
	CORSAllowOrigin     string `env:"CORS_ALLOW_ORIGIN" default:"http://127.0.0.1:8000"`

	DBName     string `env:"DB_NAME"`
	DBUser     string `env:"DB_USER"`
	DBPassword string `env:"DB_PASSWORD"`
	DBHost     string `env:"DB_HOST"`
	DBPort     string `env:"DB_PORT"`

	Auth0Domain       string `env:"AUTH0_DOMAIN"`
	Auth0ClientID     string `env:"AUTH0_CLIENT_ID"`
	Auth0ClientSecret string `env:"AUTH0_CLIENT_SECRET"`
	Auth0APIAudience  string `env:"AUTH0_API_AUDIENCE"`
	Auth0CallbackURL  string `env:"AUTH0_CALLBACK_URL" default:"http://127.0.0.1:8000/callback"`

	// Browser destinations after the identity flows finish.
	LoginPageURL  string `env:"LOGIN_PAGE_URL" default:"http://127.0.0.1:5500/static/login.html"`
	OrdersPageURL string `env:"ORDERS_PAGE_URL" default:"http://127.0.0.1:8000/static/customer_orders.html"`

	ATUsername string `env:"AT_USERNAME"`
	ATAPIKey   string `env:"AT_API_KEY"`
	ATSenderID string `env:"AT_SENDER_ID" default:"KBenedict"`
	ATAPIURL   string `env:"AT_API_URL" default:"https://api.africastalking.com/version1/messaging"`

	AuthEnforced bool `env:"AUTH_ENFORCED" default:"1"`
}

func Load(path string) error {
	logger.Info("loading configs..", "path", path)
	c := &Config{}
	var err error
	if path != "" {
		logger.Info("trying to publish env from file", "path", path)
		err = godotenv.Load(path)
		if err != nil {
			return errors.New("failed to load configuration file " + path + " error: " + err.Error())
		}
	}

	_, err = env.UnmarshalFromEnviron(c)

	if err != nil {
		return errors.New("failed to map env variables to Configuration object " + " error: " + err.Error())
	}

	config = c
	return nil
}

func Get() *Config {
	if config == nil {
		logger.Panic("Config is not initialized")
	}
	return config
}
