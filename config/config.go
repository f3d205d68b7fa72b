package config

import (
	"log"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Telephony provider selection and credentials.
type TelephonyConfig struct {
	Provider string       `mapstructure:"provider" validate:"required,oneof=twilio vonage"`
	Twilio   TwilioConfig `mapstructure:"twilio"`
	Vonage   VonageConfig `mapstructure:"vonage"`
}

type TwilioConfig struct {
	AccountSid string `mapstructure:"account_sid"`
	AuthToken  string `mapstructure:"auth_token"`
	FromNumber string `mapstructure:"from_number"`
}

type VonageConfig struct {
	ApplicationId string `mapstructure:"application_id"`
	PrivateKey    string `mapstructure:"private_key"`
	FromNumber    string `mapstructure:"from_number"`
}

// Inference provider selection and credentials.
// Timeout of zero means the generation call is allowed to run unbounded.
type InferenceConfig struct {
	Provider string        `mapstructure:"provider" validate:"required,oneof=openai anthropic"`
	ApiKey   string        `mapstructure:"api_key"`
	Model    string        `mapstructure:"model"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// Session store housekeeping. Ttl of zero keeps every session for the
// lifetime of the process.
type SessionConfig struct {
	Ttl           time.Duration `mapstructure:"ttl"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

type CallLogConfig struct {
	Dsn string `mapstructure:"dsn" validate:"required"`
}

// Application config structure
type AppConfig struct {
	Name     string `mapstructure:"service_name" validate:"required"`
	Version  string `mapstructure:"version" validate:"required"`
	Host     string `mapstructure:"host" validate:"required"`
	Port     int    `mapstructure:"port" validate:"required"`
	LogLevel string `mapstructure:"log_level" validate:"required"`
	LogFile  string `mapstructure:"log_file"`

	// PublicBaseUrl is the externally reachable base URL handed to the
	// telephony provider when placing a call; the provider calls back on
	// <PublicBaseUrl>/handle-call and <PublicBaseUrl>/process-recording.
	PublicBaseUrl string `mapstructure:"public_base_url" validate:"required,url"`

	Telephony TelephonyConfig `mapstructure:"telephony"`
	Inference InferenceConfig `mapstructure:"inference"`
	Session   SessionConfig   `mapstructure:"session"`
	CallLog   CallLogConfig   `mapstructure:"calllog"`
}

// reading config and initializing configs for application
func InitConfig() (*viper.Viper, error) {
	vConfig := viper.NewWithOptions(viper.KeyDelimiter("__"))

	vConfig.AddConfigPath(".")
	vConfig.SetConfigName(".env")
	path := os.Getenv("ENV_PATH")
	if path != "" {
		log.Printf("env path %v", path)
		vConfig.SetConfigFile(path)
	}
	vConfig.SetConfigType("env")
	vConfig.AutomaticEnv()

	setDefault(vConfig)
	if err := vConfig.ReadInConfig(); err != nil {
		log.Printf("no config file found, reading from env variables")
	}

	return vConfig, nil
}

func setDefault(v *viper.Viper) {
	// setting all default values
	// keeping watch on https://github.com/spf13/viper/issues/188

	v.SetDefault("SERVICE_NAME", "callback-api")
	v.SetDefault("VERSION", "0.0.1")
	v.SetDefault("HOST", "0.0.0.0")
	v.SetDefault("PORT", 9090)
	v.SetDefault("LOG_LEVEL", "debug")
	v.SetDefault("LOG_FILE", "")
	v.SetDefault("PUBLIC_BASE_URL", "http://localhost:9090")

	v.SetDefault("TELEPHONY__PROVIDER", "twilio")
	v.SetDefault("TELEPHONY__TWILIO__ACCOUNT_SID", "")
	v.SetDefault("TELEPHONY__TWILIO__AUTH_TOKEN", "")
	v.SetDefault("TELEPHONY__TWILIO__FROM_NUMBER", "")
	v.SetDefault("TELEPHONY__VONAGE__APPLICATION_ID", "")
	v.SetDefault("TELEPHONY__VONAGE__PRIVATE_KEY", "")
	v.SetDefault("TELEPHONY__VONAGE__FROM_NUMBER", "")

	v.SetDefault("INFERENCE__PROVIDER", "openai")
	v.SetDefault("INFERENCE__API_KEY", "")
	v.SetDefault("INFERENCE__MODEL", "")
	v.SetDefault("INFERENCE__TIMEOUT", "0s")

	v.SetDefault("SESSION__TTL", "0s")
	v.SetDefault("SESSION__SWEEP_INTERVAL", "1m")

	v.SetDefault("CALLLOG__DSN", "callback.db")
}

// Getting application config from viper
func GetApplicationConfig(v *viper.Viper) (*AppConfig, error) {
	var config AppConfig
	err := v.Unmarshal(&config)
	if err != nil {
		log.Printf("%+v\n", err)
		return nil, err
	}

	// validating the app config
	validate := validator.New()
	err = validate.Struct(&config)
	if err != nil {
		log.Printf("%+v\n", err)
		return nil, err
	}
	return &config, nil
}
