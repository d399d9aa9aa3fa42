package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Debug           bool
	TestMode        bool
	Env             string
	Build           string
	AppName         string
	SecretKey       []byte
	WorkDir         string
	FrontendBaseURL string
	Currency        string

	DefaultFromEmail mail.Address
	SendgridApiKey   string
	RollbarToken     string

	Server struct {
		Host                      string
		Addr                      string
		DebugAddr                 string
		ShutdownTimeout           time.Duration
		JWTExpirationDelta        time.Duration
		JWTRefreshExpirationDelta time.Duration
	}

	Cart struct {
		CountdownBase      time.Duration // initial countdown window
		CountdownPerCourse time.Duration // added per qualifying course
		TickInterval       time.Duration
	}

	Payment struct {
		ProcessingTicks int
		TickInterval    time.Duration
		SimulateFailure bool // makes the `failed` state reachable (demo only)
	}
}

func NewConfig() *Config {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("build", "dev")
	v.SetDefault("appName", "Kings Portal")
	v.SetDefault("secretKey", "x#2b)8fz&$u0q(h!mk57=dzvoh2wc9(#yg4h^$cegm2emy+pr")
	v.SetDefault("frontendBaseURL", "http://localhost:3000")
	v.SetDefault("currency", "THB")
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("serverHost", "localhost")
	v.SetDefault("serverAddr", ":8000")
	v.SetDefault("serverDebugAddr", ":4000")
	v.SetDefault("serverShutdownTimeout", 5*time.Second)
	v.SetDefault("jwtExpirationDelta", 7*24*time.Hour)
	v.SetDefault("jwtRefreshExpirationDelta", 4*time.Hour)
	v.SetDefault("cartCountdownBase", 10*time.Minute)
	v.SetDefault("cartCountdownPerCourse", 5*time.Minute)
	v.SetDefault("cartTickInterval", time.Second)
	v.SetDefault("paymentProcessingTicks", 10)
	v.SetDefault("paymentTickInterval", time.Second)
	v.SetDefault("paymentSimulateFailure", false)

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	if env == "" {
		env = "DEV"
	}
	v.SetEnvPrefix(env)

	wd := Getwd()

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	conf := &Config{
		Debug:           v.GetBool("debug"),
		TestMode:        env == "TEST",
		Env:             env,
		Build:           v.GetString("build"),
		AppName:         v.GetString("appName"),
		SecretKey:       []byte(v.GetString("secretKey")),
		WorkDir:         wd,
		FrontendBaseURL: v.GetString("frontendBaseURL"),
		Currency:        v.GetString("currency"),
		DefaultFromEmail: mail.Address{
			Name:    v.GetString("appName"),
			Address: v.GetString("defaultFromEmail"),
		},
		SendgridApiKey: v.GetString("sendgridApiKey"),
		RollbarToken:   v.GetString("rollbarToken"),
	}
	conf.Server.Host = v.GetString("serverHost")
	conf.Server.Addr = v.GetString("serverAddr")
	conf.Server.DebugAddr = v.GetString("serverDebugAddr")
	conf.Server.ShutdownTimeout = v.GetDuration("serverShutdownTimeout")
	conf.Server.JWTExpirationDelta = v.GetDuration("jwtExpirationDelta")
	conf.Server.JWTRefreshExpirationDelta = v.GetDuration("jwtRefreshExpirationDelta")
	conf.Cart.CountdownBase = v.GetDuration("cartCountdownBase")
	conf.Cart.CountdownPerCourse = v.GetDuration("cartCountdownPerCourse")
	conf.Cart.TickInterval = v.GetDuration("cartTickInterval")
	conf.Payment.ProcessingTicks = v.GetInt("paymentProcessingTicks")
	conf.Payment.TickInterval = v.GetDuration("paymentTickInterval")
	conf.Payment.SimulateFailure = v.GetBool("paymentSimulateFailure")
	return conf
}

// NewTestConfig returns a Config tuned for test suites: millisecond timer
// ticks so countdown-driven tests run sub-second.
func NewTestConfig() *Config {
	conf := NewConfig()
	conf.TestMode = true
	conf.Cart.TickInterval = time.Millisecond
	conf.Payment.TickInterval = time.Millisecond
	return conf
}
