package app

import (
	"errors"
	"fmt"
	"net/http"
	"net/netip"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	authhttp "github.com/aussiebroadwan/passgate/internal/auth/http"
	"github.com/aussiebroadwan/passgate/pkg/httpx"
)

const (
	AlgHS256 = "HS256"
	AlgEdDSA = "EdDSA"
)

type Config struct {
	Env                 string        `env:"ENV"                   envDefault:"dev"`  // dev, staging, prod
	LogLevel            string        `env:"LOG_LEVEL"             envDefault:"info"` // debug, info, warn, error
	LogFormat           string        `env:"LOG_FORMAT"            envDefault:"json"` // json, text
	Port                int           `env:"PORT"                  envDefault:"8080"`
	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
	CORSAllowedOrigins  []string      `env:"CORS_ALLOWED_ORIGINS"  envSeparator:","`
	TrustedProxies      []string      `env:"TRUSTED_PROXIES"       envSeparator:","` // CIDRs or IPs allowed to set X-Forwarded-For

	DatabaseFile string `env:"AUTH_DATABASE_FILE" envDefault:"auth.db"`
	PepperFile   string `env:"AUTH_PEPPER_FILE"   envDefault:"pepper"`

	Issuer           string        `env:"AUTH_ISSUER"            envDefault:"passgate"`
	SessionAlgorithm string        `env:"AUTH_SESSION_ALGORITHM" envDefault:"HS256"`
	JWTSecret        string        `env:"JWT_SECRET"`
	SigningKeyFile   string        `env:"AUTH_SIGNING_KEY_FILE"` // PEM Ed25519 key for EdDSA
	SessionTTL       time.Duration `env:"AUTH_SESSION_TTL"       envDefault:"24h"`

	OTPTTL                  time.Duration `env:"AUTH_OTP_TTL"                   envDefault:"10m"`
	OTPRetention            time.Duration `env:"AUTH_OTP_RETENTION"             envDefault:"24h"`
	ConcealAccountExistence bool          `env:"AUTH_CONCEAL_ACCOUNT_EXISTENCE" envDefault:"false"`
	HousekeepingInterval    time.Duration `env:"HOUSEKEEPING_INTERVAL"          envDefault:"1h"`

	CookieName     string `env:"AUTH_COOKIE_NAME"     envDefault:"token"`
	CookieSecure   *bool  `env:"AUTH_COOKIE_SECURE"`   // unset: on in prod
	CookieSameSite string `env:"AUTH_COOKIE_SAMESITE"` // unset: none in prod, strict otherwise

	SMTPHost               string `env:"SMTP_HOST"` // empty logs mail instead of sending it
	SMTPPort               int    `env:"SMTP_PORT"                 envDefault:"587"`
	SMTPUser               string `env:"SMTP_USER"`
	SMTPPass               string `env:"SMTP_PASS"`
	SenderEmail            string `env:"SENDER_EMAIL"`
	SMTPInsecureSkipVerify bool   `env:"SMTP_INSECURE_SKIP_VERIFY"`

	AvatarBucket        string `env:"AVATAR_S3_BUCKET"` // empty disables avatar uploads
	AvatarRegion        string `env:"AVATAR_S3_REGION"       envDefault:"us-east-1"`
	AvatarEndpoint      string `env:"AVATAR_S3_ENDPOINT"`
	AvatarAccessKey     string `env:"AVATAR_S3_ACCESS_KEY"`
	AvatarSecretKey     string `env:"AVATAR_S3_SECRET_KEY"`
	AvatarPublicBaseURL string `env:"AVATAR_PUBLIC_BASE_URL"`
}

// LoadConfig reads the configuration from the environment and validates it.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "prod") || strings.EqualFold(c.Env, "production")
}

// Validate rejects configurations that would run with guessable or
// throwaway session keys in production.
func (c Config) Validate() error {
	switch c.SessionAlgorithm {
	case AlgHS256:
		if c.IsProduction() && c.JWTSecret == "" {
			return errors.New("config: JWT_SECRET is required in production")
		}
	case AlgEdDSA:
		if c.IsProduction() && c.SigningKeyFile == "" {
			return errors.New("config: AUTH_SIGNING_KEY_FILE is required in production")
		}
	default:
		return fmt.Errorf("config: unsupported AUTH_SESSION_ALGORITHM %q", c.SessionAlgorithm)
	}

	if c.OTPTTL <= 0 {
		return errors.New("config: AUTH_OTP_TTL must be positive")
	}
	if c.SessionTTL <= 0 {
		return errors.New("config: AUTH_SESSION_TTL must be positive")
	}
	if c.SMTPHost != "" && c.SenderEmail == "" {
		return errors.New("config: SENDER_EMAIL is required when SMTP_HOST is set")
	}
	if _, err := c.TrustedProxyPrefixes(); err != nil {
		return fmt.Errorf("config: TRUSTED_PROXIES: %w", err)
	}
	return nil
}

func (c Config) TrustedProxyPrefixes() ([]netip.Prefix, error) {
	return httpx.ParseTrustedProxies(c.TrustedProxies)
}

// Cookie derives the session cookie settings. Production defaults to a
// Secure, SameSite=None cookie so a frontend on another origin can send it.
func (c Config) Cookie() authhttp.CookieConfig {
	secure := c.IsProduction()
	if c.CookieSecure != nil {
		secure = *c.CookieSecure
	}

	sameSite := http.SameSiteStrictMode
	switch {
	case c.CookieSameSite != "":
		sameSite = authhttp.ParseSameSite(c.CookieSameSite)
	case c.IsProduction():
		sameSite = http.SameSiteNoneMode
	}

	return authhttp.CookieConfig{
		Name:     c.CookieName,
		Secure:   secure,
		SameSite: sameSite,
		MaxAge:   c.SessionTTL,
	}
}

func readFileTrimmed(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return []byte(strings.TrimSpace(string(b))), nil
}
