package config

import (
	"fmt"
	"time"
)

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	Database    Database
	Auth        Auth
	Orders      Orders

	Payment   Payment   `envPrefix:"PAYMENT_"`
	Paypal    Paypal    `envPrefix:"PAYPAL_"`
	BrainTree Braintree `envPrefix:"BRAINTREE_"`
}

type Paypal struct {
	BaseApiURL   string `env:"BASE_API_URL" envDefault:"https://api-m.sandbox.paypal.com"`
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
}

type Braintree struct {
	Environment string `env:"ENVIRONMENT"`
	MerchantID  string `env:"MERCHANT_ID"`
	PublicKey   string `env:"PUBLIC_KEY"`
	PrivateKey  string `env:"PRIVATE_KEY"`
}

// Payment selects the provider used by POST /create-payment-intent.
type Payment struct {
	Provider string `env:"PROVIDER" envDefault:"paypal"` // paypal | braintree
	Currency string `env:"CURRENCY" envDefault:"USD"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"4000"`
}

type Database struct {
	Driver string `env:"DATABASE_DRIVER" envDefault:"sqlite"` // sqlite | mysql
	URL    string `env:"DATABASE_URL" envDefault:"fix-manufacture.db"`
}

type Auth struct {
	AccessTokenSecret string        `env:"ACCESS_TOKEN_SECRET,required"`
	AccessTokenTTL    time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"24h"`
}

type Orders struct {
	// DeletePaid decides whether DELETE /orders/:id may remove an order that is already paid.
	DeletePaid string `env:"ORDERS_DELETE_PAID" envDefault:"allow"` // allow | reject
}

// Validate checks the enumerated settings that env tags cannot express.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite", "mysql":
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.Database.Driver)
	}

	switch c.Orders.DeletePaid {
	case "allow", "reject":
	default:
		return fmt.Errorf("unsupported ORDERS_DELETE_PAID %q", c.Orders.DeletePaid)
	}

	switch c.Payment.Provider {
	case "paypal", "braintree":
	default:
		return fmt.Errorf("unsupported PAYMENT_PROVIDER %q", c.Payment.Provider)
	}

	if c.Auth.AccessTokenTTL <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_TTL must be positive")
	}

	return nil
}
