package config

type ServiceConfig struct {
	Name        string          `yaml:"name"`
	Environment string          `yaml:"environment"`
	Version     string          `yaml:"version"`
	ClientURL   string          `yaml:"client_url"`
	JWTSecret   string          `yaml:"jwt_secret"`
	Braintree   BraintreeConfig `yaml:"braintree"`
}

// BraintreeConfig holds the gateway credentials. The client is constructed
// explicitly from this at process start; there is no package-level setup.
type BraintreeConfig struct {
	Environment   string `yaml:"environment"` // sandbox or production
	MerchantID    string `yaml:"merchant_id"`
	PublicKey     string `yaml:"public_key"`
	PrivateKey    string `yaml:"private_key"`
	WebhookSecret string `yaml:"webhook_secret"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}
