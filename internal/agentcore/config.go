// Package agentcore wraps the AWS Bedrock AgentCore primitives (Runtime,
// Memory, Code Interpreter, Browser, Gateway) behind small adapters. The
// AgentCore control-plane SDK is not published yet, so every adapter
// validates its inputs and returns deterministic placeholder results;
// the call sites and wire shapes are final.
package agentcore

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ErrServiceDisabled is returned by adapter constructors when the
// corresponding feature flag is off.
var ErrServiceDisabled = errors.New("agentcore: service disabled in configuration")

// Environment is the deployment environment the adapters target.
type Environment string

const (
	EnvLocal       Environment = "local"
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

// Config holds the AgentCore service settings, loaded from
// AGENTCORE_*-prefixed environment variables.
type Config struct {
	Environment        Environment `mapstructure:"environment"`
	AWSRegion          string      `mapstructure:"aws_region"`
	AWSAccessKeyID     string      `mapstructure:"aws_access_key_id"`
	AWSSecretAccessKey string      `mapstructure:"aws_secret_access_key"`

	RuntimeEnabled         bool `mapstructure:"runtime_enabled"`
	MemoryEnabled          bool `mapstructure:"memory_enabled"`
	CodeInterpreterEnabled bool `mapstructure:"code_interpreter_enabled"`
	BrowserEnabled         bool `mapstructure:"browser_enabled"`
	GatewayEnabled         bool `mapstructure:"gateway_enabled"`

	RuntimeTimeoutSeconds int `mapstructure:"runtime_timeout_seconds"`
	RuntimeMemoryLimitMB  int `mapstructure:"runtime_memory_limit_mb"`

	MemoryRetentionDays          int  `mapstructure:"memory_retention_days"`
	MemoryMaxMessages            int  `mapstructure:"memory_max_messages"`
	MemorySemanticSearchEnabled  bool `mapstructure:"memory_semantic_search_enabled"`

	CodeInterpreterTimeoutSeconds int `mapstructure:"code_interpreter_timeout_seconds"`
	CodeInterpreterMemoryLimitMB  int `mapstructure:"code_interpreter_memory_limit_mb"`

	BrowserTimeoutSeconds int  `mapstructure:"browser_timeout_seconds"`
	BrowserHeadless       bool `mapstructure:"browser_headless"`

	GatewayTimeoutSeconds      int `mapstructure:"gateway_timeout_seconds"`
	GatewayRateLimitPerMinute  int `mapstructure:"gateway_rate_limit_per_minute"`

	S3BucketName   string `mapstructure:"s3_bucket_name"`
	S3BucketRegion string `mapstructure:"s3_bucket_region"`

	DynamoDBMCPCatalogTable  string `mapstructure:"dynamodb_mcp_catalog_table"`
	DynamoDBOAuthStatesTable string `mapstructure:"dynamodb_oauth_states_table"`

	SecretsManagerPrefix string `mapstructure:"secrets_manager_prefix"`

	FallbackToDatabase      bool `mapstructure:"fallback_to_database"`
	FallbackToLegacySandbox bool `mapstructure:"fallback_to_legacy_sandbox"`
}

// LoadConfig reads AgentCore settings from the environment and validates
// them. It fails fast: a misconfigured deployment should not come up.
func LoadConfig() (*Config, error) {
	v := viper.New()

	// AutomaticEnv only resolves keys viper already knows about, so every
	// field needs a default even when that default is empty.
	v.SetDefault("environment", string(EnvLocal))
	v.SetDefault("aws_region", "us-east-1")
	v.SetDefault("aws_access_key_id", "")
	v.SetDefault("aws_secret_access_key", "")
	v.SetDefault("runtime_enabled", true)
	v.SetDefault("memory_enabled", true)
	v.SetDefault("code_interpreter_enabled", true)
	v.SetDefault("browser_enabled", true)
	v.SetDefault("gateway_enabled", true)
	v.SetDefault("runtime_timeout_seconds", 300)
	v.SetDefault("runtime_memory_limit_mb", 2048)
	v.SetDefault("memory_retention_days", 90)
	v.SetDefault("memory_max_messages", 10000)
	v.SetDefault("memory_semantic_search_enabled", true)
	v.SetDefault("code_interpreter_timeout_seconds", 30)
	v.SetDefault("code_interpreter_memory_limit_mb", 1024)
	v.SetDefault("browser_timeout_seconds", 60)
	v.SetDefault("browser_headless", true)
	v.SetDefault("gateway_timeout_seconds", 30)
	v.SetDefault("gateway_rate_limit_per_minute", 60)
	v.SetDefault("s3_bucket_name", "")
	v.SetDefault("s3_bucket_region", "")
	v.SetDefault("dynamodb_mcp_catalog_table", "mcp_catalog")
	v.SetDefault("dynamodb_oauth_states_table", "oauth_states")
	v.SetDefault("secrets_manager_prefix", "kortix")
	v.SetDefault("fallback_to_database", true)
	v.SetDefault("fallback_to_legacy_sandbox", false)

	v.SetEnvPrefix("AGENTCORE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding agentcore config: %w", err)
	}
	cfg.Environment = Environment(strings.ToLower(string(cfg.Environment)))
	if cfg.S3BucketRegion == "" {
		cfg.S3BucketRegion = cfg.AWSRegion
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the invariants the adapters rely on.
func (c *Config) Validate() error {
	switch c.Environment {
	case EnvLocal, EnvDevelopment, EnvProduction:
	default:
		return fmt.Errorf("invalid AGENTCORE_ENVIRONMENT %q: must be local, development or production", c.Environment)
	}

	if !c.IsLocal() && (c.AWSAccessKeyID == "" || c.AWSSecretAccessKey == "") {
		return fmt.Errorf("AWS credentials required for %s environment: set AGENTCORE_AWS_ACCESS_KEY_ID and AGENTCORE_AWS_SECRET_ACCESS_KEY", c.Environment)
	}

	if (c.CodeInterpreterEnabled || c.BrowserEnabled) && c.S3BucketName == "" {
		return errors.New("S3 bucket name required when code interpreter or browser is enabled: set AGENTCORE_S3_BUCKET_NAME")
	}

	if c.RuntimeTimeoutSeconds <= 0 {
		return errors.New("runtime timeout must be positive")
	}
	if c.CodeInterpreterTimeoutSeconds <= 0 {
		return errors.New("code interpreter timeout must be positive")
	}
	if c.BrowserTimeoutSeconds <= 0 {
		return errors.New("browser timeout must be positive")
	}
	if c.GatewayTimeoutSeconds <= 0 {
		return errors.New("gateway timeout must be positive")
	}
	return nil
}

// ResourcePrefix names AgentCore resources per environment, e.g.
// "agentcore-production".
func (c *Config) ResourcePrefix() string {
	return "agentcore-" + string(c.Environment)
}

func (c *Config) IsLocal() bool      { return c.Environment == EnvLocal }
func (c *Config) IsProduction() bool { return c.Environment == EnvProduction }

// requireCredentials is shared by the adapter constructors.
func (c *Config) requireCredentials(service string) error {
	if c.IsLocal() {
		return nil
	}
	if c.AWSAccessKeyID == "" || c.AWSSecretAccessKey == "" {
		return fmt.Errorf("AWS credentials required for AgentCore %s", service)
	}
	return nil
}
