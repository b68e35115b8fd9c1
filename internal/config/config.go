package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"billsight/internal/domain"
)

// Config holds all application configuration.
type Config struct {
	S3       S3Config
	Bedrock  BedrockConfig
	Textract TextractConfig
	Analysis AnalysisConfig
	Log      LogConfig
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// BedrockConfig holds model invocation settings. Zero-valued generation
// parameters fall back to the selected backend's defaults; Temperature is nil
// when unset so that 0 stays configurable.
type BedrockConfig struct {
	Region        string        `mapstructure:"region"`
	Endpoint      string        `mapstructure:"endpoint"`
	Backend       string        `mapstructure:"backend"`
	ModelID       string        `mapstructure:"model_id"`
	MaxTokens     int           `mapstructure:"max_tokens"`
	Temperature   *float64      `mapstructure:"temperature"`
	TopP          float64       `mapstructure:"top_p"`
	TopK          int           `mapstructure:"top_k"`
	StopSequences []string      `mapstructure:"stop_sequences"`
	MaxAttempts   int           `mapstructure:"max_attempts"`
	BackoffUnit   time.Duration `mapstructure:"backoff_unit"`
	BackoffLinear float64       `mapstructure:"backoff_linear"`
}

// LinearTerm returns the per-attempt linear backoff term. A negative value in
// config means "use the backend default".
func (b *BedrockConfig) LinearTerm() float64 {
	if b.BackoffLinear >= 0 {
		return b.BackoffLinear
	}
	if domain.ModelBackend(b.Backend) == domain.BackendClaude {
		return 0.1
	}
	return 0
}

// TextractConfig holds OCR extraction settings.
type TextractConfig struct {
	Region            string `mapstructure:"region"`
	Endpoint          string `mapstructure:"endpoint"`
	RequiredExtension string `mapstructure:"required_extension"`
	OutputPrefix      string `mapstructure:"output_prefix"`
	KeyPolicy         string `mapstructure:"key_policy"`
}

// AnalysisConfig holds document analysis output settings.
type AnalysisConfig struct {
	KeyPolicy string `mapstructure:"key_policy"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the BILLSIGHT_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BILLSIGHT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// S3 defaults
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Bedrock defaults
	v.SetDefault("bedrock.region", "ap-south-1")
	v.SetDefault("bedrock.endpoint", "")
	v.SetDefault("bedrock.backend", string(domain.BackendClaude))
	v.SetDefault("bedrock.model_id", "")
	v.SetDefault("bedrock.max_tokens", 0)
	v.SetDefault("bedrock.top_p", 0)
	v.SetDefault("bedrock.top_k", 0)
	v.SetDefault("bedrock.stop_sequences", "")
	v.SetDefault("bedrock.max_attempts", 5)
	v.SetDefault("bedrock.backoff_unit", "1s")
	v.SetDefault("bedrock.backoff_linear", -1)

	// Textract defaults
	v.SetDefault("textract.region", "")
	v.SetDefault("textract.endpoint", "")
	v.SetDefault("textract.required_extension", ".jpg")
	v.SetDefault("textract.output_prefix", "output/")
	v.SetDefault("textract.key_policy", string(domain.KeyPolicyFixed))

	v.SetDefault("analysis.key_policy", string(domain.KeyPolicyUnique))

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string][]string{
		"s3.region":                   {"BILLSIGHT_S3_REGION", "AWS_REGION"},
		"s3.bucket":                   {"BILLSIGHT_S3_BUCKET", "S3_BUCKET"},
		"s3.endpoint":                 {"BILLSIGHT_S3_ENDPOINT"},
		"s3.access_key":               {"BILLSIGHT_S3_ACCESS_KEY"},
		"s3.secret_key":               {"BILLSIGHT_S3_SECRET_KEY"},
		"s3.presign_expiry":           {"BILLSIGHT_S3_PRESIGN_EXPIRY"},
		"bedrock.region":              {"BILLSIGHT_BEDROCK_REGION"},
		"bedrock.endpoint":            {"BILLSIGHT_BEDROCK_ENDPOINT"},
		"bedrock.backend":             {"BILLSIGHT_BEDROCK_BACKEND"},
		"bedrock.model_id":            {"BILLSIGHT_BEDROCK_MODEL_ID"},
		"bedrock.max_tokens":          {"BILLSIGHT_BEDROCK_MAX_TOKENS"},
		"bedrock.temperature":         {"BILLSIGHT_BEDROCK_TEMPERATURE"},
		"bedrock.top_p":               {"BILLSIGHT_BEDROCK_TOP_P"},
		"bedrock.top_k":               {"BILLSIGHT_BEDROCK_TOP_K"},
		"bedrock.stop_sequences":      {"BILLSIGHT_BEDROCK_STOP_SEQUENCES"},
		"bedrock.max_attempts":        {"BILLSIGHT_BEDROCK_MAX_ATTEMPTS"},
		"bedrock.backoff_unit":        {"BILLSIGHT_BEDROCK_BACKOFF_UNIT"},
		"bedrock.backoff_linear":      {"BILLSIGHT_BEDROCK_BACKOFF_LINEAR"},
		"textract.region":             {"BILLSIGHT_TEXTRACT_REGION", "AWS_REGION"},
		"textract.endpoint":           {"BILLSIGHT_TEXTRACT_ENDPOINT"},
		"textract.required_extension": {"BILLSIGHT_TEXTRACT_REQUIRED_EXTENSION"},
		"textract.output_prefix":      {"BILLSIGHT_TEXTRACT_OUTPUT_PREFIX"},
		"textract.key_policy":         {"BILLSIGHT_TEXTRACT_KEY_POLICY"},
		"analysis.key_policy":         {"BILLSIGHT_ANALYSIS_KEY_POLICY"},
		"log.level":                   {"BILLSIGHT_LOG_LEVEL"},
		"log.format":                  {"BILLSIGHT_LOG_FORMAT"},
	}
	for key, envs := range envBindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, eris.Wrapf(err, "config: bind %s", key)
		}
	}

	cfg := &Config{}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Bedrock = BedrockConfig{
		Region:        v.GetString("bedrock.region"),
		Endpoint:      v.GetString("bedrock.endpoint"),
		Backend:       strings.ToLower(v.GetString("bedrock.backend")),
		ModelID:       v.GetString("bedrock.model_id"),
		MaxTokens:     v.GetInt("bedrock.max_tokens"),
		TopP:          v.GetFloat64("bedrock.top_p"),
		TopK:          v.GetInt("bedrock.top_k"),
		StopSequences: splitList(v.GetString("bedrock.stop_sequences")),
		MaxAttempts:   v.GetInt("bedrock.max_attempts"),
		BackoffUnit:   v.GetDuration("bedrock.backoff_unit"),
		BackoffLinear: v.GetFloat64("bedrock.backoff_linear"),
	}
	if v.IsSet("bedrock.temperature") {
		temperature := v.GetFloat64("bedrock.temperature")
		cfg.Bedrock.Temperature = &temperature
	}
	cfg.Textract = TextractConfig{
		Region:            v.GetString("textract.region"),
		Endpoint:          v.GetString("textract.endpoint"),
		RequiredExtension: v.GetString("textract.required_extension"),
		OutputPrefix:      v.GetString("textract.output_prefix"),
		KeyPolicy:         v.GetString("textract.key_policy"),
	}
	cfg.Analysis = AnalysisConfig{
		KeyPolicy: v.GetString("analysis.key_policy"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	return cfg, nil
}

// Parse comma-separated values, dropping blank items. Non-blank items are kept
// verbatim since stop sequences may start with newlines.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if strings.TrimSpace(item) != "" {
			out = append(out, item)
		}
	}
	return out
}

// InitLogger builds a zap logger from cfg and installs it as the global logger.
func InitLogger(cfg LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return logger, nil
}
