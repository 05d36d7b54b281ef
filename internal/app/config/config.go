// Package config はアプリケーション設定の読み込みを提供します。
//
// 優先順位（高い順）:
//  1. 環境変数（ORACLE_*、およびREDIS_HOST・JWT_SECRET・各プロバイダのAPIキー）
//  2. 設定ファイル（既定ではconfigs/oracle.yaml）
//  3. 既定値
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"lunch_oracle/internal/feature/oracle/usecase"
	jwtmw "lunch_oracle/internal/platform/jwt"
	"lunch_oracle/internal/platform/logging"
	infraredis "lunch_oracle/internal/platform/redis"
)

// EnvPrefix は環境変数の接頭辞です。
const EnvPrefix = "ORACLE"

// Config はアプリケーション全体の設定です。
type Config struct {
	Server     ServerConfig      `mapstructure:"server" yaml:"server"`
	Log        logging.Config    `mapstructure:"log" yaml:"log"`
	Redis      infraredis.Config `mapstructure:"redis" yaml:"redis"`
	Session    SessionConfig     `mapstructure:"session" yaml:"session"`
	Cache      CacheConfig       `mapstructure:"cache" yaml:"cache"`
	Oracle     OracleConfig      `mapstructure:"oracle" yaml:"oracle"`
	Gemini     GeminiConfig      `mapstructure:"gemini" yaml:"gemini"`
	Classifier ClassifierConfig  `mapstructure:"classifier" yaml:"classifier"`
	Prophet    ProphetConfig     `mapstructure:"prophet" yaml:"prophet"`
	Venues     VenuesConfig      `mapstructure:"venues" yaml:"venues"`
}

// ServerConfig はHTTPサーバーの設定です。
type ServerConfig struct {
	Addr         string   `mapstructure:"addr" yaml:"addr"`
	AllowOrigins []string `mapstructure:"allow_origins" yaml:"allow_origins"`
}

// SessionConfig はセッションとアクセストークンの設定です。
type SessionConfig struct {
	Prefix    string        `mapstructure:"prefix" yaml:"prefix"`
	TTL       time.Duration `mapstructure:"ttl" yaml:"ttl"`
	JWTSecret string        `mapstructure:"jwt_secret" yaml:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl" yaml:"token_ttl"`
}

// CacheConfig はプロバイダ呼び出しのメモ化の設定です。
// RedisTTLはRedis利用時のみ有効で、メモリ上のキャッシュは期限なしです。
type CacheConfig struct {
	Enabled  bool          `mapstructure:"enabled" yaml:"enabled"`
	RedisTTL time.Duration `mapstructure:"redis_ttl" yaml:"redis_ttl"`
}

// OracleConfig はラベル語彙・料理辞書・プロンプトの設定です。
type OracleConfig struct {
	Labels         []string `mapstructure:"labels" yaml:"labels"`
	Cuisines       []string `mapstructure:"cuisines" yaml:"cuisines"`
	Persona        string   `mapstructure:"persona" yaml:"persona"`
	PromptTemplate string   `mapstructure:"prompt_template" yaml:"prompt_template"`
	Questions      []string `mapstructure:"questions" yaml:"questions"`
}

// CallConfig はプロバイダ呼び出しごとのタイムアウト・リトライ・レート制限です。
type CallConfig struct {
	Timeout       time.Duration `mapstructure:"timeout" yaml:"timeout"`
	Retries       int           `mapstructure:"retries" yaml:"retries"`
	Backoff       time.Duration `mapstructure:"backoff" yaml:"backoff"`
	RatePerSecond float64       `mapstructure:"rate_per_second" yaml:"rate_per_second"`
	Burst         int           `mapstructure:"burst" yaml:"burst"`
}

// GeminiConfig は分類とお告げで共有するGemini APIの認証情報です。
type GeminiConfig struct {
	APIKey string `mapstructure:"api_key" yaml:"api_key"`
}

// ClassifierConfig は画像分類プロバイダの設定です。
type ClassifierConfig struct {
	Backend string     `mapstructure:"backend" yaml:"backend"` // clip, vision, gemini
	Call    CallConfig `mapstructure:"call" yaml:"call"`
	CLIP    struct {
		APIToken string `mapstructure:"api_token" yaml:"api_token"`
		BaseURL  string `mapstructure:"base_url" yaml:"base_url"`
		Model    string `mapstructure:"model" yaml:"model"`
	} `mapstructure:"clip" yaml:"clip"`
	GeminiModel string `mapstructure:"gemini_model" yaml:"gemini_model"`
}

// ProphetConfig はお告げ生成プロバイダの設定です。
type ProphetConfig struct {
	Backend string     `mapstructure:"backend" yaml:"backend"` // openai, gemini, anthropic
	Call    CallConfig `mapstructure:"call" yaml:"call"`
	OpenAI  struct {
		APIKey      string  `mapstructure:"api_key" yaml:"api_key"`
		BaseURL     string  `mapstructure:"base_url" yaml:"base_url"`
		Model       string  `mapstructure:"model" yaml:"model"`
		MaxTokens   int     `mapstructure:"max_tokens" yaml:"max_tokens"`
		Temperature float32 `mapstructure:"temperature" yaml:"temperature"`
	} `mapstructure:"openai" yaml:"openai"`
	Anthropic struct {
		APIKey    string `mapstructure:"api_key" yaml:"api_key"`
		BaseURL   string `mapstructure:"base_url" yaml:"base_url"`
		Model     string `mapstructure:"model" yaml:"model"`
		MaxTokens int    `mapstructure:"max_tokens" yaml:"max_tokens"`
	} `mapstructure:"anthropic" yaml:"anthropic"`
	GeminiModel string `mapstructure:"gemini_model" yaml:"gemini_model"`
}

// VenuesConfig は店舗検索プロバイダの設定です。
type VenuesConfig struct {
	Backend    string     `mapstructure:"backend" yaml:"backend"` // yelp, places
	Call       CallConfig `mapstructure:"call" yaml:"call"`
	Location   string     `mapstructure:"location" yaml:"location"`
	Qualifier  string     `mapstructure:"qualifier" yaml:"qualifier"`
	Limit      int        `mapstructure:"limit" yaml:"limit"`
	PriceTiers []int      `mapstructure:"price_tiers" yaml:"price_tiers"`
	Yelp       struct {
		APIKey  string `mapstructure:"api_key" yaml:"api_key"`
		BaseURL string `mapstructure:"base_url" yaml:"base_url"`
	} `mapstructure:"yelp" yaml:"yelp"`
	Places struct {
		APIKey  string `mapstructure:"api_key" yaml:"api_key"`
		BaseURL string `mapstructure:"base_url" yaml:"base_url"`
	} `mapstructure:"places" yaml:"places"`
}

// 環境変数名は接頭辞なしでも受け付けます。
var bareEnv = map[string][]string{
	"redis.host":                {"REDIS_HOST"},
	"redis.port":                {"REDIS_PORT"},
	"redis.password":            {"REDIS_PASSWORD"},
	"session.jwt_secret":        {jwtmw.EnvKeyJWTSecret},
	"gemini.api_key":            {"GEMINI_API_KEY", "GOOGLE_API_KEY"},
	"classifier.clip.api_token": {"HF_API_TOKEN"},
	"prophet.openai.api_key":    {"OPENAI_API_KEY"},
	"prophet.anthropic.api_key": {"ANTHROPIC_API_KEY"},
	"venues.yelp.api_key":       {"YELP_API_KEY"},
	"venues.places.api_key":     {"GOOGLE_PLACES_API_KEY"},
}

// SetDefaults はvに既定値を設定します。
// AutomaticEnvは既知のキーにしか効かないため、秘密情報も空文字で登録しておきます。
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.allow_origins", []string{"*"})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 50)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 14)

	v.SetDefault("redis.host", "")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("session.prefix", "oracle:session")
	v.SetDefault("session.ttl", 24*time.Hour)
	v.SetDefault("session.jwt_secret", "")
	v.SetDefault("session.token_ttl", 24*time.Hour)

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.redis_ttl", 24*time.Hour)

	v.SetDefault("oracle.labels", usecase.DefaultLabels)
	v.SetDefault("oracle.cuisines", usecase.DefaultCuisines)
	v.SetDefault("oracle.persona", usecase.DefaultPersona)
	v.SetDefault("oracle.prompt_template", usecase.DefaultPromptTemplate)
	v.SetDefault("oracle.questions", usecase.DefaultQuestions)

	v.SetDefault("gemini.api_key", "")

	for _, stage := range []string{"classifier", "prophet", "venues"} {
		v.SetDefault(stage+".call.timeout", 20*time.Second)
		v.SetDefault(stage+".call.retries", 1)
		v.SetDefault(stage+".call.backoff", 500*time.Millisecond)
		v.SetDefault(stage+".call.rate_per_second", 2.0)
		v.SetDefault(stage+".call.burst", 2)
	}

	v.SetDefault("classifier.backend", "clip")
	v.SetDefault("classifier.clip.api_token", "")
	v.SetDefault("classifier.clip.base_url", "")
	v.SetDefault("classifier.clip.model", "")
	v.SetDefault("classifier.gemini_model", "")

	v.SetDefault("prophet.backend", "openai")
	v.SetDefault("prophet.openai.api_key", "")
	v.SetDefault("prophet.openai.base_url", "")
	v.SetDefault("prophet.openai.model", "")
	v.SetDefault("prophet.openai.max_tokens", 300)
	v.SetDefault("prophet.openai.temperature", 0.9)
	v.SetDefault("prophet.anthropic.api_key", "")
	v.SetDefault("prophet.anthropic.base_url", "")
	v.SetDefault("prophet.anthropic.model", "")
	v.SetDefault("prophet.anthropic.max_tokens", 512)
	v.SetDefault("prophet.gemini_model", "")

	v.SetDefault("venues.backend", "yelp")
	v.SetDefault("venues.location", usecase.DefaultLocation)
	v.SetDefault("venues.qualifier", usecase.DefaultQualifier)
	v.SetDefault("venues.limit", usecase.DefaultVenueLimit)
	v.SetDefault("venues.price_tiers", usecase.DefaultPriceTiers)
	v.SetDefault("venues.yelp.api_key", "")
	v.SetDefault("venues.yelp.base_url", "")
	v.SetDefault("venues.places.api_key", "")
	v.SetDefault("venues.places.base_url", "")
}

// BindEnv はORACLE_*の環境変数と接頭辞なしの環境変数をvに登録します。
// ネストしたキーの"."は"_"に置き換えます（例: ORACLE_VENUES_LOCATION）。
func BindEnv(v *viper.Viper) error {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, names := range bareEnv {
		prefixed := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(append([]string{key, prefixed}, names...)...); err != nil {
			return fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}
	return nil
}

// Load は設定ファイルと環境変数から設定を読み込みます。
// fileが空の場合はconfigs/oracle.yamlまたは./oracle.yamlを探し、見つからなくてもエラーにしません。
func Load(v *viper.Viper, file string) (*Config, error) {
	SetDefaults(v)
	if err := BindEnv(v); err != nil {
		return nil, err
	}

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("oracle")
		v.SetConfigType("yaml")
		v.AddConfigPath("configs")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate はバックエンド名などの列挙値を検証します。APIキーの有無は生成時に検証します。
func (c *Config) Validate() error {
	if err := oneOf("classifier.backend", c.Classifier.Backend, "clip", "vision", "gemini"); err != nil {
		return err
	}
	if err := oneOf("prophet.backend", c.Prophet.Backend, "openai", "gemini", "anthropic"); err != nil {
		return err
	}
	if err := oneOf("venues.backend", c.Venues.Backend, "yelp", "places"); err != nil {
		return err
	}
	for _, tier := range c.Venues.PriceTiers {
		if tier < 1 || tier > 4 {
			return fmt.Errorf("venues.price_tiers: tier %d is out of range 1-4", tier)
		}
	}
	return nil
}

func oneOf(key, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("%s: unknown value %q (want one of %s)", key, value, strings.Join(allowed, ", "))
}

// Redacted は秘密情報を伏せた設定のコピーを返します。表示用です。
func (c Config) Redacted() Config {
	mask := func(s *string) {
		if *s != "" {
			*s = "********"
		}
	}
	mask(&c.Redis.Password)
	mask(&c.Session.JWTSecret)
	mask(&c.Gemini.APIKey)
	mask(&c.Classifier.CLIP.APIToken)
	mask(&c.Prophet.OpenAI.APIKey)
	mask(&c.Prophet.Anthropic.APIKey)
	mask(&c.Venues.Yelp.APIKey)
	mask(&c.Venues.Places.APIKey)
	return c
}
