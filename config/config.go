package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Recognizer providers.
const (
	ProviderLUIS       = "luis"
	ProviderDialogflow = "dialogflow"
	ProviderLLM        = "llm"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig
	Metrics    MetricsConfig

	// Transport
	Telegram TelegramConfig
	Webhook  WebhookConfig

	// Collaborators
	Recognizer     RecognizerConfig
	Intents        IntentsConfig
	KnowledgeBases []KnowledgeBaseConfig
	AzureAD        AzureADConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type MetricsConfig struct {
	Enabled bool
	Path    string
}

type TelegramConfig struct {
	BotToken    string
	WebhookURL  string
	APIEndpoint string // "https://api.telegram.org/bot%s/%s" when empty
	NgrokAPIURL string // local ngrok API used to auto-detect the webhook URL
}

type WebhookConfig struct {
	Secret          string
	AllowedIPs      []string
	TrustedProxies  []string // proxies whose X-Forwarded-For is honoured; none when empty
	RateLimitPerMin int
	RedeliveryTTL   time.Duration
}

// RecognizerConfig selects and configures the intent recognition service.
type RecognizerConfig struct {
	Provider   string
	Timeout    time.Duration
	LUIS       LUISConfig
	Dialogflow DialogflowConfig
	LLM        LLMConfig
}

type LUISConfig struct {
	AppID             string
	APIKey            string
	HostName          string
	Endpoint          string
	IncludeAllIntents bool
	Staging           bool
	Log               bool
}

type DialogflowConfig struct {
	ProjectID       string
	CredentialsPath string
	LanguageCode    string
}

type LLMConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// IntentsConfig names the intents interpreted locally from the recognizer payload.
type IntentsConfig struct {
	HomeAutomation string
	Weather        string
}

// KnowledgeBaseConfig binds one intent to one QnA knowledge base.
type KnowledgeBaseConfig struct {
	Intent          string
	Domain          string
	KnowledgeBaseID string
	EndpointKey     string
	Host            string
	Top             int
	ScoreThreshold  float64
	Timeout         time.Duration
}

// AzureADConfig enables client-credentials auth for the cognitive services.
type AzureADConfig struct {
	TenantID     string
	ClientID     string
	ClientSecret string
}

// Enabled reports whether Azure AD credentials are configured.
func (c AzureADConfig) Enabled() bool {
	return c.TenantID != "" && c.ClientID != "" && c.ClientSecret != ""
}

// legacyDomain describes one knowledge base of the env-only deployment,
// configured through <Prefix>QnAKnowledgebaseId, <Prefix>QnAEndpointKey and
// <Prefix>QnAEndpointHostName.
type legacyDomain struct {
	Prefix string
	Intent string
}

var legacyDomains = []legacyDomain{
	{Prefix: "Covid", Intent: "q_covid-19-qna"},
	{Prefix: "Food", Intent: "q_food-qna"},
	{Prefix: "Housing", Intent: "q_housing-qna"},
	{Prefix: "Financial", Intent: "q_financial-qna"},
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/dispatch-bot/
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile loads configuration from the given file, or from the default
// search paths when path is empty. A .env file in the working directory is
// loaded first when present.
func LoadFile(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/dispatch-bot/")
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)
	if err := bindLegacyEnv(v); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || path != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = v.GetString("environment.name")
	cfg.HTTPServer.Port = v.GetInt("http_server.port")
	cfg.HTTPServer.Mode = v.GetString("http_server.mode")
	cfg.Logger.Level = v.GetString("logger.level")
	cfg.Logger.Mode = v.GetString("logger.mode")
	cfg.Logger.Encoding = v.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = v.GetBool("logger.color_enabled")
	cfg.Metrics.Enabled = v.GetBool("metrics.enabled")
	cfg.Metrics.Path = v.GetString("metrics.path")

	// Telegram
	cfg.Telegram.BotToken = v.GetString("telegram.bot_token")
	cfg.Telegram.WebhookURL = v.GetString("telegram.webhook_url")
	cfg.Telegram.APIEndpoint = v.GetString("telegram.api_endpoint")
	cfg.Telegram.NgrokAPIURL = v.GetString("telegram.ngrok_api_url")

	// Webhook guard
	cfg.Webhook.Secret = v.GetString("webhook.secret")
	cfg.Webhook.RateLimitPerMin = v.GetInt("webhook.rate_limit_per_min")
	cfg.Webhook.RedeliveryTTL = v.GetDuration("webhook.redelivery_ttl")
	cfg.Webhook.AllowedIPs = splitList(v.GetString("webhook.allowed_ips"))
	cfg.Webhook.TrustedProxies = splitList(v.GetString("webhook.trusted_proxies"))

	// Recognizer
	cfg.Recognizer.Provider = strings.ToLower(v.GetString("recognizer.provider"))
	cfg.Recognizer.Timeout = v.GetDuration("recognizer.timeout")
	cfg.Recognizer.LUIS = LUISConfig{
		AppID:             v.GetString("recognizer.luis.app_id"),
		APIKey:            v.GetString("recognizer.luis.api_key"),
		HostName:          v.GetString("recognizer.luis.host_name"),
		Endpoint:          v.GetString("recognizer.luis.endpoint"),
		IncludeAllIntents: v.GetBool("recognizer.luis.include_all_intents"),
		Staging:           v.GetBool("recognizer.luis.staging"),
		Log:               v.GetBool("recognizer.luis.log"),
	}
	cfg.Recognizer.Dialogflow = DialogflowConfig{
		ProjectID:       v.GetString("recognizer.dialogflow.project_id"),
		CredentialsPath: v.GetString("recognizer.dialogflow.credentials_path"),
		LanguageCode:    v.GetString("recognizer.dialogflow.language_code"),
	}
	cfg.Recognizer.LLM = LLMConfig{
		APIKey:  expandEnvVar(v, v.GetString("recognizer.llm.api_key")),
		BaseURL: v.GetString("recognizer.llm.base_url"),
		Model:   v.GetString("recognizer.llm.model"),
	}

	cfg.Intents.HomeAutomation = v.GetString("intents.home_automation")
	cfg.Intents.Weather = v.GetString("intents.weather")

	cfg.AzureAD = AzureADConfig{
		TenantID:     v.GetString("azure_ad.tenant_id"),
		ClientID:     v.GetString("azure_ad.client_id"),
		ClientSecret: expandEnvVar(v, v.GetString("azure_ad.client_secret")),
	}

	// Knowledge bases: explicit list from the config file, otherwise the
	// four default domains read from their environment variables.
	defaultTop := v.GetInt("knowledge.top")
	defaultThreshold := v.GetFloat64("knowledge.score_threshold")
	defaultTimeout := v.GetDuration("knowledge.timeout")

	if v.IsSet("knowledge_bases") {
		raw := v.Get("knowledge_bases")
		if list, ok := raw.([]interface{}); ok {
			for _, item := range list {
				m, ok := item.(map[string]interface{})
				if !ok {
					continue
				}
				kb := KnowledgeBaseConfig{
					Intent:          getStringFromMap(m, "intent"),
					Domain:          getStringFromMap(m, "domain"),
					KnowledgeBaseID: expandEnvVar(v, getStringFromMap(m, "knowledge_base_id")),
					EndpointKey:     expandEnvVar(v, getStringFromMap(m, "endpoint_key")),
					Host:            expandEnvVar(v, getStringFromMap(m, "host")),
					Top:             getIntFromMap(m, "top"),
					ScoreThreshold:  getFloatFromMap(m, "score_threshold"),
					Timeout:         getDurationFromMap(m, "timeout"),
				}
				cfg.KnowledgeBases = append(cfg.KnowledgeBases, kb)
			}
		}
	} else {
		cfg.KnowledgeBases = legacyKnowledgeBases()
	}

	for i := range cfg.KnowledgeBases {
		kb := &cfg.KnowledgeBases[i]
		if kb.Top <= 0 {
			kb.Top = defaultTop
		}
		if kb.ScoreThreshold <= 0 {
			kb.ScoreThreshold = defaultThreshold
		}
		if kb.Timeout <= 0 {
			kb.Timeout = defaultTimeout
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment.name", "development")
	v.SetDefault("http_server.port", 3978)
	v.SetDefault("http_server.mode", "debug")
	v.SetDefault("logger.level", "debug")
	v.SetDefault("logger.mode", "development")
	v.SetDefault("logger.encoding", "console")
	v.SetDefault("logger.color_enabled", true)
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("webhook.rate_limit_per_min", 60)
	v.SetDefault("webhook.redelivery_ttl", "10m")

	v.SetDefault("recognizer.provider", ProviderLUIS)
	v.SetDefault("recognizer.timeout", "10s")
	v.SetDefault("recognizer.luis.include_all_intents", true)
	v.SetDefault("recognizer.luis.log", true)
	v.SetDefault("recognizer.dialogflow.language_code", "en")
	v.SetDefault("recognizer.llm.model", "gpt-4o-mini")

	v.SetDefault("intents.home_automation", "l_HomeAutomation")
	v.SetDefault("intents.weather", "l_Weather")

	v.SetDefault("knowledge.top", 1)
	v.SetDefault("knowledge.score_threshold", 0.3)
	v.SetDefault("knowledge.timeout", "10s")
}

// bindLegacyEnv maps the environment names used by env-only deployments.
func bindLegacyEnv(v *viper.Viper) error {
	bindings := map[string]string{
		"recognizer.luis.app_id":    "LuisAppId",
		"recognizer.luis.api_key":   "LuisAPIKey",
		"recognizer.luis.host_name": "LuisAPIHostName",
		"telegram.bot_token":        "TELEGRAM_BOT_TOKEN",
		"webhook.secret":            "WEBHOOK_SECRET",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind env %s: %w", env, err)
		}
	}
	return nil
}

func legacyKnowledgeBases() []KnowledgeBaseConfig {
	var kbs []KnowledgeBaseConfig
	for _, d := range legacyDomains {
		kbID := os.Getenv(d.Prefix + "QnAKnowledgebaseId")
		if kbID == "" {
			continue
		}
		kbs = append(kbs, KnowledgeBaseConfig{
			Intent:          d.Intent,
			Domain:          d.Prefix,
			KnowledgeBaseID: kbID,
			EndpointKey:     os.Getenv(d.Prefix + "QnAEndpointKey"),
			Host:            os.Getenv(d.Prefix + "QnAEndpointHostName"),
		})
	}
	return kbs
}

// Validate checks the collaborator settings required at startup.
func (c *Config) Validate() error {
	switch c.Recognizer.Provider {
	case ProviderLUIS:
		l := c.Recognizer.LUIS
		if l.AppID == "" {
			return fmt.Errorf("recognizer.luis.app_id (LuisAppId) is required")
		}
		if l.HostName == "" && l.Endpoint == "" {
			return fmt.Errorf("recognizer.luis.host_name (LuisAPIHostName) or recognizer.luis.endpoint is required")
		}
		if l.APIKey == "" && !c.AzureAD.Enabled() {
			return fmt.Errorf("recognizer.luis.api_key (LuisAPIKey) or azure_ad credentials are required")
		}
	case ProviderDialogflow:
		if c.Recognizer.Dialogflow.ProjectID == "" {
			return fmt.Errorf("recognizer.dialogflow.project_id is required")
		}
		if c.Recognizer.Dialogflow.CredentialsPath == "" {
			return fmt.Errorf("recognizer.dialogflow.credentials_path is required")
		}
	case ProviderLLM:
		if c.Recognizer.LLM.APIKey == "" {
			return fmt.Errorf("recognizer.llm.api_key is required")
		}
	default:
		return fmt.Errorf("unknown recognizer provider %q", c.Recognizer.Provider)
	}

	seen := map[string]bool{
		c.Intents.HomeAutomation: true,
		c.Intents.Weather:        true,
	}
	if c.Intents.HomeAutomation == "" || c.Intents.Weather == "" {
		return fmt.Errorf("intents.home_automation and intents.weather are required")
	}
	if c.Intents.HomeAutomation == c.Intents.Weather {
		return fmt.Errorf("intents.home_automation and intents.weather must differ")
	}

	for i, kb := range c.KnowledgeBases {
		if kb.Intent == "" || kb.Domain == "" {
			return fmt.Errorf("knowledge base %d: intent and domain are required", i)
		}
		if seen[kb.Intent] {
			return fmt.Errorf("knowledge base %s: intent %q is already bound", kb.Domain, kb.Intent)
		}
		seen[kb.Intent] = true

		if kb.KnowledgeBaseID == "" || kb.Host == "" {
			return fmt.Errorf("knowledge base %s: knowledge_base_id and host are required", kb.Domain)
		}
		if kb.EndpointKey == "" && !c.AzureAD.Enabled() {
			return fmt.Errorf("knowledge base %s: endpoint_key or azure_ad credentials are required", kb.Domain)
		}
	}

	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(v *viper.Viper, value string) string {
	if value == "" {
		return value
	}

	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		if envValue := os.Getenv(envVar); envValue != "" {
			return envValue
		}
		if envValue := v.GetString(strings.ToLower(envVar)); envValue != "" {
			return envValue
		}
	}

	return value
}

// Helper functions to safely extract values from map[string]interface{}
func getStringFromMap(m map[string]interface{}, key string) string {
	if val, ok := m[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

func getIntFromMap(m map[string]interface{}, key string) int {
	if val, ok := m[key]; ok {
		switch n := val.(type) {
		case int:
			return n
		case int64:
			return int(n)
		case float64:
			return int(n)
		}
	}
	return 0
}

func getFloatFromMap(m map[string]interface{}, key string) float64 {
	if val, ok := m[key]; ok {
		switch n := val.(type) {
		case float64:
			return n
		case int:
			return float64(n)
		case int64:
			return float64(n)
		}
	}
	return 0
}

// getDurationFromMap accepts "15s"-style strings and plain nanosecond numbers.
func getDurationFromMap(m map[string]interface{}, key string) time.Duration {
	if val, ok := m[key]; ok {
		if d, err := cast.ToDurationE(val); err == nil {
			return d
		}
	}
	return 0
}
