package config

import (
	"math/big"
	"os"
	"strconv"
	"strings"

	"github.com/creatorhub/marketplace-engine/internal/log"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	Env     string
	Network string
	Index   string
	Debug   bool
	Reindex bool

	LogPath    string
	ApiPort    string
	HealthPort string

	MarketplaceAddr string
	Treasury        string
	PlatformFeeBps  uint

	Registry      RegistryConfig
	Payments      PaymentsConfig
	ElasticSearch ElasticSearchConfig
	Aws           AwsConfig
}

type RegistryConfig struct {
	Url     string
	Debug   bool
	Timeout int
}

type PaymentsConfig struct {
	Url     string
	Timeout int
}

type AwsConfig struct {
	AccessKey   string
	SecretKey   string
	Region      string
	QueuePrefix string
}

type ElasticSearchConfig struct {
	Hosts            []string
	Sniff            bool
	HealthCheck      bool
	Debug            bool
	Username         string
	Password         string
	MappingDir       string
	BulkPersistCount int
	Refresh          string
}

func Init(service string) {
	if err := godotenv.Load(".env"); err != nil {
		zap.L().With(zap.Error(err)).Warn("Unable to load .env")
	}

	initLogger(service)
}

func initLogger(service string) {
	log.NewLogger(Get().LogPath+"/"+service+".log", Get().Debug)
}

func Get() *Config {
	return &Config{
		Env:             getString("ENV", ""),
		Network:         getString("NETWORK", "mainnet"),
		Index:           getString("INDEX_NAME", "marketplace"),
		Debug:           getBool("DEBUG", false),
		Reindex:         getBool("REINDEX", false),
		LogPath:         getString("LOG_PATH", "logs"),
		ApiPort:         getString("API_PORT", "8080"),
		HealthPort:      getString("HEALTH_PORT", "8081"),
		MarketplaceAddr: getString("MARKETPLACE_ADDR", ""),
		Treasury:        getString("PLATFORM_TREASURY", ""),
		PlatformFeeBps:  getUint("PLATFORM_FEE_BPS", 250),
		Aws: AwsConfig{
			AccessKey:   getString("AWS_ACCESS_KEY_ID", ""),
			SecretKey:   getString("AWS_SECRET_KEY_ID", ""),
			Region:      getString("AWS_REGION", ""),
			QueuePrefix: getString("AWS_QUEUE_PREFIX", ""),
		},
		Registry: RegistryConfig{
			Url:     getString("REGISTRY_URL", ""),
			Timeout: getInt("REGISTRY_TIMEOUT", 30),
			Debug:   getBool("REGISTRY_DEBUG", false),
		},
		Payments: PaymentsConfig{
			Url:     getString("PAYMENTS_URL", ""),
			Timeout: getInt("PAYMENTS_TIMEOUT", 30),
		},
		ElasticSearch: ElasticSearchConfig{
			Hosts:            getSlice("ELASTIC_SEARCH_HOSTS", make([]string, 0), ","),
			Sniff:            getBool("ELASTIC_SEARCH_SNIFF", true),
			HealthCheck:      getBool("ELASTIC_SEARCH_HEALTH_CHECK", true),
			Debug:            getBool("ELASTIC_SEARCH_DEBUG", false),
			Username:         getString("ELASTIC_SEARCH_USERNAME", ""),
			Password:         getString("ELASTIC_SEARCH_PASSWORD", ""),
			MappingDir:       getString("ELASTIC_SEARCH_MAPPING_DIR", "/data/mappings"),
			BulkPersistCount: getInt("ELASTIC_SEARCH_BULK_PERSIST_COUNT", 300),
			Refresh:          getString("ELASTIC_SEARCH_REFRESH", "wait_for"),
		},
	}
}

func getString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultValue
}

func getInt(key string, defaultValue int) int {
	valStr := getString(key, "")
	val, _, err := big.ParseFloat(valStr, 10, 0, big.ToNearestEven)
	if err != nil {
		return defaultValue
	}

	intVal, _ := val.Int64()
	return int(intVal)
}

func getUint(key string, defaultValue uint) uint {
	return uint(getInt(key, int(defaultValue)))
}

func getBool(key string, defaultValue bool) bool {
	valStr := getString(key, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}

	return defaultValue
}

func getSlice(key string, defaultVal []string, sep string) []string {
	valStr := getString(key, "")
	if valStr == "" {
		return defaultVal
	}

	return strings.Split(valStr, sep)
}
