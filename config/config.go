// config/config.go
package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Configuration stores all the configurations
type Configuration struct {
	Server        ServerConfiguration
	Redis         RedisConfiguration
	Upstream      UpstreamConfiguration
	Guard         GuardConfiguration
	Facilities    FacilitiesConfiguration
	Auth          AuthConfiguration
	Cache         CacheConfiguration
	Sessions      SessionsConfiguration
	RateLimit     RateLimitConfiguration
	Elasticsearch ElasticsearchConfiguration
	Audit         AuditConfiguration
	Log           LogConfiguration
}

// ServerConfiguration stores the port and other web server settings
type ServerConfiguration struct {
	Host string
	Port string
	Mode string
}

// RedisConfiguration stores data for Redis connection
type RedisConfiguration struct {
	Addr         string
	Password     string
	DB           int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolSize     int
	SelectionTTL time.Duration
}

// UpstreamConfiguration points at the dashboard data API
type UpstreamConfiguration struct {
	BaseURL string
	Timeout time.Duration
}

// GuardConfiguration bounds how long navigation waits for the facility directory
type GuardConfiguration struct {
	MaxWait time.Duration
}

// FacilitiesConfiguration holds the fallback facility list and default tool set
type FacilitiesConfiguration struct {
	Fallback     []string
	DefaultTools []string
}

// AuthConfiguration drives the access policy check
type AuthConfiguration struct {
	Mode               string
	RestrictedPrefixes []string
	ProtectedPaths     []string
	DevHosts           []string
}

// CacheConfiguration tunes the query cache janitor
type CacheConfiguration struct {
	SweepInterval time.Duration
}

// SessionsConfiguration bounds the in-memory session registry
type SessionsConfiguration struct {
	Capacity   int
	CookieName string
}

// RateLimitConfiguration stores per-client request limits
type RateLimitConfiguration struct {
	Enabled  bool
	Requests int
	Window   time.Duration
}

// ElasticsearchConfiguration stores data for Elasticsearch connection
type ElasticsearchConfiguration struct {
	URL string
}

// AuditConfiguration toggles the navigation audit trail
type AuditConfiguration struct {
	Enabled bool
	Index   string
}

// LogConfiguration stores where log files go
type LogConfiguration struct {
	Dir string
}

var config *Configuration

func InitConfig() error {
	viper.AddConfigPath("config") // path to look for the config file in
	viper.SetConfigName("config") // name of the config file (without extension)
	viper.SetConfigType("yaml")   // REQUIRED if the config file does not have the extension in the name

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	SetDefaults()

	// Attempt to read the config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("No config file found. Using default settings and environment variables.")
		} else {
			return err
		}
	}

	// Unmarshal the configuration into the Configuration struct
	err := viper.Unmarshal(&config)
	if err != nil {
		return err
	}

	return nil
}

// SetDefaults registers the default value of every setting.
func SetDefaults() {
	viper.SetDefault("server.host", "")
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "release")

	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.dialTimeout", 5*time.Second)
	viper.SetDefault("redis.readTimeout", 3*time.Second)
	viper.SetDefault("redis.writeTimeout", 3*time.Second)
	viper.SetDefault("redis.poolSize", 10)
	viper.SetDefault("redis.selectionTTL", 30*24*time.Hour)

	viper.SetDefault("upstream.baseURL", "http://localhost:5000")
	viper.SetDefault("upstream.timeout", 10*time.Second)

	// 50 polls of 100ms in the browser guard
	viper.SetDefault("guard.maxWait", 5*time.Second)

	viper.SetDefault("facilities.fallback", []string{"R3", "M16", "M14", "M15", "M11", "M10"})
	viper.SetDefault("facilities.defaultTools", []string{"CD-SEM", "HV-SEM"})

	// auto only bypasses when server.host is a dev host
	viper.SetDefault("auth.mode", "enforce")
	viper.SetDefault("auth.restrictedPrefixes", []string{"x"})
	viper.SetDefault("auth.protectedPaths", []string{"/equipment-status", "/device-statistics"})
	viper.SetDefault("auth.devHosts", []string{"localhost", "127.0.0.1"})

	viper.SetDefault("cache.sweepInterval", time.Minute)

	viper.SetDefault("sessions.capacity", 10000)
	viper.SetDefault("sessions.cookieName", "fabdash_session")

	viper.SetDefault("ratelimit.enabled", true)
	viper.SetDefault("ratelimit.requests", 100)
	viper.SetDefault("ratelimit.window", time.Minute)

	viper.SetDefault("elasticsearch.url", "http://localhost:9200")
	viper.SetDefault("audit.enabled", false)
	viper.SetDefault("audit.index", "navigation-audit")

	viper.SetDefault("log.dir", "logging")
}

// GetConfig returns the loaded configuration
func GetConfig() *Configuration {
	return config
}

// GetString retrieves a string value from the configuration
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt retrieves an integer value from the configuration
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool retrieves a boolean value from the configuration
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration retrieves a duration value from the configuration
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// GetStringSlice retrieves a list value from the configuration
func GetStringSlice(key string) []string {
	return viper.GetStringSlice(key)
}
