package configuration

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"vidtube/infrastructure/logger"

	"github.com/spf13/viper"
)

type Config struct {
	App         App         `json:"app"`
	Database    Database    `json:"database"`
	Storage     Storage     `json:"storage"`
	RedisClient RedisClient `json:"redisClient"`
	Events      Events      `json:"events"`
	RateLimit   RateLimit   `json:"rateLimit"`
	Logger      Logger      `json:"logger"`
}

type App struct {
	Port               int      `json:"port"`
	AccessTokenSecret  string   `json:"accessTokenSecret"`
	AccessTokenTTL     string   `json:"accessTokenTTL"`
	RefreshTokenSecret string   `json:"refreshTokenSecret"`
	RefreshTokenTTL    string   `json:"refreshTokenTTL"`
	CookieSecure       bool     `json:"cookieSecure"`
	AllowedOrigins     []string `json:"allowedOrigins"`
	UploadDir          string   `json:"uploadDir"`
	MaxUploadMB        int64    `json:"maxUploadMB"`
	TLSEnabled         bool     `json:"tlsEnabled"`
	TLSCertFile        string   `json:"tlsCertFile"`
	TLSKeyFile         string   `json:"tlsKeyFile"`
	FFProbePath        string   `json:"ffprobePath"`
}

type Database struct {
	Mongo Mongo `json:"mongo"`
}

type Mongo struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Host        string `json:"host"`
	Port        string `json:"port"`
	User        string `json:"user"`
	Password    string `json:"password"`
	MaxPoolSize uint64 `json:"maxPoolSize"`
	MinPoolSize uint64 `json:"minPoolSize"`
}

// Storage configures the asset collaborator. Driver is "s3" or "minio".
type Storage struct {
	Driver        string `json:"driver"`
	Bucket        string `json:"bucket"`
	Region        string `json:"region"`
	Endpoint      string `json:"endpoint"`
	AccessKey     string `json:"accessKey"`
	SecretKey     string `json:"secretKey"`
	UseSSL        bool   `json:"useSSL"`
	PublicBaseURL string `json:"publicBaseURL"`
}

type RedisClient struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Password string `json:"password"`
	Username string `json:"username"`
	DB       int    `json:"db"`
}

// Events configures the domain event publisher. Driver is "pubsub",
// "servicebus" or empty for a no-op publisher.
type Events struct {
	Driver           string `json:"driver"`
	ProjectID        string `json:"projectID"`
	Topic            string `json:"topic"`
	Namespace        string `json:"namespace"`
	ConnectionString string `json:"connectionString"`
	Queue            string `json:"queue"`
}

type RateLimit struct {
	Requests int    `json:"requests"`
	Window   string `json:"window"`
	Burst    int    `json:"burst"`
}

type Logger struct {
	Format string `json:"format"`
}

var C Config

var ErrMissingTokenSecrets = errors.New("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must be set")

// Load populates C from the config file and the process environment. Call it
// after LoadEnvFromFile so values from env files are visible.
func Load() error {
	C = Config{}
	LoadConfig()
	initDatabase(&C)
	initApp(&C)
	initStorage(&C)
	initRedis(&C)
	initEvents(&C)
	initRateLimit(&C)
	return C.App.validate()
}

func (a App) validate() error {
	if a.AccessTokenSecret == "" || a.RefreshTokenSecret == "" {
		return ErrMissingTokenSecrets
	}
	return nil
}

func LoadConfig() {
	name := getConfig()
	viper.SetConfigName(name)
	viper.SetConfigType("json")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")
	viper.AddConfigPath("../../")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logger.GetLogger().Warn("Config file not found")
		} else {
			logger.GetLogger().WithField("error", err).Error("Error reading config file")
		}
	}

	logger.GetLogger().WithField("config", name).Info("Config set up successfully")
	if err := viper.Unmarshal(&C); err != nil {
		logger.GetLogger().WithField("error", err).Error("Viper unable to decode into struct")
	}
}

func getConfig() string {
	name := "config"
	env := os.Getenv("ENV")
	if env != "" {
		name = fmt.Sprintf("%s-%s", name, env)
	}
	return name
}

func initDatabase(C *Config) {
	m := &C.Database.Mongo
	m.URI = getEnv("MONGO_URI", m.URI)
	m.Name = getEnv("MONGO_DB_NAME", m.Name)
	m.Host = getEnv("MONGO_HOST", m.Host)
	m.Port = getEnv("MONGO_PORT", m.Port)
	m.User = getEnv("MONGO_USER", m.User)
	m.Password = getEnv("MONGO_PASSWORD", m.Password)

	if m.Name == "" {
		m.Name = "vidtube"
	}
	if m.Host == "" {
		m.Host = "localhost"
	}
	if m.Port == "" {
		m.Port = "27017"
	}
	if m.MaxPoolSize == 0 {
		m.MaxPoolSize = 50
	}
	if m.MinPoolSize == 0 {
		m.MinPoolSize = 5
	}
	logger.GetLogger().WithFields(map[string]interface{}{
		"name":   m.Name,
		"host":   m.Host,
		"port":   m.Port,
		"hasURI": m.URI != "",
	}).Info("Database configuration")
}

func initApp(C *Config) {
	a := &C.App
	a.AccessTokenSecret = getEnv("ACCESS_TOKEN_SECRET", a.AccessTokenSecret)
	a.RefreshTokenSecret = getEnv("REFRESH_TOKEN_SECRET", a.RefreshTokenSecret)
	a.AccessTokenTTL = getEnv("ACCESS_TOKEN_EXPIRY", a.AccessTokenTTL)
	a.RefreshTokenTTL = getEnv("REFRESH_TOKEN_EXPIRY", a.RefreshTokenTTL)
	if a.AccessTokenTTL == "" {
		a.AccessTokenTTL = "1h"
	}
	if a.RefreshTokenTTL == "" {
		a.RefreshTokenTTL = "240h"
	}
	// Port resolution order (env overrides config): APP_PORT -> PORT -> config -> default 8000
	if v := os.Getenv("APP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			a.Port = p
		}
	} else if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			a.Port = p
		}
	}
	if a.Port == 0 {
		a.Port = 8000
	}
	if v := os.Getenv("CORS_ORIGIN"); v != "" {
		a.AllowedOrigins = strings.Split(v, ",")
	}
	if len(a.AllowedOrigins) == 0 {
		a.AllowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	a.UploadDir = getEnv("UPLOAD_DIR", a.UploadDir)
	if a.UploadDir == "" {
		a.UploadDir = os.TempDir()
	}
	if a.MaxUploadMB == 0 {
		a.MaxUploadMB = 512
	}
	if v := os.Getenv("COOKIE_SECURE"); v != "" {
		a.CookieSecure = parseBool(v, a.CookieSecure)
	}
	if v := os.Getenv("TLS_ENABLED"); v != "" {
		a.TLSEnabled = parseBool(v, a.TLSEnabled)
	}
	a.TLSCertFile = getEnv("TLS_CERT_FILE", a.TLSCertFile)
	a.TLSKeyFile = getEnv("TLS_KEY_FILE", a.TLSKeyFile)
	a.FFProbePath = getEnv("FFPROBE_PATH", a.FFProbePath)
}

func initStorage(C *Config) {
	s := &C.Storage
	s.Driver = strings.ToLower(getEnv("STORAGE_DRIVER", s.Driver))
	s.Bucket = getEnv("STORAGE_BUCKET", s.Bucket)
	s.Region = getEnv("STORAGE_REGION", s.Region)
	s.Endpoint = getEnv("STORAGE_ENDPOINT", s.Endpoint)
	s.AccessKey = getEnv("STORAGE_ACCESS_KEY", s.AccessKey)
	s.SecretKey = getEnv("STORAGE_SECRET_KEY", s.SecretKey)
	s.PublicBaseURL = getEnv("STORAGE_PUBLIC_BASE_URL", s.PublicBaseURL)
	if v := os.Getenv("STORAGE_USE_SSL"); v != "" {
		s.UseSSL = parseBool(v, s.UseSSL)
	}
	if s.Driver == "" {
		s.Driver = "s3"
	}
	if s.Region == "" {
		s.Region = "us-east-1"
	}
}

func initRedis(C *Config) {
	r := &C.RedisClient
	r.Host = getEnv("REDIS_HOST", r.Host)
	r.Port = getEnv("REDIS_PORT", r.Port)
	r.Username = getEnv("REDIS_USERNAME", r.Username)
	r.Password = getEnv("REDIS_PASSWORD", r.Password)
}

func initEvents(C *Config) {
	e := &C.Events
	e.Driver = strings.ToLower(getEnv("EVENTS_DRIVER", e.Driver))
	e.ProjectID = getEnv("PUBSUB_PROJECT_ID", e.ProjectID)
	e.Namespace = getEnv("SERVICEBUS_NAMESPACE", e.Namespace)
	e.ConnectionString = getEnv("SERVICEBUS_CONNECTION_STRING", e.ConnectionString)
	e.Topic = getEnv("EVENTS_TOPIC", e.Topic)
	e.Queue = getEnv("EVENTS_QUEUE", e.Queue)
	if e.Topic == "" {
		e.Topic = "vidtube-events"
	}
	if e.Queue == "" {
		e.Queue = e.Topic
	}
}

func initRateLimit(C *Config) {
	r := &C.RateLimit
	if r.Requests <= 0 {
		r.Requests = 20
	}
	if r.Window == "" {
		r.Window = "1s"
	}
	if r.Burst <= 0 {
		r.Burst = 40
	}
}

// MongoURI builds a connection string from the discrete fields unless an
// explicit URI was configured.
func (m Mongo) MongoURI() string {
	if m.URI != "" {
		return m.URI
	}
	if m.User != "" {
		return fmt.Sprintf("mongodb://%s:%s@%s:%s", m.User, m.Password, m.Host, m.Port)
	}
	return fmt.Sprintf("mongodb://%s:%s", m.Host, m.Port)
}

// RedisAddr returns host:port, or empty when Redis is not configured.
func (r RedisClient) RedisAddr() string {
	if r.Host == "" {
		return ""
	}
	port := r.Port
	if port == "" {
		port = "6379"
	}
	return fmt.Sprintf("%s:%s", r.Host, port)
}

// Duration parses a configured duration, falling back to def on error.
func Duration(raw string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseBool(v string, def bool) bool {
	switch v {
	case "1", "true", "TRUE", "True":
		return true
	case "0", "false", "FALSE", "False":
		return false
	}
	return def
}
