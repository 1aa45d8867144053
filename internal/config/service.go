package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// ConfigService implements the Service interface
type ConfigService struct {
	logger Logger
}

// NewConfigService creates a new configuration service
func NewConfigService(logger Logger) *ConfigService {
	return &ConfigService{logger: logger}
}

// Load loads the configuration from the specified path
func (s *ConfigService) Load(path string) (*Config, error) {
	viper.AddConfigPath(path)
	// Use test configuration file if ENV is set to test
	if os.Getenv("ENV") == "test" {
		viper.SetConfigName("config_test")
	} else {
		viper.SetConfigName("config")
	}
	viper.SetConfigType("yaml")

	s.setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %v", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %v", err)
	}

	if err := s.validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %v", err)
	}

	if err := s.resolveStoragePaths(&config, path); err != nil {
		return nil, fmt.Errorf("failed to resolve storage paths: %v", err)
	}

	s.logger.LogInfo("Configuration loaded successfully", nil)
	return &config, nil
}

// setDefaults sets default values for configuration
func (s *ConfigService) setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("database.timezone", "UTC")
	viper.SetDefault("database.pool.maxOpen", 100)
	viper.SetDefault("database.pool.maxIdle", 10)
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("storage.backend", "fs")
	viper.SetDefault("storage.uploadDir", "uploads")
	viper.SetDefault("storage.thumbnailDir", "thumbnails")
	viper.SetDefault("video.maxFileSize", 500*1024*1024) // 500MB
	viper.SetDefault("video.maxTitleLength", 100)
	viper.SetDefault("video.maxDescLength", 5000)
	viper.SetDefault("video.streamMimeType", "video/mp4")
	viper.SetDefault("video.streamBasePath", "/api/v1/videos/stream")
	viper.SetDefault("video.defaultCategory", "Entertainment")
	viper.SetDefault("video.processingDelay", 3*time.Second)
	viper.SetDefault("video.viewDedupWindow", 6*time.Hour)
	viper.SetDefault("video.trendingTTL", 5*time.Minute)
	viper.SetDefault("ffprobe.path", "ffprobe")
	viper.SetDefault("ffprobe.timeout", 10*time.Second)
	viper.SetDefault("auth.jwt.accessTokenTTL", 15*time.Minute)
	viper.SetDefault("auth.jwt.refreshTokenTTL", 7*24*time.Hour)
	viper.SetDefault("auth.password.minLength", 8)
	viper.SetDefault("auth.password.maxLength", 72) // bcrypt input limit
	viper.SetDefault("comment.maxLength", 2000)
	viper.SetDefault("playlist.maxTitleLength", 100)
	viper.SetDefault("playlist.maxItems", 500)
	viper.SetDefault("logging.level", "info")
}

// validate performs validation on the configuration
func (s *ConfigService) validate(config *Config) error {
	if config.Server.Port <= 0 {
		return fmt.Errorf("invalid server port")
	}

	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.Database.User == "" {
		return fmt.Errorf("database user is required")
	}

	if config.Database.Dbname == "" {
		return fmt.Errorf("database name is required")
	}

	if config.Database.Port <= 0 {
		return fmt.Errorf("invalid database port")
	}

	if config.Auth.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if config.Video.MaxFileSize <= 0 {
		return fmt.Errorf("invalid video size limit")
	}

	if config.Storage.Backend != "fs" && config.Storage.Backend != "s3" {
		return fmt.Errorf("storage backend must be fs or s3")
	}

	if config.Storage.Backend == "s3" && config.Storage.S3.Bucket == "" {
		return fmt.Errorf("S3 bucket is required for the s3 storage backend")
	}

	return nil
}

// resolveStoragePaths converts relative paths to absolute paths
func (s *ConfigService) resolveStoragePaths(config *Config, basePath string) error {
	uploadDir := config.Storage.UploadDir
	if !filepath.IsAbs(uploadDir) {
		absPath, err := filepath.Abs(filepath.Join(basePath, uploadDir))
		if err != nil {
			return fmt.Errorf("failed to resolve upload directory path: %v", err)
		}
		config.Storage.UploadDir = absPath
	}

	thumbnailDir := config.Storage.ThumbnailDir
	if !filepath.IsAbs(thumbnailDir) {
		absPath, err := filepath.Abs(filepath.Join(basePath, thumbnailDir))
		if err != nil {
			return fmt.Errorf("failed to resolve thumbnail directory path: %v", err)
		}
		config.Storage.ThumbnailDir = absPath
	}

	return nil
}
