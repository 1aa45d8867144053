package config

import (
	"time"

	"github.com/streamnest/streamnest/backend/internal/comment"
	"github.com/streamnest/streamnest/backend/internal/logger"
	"github.com/streamnest/streamnest/backend/internal/playlist"
	"github.com/streamnest/streamnest/backend/internal/video"
	"github.com/streamnest/streamnest/backend/internal/video/probe"
)

// Config represents the application configuration
type Config struct {
	Environment string         `mapstructure:"environment" yaml:"environment"`
	Server      ServerConfig   `yaml:"server"`
	Database    DatabaseConfig `yaml:"database"`
	Redis       RedisConfig    `yaml:"redis"`
	Storage     StorageConfig  `yaml:"storage"`
	Logging     logger.Config  `yaml:"logging"`
	Video       video.Config   `yaml:"video"`
	Ffprobe     probe.Config   `yaml:"ffprobe"`
	Auth        AuthConfig     `yaml:"auth"`
	Comment     comment.Config `yaml:"comment"`
	Playlist    playlist.Config `yaml:"playlist"`
}

// ServerConfig represents server configuration settings
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DatabaseConfig represents database configuration settings
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Dbname   string `mapstructure:"dbname"`
	Port     int    `mapstructure:"port"`
	Sslmode  string `mapstructure:"sslmode"`
	Timezone string `mapstructure:"timezone"`
	Pool     struct {
		MaxOpen int `mapstructure:"maxOpen"`
		MaxIdle int `mapstructure:"maxIdle"`
	} `mapstructure:"pool"`
}

// RedisConfig represents Redis configuration settings
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// StorageConfig represents storage configuration settings
type StorageConfig struct {
	Backend      string   `mapstructure:"backend"`
	UploadDir    string   `mapstructure:"uploadDir"`
	ThumbnailDir string   `mapstructure:"thumbnailDir"`
	S3           S3Config `mapstructure:"s3"`
}

// S3Config represents S3 configuration settings
type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"accessKeyId"`
	SecretAccessKey string `mapstructure:"secretAccessKey"`
	Region          string `mapstructure:"region"`
	Bucket          string `mapstructure:"bucket"`
	ForcePathStyle  bool   `mapstructure:"forcePathStyle"`
}

// AuthConfig represents authentication configuration settings
type AuthConfig struct {
	JWT struct {
		Secret          string        `mapstructure:"secret"`
		AccessTokenTTL  time.Duration `mapstructure:"accessTokenTTL"`
		RefreshTokenTTL time.Duration `mapstructure:"refreshTokenTTL"`
	} `mapstructure:"jwt"`
	Password struct {
		MinLength int `mapstructure:"minLength"`
		MaxLength int `mapstructure:"maxLength"`
	} `mapstructure:"password"`
}
