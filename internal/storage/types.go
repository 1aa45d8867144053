package storage

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Config represents blob storage configuration settings
type Config struct {
	Backend      string   `mapstructure:"backend" yaml:"backend"` // "fs" or "s3"
	UploadDir    string   `mapstructure:"uploadDir" yaml:"uploadDir"`
	ThumbnailDir string   `mapstructure:"thumbnailDir" yaml:"thumbnailDir"`
	S3           S3Config `mapstructure:"s3" yaml:"s3"`
}

// S3Config represents S3 configuration settings
type S3Config struct {
	Endpoint        string `mapstructure:"endpoint" yaml:"endpoint"`
	AccessKeyID     string `mapstructure:"accessKeyId" yaml:"accessKeyId"`
	SecretAccessKey string `mapstructure:"secretAccessKey" yaml:"secretAccessKey"`
	Region          string `mapstructure:"region" yaml:"region"`
	Bucket          string `mapstructure:"bucket" yaml:"bucket"`
	ForcePathStyle  bool   `mapstructure:"forcePathStyle" yaml:"forcePathStyle"`
}

// NewObjectName derives a collision-safe stored filename from the client's
// original filename, using a timestamp plus a random suffix.
func NewObjectName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.New().String()[:8], ext)
}
