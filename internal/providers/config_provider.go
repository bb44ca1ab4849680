package providers

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"weddingsite/internal/structures"

	"github.com/spf13/viper"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("webServer.host", "0.0.0.0")
	v.SetDefault("webServer.port", 3000)

	v.SetDefault("storage.dataDir", "data")
	v.SetDefault("storage.backup", false)
	v.SetDefault("storage.backupDir", "data/backups")

	v.SetDefault("uploads.uploadsDir", "uploads")
	v.SetDefault("uploads.guestDir", "guest_uploads")
	v.SetDefault("uploads.adminDir", "admin_uploads")
	v.SetDefault("uploads.maxFileSize", 20*1024*1024)
	v.SetDefault("uploads.maxFiles", 10)

	v.SetDefault("site.publicDir", "public")

	v.SetDefault("admin.user", "admin")

	v.SetDefault("demo.enabled", true)
	v.SetDefault("demo.placeholders", []string{
		"/guest_uploads/demo_001.jpg",
		"/guest_uploads/demo_002.webp",
	})

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)
	v.SetDefault("logger.dir", "logs")

	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.size", 8)
	v.SetDefault("cache.ttl", 5)

	v.SetDefault("metrics.enabled", false)
}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	setDefaults(v)

	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	_ = v.BindEnv("webServer.port", "PORT")
	_ = v.BindEnv("admin.user", "ADMIN_USER")
	_ = v.BindEnv("admin.password", "ADMIN_PASS")
	_ = v.BindEnv("logger.level", "WEDDING_LOG_LEVEL")
	_ = v.BindEnv("storage.dataDir", "WEDDING_DATA_DIR")
	_ = v.BindEnv("demo.enabled", "WEDDING_DEMO")
	_ = v.BindEnv("cache.enabled", "WEDDING_CACHE_ENABLED")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	if err := v.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	if err := cnfValidator.Validate(); err != nil {
		return nil, err
	}

	conf.AppName = "WeddingSite"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
