package structures

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1|max:65535"`
}

type StorageConfig struct {
	DataDir   string `yaml:"dataDir" validate:"required"`
	Backup    bool   `yaml:"backup"`
	BackupDir string `yaml:"backupDir"`
}

type UploadsConfig struct {
	UploadsDir  string `yaml:"uploadsDir" validate:"required"`
	GuestDir    string `yaml:"guestDir" validate:"required"`
	AdminDir    string `yaml:"adminDir" validate:"required"`
	MaxFileSize int64  `yaml:"maxFileSize" validate:"required|min:1"`
	MaxFiles    int    `yaml:"maxFiles" validate:"required|min:1"`
}

type SiteConfig struct {
	PublicDir string `yaml:"publicDir"`
}

type AdminConfig struct {
	User     string `yaml:"user" validate:"required"`
	Password string `yaml:"password" validate:"required"`
}

type DemoConfig struct {
	Enabled      bool     `yaml:"enabled"`
	Placeholders []string `yaml:"placeholders"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
	TTL     int  `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	WebServer Server        `yaml:"webServer"`
	Storage   StorageConfig `yaml:"storage"`
	Uploads   UploadsConfig `yaml:"uploads"`
	Site      SiteConfig    `yaml:"site"`
	Admin     AdminConfig   `yaml:"admin"`
	Demo      DemoConfig    `yaml:"demo"`
	Logger    LoggerConfig  `yaml:"logger"`
	Cache     CacheConfig   `yaml:"cache"`
	Metrics   MetricsConfig `yaml:"metrics"`
}
