package config

import (
	"os"
	"path"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

// SysConfig holds general application settings
type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

// WebConfig holds the HTTP API listener settings
type WebConfig struct {
	Host string `yaml:"host" json:"host"`
	Port int    `yaml:"port" json:"port"`
}

// DBConfig holds database connection settings.
// Type is "sqlite" (default) or "postgres".
type DBConfig struct {
	Type     string `yaml:"type" json:"type"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	Debug    bool   `yaml:"debug" json:"debug"`
	Seed     bool   `yaml:"seed" json:"seed"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
}

// StockConfig holds inventory housekeeping settings
type StockConfig struct {
	LowThreshold int    `yaml:"low_threshold" json:"low_threshold"`
	CheckCron    string `yaml:"check_cron" json:"check_cron"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System   SysConfig   `yaml:"system" json:"system"`
	Web      WebConfig   `yaml:"web" json:"web"`
	Database DBConfig    `yaml:"database" json:"database"`
	Stock    StockConfig `yaml:"stock" json:"stock"`
	Logger   LogConfig   `yaml:"logger" json:"logger"`
}

func (c *AppConfig) GetLogDir() string {
	return path.Join(c.System.Workdir, "logs")
}

func (c *AppConfig) GetDataDir() string {
	return path.Join(c.System.Workdir, "data")
}

func (c *AppConfig) InitDirs() error {
	if err := os.MkdirAll(c.GetLogDir(), 0o755); err != nil {
		return err
	}
	return os.MkdirAll(c.GetDataDir(), 0o755)
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "VendasD",
		Location: "America/Sao_Paulo",
		Workdir:  "/var/vendasd",
		Debug:    true,
	},
	Web: WebConfig{
		Host: "0.0.0.0",
		Port: 1816,
	},
	Database: DBConfig{
		Type:     "sqlite",
		Name:     "sistema_vendas",
		MaxConn:  50,
		IdleConn: 10,
	},
	Stock: StockConfig{
		LowThreshold: 5,
		CheckCron:    "@every 10m",
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/vendasd/vendasd.log",
	},
}

func setEnvValue(name string, val *string) {
	if evalue, ok := os.LookupEnv(name); ok {
		*val = evalue
	}
}

func setEnvBoolValue(name string, val *bool) {
	if evalue, ok := os.LookupEnv(name); ok {
		*val = cast.ToBool(evalue)
	}
}

func setEnvIntValue(name string, val *int) {
	if evalue, ok := os.LookupEnv(name); ok {
		*val = cast.ToInt(evalue)
	}
}

// LoadConfig reads the YAML configuration file and applies VENDAS_*
// environment overrides on top. A missing file yields the defaults.
func LoadConfig(cfile string) *AppConfig {
	cfg := *DefaultAppConfig
	appConfig := &cfg
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			_ = yaml.Unmarshal(data, appConfig)
		}
	}

	setEnvValue("VENDAS_SYSTEM_WORKDIR", &appConfig.System.Workdir)
	setEnvBoolValue("VENDAS_SYSTEM_DEBUG", &appConfig.System.Debug)

	setEnvValue("VENDAS_WEB_HOST", &appConfig.Web.Host)
	setEnvIntValue("VENDAS_WEB_PORT", &appConfig.Web.Port)

	setEnvValue("VENDAS_DB_TYPE", &appConfig.Database.Type)
	setEnvValue("VENDAS_DB_HOST", &appConfig.Database.Host)
	setEnvIntValue("VENDAS_DB_PORT", &appConfig.Database.Port)
	setEnvValue("VENDAS_DB_NAME", &appConfig.Database.Name)
	setEnvValue("VENDAS_DB_USER", &appConfig.Database.User)
	setEnvValue("VENDAS_DB_PWD", &appConfig.Database.Passwd)
	setEnvBoolValue("VENDAS_DB_DEBUG", &appConfig.Database.Debug)
	setEnvBoolValue("VENDAS_DB_SEED", &appConfig.Database.Seed)

	setEnvIntValue("VENDAS_STOCK_LOW_THRESHOLD", &appConfig.Stock.LowThreshold)

	setEnvValue("VENDAS_LOGGER_MODE", &appConfig.Logger.Mode)
	setEnvBoolValue("VENDAS_LOGGER_FILE_ENABLE", &appConfig.Logger.FileEnable)
	setEnvValue("VENDAS_LOGGER_FILENAME", &appConfig.Logger.Filename)

	return appConfig
}
