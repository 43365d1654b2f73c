package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const defaultConfigPath = "configs/server.yaml"

// ServerConfig 对应 configs/server.yaml
type ServerConfig struct {
	Server struct {
		Port             string   `yaml:"port" validate:"required,numeric"`
		Debug            bool     `yaml:"debug"`
		RequestTimeoutMs int      `yaml:"request_timeout_ms" validate:"min=0"`
		AllowOrigins     []string `yaml:"allow_origins"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level" validate:"oneof=debug info warn error"`
		Format string `yaml:"format" validate:"oneof=json console"`
	} `yaml:"log"`
	Paths struct {
		Catalog   string `yaml:"catalog" validate:"required"`
		Pipelines string `yaml:"pipelines" validate:"required"`
	} `yaml:"paths"`
}

func defaultServerConfig() *ServerConfig {
	cfg := &ServerConfig{}
	cfg.Server.Port = "8080"
	cfg.Server.RequestTimeoutMs = 5000
	cfg.Log.Level = "info"
	cfg.Log.Format = "json"
	cfg.Paths.Catalog = "data/menu.csv"
	cfg.Paths.Pipelines = "configs/pipelines.json"
	return cfg
}

func loadServerConfig(path string) (*ServerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg ServerConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// mergeFile 用配置文件中的非零值覆盖默认值
func (c *ServerConfig) mergeFile(f *ServerConfig) {
	if f.Server.Port != "" {
		c.Server.Port = f.Server.Port
	}
	if f.Server.Debug {
		c.Server.Debug = true
	}
	if f.Server.RequestTimeoutMs > 0 {
		c.Server.RequestTimeoutMs = f.Server.RequestTimeoutMs
	}
	if len(f.Server.AllowOrigins) > 0 {
		c.Server.AllowOrigins = f.Server.AllowOrigins
	}
	if f.Log.Level != "" {
		c.Log.Level = f.Log.Level
	}
	if f.Log.Format != "" {
		c.Log.Format = f.Log.Format
	}
	if f.Paths.Catalog != "" {
		c.Paths.Catalog = f.Paths.Catalog
	}
	if f.Paths.Pipelines != "" {
		c.Paths.Pipelines = f.Paths.Pipelines
	}
}

// applyEnv 读取 BAKERY_* 环境变量
func (c *ServerConfig) applyEnv(getenv func(string) string) error {
	if v := getenv("BAKERY_PORT"); v != "" {
		c.Server.Port = v
	}
	if v := getenv("BAKERY_DEBUG"); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid BAKERY_DEBUG %q: %w", v, err)
		}
		c.Server.Debug = debug
	}
	if v := getenv("BAKERY_ALLOW_ORIGINS"); v != "" {
		c.Server.AllowOrigins = splitAndTrim(v)
	}
	if v := getenv("BAKERY_LOG_LEVEL"); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	if v := getenv("BAKERY_LOG_FORMAT"); v != "" {
		c.Log.Format = strings.ToLower(v)
	}
	if v := getenv("BAKERY_CATALOG"); v != "" {
		c.Paths.Catalog = v
	}
	if v := getenv("BAKERY_PIPELINES"); v != "" {
		c.Paths.Pipelines = v
	}
	return nil
}

func (c *ServerConfig) validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid server config: %w", err)
	}
	return nil
}

// InitServerConfig 初始化服务器配置，优先级：命令行参数 > 环境变量 > 配置文件 > 默认值
func InitServerConfig(args []string) (*ServerConfig, error) {
	fset := flag.NewFlagSet("recommend", flag.ContinueOnError)
	configPath := fset.String("config", defaultConfigPath, "Path to server config file")
	portFlag := fset.String("port", "", "Server port")
	debugFlag := fset.Bool("debug", false, "Enable debug logging and trace output")
	catalogFlag := fset.String("catalog", "", "Path to menu.csv")
	pipelinesFlag := fset.String("pipelines", "", "Path to pipelines.json")
	if err := fset.Parse(args); err != nil {
		return nil, err
	}

	// 1. 默认值
	cfg := defaultServerConfig()

	// 2. 配置文件；只有显式指定的文件不存在时才报错
	fileCfg, err := loadServerConfig(*configPath)
	switch {
	case err == nil:
		cfg.mergeFile(fileCfg)
	case errors.Is(err, fs.ErrNotExist) && *configPath == defaultConfigPath:
	default:
		return nil, fmt.Errorf("failed to load config file '%s': %w", *configPath, err)
	}

	// 3. 环境变量（.env 仅用于本地开发，缺失时忽略）
	_ = godotenv.Load()
	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}

	// 4. 命令行参数
	if *portFlag != "" {
		cfg.Server.Port = *portFlag
	}
	if *debugFlag {
		cfg.Server.Debug = true
	}
	if *catalogFlag != "" {
		cfg.Paths.Catalog = *catalogFlag
	}
	if *pipelinesFlag != "" {
		cfg.Paths.Pipelines = *pipelinesFlag
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func splitAndTrim(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
