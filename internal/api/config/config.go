package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// LoadConfig 从文件加载配置并填充到 Cfg, CONFIG_PATH 可覆盖默认目录
func LoadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if dir := os.Getenv("CONFIG_PATH"); dir != "" {
		viper.AddConfigPath(dir)
	} else {
		viper.AddConfigPath("./configs")
	}

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	Cfg = &cfg

	return nil
}
