package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
}

// LoadConfig 读取配置文件
// jwt.secret 缺失直接报错，进程必须拒绝启动，绝不能用空密钥签 Token
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config") // 配置文件名 (不带扩展名)
	viper.SetConfigType("yaml")   // 文件类型
	viper.AddConfigPath(".")      // 查找路径：根目录

	// 支持环境变量覆盖 (例如在 Docker 中)
	// 设置 TASKNEST_JWT_SECRET 可以覆盖 yaml 里的值
	viper.SetEnvPrefix("TASKNEST")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// 端口可不配，默认 :5000
	viper.SetDefault("server.port", ":5000")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt.secret 未配置，拒绝启动")
	}
	if cfg.Database.DSN == "" {
		return nil, fmt.Errorf("database.dsn 未配置")
	}

	return &cfg, nil
}
