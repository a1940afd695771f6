package config

import (
	"os"
	"path/filepath"
	"reflect"

	"github.com/spf13/viper"
)

var cfg Config
var home = os.Getenv("HOME")

func getViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("bdk_cli_config")
	v.SetConfigType("json")
	v.AddConfigPath(".") // config file reading order starts with current working directory
	v.AddConfigPath("$HOME/.bdk-bitcoin")
	return v
}

func setDefaultConfig() *viper.Viper {
	v := getViper()
	v.SetDefault("general.data_dir", filepath.Join(home, ".bdk-bitcoin"))
	v.SetDefault("general.network", "testnet")
	v.SetDefault("general.debug", false)
	v.SetDefault("electrum.url", "ssl://electrum.blockstream.info:60002")
	v.SetDefault("electrum.proxy", "")
	v.SetDefault("electrum.retries", 5)
	v.SetDefault("electrum.timeout", 0)
	v.SetDefault("esplora.concurrency", 4)
	return v
}

func LoadConfig() {
	v := setDefaultConfig()

	if err := v.ReadInConfig(); err != nil {
		setDefaultConfig().Unmarshal(&cfg)
		return
	}

	if err := v.Unmarshal(&cfg); err != nil {
		setDefaultConfig().Unmarshal(&cfg)
	}
}

func SetConfig(key string, value interface{}) {
	v := setDefaultConfig()
	v.Set(key, value)
	err := v.Unmarshal(&cfg)
	if err != nil {
		setDefaultConfig().Unmarshal(&cfg)
	}
}

func GetConfig() *Config {
	if reflect.DeepEqual(cfg, Config{}) {
		LoadConfig()
	}
	return &cfg
}
