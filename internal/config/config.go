package config

type Config struct {
	General  `mapstructure:"general"`
	Electrum `mapstructure:"electrum"`
	Esplora  `mapstructure:"esplora"`
}

type General struct {
	DataDir string `mapstructure:"data_dir"`
	Network string `mapstructure:"network"`
	Debug   bool   `mapstructure:"debug"`
}

type Electrum struct {
	URL     string `mapstructure:"url"`
	Proxy   string `mapstructure:"proxy"`
	Retries int    `mapstructure:"retries"`
	Timeout int    `mapstructure:"timeout"` // seconds, 0 disables the dial timeout
}

type Esplora struct {
	Concurrency int `mapstructure:"concurrency"`
}
