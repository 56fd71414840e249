package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	App    AppConfig    `mapstructure:"app"`
	Wallet WalletConfig `mapstructure:"wallet"`
}

type AppConfig struct {
	Env      string `mapstructure:"env"`
	HttpPort string `mapstructure:"http_port"`
}

type WalletConfig struct {
	RpcUrl              string `mapstructure:"rpc_url"`               // default endpoint when a request omits one
	DerivationPath      string `mapstructure:"derivation_path"`       // BIP-44 path for generated wallets
	DefaultGasPriceGwei string `mapstructure:"default_gas_price_gwei"`
}

var Global Config

// Init loads config.yaml (working dir or ./config), then lets environment
// variables override (WALLET_RPC_URL and friends).
func Init() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Printf("Warning: Config file not found, using defaults and environment variables")
		} else {
			log.Fatalf("Fatal error config file: %s \n", err)
		}
	}

	if err := viper.Unmarshal(&Global); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	log.Printf("Configuration loaded successfully. Env: %s", Global.App.Env)
}

func setDefaults() {
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.http_port", "8080")

	viper.SetDefault("wallet.rpc_url", "http://localhost:8545")
	viper.SetDefault("wallet.derivation_path", "m/44'/60'/0'/0/0")
	viper.SetDefault("wallet.default_gas_price_gwei", "100")
}
