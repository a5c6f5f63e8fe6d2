package config

import (
	"strings"

	"dsc/core"

	"github.com/asaskevich/govalidator"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Load load config file, DSC_* env vars override file values
func Load(cfgFile string, cfg *core.Config) error {
	v := viper.New()
	v.SetEnvPrefix("DSC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return err
		}
	}

	bindEnvs(v)

	if err := v.Unmarshal(cfg, func(c *mapstructure.DecoderConfig) {
		c.TagName = "json"
	}); err != nil {
		return err
	}

	defaultConfig(cfg)

	if _, err := govalidator.ValidateStruct(cfg); err != nil {
		return err
	}

	if _, err := cfg.App.Registry(); err != nil {
		return err
	}

	return nil
}

// AutomaticEnv only overrides keys viper already knows about
func bindEnvs(v *viper.Viper) {
	keys := []string{
		"app.engine_address",
		"app.synthetic_token",
		"app.faucet",
		"app.collateral_tokens",
		"app.price_feeds",
		"app.location",
		"db.dialect",
		"db.dsn",
		"db.debug",
		"price_oracle.end_point",
		"price_oracle.stale_after",
		"price_oracle.interval",
		"health.interval",
		"server.port",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}
