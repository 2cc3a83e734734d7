package config

import (
	"zendex/core"

	"github.com/asaskevich/govalidator"
	configUtil "github.com/fox-one/pkg/config"
)

// Load load config file
func Load(configFile string, config *core.Config) error {
	configUtil.AutomaticLoadEnv("ZENDEX")
	if err := configUtil.LoadYaml(configFile, config); err != nil {
		return err
	}

	defaults(config)

	if _, err := govalidator.ValidateStruct(config); err != nil {
		return err
	}

	return nil
}

func defaults(config *core.Config) {
	if config.Currency.ExistentialDeposit == 0 {
		config.Currency.ExistentialDeposit = 1
	}
}
