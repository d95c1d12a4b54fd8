package cmd

import (
	"errors"
	"fmt"
	"os"

	"newsie/internal/config"
	"newsie/internal/model"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	appCfg  config.Config
)

// rootCmd is the base command called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "newsie",
	Short: "Newsie CLI",
	Long:  "AI newsletter generator for nonprofits: web UI, one-shot CLI, and draft tools.",
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")
}

func initConfig() {
	v := viper.GetViper()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/newsie")
		v.AddConfigPath("configs")
	}

	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			fmt.Fprintf(os.Stderr, "error reading config: %v\n", err)
			os.Exit(1)
		}
	} else {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", v.ConfigFileUsed())
	}

	if err := v.Unmarshal(&appCfg); err != nil {
		fmt.Fprintf(os.Stderr, "error parsing config: %v\n", err)
		os.Exit(1)
	}

	appCfg.FillDefaults()
}

// GetConfig exposes the loaded configuration to subcommands.
func GetConfig() config.Config {
	return appCfg
}

// defaultBrand maps the configured brand defaults onto a session BrandConfig.
func defaultBrand(cfg config.Config) model.BrandConfig {
	b := model.BrandConfig{
		OrgName:      cfg.Brand.OrgName,
		Tagline:      cfg.Brand.Tagline,
		Website:      cfg.Brand.Website,
		LogoURL:      cfg.Brand.LogoURL,
		PrimaryColor: cfg.Brand.PrimaryColor,
		AccentColor:  cfg.Brand.AccentColor,
		TextColor:    cfg.Brand.TextColor,
		MutedColor:   cfg.Brand.MutedColor,
	}
	for i := 0; i < model.NumSections && i < len(cfg.Brand.SectionNames); i++ {
		b.SectionNames[i] = cfg.Brand.SectionNames[i]
	}
	return b
}
