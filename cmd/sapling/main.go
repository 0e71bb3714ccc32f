package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type rootCmdConfig struct {
	verbose    bool
	logLevel   string
	logFile    string
	configFile string
	v          *viper.Viper
	logger     *zap.Logger
}

func main() {
	if err := cliParser().Execute(); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	config := &rootCmdConfig{v: newViper()}
	rootCmd := &cobra.Command{
		Use:   "sapling",
		Short: "sapling is a tool to grow binary decision trees",
		Long:  `A tool to grow binary decision trees from numeric data, test them, and use them to classify new instances`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.load(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if config.logger != nil {
				config.logger.Sync()
			}
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&(config.verbose), "verbose", "v", false, "log progress messages")
	rootCmd.PersistentFlags().StringVar(&(config.logLevel), "log-level", "", "log level (debug, info, warn, error), overrides verbose")
	rootCmd.PersistentFlags().StringVar(&(config.logFile), "log-file", "", "path to a file to write logs to, rotated when it grows (defaults to STDERR)")
	rootCmd.PersistentFlags().StringVar(&(config.configFile), "config", "", "path to a YAML file with values for any flag")
	rootCmd.AddCommand(versionCmd(), growCmd(config), testCmd(config), predictCmd(config), setCmd(config))
	return rootCmd
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("SAPLING")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

/*
load binds the flags of the command being run into viper, reads the
config file if one was given and builds the logger. Flag values
take precedence over environment variables, which take precedence
over the config file.
*/
func (rcc *rootCmdConfig) load(cmd *cobra.Command) error {
	err := rcc.v.BindPFlags(cmd.Flags())
	if err != nil {
		return fmt.Errorf("binding flags: %v", err)
	}
	if configFile := rcc.v.GetString("config"); configFile != "" {
		rcc.v.SetConfigFile(configFile)
		rcc.v.SetConfigType("yaml")
		err = rcc.v.ReadInConfig()
		if err != nil {
			return fmt.Errorf("reading config file %s: %v", configFile, err)
		}
	}
	rcc.verbose = rcc.v.GetBool("verbose")
	rcc.logLevel = rcc.v.GetString("log-level")
	rcc.logFile = rcc.v.GetString("log-file")
	rcc.logger, err = newLogger(rcc.verbose, rcc.logLevel, rcc.logFile)
	return err
}

func (rcc *rootCmdConfig) exit(code int, err error) {
	fmt.Fprintln(os.Stderr, err)
	if rcc.logger != nil {
		rcc.logger.Sync()
	}
	os.Exit(code)
}
