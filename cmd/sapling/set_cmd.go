package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type setCmdConfig struct {
	*rootCmdConfig
	setInput  string
	setOutput string
}

func setCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &setCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Manage sets of data",
		Long:  `Manage sets of data, copying a set from one location onto another`,
		Run: func(cmd *cobra.Command, args []string) {
			config.fromViper()
			err := config.Validate()
			if err != nil {
				config.exit(1, err)
			}
			ctx := context.Background()
			d, err := readDataset(ctx, config.setInput, config.logger)
			if err != nil {
				config.exit(2, err)
			}
			err = writeDataset(ctx, config.setOutput, d, config.logger)
			if err != nil {
				config.exit(3, err)
			}
			config.logger.Info("Done", zap.Int("instances", d.Count()))
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.setInput), "input", "i", "", "location of the input set: a text (.csv, default), JSON (.json) or SQLite3 (.db) file, or a PostgreSQL, MongoDB or redis URL (defaults to STDIN, interpreted as text)")
	cmd.PersistentFlags().StringVarP(&(config.setOutput), "output", "o", "", "location to dump the output set to, with the same formats accepted for the input (defaults to STDOUT in text)")
	cmd.AddCommand(splitCmd(config))
	return cmd
}

func (scc *setCmdConfig) fromViper() {
	scc.setInput = scc.v.GetString("input")
	scc.setOutput = scc.v.GetString("output")
}

func (scc *setCmdConfig) Validate() error {
	if scc.setInput != "" && scc.setInput == scc.setOutput {
		return fmt.Errorf("input and output sets cannot be the same location %q", scc.setInput)
	}
	return nil
}
