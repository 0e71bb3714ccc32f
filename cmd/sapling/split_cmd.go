package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/pbanos/sapling/dataset"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type splitCmdConfig struct {
	*setCmdConfig
	splitOutput      string
	splitProbability int
	seed             int64
}

func splitCmd(setConfig *setCmdConfig) *cobra.Command {
	config := &splitCmdConfig{setCmdConfig: setConfig}
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a set into two sets",
		Long:  `Split a set into an output set and a split set, assigning each instance to the split set with the given probability`,
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
			seed := config.seed
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			output, split := splitDataset(d, config.splitProbability, rand.New(rand.NewSource(seed)))
			err = writeDataset(ctx, config.setOutput, output, config.logger)
			if err != nil {
				config.exit(3, err)
			}
			err = writeDataset(ctx, config.splitOutput, split, config.logger)
			if err != nil {
				config.exit(4, err)
			}
			config.logger.Info("Done", zap.Int("instances", d.Count()), zap.Int("output", output.Count()), zap.Int("split", split.Count()), zap.Int64("seed", seed))
		},
	}
	cmd.Flags().IntVarP(&(config.splitProbability), "split-probability", "p", 20, "probability as percent integer that an instance of the set will be assigned to the split set")
	cmd.Flags().StringVarP(&(config.splitOutput), "split-output", "s", "", "location to dump the split set to (required)")
	cmd.Flags().Int64Var(&(config.seed), "seed", 0, "seed for the random assignment of instances (defaults to the current time)")
	return cmd
}

func (scc *splitCmdConfig) fromViper() {
	scc.setCmdConfig.fromViper()
	scc.splitOutput = scc.v.GetString("split-output")
	scc.splitProbability = scc.v.GetInt("split-probability")
	scc.seed = scc.v.GetInt64("seed")
}

func (scc *splitCmdConfig) Validate() error {
	err := scc.setCmdConfig.Validate()
	if err != nil {
		return err
	}
	if scc.splitOutput == "" {
		return fmt.Errorf("required split-output flag was not set")
	}
	if scc.splitOutput == scc.setOutput {
		return fmt.Errorf("output and split sets cannot be the same location %q", scc.splitOutput)
	}
	if scc.splitProbability <= 0 || scc.splitProbability > 100 {
		return fmt.Errorf("split-probability flag was set to an invalid value: it must be set to an integer between 1 and 100")
	}
	return nil
}

/*
splitDataset distributes the instances of d into two datasets with
its descriptor, assigning each to the second one with the given
percent probability.
*/
func splitDataset(d *dataset.Dataset, probability int, randomizer *rand.Rand) (output, split *dataset.Dataset) {
	output = dataset.New(d.NumClasses, d.NumFeatures, nil)
	split = dataset.New(d.NumClasses, d.NumFeatures, nil)
	for _, i := range d.Instances {
		if 100*randomizer.Float32() > float32(probability) {
			output.Instances = append(output.Instances, i)
		} else {
			split.Instances = append(split.Instances, i)
		}
	}
	return output, split
}
