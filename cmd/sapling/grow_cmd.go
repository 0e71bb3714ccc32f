package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pbanos/sapling"
	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/feature"
	"github.com/pbanos/sapling/tree"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type growCmdConfig struct {
	*rootCmdConfig
	dataInput     string
	metadataInput string
}

/*
grown holds a tree along the training set it was grown from and
the metadata to render them with.
*/
type grown struct {
	tree     *tree.Tree
	training *dataset.Dataset
	metadata *feature.Metadata
}

func growCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &growCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "grow",
		Short: "Grow a tree from a set of data",
		Long:  `Grow a decision tree from a training set, print it and print its accuracy on the training set.`,
		Run: func(cmd *cobra.Command, args []string) {
			config.fromViper()
			ctx := context.Background()
			g, code, err := config.grow(ctx)
			if err != nil {
				config.exit(code, err)
			}
			fmt.Println("Tree:")
			err = g.tree.Fprint(os.Stdout, g.metadata)
			if err != nil {
				config.exit(6, err)
			}
			fmt.Printf("\nAccuracy of tree on training data: %f\n", g.tree.Accuracy(g.training.Instances))
		},
	}
	config.addFlags(cmd)
	return cmd
}

func (gcc *growCmdConfig) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&(gcc.dataInput), "input", "i", "", "path to an input text (.csv, default), JSON (.json) or SQLite3 (.db) file, or a PostgreSQL, MongoDB or redis URL with data to use to grow the tree (defaults to STDIN, interpreted as text)")
	cmd.Flags().StringVarP(&(gcc.metadataInput), "metadata", "m", "", "path to a YML (or .json) file with names for the features and classes of the data")
}

func (gcc *growCmdConfig) fromViper() {
	gcc.dataInput = gcc.v.GetString("input")
	gcc.metadataInput = gcc.v.GetString("metadata")
}

/*
grow reads the metadata and the training set and grows a tree from
them. On failure it returns the exit code for the failed stage along
the error.
*/
func (gcc *growCmdConfig) grow(ctx context.Context) (*grown, int, error) {
	md, err := readMetadata(gcc.metadataInput)
	if err != nil {
		return nil, 2, err
	}
	d, err := readDataset(ctx, gcc.dataInput, gcc.logger)
	if err != nil {
		return nil, 3, err
	}
	gcc.logger.Info("Training set read", zap.Stringer("dataset", d))
	logInstances(gcc.logger, d)
	err = md.Check(d.NumClasses, d.NumFeatures)
	if err != nil {
		return nil, 4, err
	}
	gcc.logger.Info("Growing tree...", zap.Int("instances", d.Count()), zap.Int("features", d.NumFeatures), zap.Int("classes", d.NumClasses))
	grower := &sapling.Grower{Logger: gcc.logger}
	t, err := grower.Grow(ctx, d)
	if err != nil {
		return nil, 5, fmt.Errorf("growing the tree: %v", err)
	}
	gcc.logger.Info("Done", zap.Int("leaves", t.Leaves()), zap.Int("noisyLeaves", t.NoisyLeaves()), zap.Int("depth", t.Depth()))
	return &grown{t, d, md}, 0, nil
}

// logInstances echoes every instance of d at debug level.
func logInstances(logger *zap.Logger, d *dataset.Dataset) {
	if !logger.Core().Enabled(zap.DebugLevel) {
		return
	}
	for n, i := range d.Instances {
		logger.Debug("instance", zap.Int("n", n), zap.Stringer("instance", i))
	}
}
