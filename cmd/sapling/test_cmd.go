package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pbanos/sapling/dataset"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type testCmdConfig struct {
	*growCmdConfig
	testInput  string
	headerless bool
}

func testCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &testCmdConfig{growCmdConfig: &growCmdConfig{rootCmdConfig: rootConfig}}
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test the performance of a tree",
		Long:  `Grow a tree from a training set and test its performance against a testing set, classifying each of its instances`,
		Run: func(cmd *cobra.Command, args []string) {
			config.fromViper()
			err := config.Validate()
			if err != nil {
				config.exit(1, err)
			}
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
			testSet, err := config.testingSet(ctx, g.training.NumClasses, g.training.NumFeatures)
			if err != nil {
				config.exit(7, err)
			}
			if testSet.NumClasses != g.training.NumClasses || testSet.NumFeatures != g.training.NumFeatures {
				config.exit(8, fmt.Errorf("testing set has %d classes and %d features, but the training set has %d and %d", testSet.NumClasses, testSet.NumFeatures, g.training.NumClasses, g.training.NumFeatures))
			}
			fmt.Printf("\nTESTING DATA:\n")
			for _, i := range testSet.Instances {
				fmt.Println(i)
				fmt.Printf("\nTree classifies as %s\n\n", g.metadata.ClassName(g.tree.Classify(i)))
			}
			report, err := g.tree.Evaluate(testSet.Instances)
			if err != nil {
				config.exit(9, fmt.Errorf("testing tree: %v", err))
			}
			config.logger.Info("Done", zap.Int("correct", report.Correct), zap.Int("total", report.Total))
			fmt.Printf("Accuracy of tree on testing data: %f\n\n", report.Accuracy)
			err = report.Fprint(os.Stdout, g.metadata)
			if err != nil {
				config.exit(10, err)
			}
		},
	}
	config.addFlags(cmd)
	cmd.Flags().StringVarP(&(config.testInput), "test", "t", "", "location of the testing set, with the same formats accepted for the input (required)")
	cmd.Flags().BoolVar(&(config.headerless), "headerless", false, "the testing set is a text file without the classes and features line, they are taken from the training set")
	return cmd
}

func (tcc *testCmdConfig) fromViper() {
	tcc.growCmdConfig.fromViper()
	tcc.testInput = tcc.v.GetString("test")
	tcc.headerless = tcc.v.GetBool("headerless")
}

func (tcc *testCmdConfig) Validate() error {
	if tcc.testInput == "" {
		return fmt.Errorf("required test flag was not set")
	}
	if tcc.testInput == tcc.dataInput {
		return fmt.Errorf("training and testing sets cannot be read from the same location %q", tcc.testInput)
	}
	return nil
}

func (tcc *testCmdConfig) testingSet(ctx context.Context, numClasses, numFeatures int) (*dataset.Dataset, error) {
	if tcc.headerless {
		return readHeaderlessDataset(ctx, tcc.testInput, numClasses, numFeatures)
	}
	return readDataset(ctx, tcc.testInput, tcc.logger)
}
