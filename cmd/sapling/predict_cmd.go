package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pbanos/sapling/dataset/inputsample"
	"github.com/pbanos/sapling/feature"
	"github.com/spf13/cobra"
)

type predictCmdConfig struct {
	*growCmdConfig
}

type stdoutFeatureValueRequester struct {
	w  io.Writer
	md *feature.Metadata
}

func predictCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &predictCmdConfig{&growCmdConfig{rootCmdConfig: rootConfig}}
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict the class of a sample answering questions",
		Long:  `Grow a tree from a training set and use it to predict the class of a sample answering a reduced set of questions about its features`,
		Run: func(cmd *cobra.Command, args []string) {
			config.fromViper()
			if config.dataInput == "" {
				config.exit(1, fmt.Errorf("required input flag was not set: STDIN is used to answer questions"))
			}
			ctx := context.Background()
			g, code, err := config.grow(ctx)
			if err != nil {
				config.exit(code, err)
			}
			fvr := &stdoutFeatureValueRequester{os.Stdout, g.metadata}
			sample := inputsample.New(os.Stdin, g.tree.NumFeatures, fvr)
			class, err := g.tree.Predict(ctx, sample)
			if err != nil {
				config.exit(6, err)
			}
			fmt.Printf("Predicted class is %s\n", g.metadata.ClassName(class))
		},
	}
	config.addFlags(cmd)
	return cmd
}

func (sfvr *stdoutFeatureValueRequester) RequestValueFor(f int) error {
	_, err := fmt.Fprintf(sfvr.w, "Please provide the sample's %s:\n(valid values are real numbers)\n", sfvr.md.FeatureName(f))
	return err
}

func (sfvr *stdoutFeatureValueRequester) RejectValueFor(f int, value string) error {
	_, err := fmt.Fprintf(sfvr.w, "%q is not a valid value for the sample's %s. Please provide a real number.\n", value, sfvr.md.FeatureName(f))
	return err
}
