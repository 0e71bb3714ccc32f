package feature

import (
	"fmt"
	"strconv"
)

/*
Metadata holds the optional human-readable names for the features and the
classes of a dataset. Features are identified by their index in the
feature vector of an instance, classes by their integer label. Names
are only used to present trees and classifications, never to learn.
*/
type Metadata struct {
	Features []string `yaml:"features" json:"features"`
	Classes  []string `yaml:"classes" json:"classes"`
}

/*
FeatureName takes a feature index and returns the name the metadata gives
to it, or the index itself as a string if it has none. It can be called on
a nil Metadata.
*/
func (md *Metadata) FeatureName(f int) string {
	if md == nil || f < 0 || f >= len(md.Features) || md.Features[f] == "" {
		return strconv.Itoa(f)
	}
	return md.Features[f]
}

/*
ClassName takes a class label and returns the name the metadata gives
to it, or the label itself as a string if it has none. It can be called on
a nil Metadata.
*/
func (md *Metadata) ClassName(c int) string {
	if md == nil || c < 0 || c >= len(md.Classes) || md.Classes[c] == "" {
		return strconv.Itoa(c)
	}
	return md.Classes[c]
}

/*
Check takes the number of classes and features of a dataset and returns an
error if the metadata names more classes or features than the dataset has.
*/
func (md *Metadata) Check(numClasses, numFeatures int) error {
	if md == nil {
		return nil
	}
	if len(md.Classes) > numClasses {
		return fmt.Errorf("metadata names %d classes but the dataset has %d", len(md.Classes), numClasses)
	}
	if len(md.Features) > numFeatures {
		return fmt.Errorf("metadata names %d features but the dataset has %d", len(md.Features), numFeatures)
	}
	return nil
}
