package feature

import (
	"context"
	"fmt"
)

/*
Sample is an interface for something that can satisfy a Criterion.

Its ValueFor method returns the value of the sample for the feature with
the index passed as parameter, or an error if it cannot be obtained.
*/
type Sample interface {
	ValueFor(ctx context.Context, f int) (float64, error)
}

/*
Criterion represents a constraint on a numeric feature: the value of the
feature must be lower than or equal to a threshold. Samples that satisfy it
belong to the left side of a split, the rest to the right side.
*/
type Criterion struct {
	Feature   int
	Threshold float64
}

/*
NewCriterion takes a feature index and a threshold and returns the
Criterion that is satisfied by values of the feature <= threshold.
*/
func NewCriterion(f int, threshold float64) Criterion {
	return Criterion{Feature: f, Threshold: threshold}
}

/*
SatisfiedBy takes a feature vector and returns whether its value for the
criterion feature is <= the threshold. The feature must be in range for
the vector, otherwise it panics.
*/
func (c Criterion) SatisfiedBy(values []float64) bool {
	if c.Feature < 0 || c.Feature >= len(values) {
		panic(fmt.Sprintf("feature %d out of range for a vector of %d features", c.Feature, len(values)))
	}
	return values[c.Feature] <= c.Threshold
}

/*
SatisfiedBySample takes a context and a Sample and returns whether the
value of the sample for the criterion feature is <= the threshold, or
an error if the value could not be obtained.
*/
func (c Criterion) SatisfiedBySample(ctx context.Context, s Sample) (bool, error) {
	v, err := s.ValueFor(ctx, c.Feature)
	if err != nil {
		return false, err
	}
	return v <= c.Threshold, nil
}

func (c Criterion) String() string {
	return fmt.Sprintf("feature %d <= %f", c.Feature, c.Threshold)
}
