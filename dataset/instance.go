package dataset

import (
	"context"
	"fmt"
	"strings"
)

/*
Instance represents a labeled data point: an ordered vector of numeric
feature values and the class it belongs to. Instances are not modified
once created.
*/
type Instance struct {
	class  int
	values []float64
}

/*
NewInstance takes a class label and a slice of feature values and returns
an instance with them. The instance keeps its own copy of the values.
*/
func NewInstance(class int, values []float64) *Instance {
	vs := make([]float64, len(values))
	copy(vs, values)
	return &Instance{class, vs}
}

// Class returns the class label of the instance.
func (i *Instance) Class() int {
	return i.class
}

// Value returns the value of the instance for the feature with index f.
// It panics if f is out of range.
func (i *Instance) Value(f int) float64 {
	return i.values[f]
}

// NumFeatures returns the length of the instance feature vector.
func (i *Instance) NumFeatures() int {
	return len(i.values)
}

/*
Values returns the feature vector of the instance. The returned slice
must not be modified.
*/
func (i *Instance) Values() []float64 {
	return i.values
}

/*
ValueFor returns the value of the instance for the feature with index f
or an error if the instance has no such feature. It makes instances
satisfy feature.Sample.
*/
func (i *Instance) ValueFor(_ context.Context, f int) (float64, error) {
	if f < 0 || f >= len(i.values) {
		return 0, fmt.Errorf("instance has no feature %d, it has %d features", f, len(i.values))
	}
	return i.values[f], nil
}

/*
SameValues takes another instance and returns whether both have the
same value for every one of the first numFeatures features.
*/
func (i *Instance) SameValues(o *Instance, numFeatures int) bool {
	for f := 0; f < numFeatures; f++ {
		if i.values[f] != o.values[f] {
			return false
		}
	}
	return true
}

func (i *Instance) String() string {
	vs := make([]string, len(i.values))
	for f, v := range i.values {
		vs[f] = fmt.Sprintf("%f", v)
	}
	return fmt.Sprintf("Feature Values: %s Class: %d", strings.Join(vs, " "), i.class)
}
