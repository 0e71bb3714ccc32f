package dataset

import (
	"context"
	"fmt"
	"math"

	"github.com/pbanos/sapling/feature"
)

// ValidationError represents a dataset that breaks the
// constraints on its descriptor or its instances.
type ValidationError string

func (ve ValidationError) Error() string {
	return string(ve)
}

/*
ErrNoInstances is the error returned when validating a dataset that is
required to have instances and has none.
*/
const ErrNoInstances = ValidationError("dataset has no instances")

/*
Dataset represents a collection of labeled instances together with its
descriptor: the number of classes (labels go from 0 to NumClasses-1) and
the number of features every instance has.
*/
type Dataset struct {
	NumClasses  int
	NumFeatures int
	Instances   Instances
}

/*
Instances is an ordered collection of references to instances. Subsets
of a dataset are Instances that share the referenced instances with it,
never copies of them.
*/
type Instances []*Instance

/*
New takes the number of classes, the number of features and a slice of
instances and returns a dataset with them. It does not validate them, use
Validate for that.
*/
func New(numClasses, numFeatures int, instances Instances) *Dataset {
	return &Dataset{numClasses, numFeatures, instances}
}

/*
Validate returns a ValidationError if the number of classes or the number of
features of the dataset is not positive, or if any of its instances has a
class out of the [0, NumClasses) range or a feature vector whose length is not
NumFeatures, or a NaN value. It returns nil otherwise.
*/
func (d *Dataset) Validate() error {
	if d.NumClasses <= 0 {
		return ValidationError(fmt.Sprintf("number of classes must be positive, got %d", d.NumClasses))
	}
	if d.NumFeatures <= 0 {
		return ValidationError(fmt.Sprintf("number of features must be positive, got %d", d.NumFeatures))
	}
	for i, instance := range d.Instances {
		if instance == nil {
			return ValidationError(fmt.Sprintf("instance %d is nil", i))
		}
		if instance.Class() < 0 || instance.Class() >= d.NumClasses {
			return ValidationError(fmt.Sprintf("instance %d has class %d, out of range [0, %d)", i, instance.Class(), d.NumClasses))
		}
		if instance.NumFeatures() != d.NumFeatures {
			return ValidationError(fmt.Sprintf("instance %d has %d features, expected %d", i, instance.NumFeatures(), d.NumFeatures))
		}
		for f, v := range instance.Values() {
			if math.IsNaN(v) {
				return ValidationError(fmt.Sprintf("instance %d has NaN value for feature %d", i, f))
			}
		}
	}
	return nil
}

// Count returns the number of instances in the dataset.
func (d *Dataset) Count() int {
	return len(d.Instances)
}

func (d *Dataset) String() string {
	return fmt.Sprintf("{Dataset classes: %d features: %d instances: %d}", d.NumClasses, d.NumFeatures, len(d.Instances))
}

/*
ClassCounts takes the number of classes and returns a slice with the number
of instances of each class, indexed by class label.
*/
func (is Instances) ClassCounts(numClasses int) []int {
	counts := make([]int, numClasses)
	for _, i := range is {
		counts[i.Class()]++
	}
	return counts
}

/*
Entropy takes the number of classes and returns the Shannon entropy
(in bits) of the class distribution of the instances. The entropy of an
empty collection is 0.
*/
func (is Instances) Entropy(numClasses int) float64 {
	return CountEntropy(is.ClassCounts(numClasses), len(is))
}

/*
CountEntropy takes per-class counts and their total and returns the Shannon
entropy (in bits) of the distribution. Classes with no instances contribute 0,
as does a total of 0.
*/
func CountEntropy(counts []int, total int) float64 {
	if total == 0 {
		return 0.0
	}
	var result float64
	n := float64(total)
	for _, c := range counts {
		if c > 0 {
			p := float64(c) / n
			result -= p * math.Log2(p)
		}
	}
	return result
}

/*
MajorityClass takes the number of classes and returns the most frequent
class among the instances. Ties go to the lowest class label. It panics
if there are no instances or numClasses is not positive.
*/
func (is Instances) MajorityClass(numClasses int) int {
	if len(is) == 0 {
		panic("majority class of an empty set of instances")
	}
	if numClasses <= 0 {
		panic(fmt.Sprintf("majority class with %d classes", numClasses))
	}
	counts := is.ClassCounts(numClasses)
	majority := 0
	for c := 1; c < numClasses; c++ {
		if counts[c] > counts[majority] {
			majority = c
		}
	}
	return majority
}

/*
SameClass returns whether all instances share the same class. It panics
if there are no instances.
*/
func (is Instances) SameClass() bool {
	if len(is) == 0 {
		panic("same class check on an empty set of instances")
	}
	class := is[0].Class()
	for _, i := range is[1:] {
		if i.Class() != class {
			return false
		}
	}
	return true
}

/*
SameValues takes the number of features and returns whether all instances
have identical feature vectors. It panics if there are no instances.
*/
func (is Instances) SameValues(numFeatures int) bool {
	if len(is) == 0 {
		panic("same values check on an empty set of instances")
	}
	first := is[0]
	for _, i := range is[1:] {
		if !first.SameValues(i, numFeatures) {
			return false
		}
	}
	return true
}

/*
SubsetWith takes a feature.Criterion and returns two new collections: the
instances that satisfy the criterion and the ones that do not, both in
their original order.
*/
func (is Instances) SubsetWith(c feature.Criterion) (satisfying, rest Instances) {
	for _, i := range is {
		if c.SatisfiedBy(i.Values()) {
			satisfying = append(satisfying, i)
		} else {
			rest = append(rest, i)
		}
	}
	return satisfying, rest
}

/*
Reader is an interface for sources from which a whole dataset can be read.
Its Read method returns the dataset or an error if it cannot be read or it
is not valid.
*/
type Reader interface {
	Read(ctx context.Context) (*Dataset, error)
}

/*
Writer is an interface for destinations onto which a whole dataset can be
written. Its Write method replaces whatever dataset the destination held.
*/
type Writer interface {
	Write(ctx context.Context, d *Dataset) error
}
