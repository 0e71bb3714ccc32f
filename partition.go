package sapling

import (
	"fmt"

	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/feature"
)

/*
Partition represents the split of a set of instances according to a
feature.Criterion: Left holds the instances satisfying it (their value for
the feature is <= the threshold) and Right the rest. Both reference the
instances of the partitioned set in their original order.
*/
type Partition struct {
	feature.Criterion
	Left  dataset.Instances
	Right dataset.Instances
}

/*
NewPartition takes a set of instances and a feature.Criterion and returns
the partition of the set for the criterion.
*/
func NewPartition(instances dataset.Instances, c feature.Criterion) *Partition {
	left, right := instances.SubsetWith(c)
	return &Partition{c, left, right}
}

/*
SplitEntropy takes a non-empty set of instances, the number of classes and
a feature.Criterion and returns the weighted average of the entropies of
both sides of the partition the criterion induces on the set, each weighted
by its share of the instances. An empty side weighs 0. The result is never
negative.

It panics if the set is empty or numClasses is not positive.
*/
func SplitEntropy(instances dataset.Instances, numClasses int, c feature.Criterion) float64 {
	if len(instances) == 0 {
		panic("split entropy of an empty set of instances")
	}
	if numClasses <= 0 {
		panic(fmt.Sprintf("split entropy with %d classes", numClasses))
	}
	leftCounts := make([]int, numClasses)
	rightCounts := make([]int, numClasses)
	var numLeft, numRight int
	for _, i := range instances {
		if c.SatisfiedBy(i.Values()) {
			numLeft++
			leftCounts[i.Class()]++
		} else {
			numRight++
			rightCounts[i.Class()]++
		}
	}
	total := float64(len(instances))
	leftWeight := float64(numLeft) / total
	rightWeight := float64(numRight) / total
	return leftWeight*dataset.CountEntropy(leftCounts, numLeft) + rightWeight*dataset.CountEntropy(rightCounts, numRight)
}

/*
BestSplit takes a non-empty set of instances, the number of features and the
number of classes and returns the feature.Criterion with the lowest
SplitEntropy on the set. The candidate thresholds for a feature are the values
the instances have for it. Candidates are evaluated feature by feature and,
within a feature, in instance order; the first candidate reaching the minimum
wins ties.

It panics if the set is empty or numFeatures or numClasses are not positive.
*/
func BestSplit(instances dataset.Instances, numFeatures, numClasses int) feature.Criterion {
	c, _ := bestSplit(instances, numFeatures, numClasses, false)
	return c
}

/*
BestSeparatingSplit works like BestSplit but only considers the candidates
that leave instances on both sides of the partition, that is, it skips the
highest value of every feature. It returns false as second value if there
is no such candidate because every instance has the same feature vector.
*/
func BestSeparatingSplit(instances dataset.Instances, numFeatures, numClasses int) (feature.Criterion, bool) {
	return bestSplit(instances, numFeatures, numClasses, true)
}

func bestSplit(instances dataset.Instances, numFeatures, numClasses int, separating bool) (feature.Criterion, bool) {
	if len(instances) == 0 {
		panic("best split of an empty set of instances")
	}
	if numFeatures <= 0 {
		panic(fmt.Sprintf("best split with %d features", numFeatures))
	}
	var best feature.Criterion
	var found bool
	minEntropy := -1.0
	for f := 0; f < numFeatures; f++ {
		highest := instances[0].Value(f)
		for _, i := range instances[1:] {
			if i.Value(f) > highest {
				highest = i.Value(f)
			}
		}
		evaluated := make(map[float64]bool, len(instances))
		for _, i := range instances {
			threshold := i.Value(f)
			// a repeated threshold yields the same entropy and cannot win a tie
			if evaluated[threshold] || (separating && threshold >= highest) {
				continue
			}
			evaluated[threshold] = true
			c := feature.NewCriterion(f, threshold)
			entropy := SplitEntropy(instances, numClasses, c)
			if !found || entropy < minEntropy {
				minEntropy = entropy
				best = c
				found = true
			}
		}
	}
	return best, found
}
