/*
Package sapling grows binary decision trees from labeled numeric data.

Trees are grown greedily: every inner node splits its instances on the
(feature, threshold) pair that minimizes the weighted entropy of both
sides, and leaves are assigned the class of a pure subset, the majority
class of a subset that cannot be split (noisy data) or, for an empty
subset, the majority class of its parent.
*/
package sapling

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/tree"
)

// Grower grows decision trees from datasets, reporting what it
// finds on the way through its Logger.
type Grower struct {
	// Logger receives a warning for every noisy data leaf and debug
	// messages for every decision node. A nil Logger logs nothing.
	Logger *zap.Logger
}

/*
Grow takes a context and a dataset and returns a tree grown from it with a
Grower that does not log.
*/
func Grow(ctx context.Context, d *dataset.Dataset) (*tree.Tree, error) {
	return (&Grower{}).Grow(ctx, d)
}

/*
Grow takes a context and a dataset and returns the decision tree grown from
its instances. It returns an error without growing anything if the dataset is
not valid or has no instances, and the context error if the context is
cancelled or times out while growing.
Splits that would leave a side empty are replaced by separating ones, so the
grown tree has no Inherited leaves: those only come from branching out on an
empty subset.
*/
func (g *Grower) Grow(ctx context.Context, d *dataset.Dataset) (*tree.Tree, error) {
	err := d.Validate()
	if err != nil {
		return nil, err
	}
	if len(d.Instances) == 0 {
		return nil, dataset.ErrNoInstances
	}
	logger := g.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	b := &builder{logger, d.NumFeatures, d.NumClasses}
	root, err := b.branchOut(ctx, d.Instances, d.Instances.MajorityClass(d.NumClasses), 0)
	if err != nil {
		return nil, err
	}
	return tree.New(root, d.NumClasses, d.NumFeatures), nil
}

type builder struct {
	logger      *zap.Logger
	numFeatures int
	numClasses  int
}

// branchOut returns the node for the given subset of instances.
// parentMajority is the class for the subset if it is empty.
func (b *builder) branchOut(ctx context.Context, instances dataset.Instances, parentMajority, depth int) (tree.Node, error) {
	err := ctx.Err()
	if err != nil {
		return nil, err
	}
	if len(instances) == 0 {
		return &tree.Leaf{Class: parentMajority, Origin: tree.Inherited}, nil
	}
	if instances.SameClass() {
		return &tree.Leaf{Class: instances[0].Class(), Origin: tree.Pure}, nil
	}
	majority := instances.MajorityClass(b.numClasses)
	if instances.SameValues(b.numFeatures) {
		b.logger.Warn("the data has some noise: instances with identical features have different classes",
			zap.Int("instances", len(instances)),
			zap.Ints("classCounts", instances.ClassCounts(b.numClasses)),
			zap.Float64s("values", instances[0].Values()),
			zap.Int("majorityClass", majority),
			zap.Int("depth", depth),
		)
		return &tree.Leaf{Class: majority, Origin: tree.Noisy}, nil
	}
	p := NewPartition(instances, BestSplit(instances, b.numFeatures, b.numClasses))
	if len(p.Left) == 0 || len(p.Right) == 0 {
		// growing a side holding every instance would repeat this same call
		c, ok := BestSeparatingSplit(instances, b.numFeatures, b.numClasses)
		if !ok {
			panic(fmt.Sprintf("no separating split for %d instances with differing feature vectors", len(instances)))
		}
		b.logger.Debug("replacing split that does not separate instances",
			zap.Stringer("split", p.Criterion),
			zap.Stringer("replacement", c),
			zap.Int("depth", depth),
		)
		p = NewPartition(instances, c)
	}
	b.logger.Debug("branching out",
		zap.Int("feature", p.Feature),
		zap.Float64("split", p.Threshold),
		zap.Int("left", len(p.Left)),
		zap.Int("right", len(p.Right)),
		zap.Int("depth", depth),
	)
	left, err := b.branchOut(ctx, p.Left, majority, depth+1)
	if err != nil {
		return nil, err
	}
	right, err := b.branchOut(ctx, p.Right, majority, depth+1)
	if err != nil {
		return nil, err
	}
	return &tree.Decision{Criterion: p.Criterion, Left: left, Right: right}, nil
}
