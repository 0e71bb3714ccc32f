package tree

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/feature"
)

// Tree represents a binary decision tree classifier. It owns
// its root node and knows the number of classes and features
// of the dataset it was grown from. Trees are not modified
// once grown.
type Tree struct {
	Root        Node
	NumClasses  int
	NumFeatures int
}

// New takes a root Node and the number of classes and features
// of the dataset it classifies and returns a tree.
func New(root Node, numClasses, numFeatures int) *Tree {
	return &Tree{root, numClasses, numFeatures}
}

/*
Classify takes an instance and returns the class the tree assigns to it:
starting at the root, it goes left on every decision node whose criterion
the instance satisfies and right otherwise, until it reaches a leaf.
It panics if the instance lacks a feature the tree asks about.
*/
func (t *Tree) Classify(i *dataset.Instance) int {
	n := t.Root
	for {
		switch node := n.(type) {
		case *Leaf:
			return node.Class
		case *Decision:
			if node.SatisfiedBy(i.Values()) {
				n = node.Left
			} else {
				n = node.Right
			}
		default:
			panic(fmt.Sprintf("unknown node type %T", n))
		}
	}
}

/*
Predict takes a context and a feature.Sample and returns the class the tree
assigns to it, the same way Classify does. Values are requested from the
sample only for the features on the traversed path. An error is returned
if the tree is nil or a value cannot be obtained from the sample.
*/
func (t *Tree) Predict(ctx context.Context, s feature.Sample) (int, error) {
	if t == nil || t.Root == nil {
		return 0, fmt.Errorf("nil tree cannot predict samples")
	}
	n := t.Root
	for {
		switch node := n.(type) {
		case *Leaf:
			return node.Class, nil
		case *Decision:
			ok, err := node.SatisfiedBySample(ctx, s)
			if err != nil {
				return 0, fmt.Errorf("predicting sample: %v", err)
			}
			if ok {
				n = node.Left
			} else {
				n = node.Right
			}
		default:
			return 0, fmt.Errorf("predicting sample: unknown node type %T", n)
		}
	}
}

// Traverse takes a function on a depth and a node and goes through
// the tree in pre-order (a node, then its left subtree, then its right
// subtree) calling it with every node and its depth, the root being at
// depth 0. If the function returns an error, the traversing is aborted
// and the error is returned.
func (t *Tree) Traverse(f func(depth int, n Node) error) error {
	return traverse(t.Root, 0, f)
}

func traverse(n Node, depth int, f func(int, Node) error) error {
	err := f(depth, n)
	if err != nil {
		return err
	}
	if d, ok := n.(*Decision); ok {
		err = traverse(d.Left, depth+1, f)
		if err != nil {
			return err
		}
		return traverse(d.Right, depth+1, f)
	}
	return nil
}

// Leaves returns the number of leaves in the tree.
func (t *Tree) Leaves() int {
	var count int
	t.Traverse(func(_ int, n Node) error {
		if _, ok := n.(*Leaf); ok {
			count++
		}
		return nil
	})
	return count
}

// NoisyLeaves returns the number of leaves whose class
// was assigned by the noisy data rule.
func (t *Tree) NoisyLeaves() int {
	var count int
	t.Traverse(func(_ int, n Node) error {
		if l, ok := n.(*Leaf); ok && l.Origin == Noisy {
			count++
		}
		return nil
	})
	return count
}

// Depth returns the depth of the deepest leaf of the tree.
func (t *Tree) Depth() int {
	var deepest int
	t.Traverse(func(depth int, _ Node) error {
		if depth > deepest {
			deepest = depth
		}
		return nil
	})
	return deepest
}

/*
Fprint takes an io.Writer and a feature.Metadata (that may be nil) and writes
the tree in pre-order onto it, one node per line, indented with "| " once per
level of depth. Decision nodes are written as "Feature: f Split: s" and leaves
as "Class: c", using the names in the metadata for features and classes when
it has them.
*/
func (t *Tree) Fprint(w io.Writer, md *feature.Metadata) error {
	return t.Traverse(func(depth int, n Node) error {
		var line string
		switch node := n.(type) {
		case *Leaf:
			line = fmt.Sprintf("Class: %s", md.ClassName(node.Class))
		case *Decision:
			line = fmt.Sprintf("Feature: %s Split: %f", md.FeatureName(node.Feature), node.Threshold)
		}
		_, err := fmt.Fprintf(w, "%s%s\n", strings.Repeat("| ", depth), line)
		return err
	})
}

func (t *Tree) String() string {
	var b bytes.Buffer
	t.Fprint(&b, nil)
	return b.String()
}
