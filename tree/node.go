package tree

import (
	"fmt"

	"github.com/pbanos/sapling/feature"
)

/*
Node is a node of the tree. It is either a *Leaf or a *Decision, no other
types implement it.
*/
type Node interface {
	isNode()
}

// Origin tells which rule assigned the class of a leaf.
type Origin int

const (
	// Pure leaves come from a subset whose instances all share a class.
	Pure Origin = iota
	// Noisy leaves come from a subset whose instances have differing
	// classes but identical feature vectors. They carry its majority class.
	Noisy
	// Inherited leaves come from an empty subset. They carry the
	// majority class of the parent subset.
	Inherited
)

func (o Origin) String() string {
	switch o {
	case Pure:
		return "pure"
	case Noisy:
		return "noisy"
	case Inherited:
		return "inherited"
	}
	return fmt.Sprintf("Origin(%d)", int(o))
}

/*
Leaf is a terminal node assigning a fixed class to every instance that
reaches it.
*/
type Leaf struct {
	Class  int
	Origin Origin
}

/*
Decision is an inner node. Instances satisfying its criterion (their value
for the feature is <= the threshold) continue through Left, the rest
through Right. A Decision node is the only owner of its children.
*/
type Decision struct {
	feature.Criterion
	Left  Node
	Right Node
}

func (*Leaf) isNode()     {}
func (*Decision) isNode() {}

func (l *Leaf) String() string {
	return fmt.Sprintf("Class: %d", l.Class)
}

func (d *Decision) String() string {
	return fmt.Sprintf("Feature: %d Split: %f", d.Feature, d.Threshold)
}
