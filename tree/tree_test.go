package tree

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/feature"
)

// x0 <= 1 ? class 0 : (x1 <= 5 ? class 1 : class 2)
func testTree() *Tree {
	return New(&Decision{
		Criterion: feature.NewCriterion(0, 1),
		Left:      &Leaf{Class: 0, Origin: Pure},
		Right: &Decision{
			Criterion: feature.NewCriterion(1, 5),
			Left:      &Leaf{Class: 1, Origin: Noisy},
			Right:     &Leaf{Class: 2, Origin: Pure},
		},
	}, 3, 2)
}

type countingSample struct {
	values    []float64
	requested []int
}

func (cs *countingSample) ValueFor(_ context.Context, f int) (float64, error) {
	cs.requested = append(cs.requested, f)
	if f >= len(cs.values) {
		return 0, fmt.Errorf("no value for feature %d", f)
	}
	return cs.values[f], nil
}

func TestClassify(t *testing.T) {
	tr := testTree()
	testCases := []struct {
		values   []float64
		expected int
	}{
		{[]float64{1, 100}, 0},
		{[]float64{1.5, 5}, 1},
		{[]float64{2, 5.5}, 2},
	}
	for _, tc := range testCases {
		if c := tr.Classify(dataset.NewInstance(0, tc.values)); c != tc.expected {
			t.Fatalf("expected %v to be classified as %d, got %d", tc.values, tc.expected, c)
		}
	}
}

func TestPredictRequestsOnlyPathFeatures(t *testing.T) {
	tr := testTree()
	s := &countingSample{values: []float64{0}}
	c, err := tr.Predict(context.Background(), s)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if c != 0 || len(s.requested) != 1 || s.requested[0] != 0 {
		t.Fatalf("expected class 0 requesting only feature 0, got %d requesting %v", c, s.requested)
	}
	_, err = tr.Predict(context.Background(), &countingSample{values: []float64{3}})
	if err == nil {
		t.Fatalf("expected an error predicting a sample without a value for feature 1")
	}
	var nilTree *Tree
	if _, err = nilTree.Predict(context.Background(), s); err == nil {
		t.Fatalf("expected an error predicting with a nil tree")
	}
}

func TestStatistics(t *testing.T) {
	tr := testTree()
	if tr.Leaves() != 3 || tr.NoisyLeaves() != 1 || tr.Depth() != 2 {
		t.Fatalf("expected 3 leaves, 1 noisy, depth 2, got %d, %d, %d", tr.Leaves(), tr.NoisyLeaves(), tr.Depth())
	}
	var depths []int
	tr.Traverse(func(depth int, _ Node) error {
		depths = append(depths, depth)
		return nil
	})
	if fmt.Sprint(depths) != "[0 1 1 2 2]" {
		t.Fatalf("unexpected pre-order depths %v", depths)
	}
}

func TestFprint(t *testing.T) {
	var b bytes.Buffer
	md := &feature.Metadata{Features: []string{"width"}, Classes: []string{"a", "b"}}
	err := testTree().Fprint(&b, md)
	if err != nil {
		t.Fatalf("Fprint: %v", err)
	}
	expected := "Feature: width Split: 1.000000\n| Class: a\n| Feature: 1 Split: 5.000000\n| | Class: b\n| | Class: 2\n"
	if b.String() != expected {
		t.Fatalf("expected\n%s\ngot\n%s", expected, b.String())
	}
}

func TestEvaluate(t *testing.T) {
	tr := testTree()
	is := dataset.Instances{
		dataset.NewInstance(0, []float64{0, 0}),
		dataset.NewInstance(1, []float64{2, 0}),
		dataset.NewInstance(2, []float64{2, 0}),
		dataset.NewInstance(2, []float64{2, 9}),
	}
	r, err := tr.Evaluate(is)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if r.Correct != 3 || r.Total != 4 || r.Accuracy != 0.75 {
		t.Fatalf("unexpected report %v", r)
	}
	if r.Confusion[2][1] != 1 || r.Confusion[2][2] != 1 || r.Confusion[0][0] != 1 {
		t.Fatalf("unexpected confusion matrix %v", r.Confusion)
	}
	if tr.Accuracy(is) != 0.75 {
		t.Fatalf("expected accuracy 0.75, got %f", tr.Accuracy(is))
	}
	var b bytes.Buffer
	err = r.Fprint(&b, nil)
	if err != nil {
		t.Fatalf("Fprint: %v", err)
	}
	expected := "actual\\assigned\t0\t1\t2\n0\t1\t0\t0\n1\t0\t1\t0\n2\t0\t1\t1\n"
	if b.String() != expected {
		t.Fatalf("expected\n%q\ngot\n%q", expected, b.String())
	}
}

func TestEvaluateErrors(t *testing.T) {
	tr := testTree()
	if _, err := tr.Evaluate(nil); err != ErrCannotEvaluateEmptySet {
		t.Fatalf("expected ErrCannotEvaluateEmptySet, got %v", err)
	}
	_, err := tr.Evaluate(dataset.Instances{dataset.NewInstance(3, []float64{0, 0})})
	if _, ok := err.(EvaluationError); !ok {
		t.Fatalf("expected an EvaluationError, got %v", err)
	}
	// a leaf assigning a class the tree does not know
	broken := New(&Leaf{Class: 5, Origin: Pure}, 2, 1)
	_, err = broken.Evaluate(dataset.Instances{dataset.NewInstance(1, []float64{0})})
	if _, ok := err.(EvaluationError); !ok {
		t.Fatalf("expected an EvaluationError for a leaf class out of range, got %v", err)
	}
}
