package dataset

import (
	"context"
	"math"
	"testing"

	"github.com/pbanos/sapling/feature"
)

func newInstances(classes []int, values ...[]float64) Instances {
	result := make(Instances, 0, len(classes))
	for n, c := range classes {
		result = append(result, NewInstance(c, values[n]))
	}
	return result
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name  string
		d     *Dataset
		valid bool
	}{
		{"valid", New(2, 2, newInstances([]int{0, 1}, []float64{1, 2}, []float64{3, 4})), true},
		{"valid without instances", New(2, 2, nil), true},
		{"no classes", New(0, 2, nil), false},
		{"negative features", New(2, -1, nil), false},
		{"nil instance", New(2, 1, Instances{nil}), false},
		{"negative class", New(2, 1, newInstances([]int{-1}, []float64{1})), false},
		{"class too high", New(2, 1, newInstances([]int{2}, []float64{1})), false},
		{"long vector", New(2, 1, newInstances([]int{1}, []float64{1, 2})), false},
		{"NaN", New(2, 1, newInstances([]int{1}, []float64{math.NaN()})), false},
	}
	for _, tc := range testCases {
		err := tc.d.Validate()
		if tc.valid && err != nil {
			t.Fatalf("%s: expected dataset to be valid, got %v", tc.name, err)
		}
		if !tc.valid {
			if _, ok := err.(ValidationError); !ok {
				t.Fatalf("%s: expected a ValidationError, got %v", tc.name, err)
			}
		}
	}
}

func TestNewInstanceCopiesValues(t *testing.T) {
	values := []float64{1, 2}
	i := NewInstance(0, values)
	values[0] = 5
	if i.Value(0) != 1 {
		t.Fatalf("expected instance to keep its own values, got %f", i.Value(0))
	}
	if _, err := i.ValueFor(context.Background(), 2); err == nil {
		t.Fatalf("expected an error requesting a feature out of range")
	}
	if v, err := i.ValueFor(context.Background(), 1); err != nil || v != 2 {
		t.Fatalf("expected value 2 for feature 1, got %f, %v", v, err)
	}
}

func TestEntropy(t *testing.T) {
	testCases := []struct {
		classes  []int
		expected float64
	}{
		{nil, 0},
		{[]int{1, 1, 1}, 0},
		{[]int{0, 1}, 1},
		{[]int{0, 1, 2, 3}, 2},
		{[]int{0, 0, 0, 1}, -(0.75*math.Log2(0.75) + 0.25*math.Log2(0.25))},
	}
	for _, tc := range testCases {
		values := make([][]float64, len(tc.classes))
		for n := range values {
			values[n] = []float64{0}
		}
		e := newInstances(tc.classes, values...).Entropy(4)
		if math.Abs(e-tc.expected) > 1e-9 {
			t.Fatalf("expected entropy of %v to be %f, got %f", tc.classes, tc.expected, e)
		}
	}
}

func TestMajorityClass(t *testing.T) {
	testCases := []struct {
		classes  []int
		expected int
	}{
		{[]int{2}, 2},
		{[]int{0, 1, 1}, 1},
		{[]int{1, 0, 1, 0}, 0},
		{[]int{2, 1, 2, 1, 0}, 1},
	}
	for _, tc := range testCases {
		values := make([][]float64, len(tc.classes))
		for n := range values {
			values[n] = []float64{0}
		}
		if c := newInstances(tc.classes, values...).MajorityClass(3); c != tc.expected {
			t.Fatalf("expected majority class of %v to be %d, got %d", tc.classes, tc.expected, c)
		}
	}
}

func TestMajorityClassEmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected MajorityClass on an empty set to panic")
		}
	}()
	Instances{}.MajorityClass(2)
}

func TestSameClassAndValues(t *testing.T) {
	is := newInstances([]int{1, 1}, []float64{1, 2}, []float64{1, 2})
	if !is.SameClass() || !is.SameValues(2) {
		t.Fatalf("expected %v to share class and values", is)
	}
	is = newInstances([]int{1, 0}, []float64{1, 2}, []float64{1, 3})
	if is.SameClass() {
		t.Fatalf("expected %v not to share class", is)
	}
	if is.SameValues(2) {
		t.Fatalf("expected %v not to share values", is)
	}
	if !is.SameValues(1) {
		t.Fatalf("expected %v to share the value of the first feature", is)
	}
}

func TestSubsetWith(t *testing.T) {
	is := newInstances([]int{0, 1, 0}, []float64{3}, []float64{1}, []float64{2})
	left, right := is.SubsetWith(feature.NewCriterion(0, 2))
	if len(left) != 2 || left[0] != is[1] || left[1] != is[2] {
		t.Fatalf("unexpected satisfying subset %v", left)
	}
	if len(right) != 1 || right[0] != is[0] {
		t.Fatalf("unexpected rest subset %v", right)
	}
	left, right = is.SubsetWith(feature.NewCriterion(0, 3))
	if len(left) != 3 || len(right) != 0 {
		t.Fatalf("expected every instance to satisfy the criterion, got %d and %d", len(left), len(right))
	}
}
