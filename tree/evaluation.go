package tree

import (
	"fmt"
	"io"
	"strings"

	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/feature"
)

// EvaluationError represents an error evaluating a tree
// against a set of instances.
type EvaluationError string

func (ee EvaluationError) Error() string {
	return string(ee)
}

/*
ErrCannotEvaluateEmptySet is the error returned when trying to
evaluate a tree against an empty set of instances.
*/
const ErrCannotEvaluateEmptySet = EvaluationError("cannot evaluate tree against an empty set of instances")

/*
Report holds the result of classifying a set of labeled instances with a
tree: the number of instances classified correctly, the total number of
instances, the ratio of both and the confusion matrix, whose rows are
indexed by actual class and columns by assigned class.
*/
type Report struct {
	Correct   int
	Total     int
	Accuracy  float64
	Confusion [][]int
}

/*
Evaluate takes a set of instances and returns a Report with the result of
classifying each of them with the tree, or an error if the set is empty or
any instance has a class the tree does not know or the tree assigns one
out of its range of classes. Neither the tree nor the
instances are modified.
*/
func (t *Tree) Evaluate(instances dataset.Instances) (*Report, error) {
	if len(instances) == 0 {
		return nil, ErrCannotEvaluateEmptySet
	}
	r := &Report{Total: len(instances), Confusion: make([][]int, t.NumClasses)}
	for c := range r.Confusion {
		r.Confusion[c] = make([]int, t.NumClasses)
	}
	for idx, i := range instances {
		if i.Class() < 0 || i.Class() >= t.NumClasses {
			return nil, EvaluationError(fmt.Sprintf("instance %d has class %d, out of range [0, %d)", idx, i.Class(), t.NumClasses))
		}
		predicted := t.Classify(i)
		if predicted < 0 || predicted >= t.NumClasses {
			return nil, EvaluationError(fmt.Sprintf("tree assigns class %d to instance %d, out of range [0, %d)", predicted, idx, t.NumClasses))
		}
		r.Confusion[i.Class()][predicted]++
		if predicted == i.Class() {
			r.Correct++
		}
	}
	r.Accuracy = float64(r.Correct) / float64(r.Total)
	return r, nil
}

/*
Accuracy takes a non-empty set of instances and returns the ratio of them
that the tree classifies correctly, a value in [0, 1]. It panics if the set
is empty or has instances with classes the tree does not know.
*/
func (t *Tree) Accuracy(instances dataset.Instances) float64 {
	r, err := t.Evaluate(instances)
	if err != nil {
		panic(err)
	}
	return r.Accuracy
}

/*
Fprint takes an io.Writer and a feature.Metadata (that may be nil) and
writes the confusion matrix of the report onto it, a row per actual class
and a column per assigned class.
*/
func (r *Report) Fprint(w io.Writer, md *feature.Metadata) error {
	header := make([]string, 0, len(r.Confusion)+1)
	header = append(header, "actual\\assigned")
	for c := range r.Confusion {
		header = append(header, md.ClassName(c))
	}
	_, err := fmt.Fprintln(w, strings.Join(header, "\t"))
	if err != nil {
		return err
	}
	for c, row := range r.Confusion {
		cells := make([]string, 0, len(row)+1)
		cells = append(cells, md.ClassName(c))
		for _, count := range row {
			cells = append(cells, fmt.Sprintf("%d", count))
		}
		_, err = fmt.Fprintln(w, strings.Join(cells, "\t"))
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Report) String() string {
	return fmt.Sprintf("%d/%d correct (%f)", r.Correct, r.Total, r.Accuracy)
}
