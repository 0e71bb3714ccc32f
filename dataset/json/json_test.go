package json

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/pbanos/sapling/dataset"
)

func TestRead(t *testing.T) {
	input := `{"numClasses": 2, "numFeatures": 1, "instances": [{"class": 0, "features": [0.5]}, {"class": 1, "features": [2.5]}]}`
	d, err := NewReader(strings.NewReader(input)).Read(context.Background())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if d.NumClasses != 2 || d.NumFeatures != 1 || d.Count() != 2 || d.Instances[1].Value(0) != 2.5 {
		t.Fatalf("unexpected dataset %v", d)
	}
}

func TestReadErrors(t *testing.T) {
	for _, input := range []string{
		``,
		`{"numClasses": 2}`,
		`{"numClasses": 2, "numFeatures": 1, "instances": [{"class": 2, "features": [0]}]}`,
		`{"numClasses": 2, "numFeatures": 2, "instances": [{"class": 1, "features": [0]}]}`,
		`{"numClasses": 2, "numFeatures": 1, "extra": true}`,
	} {
		if _, err := NewReader(strings.NewReader(input)).Read(context.Background()); err == nil {
			t.Fatalf("expected an error reading %q", input)
		}
	}
}

func TestWriteAndReadBack(t *testing.T) {
	d := dataset.New(2, 2, dataset.Instances{
		dataset.NewInstance(1, []float64{1, 2}),
		dataset.NewInstance(0, []float64{3, 4}),
	})
	var b bytes.Buffer
	err := NewWriter(&b, false).Write(context.Background(), d)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	expected := `{"numClasses":2,"numFeatures":2,"instances":[{"class":1,"features":[1,2]},{"class":0,"features":[3,4]}]}` + "\n"
	if b.String() != expected {
		t.Fatalf("expected %q, got %q", expected, b.String())
	}
	read, err := NewReader(&b).Read(context.Background())
	if err != nil {
		t.Fatalf("reading written dataset: %v", err)
	}
	if read.Instances[0].Class() != 1 || read.Instances[1].Value(1) != 4 {
		t.Fatalf("unexpected dataset read back %v", read)
	}
}
