/*
Package json reads and writes datasets as JSON documents like

	{
	  "numClasses": 2,
	  "numFeatures": 1,
	  "instances": [
	    {"class": 0, "features": [0.5]},
	    {"class": 1, "features": [2.5]}
	  ]
	}
*/
package json

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pbanos/sapling/dataset"
)

type document struct {
	NumClasses  int        `json:"numClasses"`
	NumFeatures int        `json:"numFeatures"`
	Instances   []instance `json:"instances"`
}

type instance struct {
	Class    int       `json:"class"`
	Features []float64 `json:"features"`
}

/*
Reader reads a dataset from a JSON document. It implements dataset.Reader.
*/
type Reader struct {
	r io.Reader
}

/*
Writer writes a dataset as a JSON document. It implements dataset.Writer.
*/
type Writer struct {
	w      io.Writer
	indent bool
}

/*
NewReader takes an io.Reader and returns a Reader for the JSON document it
provides.
*/
func NewReader(r io.Reader) *Reader {
	return &Reader{r}
}

/*
NewWriter takes an io.Writer and a flag indicating whether the output
should be indented and returns a Writer.
*/
func NewWriter(w io.Writer, indent bool) *Writer {
	return &Writer{w, indent}
}

/*
Read decodes the JSON document and returns the dataset it describes or an
error if it cannot be decoded or the dataset is not valid.
*/
func (jr *Reader) Read(ctx context.Context) (*dataset.Dataset, error) {
	doc := &document{}
	dec := json.NewDecoder(jr.r)
	dec.DisallowUnknownFields()
	err := dec.Decode(doc)
	if err != nil {
		return nil, fmt.Errorf("decoding JSON dataset: %v", err)
	}
	err = ctx.Err()
	if err != nil {
		return nil, err
	}
	d := dataset.New(doc.NumClasses, doc.NumFeatures, make(dataset.Instances, 0, len(doc.Instances)))
	for _, i := range doc.Instances {
		d.Instances = append(d.Instances, dataset.NewInstance(i.Class, i.Features))
	}
	err = d.Validate()
	if err != nil {
		return nil, err
	}
	return d, nil
}

/*
Write encodes the given dataset as a JSON document onto the underlying
io.Writer.
*/
func (jw *Writer) Write(ctx context.Context, d *dataset.Dataset) error {
	doc := &document{d.NumClasses, d.NumFeatures, make([]instance, 0, len(d.Instances))}
	for _, i := range d.Instances {
		doc.Instances = append(doc.Instances, instance{i.Class(), i.Values()})
	}
	err := ctx.Err()
	if err != nil {
		return err
	}
	enc := json.NewEncoder(jw.w)
	if jw.indent {
		enc.SetIndent("", "  ")
	}
	err = enc.Encode(doc)
	if err != nil {
		return fmt.Errorf("encoding JSON dataset: %v", err)
	}
	return nil
}

/*
ReadDatasetFromFilePath takes a filepath string, opens the file it points to
and reads a dataset from it with a Reader.
*/
func ReadDatasetFromFilePath(ctx context.Context, filepath string) (*dataset.Dataset, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %v", err)
	}
	defer f.Close()
	d, err := NewReader(f).Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("parsing JSON file %s: %v", filepath, err)
	}
	return d, nil
}
