/*
Package csv reads and writes datasets in a comma separated text format.

The first line of the text holds the number of classes and the number of
features of the dataset. Every following line holds an instance: its
feature values followed by its class, e.g.

	2,3
	5.1,3.5,1.4,0
	6.2,2.9,4.3,1

Blank lines and lines starting with '#' are ignored.
*/
package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pbanos/sapling/dataset"
)

/*
Reader reads a dataset from an io.Reader. It implements dataset.Reader.
*/
type Reader struct {
	r           io.Reader
	header      bool
	numClasses  int
	numFeatures int
}

/*
Writer writes a dataset onto an io.Writer. It implements dataset.Writer.
*/
type Writer struct {
	w io.Writer
}

/*
NewReader takes an io.Reader whose content starts with the descriptor line
and returns a Reader for it.
*/
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r, header: true}
}

/*
NewHeaderlessReader takes an io.Reader whose content has no descriptor line
and the number of classes and features of the instances in it, and returns
a Reader for it.
*/
func NewHeaderlessReader(r io.Reader, numClasses, numFeatures int) *Reader {
	return &Reader{r, false, numClasses, numFeatures}
}

/*
Read parses the dataset from the underlying io.Reader and returns it, or an
error naming the offending line if the content cannot be parsed or the
dataset is not valid.
*/
func (cr *Reader) Read(ctx context.Context) (*dataset.Dataset, error) {
	r := csv.NewReader(cr.r)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.Comment = '#'
	d := dataset.New(cr.numClasses, cr.numFeatures, nil)
	if cr.header {
		row, err := r.Read()
		if err == io.EOF {
			return nil, fmt.Errorf("reading header: no content")
		}
		if err != nil {
			return nil, fmt.Errorf("reading header: %v", err)
		}
		d.NumClasses, d.NumFeatures, err = ParseDescriptor(row)
		if err != nil {
			line, _ := r.FieldPos(0)
			return nil, fmt.Errorf("parsing header at line %d: %v", line, err)
		}
	}
	if d.NumClasses <= 0 || d.NumFeatures <= 0 {
		return nil, fmt.Errorf("invalid descriptor: %d classes, %d features", d.NumClasses, d.NumFeatures)
	}
	for {
		err := ctx.Err()
		if err != nil {
			return nil, err
		}
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading body: %v", err)
		}
		instance, err := ParseInstance(row, d.NumClasses, d.NumFeatures)
		if err != nil {
			line, _ := r.FieldPos(0)
			return nil, fmt.Errorf("parsing line %d: %v", line, err)
		}
		d.Instances = append(d.Instances, instance)
	}
	err := d.Validate()
	if err != nil {
		return nil, err
	}
	return d, nil
}

/*
ReadDatasetFromFilePath takes a filepath string, opens the file it points to
(os.Stdin if it is "") and reads a dataset from it with a Reader.
*/
func ReadDatasetFromFilePath(ctx context.Context, filepath string) (*dataset.Dataset, error) {
	var f *os.File
	var err error
	if filepath == "" {
		f = os.Stdin
	} else {
		f, err = os.Open(filepath)
		if err != nil {
			return nil, fmt.Errorf("reading dataset: %v", err)
		}
		defer f.Close()
	}
	d, err := NewReader(f).Read(ctx)
	if err != nil {
		err = fmt.Errorf("parsing CSV file %s: %v", filepath, err)
	}
	return d, err
}

/*
ParseDescriptor takes the fields of a descriptor line and returns the
number of classes and features it declares, or an error if it does not
consist of two positive integers.
*/
func ParseDescriptor(fields []string) (numClasses, numFeatures int, err error) {
	fields = trimTrailingEmptyField(fields)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("expected number of classes and number of features, got %d fields", len(fields))
	}
	numClasses, err = strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("parsing number of classes: %v", err)
	}
	numFeatures, err = strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("parsing number of features: %v", err)
	}
	if numClasses <= 0 {
		return 0, 0, fmt.Errorf("number of classes must be positive, got %d", numClasses)
	}
	if numFeatures <= 0 {
		return 0, 0, fmt.Errorf("number of features must be positive, got %d", numFeatures)
	}
	return numClasses, numFeatures, nil
}

/*
ParseInstance takes the fields of an instance line, the number of classes
and the number of features and returns the instance they describe, or an
error if there is not one field per feature plus the class, any field is
not a number or the class is out of range.
*/
func ParseInstance(fields []string, numClasses, numFeatures int) (*dataset.Instance, error) {
	fields = trimTrailingEmptyField(fields)
	if len(fields) != numFeatures+1 {
		return nil, fmt.Errorf("expected %d feature values and a class, got %d fields", numFeatures, len(fields))
	}
	values := make([]float64, numFeatures)
	for f := 0; f < numFeatures; f++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(fields[f]), 64)
		if err != nil {
			return nil, fmt.Errorf("converting value for feature %d: %v", f, err)
		}
		values[f] = v
	}
	class, err := strconv.Atoi(strings.TrimSpace(fields[numFeatures]))
	if err != nil {
		return nil, fmt.Errorf("converting class: %v", err)
	}
	if class < 0 || class >= numClasses {
		return nil, fmt.Errorf("class %d out of range [0, %d)", class, numClasses)
	}
	return dataset.NewInstance(class, values), nil
}

/*
FormatInstance takes an instance and returns its fields as they are
written in an instance line.
*/
func FormatInstance(i *dataset.Instance) []string {
	record := make([]string, 0, i.NumFeatures()+1)
	for _, v := range i.Values() {
		record = append(record, strconv.FormatFloat(v, 'g', -1, 64))
	}
	return append(record, strconv.Itoa(i.Class()))
}

/*
NewWriter takes an io.Writer and returns a Writer that writes datasets on it.
*/
func NewWriter(w io.Writer) *Writer {
	return &Writer{w}
}

/*
Write takes a context and a dataset and writes the dataset onto the
underlying io.Writer: the descriptor line and then a line per instance.
*/
func (cw *Writer) Write(ctx context.Context, d *dataset.Dataset) error {
	w := csv.NewWriter(cw.w)
	err := w.Write([]string{strconv.Itoa(d.NumClasses), strconv.Itoa(d.NumFeatures)})
	if err != nil {
		return fmt.Errorf("writing CSV header: %v", err)
	}
	for n, i := range d.Instances {
		err = ctx.Err()
		if err != nil {
			return err
		}
		err = w.Write(FormatInstance(i))
		if err != nil {
			return fmt.Errorf("writing CSV row for instance %d: %v", n+1, err)
		}
	}
	w.Flush()
	return w.Error()
}

// the original format allowed a comma after the last field
func trimTrailingEmptyField(fields []string) []string {
	if len(fields) > 0 && strings.TrimSpace(fields[len(fields)-1]) == "" {
		return fields[:len(fields)-1]
	}
	return fields
}
