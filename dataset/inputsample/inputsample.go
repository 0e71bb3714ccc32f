/*
Package inputsample provides an implementation of feature.Sample whose
values are read from an io.Reader.
*/
package inputsample

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pbanos/sapling/feature"
)

/*
FeatureValueRequester represents a way to ask
for feature values and reject the given values.
*/
type FeatureValueRequester interface {
	RequestValueFor(f int) error
	RejectValueFor(f int, value string) error
}

type readSample struct {
	obtainedValues        map[int]float64
	numFeatures           int
	scanner               *bufio.Scanner
	featureValueRequester FeatureValueRequester
}

/*
New takes an io.Reader, the number of features of the samples and a
FeatureValueRequester and returns a feature.Sample.

The returned Sample ValueFor method reads feature values first
requesting them with the given FeatureValueRequester and
then parsing the values from the reader, one per line.

Lines will be read from the reader until one containing a valid
float64 number is found. Lines that do not will be rejected with
the FeatureValueRequester's RejectValueFor method.

Values are read only once: later calls for the same feature return
the value obtained the first time.
*/
func New(r io.Reader, numFeatures int, featureValueRequester FeatureValueRequester) feature.Sample {
	return &readSample{make(map[int]float64), numFeatures, bufio.NewScanner(r), featureValueRequester}
}

func (rs *readSample) ValueFor(ctx context.Context, f int) (float64, error) {
	if value, ok := rs.obtainedValues[f]; ok {
		return value, nil
	}
	if f < 0 || f >= rs.numFeatures {
		return 0, fmt.Errorf("feature %d out of range [0, %d)", f, rs.numFeatures)
	}
	err := rs.featureValueRequester.RequestValueFor(f)
	if err != nil {
		return 0, err
	}
	for rs.scanner.Scan() {
		if err = ctx.Err(); err != nil {
			return 0, err
		}
		line := strings.TrimSpace(rs.scanner.Text())
		value, err := strconv.ParseFloat(line, 64)
		if err == nil && !math.IsNaN(value) {
			rs.obtainedValues[f] = value
			return value, nil
		}
		err = rs.featureValueRequester.RejectValueFor(f, line)
		if err != nil {
			return 0, err
		}
	}
	err = rs.scanner.Err()
	if err != nil {
		return 0, err
	}
	return 0, fmt.Errorf("EOF when requesting value for feature %d", f)
}
