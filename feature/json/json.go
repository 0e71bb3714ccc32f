/*
Package json provides methods to parse feature.Metadata specifications
from JSON documents.
*/
package json

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pbanos/sapling/feature"
)

/*
ReadMetadata takes a slice of bytes with a metadata specification in JSON and
returns the feature.Metadata parsed from it or an error.
The JSON is expected to be an object with an optional "features" property and
an optional "classes" property, each an array of names ordered by feature index
and class label respectively. At least one of them must be present. Unknown
properties are rejected.
*/
func ReadMetadata(md []byte) (*feature.Metadata, error) {
	metadata := &feature.Metadata{}
	dec := json.NewDecoder(bytes.NewReader(md))
	dec.DisallowUnknownFields()
	err := dec.Decode(metadata)
	if err != nil {
		return nil, fmt.Errorf("parsing json metadata: %v", err)
	}
	if len(metadata.Features) == 0 && len(metadata.Classes) == 0 {
		return nil, fmt.Errorf("metadata has no feature or class information")
	}
	return metadata, nil
}

/*
ReadMetadataFromFile takes a filepath string, reads its contents and uses
ReadMetadata to parse it and return the parsed metadata or an error.
*/
func ReadMetadataFromFile(filepath string) (*feature.Metadata, error) {
	md, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading metadata json file %s: %v", filepath, err)
	}
	metadata, err := ReadMetadata(md)
	if err != nil {
		err = fmt.Errorf("parsing metadata json file %s: %v", filepath, err)
	}
	return metadata, err
}
