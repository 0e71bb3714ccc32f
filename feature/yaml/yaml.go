/*
Package yaml provides methods to parse feature.Metadata specifications
from YAML documents.
*/
package yaml

import (
	"fmt"
	"os"

	"github.com/pbanos/sapling/feature"
	yaml "gopkg.in/yaml.v2"
)

/*
ReadMetadata takes a slice of bytes with a metadata specification in YML and
returns the feature.Metadata parsed from it or an error.
The YML is expected to be an object with an optional features property and
an optional classes property, each a list of names ordered by feature index
and class label respectively. At least one of them must be present.
*/
func ReadMetadata(md []byte) (*feature.Metadata, error) {
	metadata := &feature.Metadata{}
	err := yaml.UnmarshalStrict(md, metadata)
	if err != nil {
		return nil, fmt.Errorf("parsing yml metadata: %v", err)
	}
	if len(metadata.Features) == 0 && len(metadata.Classes) == 0 {
		return nil, fmt.Errorf("metadata has no feature or class information")
	}
	return metadata, nil
}

/*
ReadMetadataFromFile takes a filepath string, reads its contents and uses
ReadMetadata to parse it and return the parsed metadata or an error.
If the file indicated by the filepath cannot be opened for reading an error
will be returned.
*/
func ReadMetadataFromFile(filepath string) (*feature.Metadata, error) {
	md, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading metadata yml file %s: %v", filepath, err)
	}
	metadata, err := ReadMetadata(md)
	if err != nil {
		err = fmt.Errorf("parsing metadata yml file %s: %v", filepath, err)
	}
	return metadata, err
}
