package yaml

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadMetadata(t *testing.T) {
	md, err := ReadMetadata([]byte("features:\n  - sepal length\n  - sepal width\nclasses:\n  - setosa\n  - versicolor\n"))
	if err != nil {
		t.Fatalf("ReadMetadata: %v", err)
	}
	if md.FeatureName(1) != "sepal width" || md.ClassName(0) != "setosa" {
		t.Fatalf("unexpected metadata %+v", md)
	}
	md, err = ReadMetadata([]byte("classes: [short, tall]\n"))
	if err != nil {
		t.Fatalf("ReadMetadata with only classes: %v", err)
	}
	if md.ClassName(1) != "tall" || md.FeatureName(0) != "0" {
		t.Fatalf("unexpected metadata %+v", md)
	}
}

func TestReadMetadataErrors(t *testing.T) {
	for _, doc := range []string{"", "features: []\n", "labels: [a]\n", "features: {a: b}\n"} {
		if _, err := ReadMetadata([]byte(doc)); err == nil {
			t.Fatalf("expected an error parsing %q", doc)
		}
	}
}

func TestReadMetadataFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metadata.yml")
	err := os.WriteFile(path, []byte("features: [x]\n"), 0600)
	if err != nil {
		t.Fatalf("writing metadata file: %v", err)
	}
	md, err := ReadMetadataFromFile(path)
	if err != nil {
		t.Fatalf("ReadMetadataFromFile: %v", err)
	}
	if md.FeatureName(0) != "x" {
		t.Fatalf("unexpected metadata %+v", md)
	}
	if _, err = ReadMetadataFromFile(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Fatalf("expected an error reading a missing file")
	}
}
