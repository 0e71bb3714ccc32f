package main

import (
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/pbanos/sapling/dataset"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestBackendFor(t *testing.T) {
	testCases := []struct {
		location string
		expected backend
	}{
		{"", textBackend},
		{"iris.csv", textBackend},
		{"iris.data", textBackend},
		{"iris.json", jsonBackend},
		{"data/IRIS.JSON", jsonBackend},
		{"iris.db", sqlite3Backend},
		{"postgres://user@localhost/iris", postgresBackend},
		{"postgresql://user@localhost/iris", postgresBackend},
		{"mongodb://localhost/iris", mongoBackend},
		{"redis://localhost#iris", redisBackend},
	}
	for _, tc := range testCases {
		if b := backendFor(tc.location); b != tc.expected {
			t.Fatalf("expected %q to be a %v location, got %v", tc.location, tc.expected, b)
		}
	}
}

func TestWriteAndReadDataset(t *testing.T) {
	d := dataset.New(2, 1, dataset.Instances{
		dataset.NewInstance(0, []float64{1}),
		dataset.NewInstance(1, []float64{2}),
	})
	dir := t.TempDir()
	ctx := context.Background()
	logger := zap.NewNop()
	for _, name := range []string{"set.csv", "set.json", "set.db"} {
		location := filepath.Join(dir, name)
		err := writeDataset(ctx, location, d, logger)
		if err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
		read, err := readDataset(ctx, location, logger)
		if err != nil {
			t.Fatalf("reading %s: %v", name, err)
		}
		if read.String() != d.String() || read.Instances[1].Value(0) != 2 {
			t.Fatalf("%s: expected %v, got %v", name, d, read)
		}
	}
}

func TestReadHeaderlessDataset(t *testing.T) {
	location := filepath.Join(t.TempDir(), "test.data")
	err := os.WriteFile(location, []byte("1.5,0\n2.5,1\n"), 0600)
	if err != nil {
		t.Fatalf("writing test file: %v", err)
	}
	d, err := readHeaderlessDataset(context.Background(), location, 2, 1)
	if err != nil {
		t.Fatalf("readHeaderlessDataset: %v", err)
	}
	if d.Count() != 2 {
		t.Fatalf("expected 2 instances, got %d", d.Count())
	}
	if _, err = readHeaderlessDataset(context.Background(), "test.json", 2, 1); err == nil {
		t.Fatalf("expected an error reading a headerless JSON set")
	}
}

func TestSplitDataset(t *testing.T) {
	d := dataset.New(2, 1, nil)
	for n := 0; n < 1000; n++ {
		d.Instances = append(d.Instances, dataset.NewInstance(n%2, []float64{float64(n)}))
	}
	output, split := splitDataset(d, 20, rand.New(rand.NewSource(1)))
	if output.Count()+split.Count() != d.Count() {
		t.Fatalf("expected %d instances, got %d and %d", d.Count(), output.Count(), split.Count())
	}
	if split.Count() < 100 || split.Count() > 300 {
		t.Fatalf("expected around 200 instances in the split set, got %d", split.Count())
	}
	if output.NumClasses != 2 || split.NumFeatures != 1 {
		t.Fatalf("expected both sets to keep the descriptor")
	}
	again, _ := splitDataset(d, 20, rand.New(rand.NewSource(1)))
	if again.Count() != output.Count() {
		t.Fatalf("expected the same seed to split the same way")
	}
}

func TestNewLogger(t *testing.T) {
	if _, err := newLogger(false, "loud", ""); err == nil {
		t.Fatalf("expected an error for an unknown log level")
	}
	logger, err := newLogger(true, "", filepath.Join(t.TempDir(), "sapling.log"))
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	if !logger.Core().Enabled(zap.InfoLevel) || logger.Core().Enabled(zap.DebugLevel) {
		t.Fatalf("expected a verbose logger to log at info level")
	}
	logger, err = newLogger(true, "debug", "")
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	if !logger.Core().Enabled(zap.DebugLevel) {
		t.Fatalf("expected the log level to override verbose")
	}
}

func TestLogInstances(t *testing.T) {
	d := dataset.New(2, 1, dataset.Instances{
		dataset.NewInstance(0, []float64{1}),
		dataset.NewInstance(1, []float64{2}),
	})
	core, logs := observer.New(zapcore.DebugLevel)
	logInstances(zap.New(core), d)
	entries := logs.FilterMessage("instance").All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 instances logged, got %d", len(entries))
	}
	if entries[1].ContextMap()["instance"] != d.Instances[1].String() {
		t.Fatalf("unexpected instance logged %v", entries[1].ContextMap())
	}
	core, logs = observer.New(zapcore.InfoLevel)
	logInstances(zap.New(core), d)
	if logs.Len() != 0 {
		t.Fatalf("expected no instances logged above debug level, got %d", logs.Len())
	}
}
