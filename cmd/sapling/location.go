package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/dataset/csv"
	"github.com/pbanos/sapling/dataset/json"
	"github.com/pbanos/sapling/dataset/mongodataset"
	"github.com/pbanos/sapling/dataset/redisdataset"
	"github.com/pbanos/sapling/dataset/sqldataset"
	"github.com/pbanos/sapling/dataset/sqldataset/pgadapter"
	"github.com/pbanos/sapling/dataset/sqldataset/sqlite3adapter"
	"github.com/pbanos/sapling/feature"
	jsonmd "github.com/pbanos/sapling/feature/json"
	"github.com/pbanos/sapling/feature/yaml"
	"go.uber.org/zap"
)

type backend int

const (
	textBackend backend = iota
	jsonBackend
	sqlite3Backend
	postgresBackend
	mongoBackend
	redisBackend
)

var backendNames = []string{"text", "JSON", "SQLite3", "PostgreSQL", "MongoDB", "redis"}

func (b backend) String() string {
	return backendNames[b]
}

func backendFor(location string) backend {
	switch {
	case strings.HasPrefix(location, "postgres://"), strings.HasPrefix(location, "postgresql://"):
		return postgresBackend
	case strings.HasPrefix(location, "mongodb://"):
		return mongoBackend
	case strings.HasPrefix(location, "redis://"):
		return redisBackend
	case strings.EqualFold(filepath.Ext(location), ".json"):
		return jsonBackend
	case strings.EqualFold(filepath.Ext(location), ".db"):
		return sqlite3Backend
	}
	return textBackend
}

type store interface {
	dataset.Reader
	dataset.Writer
	Close() error
}

func openStore(location string) (store, error) {
	switch backendFor(location) {
	case sqlite3Backend:
		adapter, err := sqlite3adapter.New(location)
		if err != nil {
			return nil, err
		}
		return sqldataset.New(adapter), nil
	case postgresBackend:
		adapter, err := pgadapter.New(location)
		if err != nil {
			return nil, err
		}
		return sqldataset.New(adapter), nil
	case mongoBackend:
		return mongodataset.Open(location)
	case redisBackend:
		return redisdataset.Open(location)
	}
	return nil, fmt.Errorf("%s is not a database location", location)
}

func readDataset(ctx context.Context, location string, logger *zap.Logger) (*dataset.Dataset, error) {
	b := backendFor(location)
	if location == "" {
		logger.Info("Reading dataset from STDIN...")
	} else {
		logger.Info("Reading dataset...", zap.String("location", location), zap.Stringer("backend", b))
	}
	switch b {
	case textBackend:
		return csv.ReadDatasetFromFilePath(ctx, location)
	case jsonBackend:
		return json.ReadDatasetFromFilePath(ctx, location)
	}
	s, err := openStore(location)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	d, err := s.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading dataset from %s: %v", location, err)
	}
	return d, nil
}

func readHeaderlessDataset(ctx context.Context, location string, numClasses, numFeatures int) (*dataset.Dataset, error) {
	if backendFor(location) != textBackend {
		return nil, fmt.Errorf("only text datasets can lack a descriptor line, %s is not one", location)
	}
	f := os.Stdin
	if location != "" {
		var err error
		f, err = os.Open(location)
		if err != nil {
			return nil, fmt.Errorf("reading dataset: %v", err)
		}
		defer f.Close()
	}
	d, err := csv.NewHeaderlessReader(f, numClasses, numFeatures).Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("parsing CSV file %s: %v", location, err)
	}
	return d, nil
}

func writeDataset(ctx context.Context, location string, d *dataset.Dataset, logger *zap.Logger) error {
	b := backendFor(location)
	if location == "" {
		logger.Info("Writing dataset to STDOUT...")
	} else {
		logger.Info("Writing dataset...", zap.String("location", location), zap.Stringer("backend", b), zap.Int("instances", d.Count()))
	}
	var w dataset.Writer
	switch b {
	case textBackend, jsonBackend:
		f := os.Stdout
		if location != "" {
			var err error
			f, err = os.Create(location)
			if err != nil {
				return fmt.Errorf("creating %s: %v", location, err)
			}
			defer f.Close()
		}
		w = csv.NewWriter(f)
		if b == jsonBackend {
			w = json.NewWriter(f, true)
		}
	default:
		s, err := openStore(location)
		if err != nil {
			return err
		}
		defer s.Close()
		w = s
	}
	err := w.Write(ctx, d)
	if err != nil {
		return fmt.Errorf("writing dataset to %s: %v", location, err)
	}
	return nil
}

func readMetadata(location string) (*feature.Metadata, error) {
	if location == "" {
		return nil, nil
	}
	if strings.EqualFold(filepath.Ext(location), ".json") {
		return jsonmd.ReadMetadataFromFile(location)
	}
	return yaml.ReadMetadataFromFile(location)
}
