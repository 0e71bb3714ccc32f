package redisdataset

import (
	"context"
	"os"
	"testing"

	"github.com/pbanos/sapling/dataset"
)

func TestParseURL(t *testing.T) {
	testCases := []struct {
		url      string
		addr     string
		password string
		db       int
		prefix   string
	}{
		{"redis://localhost", "localhost:6379", "", 0, DefaultPrefix},
		{"redis://:secret@cache:6380/2#iris", "cache:6380", "secret", 2, "iris"},
		{"redis://cache:7000/#train", "cache:7000", "", 0, "train"},
	}
	for _, tc := range testCases {
		opts, prefix, err := ParseURL(tc.url)
		if err != nil {
			t.Fatalf("ParseURL(%q): %v", tc.url, err)
		}
		if opts.Addr != tc.addr || opts.Password != tc.password || opts.DB != tc.db || prefix != tc.prefix {
			t.Fatalf("ParseURL(%q): unexpected %s %s %d %s", tc.url, opts.Addr, opts.Password, opts.DB, prefix)
		}
	}
	for _, url := range []string{"http://localhost", "redis://localhost/x"} {
		if _, _, err := ParseURL(url); err == nil {
			t.Fatalf("expected an error parsing %q", url)
		}
	}
}

func TestWriteAndRead(t *testing.T) {
	url := os.Getenv("SAPLING_TEST_REDIS_URL")
	if url == "" {
		t.Skip("SAPLING_TEST_REDIS_URL is not set")
	}
	s, err := Open(url)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()
	ctx := context.Background()
	d := dataset.New(2, 2, dataset.Instances{
		dataset.NewInstance(1, []float64{0.5, 2}),
		dataset.NewInstance(0, []float64{-1, 3}),
	})
	err = s.Write(ctx, d)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	read, err := s.Read(ctx)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	for n, i := range read.Instances {
		if i.String() != d.Instances[n].String() {
			t.Fatalf("instance %d: expected %v, got %v", n, d.Instances[n], i)
		}
	}
}
