package mongodataset

import (
	"context"
	"os"
	"testing"

	"github.com/pbanos/sapling/dataset"
)

func TestWriteAndRead(t *testing.T) {
	url := os.Getenv("SAPLING_TEST_MONGO_URL")
	if url == "" {
		t.Skip("SAPLING_TEST_MONGO_URL is not set")
	}
	s, err := Open(url)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()
	ctx := context.Background()
	d := dataset.New(2, 3, dataset.Instances{
		dataset.NewInstance(1, []float64{1, 2, 3}),
		dataset.NewInstance(0, []float64{4, 5, 6}),
		dataset.NewInstance(1, []float64{7, 8, 9}),
	})
	err = s.Write(ctx, d)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	read, err := s.Read(ctx)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if read.Count() != 3 {
		t.Fatalf("expected 3 instances, got %d", read.Count())
	}
	for n, i := range read.Instances {
		if i.String() != d.Instances[n].String() {
			t.Fatalf("instance %d: expected %v, got %v", n, d.Instances[n], i)
		}
	}
}
