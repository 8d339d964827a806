package record

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"rps-ca/internal/sim"
	"rps-ca/internal/terrain"
	"rps-ca/pkg/core"
)

func TestRecorderWritesAVI(t *testing.T) {
	tr, err := terrain.New(12, core.NewRNG(3))
	if err != nil {
		t.Fatal(err)
	}
	d, err := sim.New(tr, sim.Options{BatchSteps: 200})
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "run.avi")
	rec, err := New(path, 12, 4, 10)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var snap sim.Snapshot
	for i := 0; i < 5; i++ {
		d.RunBatch()
		d.Snapshot(&snap)
		if err := rec.AddFrame(&snap); err != nil {
			t.Fatalf("AddFrame: %v", err)
		}
	}
	if rec.Frames() != 5 {
		t.Fatalf("frames = %d", rec.Frames())
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "AVI " {
		t.Fatal("output is not an AVI file")
	}
}

func TestRecorderRejectsWrongSize(t *testing.T) {
	rec, err := New(filepath.Join(t.TempDir(), "x.avi"), 4, 1, 5)
	if err != nil {
		t.Fatal(err)
	}
	defer rec.Close()
	snap := &sim.Snapshot{Size: 3}
	if err := rec.AddFrame(snap); !errors.Is(err, ErrSizeMismatch) {
		t.Fatalf("error = %v, want ErrSizeMismatch", err)
	}
}
