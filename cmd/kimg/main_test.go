package main

import (
	"testing"

	"kernel386/internal/fat16"
)

// memVolume adapts an in-memory image to fat16.Volume for round-trip
// testing the image this command writes against the reader the
// kernel actually mounts.
type memVolume [][fat16.SectorSize]byte

func (v memVolume) ReadSector(lba uint32) ([fat16.SectorSize]byte, error) {
	return v[lba], nil
}

func newMemVolume(t *testing.T, img []byte) memVolume {
	t.Helper()
	if len(img)%fat16.SectorSize != 0 {
		t.Fatalf("image length %d not sector-aligned", len(img))
	}
	vol := make(memVolume, len(img)/fat16.SectorSize)
	for i := range vol {
		copy(vol[i][:], img[i*fat16.SectorSize:(i+1)*fat16.SectorSize])
	}
	return vol
}

func TestBuildImageRoundTripsThroughFat16(t *testing.T) {
	want := []byte("Hello, world!\n")
	img, err := buildImage([]fileEntry{{name: fat83Name("HELLO.TXT"), data: want}}, "KIMGTEST")
	if err != nil {
		t.Fatalf("buildImage: %v", err)
	}

	vol := newMemVolume(t, img)
	fs, err := fat16.Mount(vol)
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}

	entries, err := fs.ListRoot(16)
	if err != nil {
		t.Fatalf("ListRoot: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "HELLO.TXT" {
		t.Fatalf("unexpected root directory: %+v", entries)
	}
	if entries[0].Size != uint32(len(want)) {
		t.Fatalf("size = %d, want %d", entries[0].Size, len(want))
	}

	buf := make([]byte, 64)
	n, err := fs.ReadFile("HELLO.TXT", buf)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(buf[:n]) != string(want) {
		t.Fatalf("ReadFile = %q, want %q", buf[:n], want)
	}
}

func TestFat83NameUppercasesAndPads(t *testing.T) {
	got := fat83Name("hello.txt")
	if got != "HELLO   TXT" {
		t.Fatalf("fat83Name = %q, want %q", got, "HELLO   TXT")
	}
}

func TestBuildImageMultipleFiles(t *testing.T) {
	files := []fileEntry{
		{name: fat83Name("A.TXT"), data: []byte("aaa")},
		{name: fat83Name("B.TXT"), data: []byte("bbb")},
	}
	img, err := buildImage(files, "MULTI")
	if err != nil {
		t.Fatalf("buildImage: %v", err)
	}
	vol := newMemVolume(t, img)
	fs, err := fat16.Mount(vol)
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	entries, err := fs.ListRoot(16)
	if err != nil {
		t.Fatalf("ListRoot: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
}
