package fat16

import (
	"encoding/binary"
	"testing"
)

type fakeVolume struct {
	sectors map[uint32][SectorSize]byte
}

func (f *fakeVolume) ReadSector(lba uint32) ([SectorSize]byte, error) {
	s, ok := f.sectors[lba]
	if !ok {
		return [SectorSize]byte{}, nil
	}
	return s, nil
}

func buildHelloImage() *fakeVolume {
	v := &fakeVolume{sectors: map[uint32][SectorSize]byte{}}

	var bpb [SectorSize]byte
	binary.LittleEndian.PutUint16(bpb[11:13], 512) // bytes/sector
	bpb[13] = 1                                     // sectors/cluster
	binary.LittleEndian.PutUint16(bpb[14:16], 1)    // reserved sectors
	bpb[16] = 1                                     // num FATs
	binary.LittleEndian.PutUint16(bpb[17:19], 16)   // root entries
	binary.LittleEndian.PutUint16(bpb[22:24], 1)    // sectors/FAT
	v.sectors[0] = bpb

	var fat [SectorSize]byte
	binary.LittleEndian.PutUint16(fat[4:6], 0xFFFF) // cluster 2 = EOF
	v.sectors[1] = fat

	var root [SectorSize]byte
	copy(root[0:11], []byte("HELLO   TXT"))
	root[11] = AttrArchive
	binary.LittleEndian.PutUint16(root[26:28], 2) // first cluster
	binary.LittleEndian.PutUint32(root[28:32], 14)
	v.sectors[2] = root

	var data [SectorSize]byte
	copy(data[:], "Hello, world!\n")
	v.sectors[3] = data

	return v
}

func TestMountAndReadHelloFile(t *testing.T) {
	vol := buildHelloImage()
	fs, err := Mount(vol)
	if err != nil {
		t.Fatalf("mount failed: %v", err)
	}

	entries, err := fs.ListRoot(16)
	if err != nil {
		t.Fatalf("list root failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "HELLO.TXT" {
		t.Fatalf("unexpected directory listing: %+v", entries)
	}

	buf := make([]byte, 4096)
	n, err := fs.ReadFile("HELLO.TXT", buf)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if n != 14 {
		t.Fatalf("expected 14 bytes, got %d", n)
	}
	if string(buf[:14]) != "Hello, world!\n" {
		t.Fatalf("unexpected contents: %q", buf[:14])
	}
}

func TestReadMissingFile(t *testing.T) {
	fs, _ := Mount(buildHelloImage())
	buf := make([]byte, 16)
	if _, err := fs.ReadFile("NOPE.TXT", buf); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLFNEntriesSkipped(t *testing.T) {
	vol := buildHelloImage()
	root := vol.sectors[2]
	// Overwrite a free slot with a synthetic LFN entry (attr 0x0F). Its
	// first byte must be non-zero, or the slot reads as end-of-directory.
	root[32] = 0x41
	root[32+11] = 0x0F
	vol.sectors[2] = root

	fs, _ := Mount(vol)
	entries, err := fs.ListRoot(16)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if e.Attr&0x0F == 0x0F {
			t.Fatal("LFN entry should have been skipped")
		}
	}
}
