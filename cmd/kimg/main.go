// Command kimg builds a flat FAT16 disk image for the kernel's
// secondary-ATA boot path: a BPB at sector 0, one FAT, a root
// directory, and the data region holding whatever files were named on
// the command line. It is the host-side counterpart of
// internal/fat16.Mount/ReadFile — kimg writes the exact layout that
// package parses.
//
// Modeled on iansmith-mazarin's tools/imageconvert, which performs the
// same kind of host-side binary-asset packing (flag-driven CLI,
// encoding/binary little-endian writes) for kernel-embedded image
// data.
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

const (
	sectorSize        = 512
	sectorsPerCluster = 1
	reservedSectors   = 1
	numFATs           = 1
	rootEntries       = 16
	totalSectors      = 2880 // 1.44 MiB floppy-sized image
	fatID             = 0xF0
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	out := flag.String("o", "disk.img", "output image path")
	volLabel := flag.String("label", "KIMG", "volume label (<=11 chars)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: kimg -o disk.img file1 [file2 ...]\n")
		fmt.Fprintf(os.Stderr, "Packs files into a FAT16 root directory image readable by internal/fat16.\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	files := make([]fileEntry, 0, flag.NArg())
	for _, path := range flag.Args() {
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Error("reading input file", "path", path, "err", err)
			os.Exit(1)
		}
		files = append(files, fileEntry{name: fat83Name(path), data: data})
	}

	img, err := buildImage(files, *volLabel)
	if err != nil {
		logger.Error("building image", "err", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*out, img, 0o644); err != nil {
		logger.Error("writing image", "path", *out, "err", err)
		os.Exit(1)
	}
	logger.Info("wrote FAT16 image", "path", *out, "bytes", len(img), "files", len(files))
}

type fileEntry struct {
	name string // already 8.3-padded, 11 bytes
	data []byte
}

// fat83Name uppercases and pads/truncates a host filename into the
// fixed 11-byte 8.3 form internal/fat16.decodeName expects to split
// back apart at the dot.
func fat83Name(path string) string {
	base := path
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	name, ext := base, ""
	if i := strings.LastIndexByte(base, '.'); i >= 0 {
		name, ext = base[:i], base[i+1:]
	}
	name = strings.ToUpper(name)
	ext = strings.ToUpper(ext)
	if len(name) > 8 {
		name = name[:8]
	}
	if len(ext) > 3 {
		ext = ext[:3]
	}
	return fmt.Sprintf("%-8s%-3s", name, ext)
}

// buildImage lays out sectors in the same order Mount expects to
// derive them in: reserved sectors, then numFATs copies of the FAT,
// then the root directory, then cluster-addressed data.
func buildImage(files []fileEntry, label string) ([]byte, error) {
	rootDirSectors := (rootEntries*32 + sectorSize - 1) / sectorSize
	dataSectorsNeeded := 0
	for _, f := range files {
		clusters := (len(f.data) + sectorSize*sectorsPerCluster - 1) / (sectorSize * sectorsPerCluster)
		if clusters == 0 {
			clusters = 1
		}
		dataSectorsNeeded += clusters * sectorsPerCluster
	}
	sectorsPerFAT := uint16((dataSectorsNeeded + 2) * 2 / sectorSize)
	if sectorsPerFAT == 0 {
		sectorsPerFAT = 1
	}

	img := make([]byte, totalSectors*sectorSize)
	writeBPB(img, sectorsPerFAT, label)

	fatStart := reservedSectors * sectorSize
	fatBytes := img[fatStart : fatStart+int(sectorsPerFAT)*sectorSize]
	binary.LittleEndian.PutUint16(fatBytes[0:2], 0xFF00|fatID)
	binary.LittleEndian.PutUint16(fatBytes[2:4], 0xFFFF)

	rootStart := (reservedSectors + numFATs*int(sectorsPerFAT)) * sectorSize
	dataStart := rootStart + rootDirSectors*sectorSize

	nextCluster := uint16(2)
	dirOff := rootStart
	dataOff := dataStart
	for _, f := range files {
		clusters := (len(f.data) + sectorSize*sectorsPerCluster - 1) / (sectorSize * sectorsPerCluster)
		if clusters == 0 {
			clusters = 1
		}
		firstCluster := nextCluster
		writeFATChain(img, fatStart, int(firstCluster), clusters)
		nextCluster += uint16(clusters)

		copy(img[dirOff:dirOff+11], f.name)
		img[dirOff+11] = 0x20 // ATTR_ARCHIVE
		binary.LittleEndian.PutUint16(img[dirOff+26:dirOff+28], firstCluster)
		binary.LittleEndian.PutUint32(img[dirOff+28:dirOff+32], uint32(len(f.data)))
		dirOff += 32

		n := copy(img[dataOff:], f.data)
		dataOff += clusters * sectorsPerCluster * sectorSize
		if n != len(f.data) {
			return nil, fmt.Errorf("image too small for %q: wrote %d of %d bytes", f.name, n, len(f.data))
		}
	}

	return img, nil
}

func writeFATChain(img []byte, fatStart, firstCluster, clusters int) {
	cluster := firstCluster
	for i := 0; i < clusters; i++ {
		off := fatStart + cluster*2
		if i == clusters-1 {
			binary.LittleEndian.PutUint16(img[off:off+2], 0xFFFF)
		} else {
			binary.LittleEndian.PutUint16(img[off:off+2], uint16(cluster+1))
		}
		cluster++
	}
}

// writeBPB fills sector 0 with the fields internal/fat16.Mount reads:
// bytes/sector, sectors/cluster, reserved sectors, FAT count, root
// entry count, and sectors/FAT (the rest of Mount's derived fields
// follow arithmetically from these).
func writeBPB(img []byte, sectorsPerFAT uint16, label string) {
	sec := img[0:sectorSize]
	sec[0] = 0xEB
	sec[1] = 0x3C
	sec[2] = 0x90
	copy(sec[3:11], "KIMG1.0 ")
	binary.LittleEndian.PutUint16(sec[11:13], sectorSize)
	sec[13] = sectorsPerCluster
	binary.LittleEndian.PutUint16(sec[14:16], reservedSectors)
	sec[16] = numFATs
	binary.LittleEndian.PutUint16(sec[17:19], rootEntries)
	binary.LittleEndian.PutUint16(sec[19:21], uint16(totalSectors))
	sec[21] = 0xF0 // media descriptor, floppy
	binary.LittleEndian.PutUint16(sec[22:24], sectorsPerFAT)
	sec[36] = 0x80 // drive number
	sec[38] = 0x29 // extended boot signature
	copy(sec[43:54], fmt.Sprintf("%-11s", label))
	copy(sec[54:62], "FAT16   ")
	sec[510] = 0x55
	sec[511] = 0xAA
}
