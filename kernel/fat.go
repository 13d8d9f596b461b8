package main

import "kernel386/internal/fat16"

// fs is the mounted FAT16 volume, or nil if no secondary ATA drive
// responded to probeATA (spec §6: "FAT16 volume resides on a secondary
// ATA drive" — its absence is not fatal, just disables ls/cat).
var fs *fat16.FS

// fsInit probes for a disk and mounts FAT16 on it. Failure at either
// step just leaves fs nil; callers treat that as "no disk" rather than
// a boot failure (spec §7 propagation policy: sentinel-valued, never
// fatal for an optional subsystem).
func fsInit() {
	bus, ok := probeATA()
	if !ok {
		return
	}
	vol := ataVolume{bus: bus}
	mounted, err := fat16.Mount(vol)
	if err != nil {
		return
	}
	fs = mounted
}

func fsListRoot(max int) ([]fat16.DirEntry, bool) {
	if fs == nil {
		return nil, false
	}
	entries, err := fs.ListRoot(max)
	if err != nil {
		return nil, false
	}
	return entries, true
}

func fsReadFile(name string, buf []byte) (int, bool) {
	if fs == nil {
		return 0, false
	}
	n, err := fs.ReadFile(name, buf)
	if err != nil {
		return n, false
	}
	return n, true
}
