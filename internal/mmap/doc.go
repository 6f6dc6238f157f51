// Package mmap maps resource files read-only into memory.
//
// Generator-matrix and table resources are parsed front to back once, so
// mappings are advised for sequential access when opened:
//
//	m, err := mmap.Open("sobol_2_30.txt", mmap.AccessSequential)
//	if err != nil { ... }
//	defer m.Close()
//	data := m.Bytes()
//
// On Unix the mapping uses mmap(2) and madvise(2); on Windows it uses
// CreateFileMapping/MapViewOfFile and advice is ignored.
//
// A Mapping is safe for concurrent reads. Close is idempotent; callers must
// not touch the slice returned by Bytes after Close.
package mmap
