// Package netfile reads the parameters of digital nets in base 2.
//
// A parameter resource is a stream of integer tokens separated by white
// space, with "//" comments running to the end of the line:
//
//	2      // base
//	3      // numCols k (2^k points)
//	31     // numRows r
//	8      // numPoints
//	2      // dim
//	// dim 1
//	1073741824
//	536870912
//	268435456
//	// dim 2
//	...
//
// The header is followed by dim*numCols generator columns. Column c of
// coordinate j is a 31-bit integer whose most significant bit holds row 0.
//
// Load resolves a location through package blobstore: local paths,
// "file:", "http(s)://" and "ftp://" URLs, "s3://bucket/key",
// "minio://bucket/key" and "mem://name" (the in-process Memory store). Names ending in ".zst" or
// ".lz4" are decompressed.
package netfile
