// Package ftp provides a read-only FTP implementation of the
// blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := ftp.New("ftp.example.org:21",
//	    ftp.WithRoot("/pub/nets"),
//	    ftp.WithCredentials("user", "secret"),
//	)
//
//	net, err := netfile.Load(ctx, "sobol.txt", netfile.WithStore(store))
//
// Locations of the form ftp://[user[:password]@]host[:port]/path are
// resolved by package netfile through New. Without credentials the store
// logs in anonymously.
//
// Every Open dials a fresh control connection and downloads the whole file;
// wrap the store in a blobstore.CachingStore to avoid repeated transfers.
package ftp
