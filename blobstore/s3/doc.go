// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("nets/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	net, err := netfile.Load(ctx, "sobol.txt.zst", netfile.WithStore(store))
//
// Locations of the form s3://bucket/key are resolved by package netfile
// through New with the default AWS configuration chain.
//
// # Features
//
//   - Whole-object downloads through the S3 transfer manager
//   - Range reads for partial fetches
//   - Automatic pagination for listing
//   - Configurable prefix
package s3
