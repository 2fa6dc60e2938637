// Package shell loads the client application shell the host serves.
//
// The shell is the static bundle (index.html plus its assets) that runs the
// client router in the browser. It is read from a Source: a local directory
// during development, or an S3 bucket in deployment.
//
//	src := shell.NewDirSource("public")
//	asset, err := src.Open(ctx, "index.html")
//	if errors.Is(err, shell.ErrNotExist) {
//	    // 404
//	}
//	defer asset.Body.Close()
//
// Names are slash-separated and relative, as accepted by fs.ValidPath.
package shell
