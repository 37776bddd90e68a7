package schemaform

import (
	"io/fs"

	"github.com/goliatone/go-schemaform/pkg/runtime"
)

// RuntimeAssetsFS exposes the client scripts the rendered forms call into
// (submit_form, duplicate_item, remove_item, collapsible) so Go applications
// can serve or inline them without a build step.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(schemaform.RuntimeAssetsFS()),
//	  ),
//	)
func RuntimeAssetsFS() fs.FS {
	return runtime.AssetsFS()
}

// RuntimeScript returns the contents of a single client script by file name.
func RuntimeScript(name string) (string, error) {
	return runtime.Script(name)
}
