// Package runtime embeds the client scripts rendered forms call into.
package runtime

import (
	"embed"
	"io/fs"
)

//go:embed assets/*.js
var embedded embed.FS

// AssetsFS exposes the scripts rooted at their file names.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embedded, "assets")
	if err != nil {
		return embedded
	}
	return sub
}

// Script returns the contents of a single script by file name.
func Script(name string) (string, error) {
	data, err := fs.ReadFile(AssetsFS(), name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
