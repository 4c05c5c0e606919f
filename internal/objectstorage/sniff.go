package objectstorage

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
)

// LooksLikeGzipTar reports whether chunk opens as a gzip stream whose first
// entry is a valid tar header, the §4.3 "peek the first chunk" check for
// binaries/seeds uploads. A gzip stream holding an empty tar archive (no
// entry at all) also passes. It deliberately only reads the tar header of
// the first entry, not the whole archive — sniffing, not validating.
func LooksLikeGzipTar(chunk []byte) bool {
	gz, err := gzip.NewReader(bytes.NewReader(chunk))
	if err != nil {
		return false
	}
	defer gz.Close()

	tr := tar.NewReader(gz)

	_, err = tr.Next()

	return err == nil || err == io.EOF
}

// IsJSONObject reports whether data parses as a JSON object (not an array,
// string, or scalar), the §4.3 config-upload validation check.
func IsJSONObject(data []byte) bool {
	var v map[string]any

	return json.Unmarshal(data, &v) == nil && v != nil
}
