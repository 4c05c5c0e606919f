package objectstorage

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildGzipTar(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)

	content := []byte("hello world")
	require.NoError(t, tw.WriteHeader(&tar.Header{Name: "fuzz_target", Size: int64(len(content))}))

	_, err := tw.Write(content)
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())

	return buf.Bytes()
}

func TestLooksLikeGzipTar(t *testing.T) {
	assert.True(t, LooksLikeGzipTar(buildGzipTar(t)))
	assert.False(t, LooksLikeGzipTar([]byte("not an archive at all")))
	assert.False(t, LooksLikeGzipTar([]byte{}))
}

func TestIsJSONObject(t *testing.T) {
	assert.True(t, IsJSONObject([]byte(`{"k": "v"}`)))
	assert.False(t, IsJSONObject([]byte(`[1,2,3]`)))
	assert.False(t, IsJSONObject([]byte(`not json`)))
	assert.False(t, IsJSONObject([]byte(`"a string"`)))
}
