package fetch_test

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fcanata061/lfsd/pkg/fetch"
	"github.com/fcanata061/lfsd/pkg/lfsderrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyDigestMatches(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "src.tar.gz")
	content := []byte("pretend archive contents")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	sum := sha256.Sum256(content)
	want := hex.EncodeToString(sum[:])

	assert.NoError(t, fetch.VerifyDigest(path, want))
}

func TestVerifyDigestMatchesCaseInsensitively(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "src.tar.gz")
	content := []byte("pretend archive contents")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	sum := sha256.Sum256(content)
	want := strings.ToUpper(hex.EncodeToString(sum[:]))

	assert.NoError(t, fetch.VerifyDigest(path, want))
}

func TestVerifyDigestMismatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "src.tar.gz")
	require.NoError(t, os.WriteFile(path, []byte("content"), 0o644))

	err := fetch.VerifyDigest(path, "0000000000000000000000000000000000000000000000000000000000000000")
	require.Error(t, err)
	assert.True(t, lfsderrors.Is(err, lfsderrors.ErrIntegrityMismatch))
}

func TestVerifyDigestEmptyWantSkipsCheck(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "src.tar.gz")
	require.NoError(t, os.WriteFile(path, []byte("content"), 0o644))

	assert.NoError(t, fetch.VerifyDigest(path, ""))
}
