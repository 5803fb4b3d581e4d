package artifacts

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func mkfile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte("bin"), 0o700))
}

func TestLocateDepthBounds(t *testing.T) {
	root := t.TempDir()
	mkfile(t, filepath.Join(root, "demo"))                            // depth 0
	mkfile(t, filepath.Join(root, "obj", "demo"))                     // depth 1
	mkfile(t, filepath.Join(root, "obj", "dev", "demo"))              // depth 2
	mkfile(t, filepath.Join(root, "obj", "dev", "deep", "demo"))      // depth 3, beyond bound
	mkfile(t, filepath.Join(root, "obj", "dev", "deep", "x", "demo")) // depth 4

	found, err := Locate(root, "demo", 2)
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(root, "demo"),
		filepath.Join(root, "obj", "demo"),
		filepath.Join(root, "obj", "dev", "demo"),
	}, found)
}

func TestLocateExactNameOnly(t *testing.T) {
	root := t.TempDir()
	mkfile(t, filepath.Join(root, "demo.bak"))
	mkfile(t, filepath.Join(root, "demo2"))
	mkfile(t, filepath.Join(root, "Demo"))

	found, err := Locate(root, "demo", 2)
	require.NoError(t, err)
	require.Empty(t, found)
}

func TestLocateDeterministicOrder(t *testing.T) {
	root := t.TempDir()
	mkfile(t, filepath.Join(root, "zzz", "demo"))
	mkfile(t, filepath.Join(root, "aaa", "demo"))
	mkfile(t, filepath.Join(root, "mmm", "demo"))

	first, err := Locate(root, "demo", 1)
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(root, "aaa", "demo"),
		filepath.Join(root, "mmm", "demo"),
		filepath.Join(root, "zzz", "demo"),
	}, first)

	again, err := Locate(root, "demo", 1)
	require.NoError(t, err)
	require.Equal(t, first, again)
}

func TestLocateDoesNotFollowSymlinkedDirectories(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation requires privileges on windows")
	}
	root := t.TempDir()
	outside := t.TempDir()
	mkfile(t, filepath.Join(outside, "demo"))

	require.NoError(t, os.Symlink(outside, filepath.Join(root, "linked")))

	found, err := Locate(root, "demo", 3)
	require.NoError(t, err)
	require.Empty(t, found, "artifacts behind symlinked directories must not be reported")
}

func TestLocateIgnoresSymlinkedFiles(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation requires privileges on windows")
	}
	root := t.TempDir()
	mkfile(t, filepath.Join(root, "real"))
	require.NoError(t, os.Symlink(filepath.Join(root, "real"), filepath.Join(root, "demo")))

	found, err := Locate(root, "demo", 1)
	require.NoError(t, err)
	require.Empty(t, found)
}

func TestLocateMissingRoot(t *testing.T) {
	_, err := Locate(filepath.Join(t.TempDir(), "nope"), "demo", 2)
	require.Error(t, err)
}

func TestLocateEmptyTree(t *testing.T) {
	found, err := Locate(t.TempDir(), "demo", 2)
	require.NoError(t, err)
	require.Empty(t, found)
}
