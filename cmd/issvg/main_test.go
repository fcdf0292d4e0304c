package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSVG = `<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg"><circle r="5"/></svg>`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestRun_File(t *testing.T) {
	assert.Equal(t, exitSVG, run([]string{"-q", "-i", writeFile(t, "a.svg", testSVG)}, nil))
	assert.Equal(t, exitNotSVG, run([]string{"-q", "-i", writeFile(t, "a.html", "<html></html>")}, nil))
	assert.Equal(t, exitError, run([]string{"-q", "-i", filepath.Join(t.TempDir(), "missing.svg")}, nil))
}

func TestRun_Positional(t *testing.T) {
	assert.Equal(t, exitSVG, run([]string{"-q", writeFile(t, "a.svg", testSVG)}, strings.NewReader("")))
	assert.Equal(t, exitNotSVG, run([]string{"-q", writeFile(t, "a.html", "<html></html>")}, strings.NewReader(testSVG)))
	assert.Equal(t, exitError, run([]string{"-q", "a.svg", "b.svg"}, nil))
}

func TestRun_Stdin(t *testing.T) {
	assert.Equal(t, exitSVG, run([]string{"-q"}, strings.NewReader(testSVG)))
	assert.Equal(t, exitNotSVG, run([]string{"-q"}, bytes.NewReader(nil)))
}

func TestRun_Preset(t *testing.T) {
	preset := writeFile(t, "preset.yaml", "quiet: true\nmax_size: 8\n")
	assert.Equal(t, exitNotSVG, run([]string{"-preset", preset}, strings.NewReader(testSVG)))
}

func TestRun_BadFlags(t *testing.T) {
	assert.Equal(t, exitError, run([]string{"-q", "-no-such-flag"}, nil))
}
