package util

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveJsonCreatesFolders(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "nested", "out.json")

	require.NoError(t, SaveJson(target, map[string]int{"episodes": 3}))

	bs, err := os.ReadFile(target)
	require.NoError(t, err)
	out := make(map[string]int)
	require.NoError(t, json.Unmarshal(bs, &out))
	assert.Equal(t, 3, out["episodes"])
}

func TestAppendAndWrite(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "lines", "file.txt")

	require.NoError(t, AppendToFile(target, "a", "b"))
	require.NoError(t, AppendToFile(target, "c"))
	bs, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "a\nb\nc\n", string(bs))

	require.NoError(t, WriteToFile(target, "x", "y"))
	bs, err = os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "x\ny", string(bs))
}
