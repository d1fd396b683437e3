//go:build unix

package argus_test

import (
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/markusressel/argus2display/internal/argus"
	"github.com/markusressel/argus2display/internal/testingutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenTable_MissingRegion(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "does-not-exist")

	// WHEN
	table, err := argus.OpenTable(path, argus.DefaultMappingSize)

	// THEN
	assert.Nil(t, table)
	var connErr *argus.ConnectionError
	require.True(t, errors.As(err, &connErr))
	assert.Equal(t, "open", connErr.Op)
	assert.Equal(t, int(syscall.ENOENT), connErr.Code())
}

func TestOpenTable_File(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "argus")
	data := testingutils.CpuTable(argus.CategoryCpuTemperature, 52.5).Bytes()
	require.NoError(t, os.WriteFile(path, data, 0600))

	// WHEN
	table, err := argus.OpenTable(path, argus.DefaultMappingSize)

	// THEN
	require.NoError(t, err)
	defer table.Close()
	assert.True(t, table.IsActive())
	value, err := table.Value(0)
	require.NoError(t, err)
	assert.Equal(t, 52.5, value)
}

func TestOpenTable_EmptyFile(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "argus")
	require.NoError(t, os.WriteFile(path, nil, 0600))

	// WHEN
	_, err := argus.OpenTable(path, argus.DefaultMappingSize)

	// THEN
	var connErr *argus.ConnectionError
	require.ErrorAs(t, err, &connErr)
	assert.Equal(t, "map", connErr.Op)
}
