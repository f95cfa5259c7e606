package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExportCmd_Defaults(t *testing.T) {
	cmd := NewExportCmd(context.Background())
	pf := cmd.PersistentFlags()

	logFile, err := pf.GetString("log-file")
	require.NoError(t, err)
	assert.Equal(t, "export_dicom_tags.log", logFile, "file sink should be on by default")

	ext, err := pf.GetString("ext")
	require.NoError(t, err)
	assert.Equal(t, ".dcm", ext)

	recursive, err := pf.GetBool("recursive")
	require.NoError(t, err)
	assert.False(t, recursive)
}

func TestNewExportCmd_InvalidDirErrors(t *testing.T) {
	cmd := NewExportCmd(context.Background())
	require.NoError(t, cmd.PersistentFlags().Set("input", "/no/such/dir"))

	err := cmd.RunE(cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not a directory")
}
