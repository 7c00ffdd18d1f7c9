package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	cmds := rootCmd.Commands()

	// Collect subcommand names.
	names := make(map[string]bool)
	for _, c := range cmds {
		names[c.Name()] = true
	}

	// Verify expected subcommands are registered.
	expected := []string{
		"markers", "features", "feature", "random", "image",
		"timeline", "stats", "export", "serve", "version",
	}
	for _, name := range expected {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "xjdp", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestServeCommand_Flags(t *testing.T) {
	flag := serveCmd.Flags().Lookup("port")
	require.NotNil(t, flag, "serve command should have --port flag")
	assert.Equal(t, "0", flag.DefValue)
}

func TestExportCommand_Flags(t *testing.T) {
	for _, flagName := range []string{"format", "out", "category", "concurrency"} {
		flag := exportCmd.Flags().Lookup(flagName)
		assert.NotNil(t, flag, "export should have --%s flag", flagName)
	}
	assert.Equal(t, "geojson", exportCmd.Flags().Lookup("format").DefValue)
}

func TestCategoryFlagDefaults(t *testing.T) {
	for _, c := range []struct {
		cmd  string
		want string
	}{
		{cmd: "markers", want: "camp"},
		{cmd: "features", want: "camp"},
		{cmd: "random", want: "camp"},
		// feature and image resolve the category from the marker index.
		{cmd: "feature", want: ""},
		{cmd: "image", want: ""},
	} {
		sub, _, err := rootCmd.Find([]string{c.cmd})
		require.NoError(t, err)
		flag := sub.Flags().Lookup("category")
		require.NotNil(t, flag, "%s should have --category flag", c.cmd)
		assert.Equal(t, c.want, flag.DefValue, "--category default for %s", c.cmd)
	}
}
