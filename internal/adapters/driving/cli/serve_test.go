package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeCmd_Use(t *testing.T) {
	assert.Equal(t, "serve", serveCmd.Use)
}

func TestServeCmd_Flags(t *testing.T) {
	for _, name := range []string{"addr", "data-dir", "renew-interval"} {
		require.NotNil(t, serveCmd.Flags().Lookup(name), "missing flag %s", name)
	}
}

func TestServeCmd_FailsWithoutConfig(t *testing.T) {
	t.Setenv("GOOGLE_CLIENT_ID", "")
	t.Setenv("GOOGLE_CLIENT_SECRET", "")
	t.Setenv("GOOGLE_REDIRECT_URI", "")
	t.Setenv("GOOGLE_DRIVE_FOLDER_ID", "")

	err := runServe(serveCmd, nil)
	assert.Error(t, err)
}
