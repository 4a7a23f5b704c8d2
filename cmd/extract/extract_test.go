package extract_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/pdf-expenses/cmd/extract"
	"fjacquet/pdf-expenses/cmd/root"
	"fjacquet/pdf-expenses/internal/config"
	"fjacquet/pdf-expenses/internal/container"
	"fjacquet/pdf-expenses/internal/logging"
	"fjacquet/pdf-expenses/internal/store"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCommand_Metadata(t *testing.T) {
	assert.Equal(t, "extract [file.pdf]", extract.Cmd.Use)
	assert.Contains(t, extract.Cmd.Short, "Extract expenses")
	assert.NotNil(t, extract.Cmd.RunE)

	modeFlag := extract.Cmd.Flags().Lookup("mode")
	require.NotNil(t, modeFlag)
	assert.Equal(t, "m", modeFlag.Shorthand)
	assert.Equal(t, "", modeFlag.DefValue)
}

func TestExtractCommand_NoContainer(t *testing.T) {
	original := root.AppContainer
	t.Cleanup(func() { root.AppContainer = original })
	root.AppContainer = nil

	err := extract.Cmd.RunE(&cobra.Command{}, nil)
	assert.EqualError(t, err, "container not initialized")
}

func testContainer(t *testing.T) *container.Container {
	t.Helper()
	t.Setenv("PDFEXP_EMBEDDING_PROVIDER", "vocabulary")
	t.Chdir(t.TempDir())
	cfg, err := config.InitializeConfig("")
	require.NoError(t, err)
	c, err := container.NewContainerWithLogger(context.Background(), cfg, logging.NewMockLogger(), &store.MockPrototypeStore{})
	require.NoError(t, err)
	return c
}

func TestExtractCommand_Errors(t *testing.T) {
	originalContainer := root.AppContainer
	originalFlags := root.SharedFlags
	originalMode := extract.Mode
	t.Cleanup(func() {
		root.AppContainer = originalContainer
		root.SharedFlags = originalFlags
		extract.Mode = originalMode
	})
	root.AppContainer = testContainer(t)

	t.Run("invalid mode", func(t *testing.T) {
		extract.Mode = "summary"
		err := extract.Cmd.RunE(&cobra.Command{}, []string{"statement.pdf"})
		assert.ErrorContains(t, err, "unknown extraction mode")
	})

	t.Run("not a pdf", func(t *testing.T) {
		extract.Mode = "bill"
		err := extract.Cmd.RunE(&cobra.Command{}, []string{"statement.csv"})
		assert.ErrorContains(t, err, "only PDF files are supported")
	})

	t.Run("unreadable pdf", func(t *testing.T) {
		extract.Mode = ""
		path := filepath.Join(t.TempDir(), "broken.pdf")
		require.NoError(t, os.WriteFile(path, []byte("not really a pdf"), 0600))
		root.SharedFlags.Input = path

		cmd := &cobra.Command{}
		var out bytes.Buffer
		cmd.SetOut(&out)
		err := extract.Cmd.RunE(cmd, nil)
		assert.ErrorContains(t, err, "broken.pdf")
		assert.Empty(t, out.String())
	})
}
