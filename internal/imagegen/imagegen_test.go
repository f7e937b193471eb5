package imagegen

import (
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuhaochen/lexipost/internal/config"
)

func TestTemplateWordCard(t *testing.T) {
	dir := t.TempDir()
	g := New(config.ImageConfig{
		Backend:   config.ImageBackendTemplate,
		OutputDir: dir,
	}, zerolog.Nop())

	path, err := g.WordCard(context.Background(), "abandon", "v. 放弃，抛弃")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "abandon_template.png"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 1080, img.Bounds().Dx())
	assert.Equal(t, 1080, img.Bounds().Dy())
}

func TestSafeFilename(t *testing.T) {
	assert.Equal(t, "give_up", safeFilename(" give up "))
	assert.Equal(t, "abandon", safeFilename("abandon"))
}
