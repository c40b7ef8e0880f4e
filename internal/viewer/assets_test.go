package viewer

import (
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/toon-sphere/internal/config"
	"github.com/Faultbox/toon-sphere/internal/engine/shader"
)

func TestLoadAssetsDefaults(t *testing.T) {
	a, err := LoadAssets(context.Background(), config.AssetsConfig{})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, checkerSize, checkerSize), a.Image.Bounds())
	assert.Equal(t, shader.ToonVertexShader, a.Shaders.Vertex)
	assert.Equal(t, shader.ToonFragmentShader, a.Shaders.Fragment)
}

func TestLoadAssetsFromDisk(t *testing.T) {
	dir := t.TempDir()

	texPath := filepath.Join(dir, "tex.png")
	f, err := os.Create(texPath)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewNRGBA(image.Rect(0, 0, 3, 5))))
	require.NoError(t, f.Close())

	shaderDir := filepath.Join(dir, "shaders")
	require.NoError(t, os.MkdirAll(shaderDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(shaderDir, "toon.vert"), []byte("// vert"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(shaderDir, "toon.frag"), []byte("// frag"), 0644))

	a, err := LoadAssets(context.Background(), config.AssetsConfig{Texture: texPath, ShaderDir: shaderDir})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 5), a.Image.Bounds())
	assert.Equal(t, "// vert", a.Shaders.Vertex)
	assert.Equal(t, "// frag", a.Shaders.Fragment)
}

func TestLoadAssetsFailures(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadAssets(context.Background(), config.AssetsConfig{Texture: filepath.Join(dir, "missing.png")})
	assert.ErrorContains(t, err, "loading texture")

	_, err = LoadAssets(context.Background(), config.AssetsConfig{ShaderDir: dir})
	assert.ErrorContains(t, err, "loading shaders")
}

func TestLoadAssetsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := LoadAssets(ctx, config.AssetsConfig{})
	assert.ErrorIs(t, err, context.Canceled)
}
