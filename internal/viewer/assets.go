package viewer

import (
	"context"
	"fmt"
	"image"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/toon-sphere/internal/config"
	"github.com/Faultbox/toon-sphere/internal/engine/shader"
	"github.com/Faultbox/toon-sphere/internal/engine/texture"
	"github.com/Faultbox/toon-sphere/internal/logger"
)

const (
	checkerSize  = 256
	checkerCells = 8
)

// Assets are the CPU-side inputs to GPU setup.
type Assets struct {
	Image   *image.RGBA
	Shaders shader.Sources
}

// LoadAssets decodes the texture and reads the shader sources concurrently.
// It returns once both are available or either failed.
func LoadAssets(ctx context.Context, cfg config.AssetsConfig) (*Assets, error) {
	g, ctx := errgroup.WithContext(ctx)
	var out Assets

	g.Go(func() error {
		img, err := loadImage(ctx, cfg.Texture)
		if err != nil {
			return err
		}
		out.Image = img
		return nil
	})

	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		src, err := shader.LoadSources(cfg.ShaderDir)
		if err != nil {
			return fmt.Errorf("loading shaders: %w", err)
		}
		out.Shaders = src
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}

func loadImage(ctx context.Context, path string) (*image.RGBA, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if path == "" {
		logger.Debug("no texture configured, using checkerboard")
		return texture.Checkerboard(checkerSize, checkerCells), nil
	}
	img, err := texture.DecodeFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading texture: %w", err)
	}
	logger.Info("texture decoded",
		zap.String("path", path),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()),
	)
	return img, nil
}
