package viewer

import (
	"fmt"
	"image"

	"go.uber.org/zap"

	"github.com/Faultbox/toon-sphere/internal/config"
	"github.com/Faultbox/toon-sphere/internal/engine/camera"
	"github.com/Faultbox/toon-sphere/internal/engine/geometry"
	"github.com/Faultbox/toon-sphere/internal/engine/gpu"
	"github.com/Faultbox/toon-sphere/internal/engine/renderer"
	"github.com/Faultbox/toon-sphere/internal/engine/shader"
	"github.com/Faultbox/toon-sphere/internal/engine/texture"
	"github.com/Faultbox/toon-sphere/internal/logger"
	"github.com/Faultbox/toon-sphere/internal/scene"
)

// Scene owns the GPU resources of one toon sphere and the renderer that
// draws them. Both hosts build it the same way.
type Scene struct {
	Params   *scene.Params
	Camera   *camera.OrbitCamera
	Renderer *renderer.FrameRenderer

	program  *shader.Program
	mesh     *gpu.MeshBuffers
	textures *texture.Units
}

// NewScene uploads assets to the current GL context and wires a stopped
// renderer drawing onto surface. It must run on the GL thread.
func NewScene(cfg *config.Config, assets *Assets, surface renderer.Surface) (*Scene, error) {
	program, err := shader.Load(assets.Shaders.Vertex, assets.Shaders.Fragment)
	if err != nil {
		return nil, fmt.Errorf("compiling toon program: %w", err)
	}

	sc := cfg.Render.Sphere
	m, err := geometry.BuildSphere(sc.LatSegments, sc.LonSegments, sc.Radius, sc.Color)
	if err != nil {
		program.Delete()
		return nil, fmt.Errorf("building sphere: %w", err)
	}
	mesh, err := gpu.UploadMesh(m)
	if err != nil {
		program.Delete()
		return nil, fmt.Errorf("uploading sphere: %w", err)
	}
	logger.Info("sphere uploaded",
		zap.Int("vertices", m.VertexCount()),
		zap.Int("indices", m.IndexCount()),
	)

	units := texture.NewUnits()
	units.Set(0, texture.Upload(assets.Image))

	s := &Scene{
		Params:   scene.NewParams(cfg.Render.Params),
		Camera:   camera.New(cfg.CameraOptions()),
		program:  program,
		mesh:     mesh,
		textures: units,
	}

	s.Renderer, err = renderer.New(renderer.Deps{
		Device:   gpu.NewGLDevice(),
		Program:  program,
		Mesh:     mesh,
		Textures: units,
		Camera:   s.Camera,
		Params:   s.Params,
		Surface:  surface,
	})
	if err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// ReplaceTexture swaps the texture on unit 0 and frees the old one.
func (s *Scene) ReplaceTexture(img *image.RGBA) {
	if old, ok := s.textures.Get(0); ok {
		texture.Delete(old)
	}
	s.textures.Set(0, texture.Upload(img))
}

// SaveSettings writes the current parameters to the config file the next
// start will read.
func (s *Scene) SaveSettings(cfg *config.Config) error {
	if err := cfg.SaveParams(s.Params.Snapshot()); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	logger.Info("settings saved", zap.String("path", cfg.Path()))
	return nil
}

// Close releases GPU resources.
func (s *Scene) Close() {
	s.textures.Each(func(_ int, tex gpu.Texture) { texture.Delete(tex) })
	s.mesh.Destroy()
	s.program.Delete()
}
