package pass

import (
	"image"
	"testing"

	"github.com/Carmen-Shannon/baryon-go/common"
	"github.com/Carmen-Shannon/baryon-go/engine/light"
	"github.com/Carmen-Shannon/baryon-go/engine/model"
	"github.com/Carmen-Shannon/baryon-go/engine/renderer/material"
	"github.com/Carmen-Shannon/baryon-go/engine/resource"
	"github.com/Carmen-Shannon/baryon-go/engine/scene"
	"github.com/Carmen-Shannon/baryon-go/engine/space"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGPUTypeSizes(t *testing.T) {
	assert.Equal(t, uint64(48), solidLocalsSize)
	assert.Equal(t, uint64(64), flatLocalsSize)
	assert.Equal(t, uint64(80), phongLocalsSize)
	assert.Equal(t, uint64(80), realLocalsSize)
	assert.Equal(t, uint64(96), phongGlobalsSize)
	assert.Equal(t, uint64(96), realGlobalsSize)
	assert.Equal(t, uint64(48), lightSize)
	assert.Equal(t, uint64(80), cameraSize)
}

func TestShadersMatchUniformLayouts(t *testing.T) {
	cases := []struct {
		name        string
		globalsSize uint64
		localsSize  uint64
		hasLights   bool
	}{
		{"solid", cameraSize, solidLocalsSize, false},
		{"flat", cameraSize, flatLocalsSize, false},
		{"phong", phongGlobalsSize, phongLocalsSize, true},
		{"real", realGlobalsSize, realLocalsSize, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := loadShader(tc.name)
			require.Equal(t, 2, s.BindGroupCount())

			globals := s.BindGroupLayoutDescriptor(0)
			require.NotEmpty(t, globals.Entries)
			assert.Equal(t, wgpu.BufferBindingTypeUniform, globals.Entries[0].Buffer.Type)
			assert.Equal(t, tc.globalsSize, globals.Entries[0].Buffer.MinBindingSize)
			assert.False(t, globals.Entries[0].Buffer.HasDynamicOffset)

			if tc.hasLights {
				require.Len(t, globals.Entries, 2)
				assert.Equal(t, wgpu.BufferBindingTypeReadOnlyStorage, globals.Entries[1].Buffer.Type)
				assert.Equal(t, lightSize, globals.Entries[1].Buffer.MinBindingSize)
			}

			locals := s.BindGroupLayoutDescriptor(1)
			require.NotEmpty(t, locals.Entries)
			assert.Equal(t, wgpu.BufferBindingTypeUniform, locals.Entries[0].Buffer.Type)
			assert.True(t, locals.Entries[0].Buffer.HasDynamicOffset)
			assert.Equal(t, tc.localsSize, locals.Entries[0].Buffer.MinBindingSize)
		})
	}
}

func TestShaderEntryPoints(t *testing.T) {
	solid := loadShader("solid")
	assert.Equal(t, []uint32{0}, solid.VertexLocations("main_vs"))

	flat := loadShader("flat")
	assert.Empty(t, flat.VertexLocations("main_vs"))
	globals := flat.BindGroupLayoutDescriptor(0)
	require.Len(t, globals.Entries, 2)
	assert.Equal(t, wgpu.SamplerBindingTypeFiltering, globals.Entries[1].Sampler.Type)
	locals := flat.BindGroupLayoutDescriptor(1)
	require.Len(t, locals.Entries, 2)
	assert.Equal(t, wgpu.TextureViewDimension2D, locals.Entries[1].Texture.ViewDimension)
	assert.Equal(t, wgpu.TextureSampleTypeFloat, locals.Entries[1].Texture.SampleType)

	phong := loadShader("phong")
	for _, name := range []string{"vs_flat", "fs_flat", "fs_gouraud", "vs_phong", "fs_phong"} {
		assert.True(t, phong.HasEntryPoint(name), name)
	}
	assert.Equal(t, []uint32{0, 1}, phong.VertexLocations("vs_flat"))
	assert.Equal(t, []uint32{0, 1}, phong.VertexLocations("vs_phong"))

	rl := loadShader("real")
	assert.Equal(t, "main_vs", rl.VertexEntryPoint())
	assert.Equal(t, "main_fs", rl.FragmentEntryPoint())
}

func TestMeshStreams(t *testing.T) {
	mesh := model.NewMeshLayout().
		Positions([][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}).
		Normals([][3]float32{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}}).
		Mesh(nil)

	streams, err := meshStreams(&mesh, []uint32{0, 1})
	require.NoError(t, err)
	require.Len(t, streams, 2)
	assert.Equal(t, model.StreamPosition, streams[0].Kind)
	assert.Equal(t, uint64(0), streams[0].Offset)
	assert.Equal(t, model.StreamNormal, streams[1].Kind)
	assert.Equal(t, uint64(36), streams[1].Offset)

	_, err = meshStreams(&mesh, []uint32{2})
	assert.Error(t, err)
	_, err = meshStreams(&mesh, []uint32{7})
	assert.Error(t, err)
}

func TestSpriteBounds(t *testing.T) {
	info := model.ImageInfo{Width: 64, Height: 32}

	bounds, tc := spriteBounds(image.Rectangle{}, info)
	assert.Equal(t, [4]float32{-32, -16, 32, 16}, bounds)
	assert.Equal(t, [4]float32{0, 0, 1, 1}, tc)

	bounds, tc = spriteBounds(image.Rect(16, 8, 32, 32), info)
	assert.Equal(t, [4]float32{-8, -12, 8, 12}, bounds)
	assert.Equal(t, [4]float32{0.25, 0.25, 0.5, 1}, tc)
}

func TestSortBackToFront(t *testing.T) {
	eye := space.Identity().Raw()
	near := cameraDistance(mgl32.Vec3{0, 0, -1}, eye)
	far := cameraDistance(mgl32.Vec3{0, 0, -5}, eye)
	behind := cameraDistance(mgl32.Vec3{0, 0, 2}, eye)
	assert.InDelta(t, 1, near, 1e-6)
	assert.InDelta(t, 5, far, 1e-6)
	assert.InDelta(t, -2, behind, 1e-6)

	sprites := []flatSprite{{distance: near}, {distance: behind}, {distance: far}}
	sortBackToFront(sprites)
	assert.Equal(t, []float32{far, near, behind}, []float32{sprites[0].distance, sprites[1].distance, sprites[2].distance})

	turned := space.FromAxisAngle(mgl32.Vec3{0, 1, 0}, 180).Raw()
	assert.InDelta(t, 2, cameraDistance(mgl32.Vec3{0, 0, 2}, turned), 1e-5)
}

func TestTaskRanges(t *testing.T) {
	assert.Nil(t, taskRanges(0, 4, 64))
	assert.Equal(t, [][2]int{{0, 10}}, taskRanges(10, 4, 64))
	assert.Equal(t, [][2]int{{0, 66}, {66, 133}, {133, 200}}, taskRanges(200, 4, 64))
	assert.Equal(t, [][2]int{{0, 250}, {250, 500}, {500, 750}, {750, 1000}}, taskRanges(1000, 4, 64))
	assert.Equal(t, [][2]int{{0, 2}, {2, 4}, {4, 7}}, taskRanges(7, 3, 2))

	for _, n := range []int{64, 127, 128, 200, 333, 1000} {
		for _, r := range taskRanges(n, 8, 64) {
			assert.GreaterOrEqual(t, r[1]-r[0], 64, "n=%d range %v", n, r)
		}
	}

	covered := 0
	for _, r := range taskRanges(1001, 3, 1) {
		covered += r[1] - r[0]
	}
	assert.Equal(t, 1001, covered)
}

func TestLightSelectorMatchesSerial(t *testing.T) {
	candidates := []light.Candidate{
		{Position: mgl32.Vec3{0, 0, 0}, Intensity: 10, Kind: light.KindPoint},
		{Position: mgl32.Vec3{50, 0, 0}, Intensity: 10, Kind: light.KindPoint},
		{Intensity: 0.5, Kind: light.KindDirectional},
		{Position: mgl32.Vec3{-20, 0, 0}, Intensity: 40, Kind: light.KindPoint},
		{Position: mgl32.Vec3{0, 30, 0}, Intensity: 5, Kind: light.KindPoint},
	}
	bounds := make([]lightBounds, 500)
	for i := range bounds {
		bounds[i] = lightBounds{center: mgl32.Vec3{float32(i%50) - 25, float32(i / 50), 0}, radius: 1}
	}

	ls := newLightSelector(4)
	ls.run(bounds, candidates)

	var serial light.Selector
	for i, b := range bounds {
		want, n := serial.Select(candidates, b.center, b.radius)
		require.Equal(t, n, b.count, "entity %d", i)
		assert.Equal(t, want, b.lights, "entity %d", i)
	}
}

func TestLightSelectorRelease(t *testing.T) {
	ls := newLightSelector(4)
	require.NotNil(t, ls.pool)

	ls.release()
	assert.Nil(t, ls.pool)
	ls.release()

	bounds := make([]lightBounds, 200)
	ls.run(bounds, []light.Candidate{{Intensity: 1, Kind: light.KindDirectional}})
	for _, b := range bounds {
		assert.Equal(t, 1, b.count)
	}

	assert.Nil(t, newLightSelector(1).pool)
}

func TestPackLightsTruncates(t *testing.T) {
	s := scene.NewScene()
	maxLights := light.DefaultMaxLights
	for i := range maxLights + 5 {
		s.AddPointLight().Position(mgl32.Vec3{float32(i), 0, 0}).Intensity(float32(i + 1)).Build()
	}
	gpu, candidates := packLights(s, s.Bake(), maxLights, nil, nil)
	require.Len(t, gpu, maxLights)
	require.Len(t, candidates, maxLights)
	last := maxLights - 1
	assert.Equal(t, mgl32.Vec3{float32(last), 0, 0}, candidates[last].Position)
	assert.Equal(t, float32(maxLights), candidates[last].Intensity)
	assert.Equal(t, float32(maxLights), gpu[last].ColorIntensity[3])

	buf, n := light.MarshalLights(gpu, maxLights)
	assert.Equal(t, maxLights, n)
	assert.Len(t, buf, 16*48)
}

func testEntity(t *testing.T, components ...any) *scene.Entity {
	t.Helper()
	s := scene.NewScene()
	meshes := resource.NewTable[model.Mesh]()
	proto := model.Prototype{Mesh: meshes.Insert(model.Mesh{}), Streams: model.Streams(model.StreamPosition, model.StreamNormal)}
	b := s.AddEntity(proto).Position(mgl32.Vec3{1, 2, 3})
	for _, c := range components {
		b.Component(c)
	}
	e, ok := s.Entity(b.Build())
	require.True(t, ok)
	return e
}

func TestSolidEntityLocals(t *testing.T) {
	raw := space.FromPosition(mgl32.Vec3{1, 2, 3}).Raw()

	_, ok := solidEntityLocals(raw, testEntity(t))
	assert.False(t, ok)

	locals, ok := solidEntityLocals(raw, testEntity(t, common.ColorRed))
	require.True(t, ok)
	assert.Equal(t, [4]float32{1, 2, 3, 1}, locals.PosScale)
	assert.Equal(t, [4]float32{1, 0, 0, 1}, locals.Color)
}

func TestPhongEntityLocals(t *testing.T) {
	raw := space.Identity().Raw()

	_, _, ok := phongEntityLocals(raw, testEntity(t, common.ColorWhite))
	assert.False(t, ok)

	locals, sh, ok := phongEntityLocals(raw, testEntity(t, common.ColorWhite, material.Phong(20)))
	require.True(t, ok)
	assert.Equal(t, phongVariantPhong, phongVariant(sh))
	assert.Equal(t, float32(20), locals.Glossiness)
	assert.Equal(t, [4]float32{1, 1, 1, 1}, locals.Color)

	locals, sh, ok = phongEntityLocals(raw, testEntity(t, common.ColorWhite, material.Gouraud(true)))
	require.True(t, ok)
	assert.Equal(t, phongVariantFlat, phongVariant(sh))
	assert.Equal(t, float32(0), locals.Glossiness)
	assert.Equal(t, phongVariantGouraud, phongVariant(material.Gouraud(false)))
}

func TestRealEntityLocals(t *testing.T) {
	raw := space.Identity().Raw()

	_, ok := realEntityLocals(raw, testEntity(t, common.ColorWhite))
	assert.False(t, ok)

	locals, ok := realEntityLocals(raw, testEntity(t, common.ColorWhite, material.NewMaterial(material.WithRoughness(0.5))))
	require.True(t, ok)
	assert.Equal(t, [4]float32{1, 1, 1, 1}, locals.Material.BaseColor)
	assert.Equal(t, [2]float32{1, 0.5}, locals.Material.MetallicRoughness)
}

func TestAmbientAndDefaults(t *testing.T) {
	assert.Equal(t, [4]float32{0.5, 0.5, 0.5, 0}, ambientVec4(Ambient{Color: common.ColorWhite, Intensity: 0.5}))

	cfg := DefaultPhongConfig()
	assert.True(t, cfg.CullBackFaces)
	assert.Equal(t, light.DefaultMaxLights, cfg.MaxLights)
	assert.GreaterOrEqual(t, cfg.Workers, 1)
	assert.Equal(t, float32(0), cfg.Ambient.Intensity)

	assert.Equal(t, RealConfig{CullBackFaces: true, MaxLights: 16}, DefaultRealConfig())
}
