// Package scene assembles the raymarched candidate surfaces of a frame
// and classifies, per ray, which one is visible.
package scene

import (
	"math"

	"github.com/seascape-dev/seascape/march"
	"github.com/seascape-dev/seascape/materials"
	"github.com/seascape-dev/seascape/ocean"
	"github.com/seascape-dev/seascape/sdf"
	"github.com/seascape-dev/seascape/sky"
	"github.com/seascape-dev/seascape/terrain"
	"github.com/seascape-dev/seascape/vectors"
)

// SurfaceKind tags the winning candidate of a classification. Shading
// dispatch is an explicit kind→shader map; kinds carry no numeric
// convention beyond identity.
type SurfaceKind int

const (
	KindNone SurfaceKind = iota
	KindWater
	KindTerrain
	KindObject
)

func (k SurfaceKind) String() string {
	switch k {
	case KindWater:
		return "water"
	case KindTerrain:
		return "terrain"
	case KindObject:
		return "object"
	default:
		return "none"
	}
}

// SurfaceHit is the classified result for one ray: the winning
// candidate with its resolved surface detail, annotated with the hit's
// relationship to the water surface. The water fields hold neutral
// defaults (zero position, up normal, dry) when no interaction applies.
type SurfaceHit struct {
	Kind     SurfaceKind
	Hit      bool
	Distance float64
	Position vectors.Vec3
	Normal   vectors.Vec3
	Gradient vectors.Vec2 // local wave slope; meaningful for water hits

	Submerged    bool
	WaterSurface vectors.Vec3
	WaterNormal  vectors.Vec3
	WaterDepth   float64
	IsWet        bool
}

const (
	// nearWaterSkip: when water is hit this close to the ray origin it
	// necessarily occludes the other candidates, which are then not
	// traced at all.
	nearWaterSkip = 0.75

	// wetBand is the vertical span above the waterline treated as wet.
	wetBand = 0.4

	terrainNormalEps = 0.05
	objectNormalEps  = 1e-3
)

// Scene owns the candidate surfaces, their materials and the sky.
// Built once per frame; read-only during rendering.
type Scene struct {
	Waves  ocean.Spectrum
	Floor  *terrain.Terrain
	Object sdf.Field // optional prop, nil when absent

	Water  materials.Water
	Ground materials.Terrain
	Prop   materials.Object

	Sky *sky.Model

	MaxDistance float64

	waveField  sdf.Field
	floorField sdf.Field
	waveCfg    march.Config
	terrainCfg march.Config
	objectCfg  march.Config
}

// New wires a scene from its parts. object may be nil.
func New(waves ocean.Spectrum, floor *terrain.Terrain, object sdf.Field, skyModel *sky.Model) *Scene {
	s := &Scene{
		Waves:       waves,
		Floor:       floor,
		Object:      object,
		Water:       materials.DeepOcean(),
		Ground:      materials.Sand(),
		Prop:        materials.MatteGray(),
		Sky:         skyModel,
		MaxDistance: 200,
		waveCfg:     march.WaveConfig(),
		terrainCfg:  march.TerrainConfig(),
		objectCfg:   march.PrimitiveConfig(),
	}
	s.waveField = waves.Field()
	s.floorField = floor.Field()
	return s
}

// TraceWater traces only the water candidate.
func (s *Scene) TraceWater(ray march.Ray, t float64) march.Hit {
	return march.Trace(ray, s.waveField, t, s.MaxDistance, s.waveCfg)
}

// TraceFloor traces only the terrain candidate. The water shader uses
// this for its refracted through-water path.
func (s *Scene) TraceFloor(ray march.Ray, t float64) march.Hit {
	return march.Trace(ray, s.floorField, t, s.MaxDistance, s.terrainCfg)
}

// TraceObject traces only the prop candidate.
func (s *Scene) TraceObject(ray march.Ray, t float64) march.Hit {
	if s.Object == nil {
		return march.Hit{Valid: true, Distance: s.MaxDistance}
	}
	return march.Trace(ray, s.Object, t, s.MaxDistance, s.objectCfg)
}

// Trace classifies the visible surface along ray at time t. Candidates
// compete on raw ray distance; a terrain or object hit below the local
// waterline stays in the running and is marked submerged instead of
// being discarded.
func (s *Scene) Trace(ray march.Ray, t float64) SurfaceHit {
	water := s.TraceWater(ray, t)

	best := SurfaceHit{
		Kind:        KindNone,
		Distance:    s.MaxDistance,
		WaterNormal: vectors.Up(),
	}
	if usable(water) {
		best = SurfaceHit{Kind: KindWater, Hit: true, Distance: water.Distance, Position: water.Position}
	}

	// A very near water hit occludes everything else; skip the other
	// marches entirely.
	if !(usable(water) && water.Distance < nearWaterSkip) {
		if floor := s.TraceFloor(ray, t); usable(floor) && floor.Distance < best.Distance {
			best = SurfaceHit{Kind: KindTerrain, Hit: true, Distance: floor.Distance, Position: floor.Position}
		}
		if s.Object != nil {
			if obj := s.TraceObject(ray, t); usable(obj) && obj.Distance < best.Distance {
				best = SurfaceHit{Kind: KindObject, Hit: true, Distance: obj.Distance, Position: obj.Position}
			}
		}
	}

	s.resolve(&best, t)
	return best
}

// resolve fills in the surface detail (normal, gradient, water
// interaction) for the winning candidate only.
func (s *Scene) resolve(h *SurfaceHit, t float64) {
	switch h.Kind {
	case KindWater:
		xz := h.Position.XZ()
		h.Normal = s.Waves.Normal(xz, t)
		h.Gradient = s.Waves.Gradient(xz, t)
		h.WaterSurface = h.Position
		h.WaterNormal = h.Normal
	case KindTerrain:
		h.Normal = sdf.Normal(s.floorField, h.Position, t, terrainNormalEps)
		s.annotateWater(h, t)
	case KindObject:
		h.Normal = sdf.Normal(s.Object, h.Position, t, objectNormalEps)
		s.annotateWater(h, t)
	default:
		h.Normal = vectors.Up()
		h.WaterNormal = vectors.Up()
	}
}

// annotateWater computes the hit's relationship to the local water
// surface: depth below the waterline and wetness near it.
func (s *Scene) annotateWater(h *SurfaceHit, t float64) {
	xz := h.Position.XZ()
	wh := s.Waves.Height(xz, t)

	h.WaterSurface = vectors.Vec3{X: h.Position.X, Y: wh, Z: h.Position.Z}
	h.WaterNormal = s.Waves.Normal(xz, t)

	if depth := wh - h.Position.Y; depth > 0 {
		h.WaterDepth = depth
		h.Submerged = true
		h.IsWet = true
	} else if h.Position.Y-wh < wetBand {
		h.IsWet = true
	}
}

// ResolveFloor promotes a coarse floor trace into a classified terrain
// hit. The water shader uses this to shade its refracted through-water
// path without re-running classification.
func (s *Scene) ResolveFloor(h march.Hit, t float64) SurfaceHit {
	out := SurfaceHit{
		Kind:        KindTerrain,
		Hit:         h.Hit && h.Valid,
		Distance:    h.Distance,
		Position:    h.Position,
		WaterNormal: vectors.Up(),
	}
	if out.Hit {
		s.resolve(&out, t)
	}
	return out
}

// WaterHeight exposes the local waterline for shading.
func (s *Scene) WaterHeight(xz vectors.Vec2, t float64) float64 {
	return s.Waves.Height(xz, t)
}

func usable(h march.Hit) bool {
	return h.Hit && h.Valid && !math.IsNaN(h.Distance)
}
