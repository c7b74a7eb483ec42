package sky

import (
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/meeus/v3/solar"

	"github.com/seascape-dev/seascape/vectors"
)

// SunDirection returns the unit vector toward the sun at the given
// instant, for a site at latDeg/lonDeg, expressed in the renderer's
// world frame (+X east, +Y up, +Z north).
func SunDirection(at time.Time, latDeg, lonDeg float64) vectors.Vec3 {
	at = at.UTC()
	jd := julian.TimeToJD(at)

	// Step 1: Apparent RA/Dec of the Sun (in radians)
	ra, dec := solar.ApparentEquatorial(jd)

	// Step 2: Unit vector in ECI (Earth-centered inertial)
	x := dec.Cos() * ra.Cos()
	y := dec.Cos() * ra.Sin()
	z := dec.Sin()

	// Step 3: Rotate ECI → ECEF using GMST
	gmst := sidereal.Apparent0UT(jd)
	cosGMST := gmst.Angle().Cos()
	sinGMST := gmst.Angle().Sin()

	xe := x*cosGMST + y*sinGMST
	ye := -x*sinGMST + y*cosGMST
	ze := z

	// Step 4: Project ECEF onto the local east/north/up frame at the
	// site, which is the scene's world frame.
	lat := latDeg * degToRad
	lon := lonDeg * degToRad
	sinLat, cosLat := sinCos(lat)
	sinLon, cosLon := sinCos(lon)

	east := -xe*sinLon + ye*cosLon
	north := -xe*sinLat*cosLon - ye*sinLat*sinLon + ze*cosLat
	up := xe*cosLat*cosLon + ye*cosLat*sinLon + ze*sinLat

	return vectors.Vec3{X: east, Y: up, Z: north}.Normalize()
}
