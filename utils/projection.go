package utils

import (
	"fmt"
	"math"
)

// Lambert-93 (EPSG:2154) <-> WGS84 (EPSG:4326) conversion.
//
// Lambert Conformal Conic, 2 standard parallels, on the GRS80 ellipsoid with
// the official EPSG:2154 parameters. Latitude is always the first output
// value regardless of the underlying math's axis convention, so handlers can
// hand the result straight to the front-end.

// ProjectionError reports a non-finite input pair or a transform that failed
// to converge.
type ProjectionError struct {
	Msg string
}

func (e *ProjectionError) Error() string {
	return e.Msg
}

const (
	grs80A = 6378137.0           // semi-major axis in meters
	grs80F = 1.0 / 298.257222101 // flattening

	lambertFalseEasting  = 700000.0
	lambertFalseNorthing = 6600000.0

	degToRad = math.Pi / 180.0
	radToDeg = 180.0 / math.Pi
)

var (
	grs80E = math.Sqrt(2*grs80F - grs80F*grs80F)

	lambertPhi0    = 46.5 * degToRad // latitude of origin
	lambertPhi1    = 44.0 * degToRad // first standard parallel
	lambertPhi2    = 49.0 * degToRad // second standard parallel
	lambertLambda0 = 3.0 * degToRad  // central meridian

	lambertN    float64
	lambertF    float64
	lambertRho0 float64
)

func init() {
	m1 := ellipsoidM(lambertPhi1)
	m2 := ellipsoidM(lambertPhi2)
	t0 := ellipsoidT(lambertPhi0)
	t1 := ellipsoidT(lambertPhi1)
	t2 := ellipsoidT(lambertPhi2)

	lambertN = (math.Log(m1) - math.Log(m2)) / (math.Log(t1) - math.Log(t2))
	lambertF = m1 / (lambertN * math.Pow(t1, lambertN))
	lambertRho0 = grs80A * lambertF * math.Pow(t0, lambertN)
}

func ellipsoidM(phi float64) float64 {
	s := math.Sin(phi)
	return math.Cos(phi) / math.Sqrt(1-grs80E*grs80E*s*s)
}

func ellipsoidT(phi float64) float64 {
	es := grs80E * math.Sin(phi)
	return math.Tan(math.Pi/4-phi/2) / math.Pow((1-es)/(1+es), grs80E/2)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ToWGS84 converts a Lambert-93 point (meters) to WGS84 decimal degrees,
// latitude first.
func ToWGS84(x, y float64) (lat, lon float64, err error) {
	if !isFinite(x) || !isFinite(y) {
		return 0, 0, &ProjectionError{Msg: fmt.Sprintf("non-finite Lambert-93 input (%v, %v)", x, y)}
	}

	dx := x - lambertFalseEasting
	dy := lambertRho0 - (y - lambertFalseNorthing)

	rho := math.Sqrt(dx*dx + dy*dy)
	if lambertN < 0 {
		rho = -rho
	}
	theta := math.Atan2(dx, dy)

	lambda := theta/lambertN + lambertLambda0
	t := math.Pow(rho/(grs80A*lambertF), 1/lambertN)

	// Iterative inverse of the isometric latitude.
	phi := math.Pi/2 - 2*math.Atan(t)
	for i := 0; i < 15; i++ {
		es := grs80E * math.Sin(phi)
		next := math.Pi/2 - 2*math.Atan(t*math.Pow((1-es)/(1+es), grs80E/2))
		if math.Abs(next-phi) < 1e-12 {
			phi = next
			break
		}
		phi = next
	}

	lat = phi * radToDeg
	lon = lambda * radToDeg
	if !isFinite(lat) || !isFinite(lon) {
		return 0, 0, &ProjectionError{Msg: fmt.Sprintf("transform did not converge for (%v, %v)", x, y)}
	}
	return lat, lon, nil
}

// FromWGS84 converts a WGS84 point (decimal degrees, latitude first) to
// Lambert-93 meters. It is the exact inverse of ToWGS84.
func FromWGS84(lat, lon float64) (x, y float64, err error) {
	if !isFinite(lat) || !isFinite(lon) {
		return 0, 0, &ProjectionError{Msg: fmt.Sprintf("non-finite WGS84 input (%v, %v)", lat, lon)}
	}

	phi := lat * degToRad
	lambda := lon * degToRad

	t := ellipsoidT(phi)
	rho := grs80A * lambertF * math.Pow(t, lambertN)
	theta := lambertN * (lambda - lambertLambda0)

	x = lambertFalseEasting + rho*math.Sin(theta)
	y = lambertFalseNorthing + lambertRho0 - rho*math.Cos(theta)
	if !isFinite(x) || !isFinite(y) {
		return 0, 0, &ProjectionError{Msg: fmt.Sprintf("transform did not converge for (%v, %v)", lat, lon)}
	}
	return x, y, nil
}
