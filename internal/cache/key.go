package cache

import (
	"fmt"
	"math"
	"strconv"
)

// Key identifies one quantized coordinate cell. Lat and Lon are fixed-point
// decimal strings, so two coordinate pairs that round to the same cell always
// produce equal keys regardless of the raw float bits that arrived.
type Key struct {
	Lat string
	Lon string
}

// Quantizer collapses raw coordinates onto a grid at a fixed decimal
// precision. Weather data resolution is far coarser than raw GPS floats, so
// near-duplicate queries (40.71279 vs 40.71281) should share a cache cell.
type Quantizer struct {
	precision int
}

// NewQuantizer builds a quantizer rounding to precision decimal digits.
func NewQuantizer(precision int) (Quantizer, error) {
	if precision < 0 {
		return Quantizer{}, fmt.Errorf("%w: negative coordinate precision %d", ErrInvalidConfig, precision)
	}
	return Quantizer{precision: precision}, nil
}

// Quantize rounds each coordinate half away from zero at the configured
// precision. Out-of-range or NaN input is rejected rather than clamped.
func (q Quantizer) Quantize(lat, lon float64) (Key, error) {
	if math.IsNaN(lat) || math.IsNaN(lon) || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return Key{}, fmt.Errorf("%w: lat=%v lon=%v", ErrInvalidCoordinate, lat, lon)
	}
	return Key{
		Lat: quantize(lat, q.precision),
		Lon: quantize(lon, q.precision),
	}, nil
}

func quantize(v float64, precision int) string {
	scale := math.Pow(10, float64(precision))
	r := math.Round(v*scale) / scale
	if r == 0 {
		// Collapse -0 so values straddling zero share a cell.
		r = 0
	}
	return strconv.FormatFloat(r, 'f', precision, 64)
}
