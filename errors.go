package dbscan

import (
	"math"

	"github.com/cockroachdb/errors"
)

// Sentinel errors. Every error returned by this package wraps one of these;
// test for them with errors.Is.
var (
	// ErrInvalidParameter reports a config value outside its valid range,
	// such as Eps <= 0 or MinPts <= 0.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrDimensionMismatch reports points with differing coordinate counts
	// or a distance matrix whose size does not match the point count.
	ErrDimensionMismatch = errors.New("dimension mismatch")
)

func invalidParameterf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidParameter, "dbscan: "+format, args...)
}

// checkPoints verifies every point has the dimensionality of the first and
// that every coordinate is finite.
func checkPoints(data [][]float64) (int, error) {
	if len(data) == 0 {
		return 0, nil
	}
	dims := len(data[0])
	for i, row := range data {
		if len(row) != dims {
			err := errors.Wrapf(ErrDimensionMismatch, "dbscan: point %d has %d coordinates, point 0 has %d", i, len(row), dims)
			return 0, errors.WithHint(err, "all points must share the same dimensionality")
		}
		for j, x := range row {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				err := invalidParameterf("point %d coordinate %d is %v", i, j, x)
				return 0, errors.WithHint(err, "coordinates must be finite; drop or impute NaN and Inf values before clustering")
			}
		}
	}
	return dims, nil
}
