package hups

import (
	"fmt"
	"strconv"
	"strings"
)

// Describe returns the number of points and the dimension of ps, printing
// "infinite" for the Infinite sentinel.
func Describe(ps PointSet) string {
	return "Number of points: " + countString(ps.NumPoints()) +
		"\nPoint set dimension: " + countString(ps.Dimension())
}

// FormatPoints formats the first n points of ps in their first d
// coordinates, one point per line. n and d are clipped to the point set;
// a negative value requests all of them, which fails with ErrInfinite when
// that cardinality is infinite.
func FormatPoints(ps PointSet, n, d int) (string, error) {
	return formatWith(ps, n, d, func(sb *strings.Builder, it Iterator, d int) error {
		for j := 0; j < d; j++ {
			x, err := it.NextCoordinate()
			if err != nil {
				return err
			}
			sb.WriteString("  ")
			sb.WriteString(strconv.FormatFloat(x, 'g', -1, 64))
		}
		return nil
	})
}

// FormatPointsBase is like FormatPoints but writes each coordinate in base b.
func FormatPointsBase(ps PointSet, n, d, b int) (string, error) {
	if b < 2 || b > 36 {
		return "", argError("FormatPointsBase", "b", b, "must be in [2, 36]")
	}
	acc := 10
	switch b {
	case 2:
		acc = 20
	case 3:
		acc = 13
	}
	width := acc + 3
	return formatWith(ps, n, d, func(sb *strings.Builder, it Iterator, d int) error {
		for j := 0; j < d; j++ {
			x, err := it.NextCoordinate()
			if err != nil {
				return err
			}
			sb.WriteString("  ")
			fmt.Fprintf(sb, "%-*s", width, FormatBase(x, b, acc))
		}
		return nil
	})
}

// FormatPointsNumbered formats points as "Point i  =  (x0, x1, ...)".
func FormatPointsNumbered(ps PointSet, n, d int) (string, error) {
	n, d, err := clipCounts(ps, n, d)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString(Describe(ps))
	sb.WriteString("\n\nPoints of the point set:")
	it := ps.Iterator()
	for i := 0; i < n; i++ {
		fmt.Fprintf(&sb, "\nPoint %d  =  (", i)
		for j := 0; j < d; j++ {
			x, err := it.NextCoordinate()
			if err != nil {
				return "", err
			}
			if j > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(strconv.FormatFloat(x, 'g', -1, 64))
		}
		sb.WriteString(")")
		it.ResetToNextPoint()
	}
	return sb.String(), nil
}

// FormatBase writes x in [0, 1) as a base-b fraction with acc digits.
func FormatBase(x float64, b, acc int) string {
	var sb strings.Builder
	sb.WriteString("0.")
	for k := 0; k < acc; k++ {
		x *= float64(b)
		digit := int(x)
		x -= float64(digit)
		sb.WriteString(strconv.FormatInt(int64(digit), b))
	}
	return sb.String()
}

func formatWith(ps PointSet, n, d int, row func(*strings.Builder, Iterator, int) error) (string, error) {
	n, d, err := clipCounts(ps, n, d)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString(Describe(ps))
	sb.WriteString("\n\nPoints of the point set:\n")
	it := ps.Iterator()
	for i := 0; i < n; i++ {
		if err := row(&sb, it, d); err != nil {
			return "", err
		}
		sb.WriteString("\n")
		it.ResetToNextPoint()
	}
	return sb.String(), nil
}

func clipCounts(ps PointSet, n, d int) (int, int, error) {
	if n < 0 {
		if ps.NumPoints() == Infinite {
			return 0, 0, fmt.Errorf("number of points: %w", ErrInfinite)
		}
		n = ps.NumPoints()
	}
	if d < 0 {
		if ps.Dimension() == Infinite {
			return 0, 0, fmt.Errorf("dimension: %w", ErrInfinite)
		}
		d = ps.Dimension()
	}
	return min(n, ps.NumPoints()), min(d, ps.Dimension()), nil
}
