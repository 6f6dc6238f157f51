package niederreiter

import (
	"github.com/hupe1980/hups"
)

// Sequence is the digital net formed by the first 2^k points of the
// Niederreiter sequence in base 2, with w output digits.
type Sequence struct {
	*hups.DigitalNetBase2
}

// New returns the first 2^k points of the Niederreiter sequence in dim
// dimensions with w output digits. It requires 1 <= dim <= MaxDim and
// k <= w <= 31 with k < 31. The generator matrices are w x k.
func New(k, w, dim int) (*Sequence, error) {
	const op = "niederreiter.New"
	if dim < 1 || dim > MaxDim {
		return nil, &hups.ArgumentError{Op: op, Param: "dim", Value: dim, Reason: "must be in [1, 318]"}
	}
	if w < 1 || w > hups.MaxBits {
		return nil, &hups.ArgumentError{Op: op, Param: "w", Value: w, Reason: "must have k <= w <= 31"}
	}
	genMat, err := generatorMatrix(op, k, w, dim)
	if err != nil {
		return nil, err
	}
	net, err := hups.NewDigitalNetBase2(genMat, dim, k, w, w)
	if err != nil {
		return nil, err
	}
	return &Sequence{DigitalNetBase2: net}, nil
}

// ExtendSequence rebuilds the sequence in place for 2^k points, keeping the
// dimension, the output digits and any random shift.
func (s *Sequence) ExtendSequence(k int) error {
	genMat, err := generatorMatrix("niederreiter.ExtendSequence", k, s.OutDigits(), s.Dimension())
	if err != nil {
		return err
	}
	return s.Rebuild(genMat, k, s.OutDigits())
}

// String describes the sequence.
func (s *Sequence) String() string {
	return "Niederreiter sequence:\n" + s.DigitalNetBase2.String()
}

func generatorMatrix(op string, k, w, dim int) ([]uint32, error) {
	if k < 0 || k >= hups.MaxBits || k > w {
		return nil, &hups.ArgumentError{Op: op, Param: "k", Value: k, Reason: "must have k < 31 and k <= w"}
	}
	tbl, err := Table()
	if err != nil {
		return nil, err
	}

	// Table columns keep row 0 at bit 29; generator columns keep it at
	// bit w-1.
	genMat := make([]uint32, dim*k)
	for j := 0; j < dim; j++ {
		for c := 0; c < k; c++ {
			genMat[j*k+c] = tbl[j*NumCols+c] << 1 >> (hups.MaxBits - w)
		}
	}
	return genMat, nil
}
