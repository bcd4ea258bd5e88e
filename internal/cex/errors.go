package cex

import (
	"errors"
	"fmt"
)

// StructuralCode categorizes structural errors.
type StructuralCode string

const (
	// CodeEmptyPit: a wedge with no arms.
	CodeEmptyPit StructuralCode = "EMPTY_PIT"

	// CodeBadWeight: a declared weight outside Z>=0 and Omega
	// (integer-sum rule).
	CodeBadWeight StructuralCode = "BAD_WEIGHT"

	// CodeWeightBound: a finite weight exceeding its tip's capacity
	// (scope-bound rule).
	CodeWeightBound StructuralCode = "WEIGHT_BOUND"

	// CodeNonzeroProduct: pre-weight and post-weight of one dot under
	// one action are both movable (nonzero-product rule).
	CodeNonzeroProduct StructuralCode = "NONZERO_PRODUCT"

	// CodeIncoherent: the arming relation is not symmetric.
	CodeIncoherent StructuralCode = "INCOHERENT"

	// CodeUnknownDot: a wedge or marking refers outside the domain.
	CodeUnknownDot StructuralCode = "UNKNOWN_DOT"

	// CodeMarkingBound: a declared marking outside [0, capacity].
	CodeMarkingBound StructuralCode = "MARKING_BOUND"
)

// StructuralError reports a malformed wedge or weighting. It is
// recoverable per input file: batch validation reports it and moves on
// unless aborting was requested.
type StructuralError struct {
	Code      StructuralCode
	Structure string
	Detail    string
}

func (e *StructuralError) Error() string {
	if e.Structure != "" {
		return fmt.Sprintf("%s: %s (structure=%s)", e.Code, e.Detail, e.Structure)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Detail)
}

// NewStructuralError builds a StructuralError for a named structure.
func NewStructuralError(code StructuralCode, structure, format string, args ...any) *StructuralError {
	return &StructuralError{Code: code, Structure: structure, Detail: fmt.Sprintf(format, args...)}
}

// IsStructural reports whether err is (or wraps) a StructuralError.
func IsStructural(err error) bool {
	var se *StructuralError
	return errors.As(err, &se)
}
