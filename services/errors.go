package services

import "errors"

var (
	// ErrNotFound is the normal control-flow outcome for an unknown id.
	ErrNotFound = errors.New("product not found")

	// ErrDuplicateSKU reports a storage-layer uniqueness violation.
	ErrDuplicateSKU = errors.New("sku already exists")

	// ErrMirrorNotFound means the mirror catalog has no record whose
	// metadata sku matches the stored SKU.
	ErrMirrorNotFound = errors.New("no mirror record found for sku")

	// ErrMirrorAmbiguous means the sku search matched more than one mirror
	// record. The mirror enforces no uniqueness, so this can happen after
	// out-of-band writes; the operation is rejected rather than guessing.
	ErrMirrorAmbiguous = errors.New("multiple mirror records found for sku")
)

// ValidationError carries the field-level detail returned to the caller as a
// 400. Never retried.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string {
	return e.Detail
}
