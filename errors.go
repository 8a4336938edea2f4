package salesman

import (
	"errors"
	"fmt"
)

var (
	// ErrCoordinateSpaceExhausted is returned when the configured bounds
	// cannot hold the requested number of distinct cities.
	ErrCoordinateSpaceExhausted = errors.New("salesman: coordinate space too small for requested city count")
	ErrEmptyCatalog             = errors.New("salesman: catalog has no cities")
	ErrEmptyBreedingPool        = errors.New("salesman: nothing to breed from, pool_keep_best + pool_add_random is 0")
	ErrUnknownParameter         = errors.New("salesman: unknown parameter")
)

// DataFormatError reports persisted tour or catalog data that does not
// describe a valid duplicate-free list of [x, y] pairs.
type DataFormatError struct {
	Source string
	Index  int
	Reason string
	Err    error
}

func (e *DataFormatError) Error() string {
	msg := fmt.Sprintf("salesman: bad data in %s", e.Source)
	if e.Index >= 0 {
		msg = fmt.Sprintf("%s at entry %d", msg, e.Index)
	}
	msg = fmt.Sprintf("%s: %s", msg, e.Reason)
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *DataFormatError) Unwrap() error {
	return e.Err
}
