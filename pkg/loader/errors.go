package loader

import "errors"

var (
	ErrLoaderMisconfigured = errors.New("loader: supported locale has no supplier")
	ErrFallbackCycle       = errors.New("loader: fallback chain would form a cycle")
	ErrUnsupportedLocale   = errors.New("loader: unsupported locale")
	ErrInvalidAsset        = errors.New("loader: invalid message asset")
	ErrSupplierPanic       = errors.New("loader: supplier panicked")
)
