package garside

import "errors"

// Errors
var (
	ErrUnmarshal           = errors.New("unmarshal failed")
	ErrBadCatalogParam     = errors.New("bad catalog param")
	ErrCatalogVersion      = errors.New("catalog version is incompatible")
	ErrClassNotFound       = errors.New("conjugacy class not found")
	ErrReadOnly            = errors.New("catalog is in read-only mode")
	ErrSummitTooLarge      = errors.New("summit set exceeds catalog limit")
	ErrBadIndex            = errors.New("bad braid index")
	ErrBadGenerator        = errors.New("bad braid generator")
	ErrBadBandGenerator    = errors.New("bad band generator")
	ErrUnknownPresentation = errors.New("unknown presentation")
	ErrBadWordExpr         = errors.New("bad braid word expression")
	ErrIndexMismatch       = errors.New("braid index mismatch")
	ErrIntegrity           = errors.New("summit set integrity failure")
)
