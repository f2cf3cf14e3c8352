// Package domain defines domain-level errors for the solve feature.
package domain

import "errors"

// Errors returned by the solve pipeline. The transport layer maps them to HTTP
// status codes with errors.Is.
var (
	// ErrMissingFile indicates that the request carried no "image" part.
	ErrMissingFile = errors.New("no image file provided")

	// ErrEmptyFilename indicates that an "image" part was sent without a filename.
	ErrEmptyFilename = errors.New("no file selected")

	// ErrImageTooLarge indicates that the upload exceeds the accepted size.
	ErrImageTooLarge = errors.New("image size exceeds maximum")

	// ErrNoFormulaFound indicates that recognition finished but found no formula.
	ErrNoFormulaFound = errors.New("could not find a formula in the image")

	// ErrCollaborator wraps every failure of the recognition or generation service
	// and of the temporary upload storage.
	ErrCollaborator = errors.New("an internal server error occurred")
)

// Error kinds used in logs, metrics and attempt records.
const (
	KindMissingFile    = "missing_file"
	KindEmptyFilename  = "empty_filename"
	KindImageTooLarge  = "image_too_large"
	KindNoFormulaFound = "no_formula_found"
	KindInternal       = "internal_error"
)

// KindOf returns a stable label for err. Unknown errors are internal.
func KindOf(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingFile):
		return KindMissingFile
	case errors.Is(err, ErrEmptyFilename):
		return KindEmptyFilename
	case errors.Is(err, ErrImageTooLarge):
		return KindImageTooLarge
	case errors.Is(err, ErrNoFormulaFound):
		return KindNoFormulaFound
	default:
		return KindInternal
	}
}

// IsValidation reports whether err is caused by the client's input rather than a
// collaborator.
func IsValidation(err error) bool {
	switch KindOf(err) {
	case KindMissingFile, KindEmptyFilename, KindImageTooLarge, KindNoFormulaFound:
		return true
	}
	return false
}
