package api

import "errors"

var (
	// ErrFetch indicates a data request failed at the network layer or
	// returned a non-success status.
	ErrFetch = errors.New("backend request failed")

	// ErrMalformedResponse indicates the backend returned a body that
	// could not be parsed or was missing expected fields.
	ErrMalformedResponse = errors.New("malformed backend response")

	// ErrFileTooLarge indicates the PDF exceeds the client-side upload
	// size limit.
	ErrFileTooLarge = errors.New("pdf exceeds upload size limit")
)
