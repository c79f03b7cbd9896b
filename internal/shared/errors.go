package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Authentication errors
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrAuthFailed       = fmt.Errorf("authentication failed")

	// API and service errors
	ErrAPIRequest       = fmt.Errorf("API request failed")
	ErrPlaylistNotFound = fmt.Errorf("playlist not found")
	ErrTrackNotFound    = fmt.Errorf("track not found")

	// Input and import errors
	ErrInvalidInput       = fmt.Errorf("invalid input")
	ErrEmptyInput         = fmt.Errorf("empty input")
	ErrUnsupportedURL     = fmt.Errorf("unsupported URL")
	ErrNoTracksExtracted  = fmt.Errorf("no tracks extracted")
	ErrUnrecognizedImport = fmt.Errorf("input is not a recognized URL or track list")
)
