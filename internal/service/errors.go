package service

import "errors"

var (
	// ErrValidation is returned when a required input is empty or out of
	// range. The underlying validator error is wrapped alongside it.
	ErrValidation = errors.New("invalid data provided")

	// ErrSiteNotFound is returned when a search names a site with no
	// stored records.
	ErrSiteNotFound = errors.New("site not found")

	// ErrAuth is returned when the passphrase does not match, or the master
	// config cannot be read well enough to check it.
	ErrAuth = errors.New("authentication failed")

	// ErrAlreadyInitialized is returned by Initialize when a master config
	// already exists.
	ErrAlreadyInitialized = errors.New("vault is already initialized")

	// ErrNotInitialized is returned by Unlock and Rotate when no master
	// config exists yet. It is always joined with ErrAuth.
	ErrNotInitialized = errors.New("vault is not initialized")
)

// ErrVersionIsNotSpecified is returned by NewAppInfoService when the build
// carries no version string.
var ErrVersionIsNotSpecified = errors.New("app version is not specified")
