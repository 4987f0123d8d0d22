package errs

import "errors"

// Domain-specific sentinel errors for the manifest build & scan usecases
var (
	// Manifest errors
	ErrManifestNotFound  = errors.New("manifest not found")
	ErrManifestClosed    = errors.New("manifest is not editable")
	ErrManifestEmpty     = errors.New("manifest has no items attached")
	ErrIllegalTransition = errors.New("illegal manifest status transition")

	// Shipment errors
	ErrShipmentNotFound = errors.New("shipment not found")

	// Scan errors
	ErrScanInFlight    = errors.New("a scan is already in flight")
	ErrRequestCanceled = errors.New("request cancelled")

	// Queue errors
	ErrSyncInProgress = errors.New("sync already in progress")
	ErrOffline        = errors.New("client is offline")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
