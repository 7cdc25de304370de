package errors

import "net/http"

var (
	ErrLocationNotFound = New(
		"LOCATION_NOT_FOUND",
		"Location could not be resolved",
		http.StatusNotFound,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrMalformedPair = New(
		"MALFORMED_PAIR",
		"Location pair has neither label nor point",
		http.StatusBadRequest,
	)

	ErrRouteBatchEmpty = New(
		"ROUTE_BATCH_EMPTY",
		"No route could be resolved, check location inputs",
		http.StatusUnprocessableEntity,
	)

	ErrJobNotFound = New(
		"JOB_NOT_FOUND",
		"Job result not available yet",
		http.StatusNotFound,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
