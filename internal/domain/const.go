package domain

const (
	// Error codes persisted on sync runs
	ErrorCodeConfiguration     = "configuration"
	ErrorCodeNotAuthenticated  = "not_authenticated"
	ErrorCodeAuthRejected      = "auth_rejected"
	ErrorCodeTransientProvider = "transient_provider"
	ErrorCodeShapeDetection    = "shape_detection"
	ErrorCodeRequiredEndpoint  = "required_endpoint"
	ErrorCodeInternal          = "internal"

	// DEFAULT_PROVIDER is the provider name used when none is configured
	DEFAULT_PROVIDER = "estate-api"

	// Query parameter names understood by the provider
	QUERY_CITY = "city_id"
	QUERY_LANG = "lang"
)
