package handler

const (
	errInternalServer      = "Internal server error"
	errUserNotFound        = "User not found"
	errInvalidPassword     = "Invalid password"
	errEmailTaken          = "Email already registered"
	errCityNameRequired    = "City name is required"
	errCityExists          = "City already exists"
	errCityNotFound        = "City not found"
	errUnknownCity         = "Unknown city"
	errProviderUnavailable = "Weather provider unavailable"
)
