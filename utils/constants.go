package utils

// Application constants
const (
	// Application name
	AppName = "EventSphere"

	// Default port
	DefaultPort = "8080"

	// Default currency for gateway orders (smallest unit: paise)
	DefaultCurrency = "INR"

	// Session cookie name
	SessionCookieName = "eventsphere"

	// Admin session lifetime in seconds (24 hours)
	SessionMaxAge = 24 * 60 * 60
)
