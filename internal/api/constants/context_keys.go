package constants

// Context keys used to pass authenticated identity through the request chain
const (
	ContextKeyUser      = "user"
	ContextKeyUserID    = "userID"
	ContextKeyAPIKey    = "apiKey"
	ContextKeyRequestID = "RequestID"
)
