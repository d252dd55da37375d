package common

// AuthorizationHeaderName is the HTTP header used to carry the bearer token
// on outbound API requests.
const AuthorizationHeaderName = "Authorization"

// RequestIDHeaderName carries a per-request correlation id so client-side
// diagnostics can be matched against backend logs.
const RequestIDHeaderName = "X-Request-Id"
