package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// session token on outbound requests.
const AccessTokenHeaderName = "access_token"

// BearerPrefix prefixes the session token in the HTTP Authorization header.
const BearerPrefix = "Bearer "
