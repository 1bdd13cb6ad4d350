// Package common contains shared constants and sentinel errors used across
// OTPKeeper components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// DefaultIconSlug is the icon reference used when nothing better is known.
const DefaultIconSlug = "default"
