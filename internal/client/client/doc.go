// Package client talks to the OTPKeeper server.
//
// GRPCClient manages one connection, injects the access token into every
// call through a unary interceptor, refreshes an expired token once, and
// maps gRPC status codes to the sentinel errors in internal/common. It also
// implements session.RecordStore, so a signed-in client can back a
// Session directly.
//
// The client only ever sends envelopes and non-secret metadata; seeds and
// passphrases never cross the wire.
package client
