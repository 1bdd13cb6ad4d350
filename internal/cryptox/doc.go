// Package cryptox holds the cryptographic building blocks of OTPKeeper.
//
// Two unrelated keys live here:
//
//   - the vault key, derived per record from the account email with
//     PBKDF2-HMAC-SHA256 and used with AES-256-GCM to seal one TOTP seed
//     into an Envelope (see Cipher);
//   - the master key, derived from the login password with argon2id and
//     reduced to a SHA-256 verifier that the server compares on login.
//
// The master key never encrypts anything, and the vault key never leaves
// the process.
//
// The email is a low-entropy input. Anyone holding both an Envelope and the
// owner's address can search the PBKDF2 space offline; this is a known
// property of the vault format.
package cryptox
