package proto

import "time"

type PingRequest struct{}

type PingResponse struct {
	Status string
}

type RegisterUserRequest struct {
	Username string
	Salt     []byte
	Verifier []byte
}

type RegisterUserResponse struct {
	Username string
}

type GetSaltRequest struct {
	Username string
}

type GetSaltResponse struct {
	Salt []byte
}

type LoginRequest struct {
	Username          string
	VerifierCandidate []byte
}

type LoginResponse struct {
	AccessToken  string
	RefreshToken string
}

type RefreshTokenRequest struct {
	RefreshToken string
}

type RefreshTokenResponse struct {
	AccessToken  string
	RefreshToken string
}

// Account is one stored record. Envelope is opaque to the server.
type Account struct {
	ID        string
	Name      string
	Issuer    string
	IconSlug  string
	Envelope  string
	Digits    int
	Period    int
	CreatedAt time.Time
}

type ListAccountsRequest struct{}

type ListAccountsResponse struct {
	Accounts []*Account
}

type InsertAccountRequest struct {
	Name     string
	Issuer   string
	IconSlug string
	Envelope string
	Digits   int
	Period   int
}

type InsertAccountResponse struct {
	Account *Account
}

// UpdateAccountRequest carries the non-secret fields only; the envelope of
// a record never changes after insert.
type UpdateAccountRequest struct {
	ID       string
	Name     string
	Issuer   string
	IconSlug string
}

type UpdateAccountResponse struct{}

type DeleteAccountRequest struct {
	ID string
}

type DeleteAccountResponse struct{}

type GetIconURLRequest struct {
	Slug string
}

type GetIconURLResponse struct {
	URL string
}
