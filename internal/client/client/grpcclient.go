package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/otpkeeper/internal/client/models"
	"github.com/dmitrijs2005/otpkeeper/internal/common"
	pb "github.com/dmitrijs2005/otpkeeper/internal/proto"
)

const saltTimeout = 12 * time.Second

type GRPCClient struct {
	endpointURL string
	dialOpts    []grpc.DialOption
	conn        *grpc.ClientConn
	client      pb.OTPKeeperServiceClient

	mu           sync.Mutex
	accessToken  string
	refreshToken string

	// serializes token refreshes so concurrent expired calls rotate once
	refreshMu sync.Mutex
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) tokens() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken, s.refreshToken
}

func (s *GRPCClient) setTokens(access, refresh string) {
	s.mu.Lock()
	s.accessToken, s.refreshToken = access, refresh
	s.mu.Unlock()
}

func isTokenExpired(err error) bool {
	st, ok := status.FromError(err)
	return ok && st.Code() == codes.Unauthenticated && st.Message() == common.ErrTokenExpired.Error()
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	access, _ := s.tokens()

	err := invoker(withAccessToken(ctx, access), method, req, reply, cc, opts...)
	if err == nil || method == pb.MethodRefreshToken || !isTokenExpired(err) {
		return err
	}

	access, err = s.refresh(ctx, access, err)
	if err != nil {
		return err
	}
	return invoker(withAccessToken(ctx, access), method, req, reply, cc, opts...)
}

// refresh rotates the token pair unless another call already rotated away
// from stale. callErr is returned when there is nothing to refresh with.
func (s *GRPCClient) refresh(ctx context.Context, stale string, callErr error) (string, error) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	access, refresh := s.tokens()
	if access != stale {
		return access, nil
	}
	if refresh == "" {
		return "", callErr
	}

	resp, err := s.client.RefreshToken(ctx, &pb.RefreshTokenRequest{RefreshToken: refresh})
	if err != nil {
		return "", err
	}
	s.setTokens(resp.AccessToken, resp.RefreshToken)
	return resp.AccessToken, nil
}

// NewGRPCClient prepares a client for endpointURL. The connection is lazy;
// nothing is dialed until the first call. Extra options are appended to the
// defaults (insecure transport and the token interceptor).
func NewGRPCClient(endpointURL string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, dialOpts: opts}
	if err := c.InitGRPCClient(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {
	opts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	}, s.dialOpts...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = pb.NewOTPKeeperServiceClient(conn)
	return nil
}

func (s *GRPCClient) Register(ctx context.Context, userName string, salt []byte, key []byte) error {
	req := &pb.RegisterUserRequest{Username: userName, Salt: salt, Verifier: key}

	if _, err := s.client.RegisterUser(ctx, req); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) GetSalt(ctx context.Context, userName string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, saltTimeout)
	defer cancel()

	resp, err := s.client.GetSalt(ctx, &pb.GetSaltRequest{Username: userName})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Salt, nil
}

func (s *GRPCClient) Login(ctx context.Context, userName string, key []byte) error {
	req := &pb.LoginRequest{Username: userName, VerifierCandidate: key}

	resp, err := s.client.Login(ctx, req)
	if err != nil {
		return s.mapError(err)
	}

	s.setTokens(resp.AccessToken, resp.RefreshToken)
	return nil
}

// Logout forgets the token pair.
func (s *GRPCClient) Logout() {
	s.setTokens("", "")
}

func (s *GRPCClient) LoggedIn() bool {
	access, _ := s.tokens()
	return access != ""
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx, &pb.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

// IconURL returns a short-lived download URL for the icon with slug.
func (s *GRPCClient) IconURL(ctx context.Context, slug string) (string, error) {
	resp, err := s.client.GetIconURL(ctx, &pb.GetIconURLRequest{Slug: slug})
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.URL, nil
}

func (s *GRPCClient) List(ctx context.Context) ([]models.Record, error) {
	if !s.LoggedIn() {
		return nil, ErrNotLoggedIn
	}

	resp, err := s.client.ListAccounts(ctx, &pb.ListAccountsRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}

	out := make([]models.Record, 0, len(resp.Accounts))
	for _, a := range resp.Accounts {
		if a == nil {
			continue
		}
		out = append(out, toRecord(a))
	}
	return out, nil
}

func (s *GRPCClient) Insert(ctx context.Context, r models.NewRecord) (models.Record, error) {
	if !s.LoggedIn() {
		return models.Record{}, ErrNotLoggedIn
	}

	resp, err := s.client.InsertAccount(ctx, &pb.InsertAccountRequest{
		Name:     r.Name,
		Issuer:   r.Issuer,
		IconSlug: r.IconSlug,
		Envelope: r.Envelope,
		Digits:   r.Digits,
		Period:   r.Period,
	})
	if err != nil {
		return models.Record{}, s.mapError(err)
	}
	if resp.Account == nil {
		return models.Record{}, fmt.Errorf("%w: empty insert response", ErrUnavailable)
	}
	return toRecord(resp.Account), nil
}

func (s *GRPCClient) Update(ctx context.Context, id string, f models.Fields) error {
	if !s.LoggedIn() {
		return ErrNotLoggedIn
	}

	_, err := s.client.UpdateAccount(ctx, &pb.UpdateAccountRequest{
		ID:       id,
		Name:     f.Name,
		Issuer:   f.Issuer,
		IconSlug: f.IconSlug,
	})
	return s.mapError(err)
}

func (s *GRPCClient) Delete(ctx context.Context, id string) error {
	if !s.LoggedIn() {
		return ErrNotLoggedIn
	}

	_, err := s.client.DeleteAccount(ctx, &pb.DeleteAccountRequest{ID: id})
	return s.mapError(err)
}

func toRecord(a *pb.Account) models.Record {
	return models.Record{
		ID:        a.ID,
		Name:      a.Name,
		Issuer:    a.Issuer,
		IconSlug:  a.IconSlug,
		Envelope:  a.Envelope,
		Digits:    a.Digits,
		Period:    a.Period,
		CreatedAt: a.CreatedAt,
	}
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.NotFound:
		return common.ErrorNotFound
	case codes.AlreadyExists:
		return common.ErrorAlreadyExists
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", common.ErrorValidation, st.Message())
	default:
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
}
