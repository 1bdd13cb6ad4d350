// Package grpc exposes the server services over gRPC: authentication,
// per-user account records and icon URLs.
package grpc

import (
	"context"
	"errors"
	"net"

	"google.golang.org/grpc"

	"github.com/dmitrijs2005/otpkeeper/internal/logging"
	pb "github.com/dmitrijs2005/otpkeeper/internal/proto"
	"github.com/dmitrijs2005/otpkeeper/internal/server/models"
	"github.com/dmitrijs2005/otpkeeper/internal/server/services"
)

type UserService interface {
	Register(ctx context.Context, username string, salt, verifier []byte) (*models.User, error)
	GetSalt(ctx context.Context, username string) ([]byte, error)
	Login(ctx context.Context, username string, verifierCandidate []byte) (*services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	UserIDFromAccessToken(token string) (string, error)
}

type AccountService interface {
	List(ctx context.Context, userID string) ([]models.Account, error)
	Insert(ctx context.Context, userID string, a models.Account) (models.Account, error)
	Update(ctx context.Context, userID, id string, f models.AccountFields) error
	Delete(ctx context.Context, userID, id string) error
}

type IconService interface {
	GetIconURL(ctx context.Context, slug string) (string, error)
}

type GRPCServer struct {
	pb.UnimplementedOTPKeeperServiceServer
	address  string
	users    UserService
	accounts AccountService
	icons    IconService
	logger   logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, us UserService, as AccountService, is IconService) *GRPCServer {
	return &GRPCServer{
		address:  a,
		logger:   l.With("module", "grpc_server"),
		users:    us,
		accounts: as,
		icons:    is,
	}
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops
// gracefully, letting in-flight calls finish.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))
	pb.RegisterOTPKeeperServiceServer(srv, s)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}
