package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/otpkeeper/internal/common"
	"github.com/dmitrijs2005/otpkeeper/internal/logging"
	pb "github.com/dmitrijs2005/otpkeeper/internal/proto"
	"github.com/dmitrijs2005/otpkeeper/internal/server/models"
)

// toStatus maps service errors onto gRPC codes. Internal details never
// reach the client.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, common.ErrorNotFound.Error())
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrRefreshTokenExpired):
		return status.Error(codes.Unauthenticated, common.ErrorUnauthorized.Error())
	case errors.Is(err, common.ErrorAlreadyExists):
		return status.Error(codes.AlreadyExists, common.ErrorAlreadyExists.Error())
	case errors.Is(err, common.ErrorValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		s.logger.Error(ctx, "internal error", "error", err)
		return status.Error(codes.Internal, common.ErrorInternal.Error())
	}
}

func (s *GRPCServer) userID(ctx context.Context) (string, error) {
	id, ok := userIDFromContext(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated, "missing token")
	}
	return id, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *pb.PingRequest) (*pb.PingResponse, error) {
	return &pb.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) RegisterUser(ctx context.Context, req *pb.RegisterUserRequest) (*pb.RegisterUserResponse, error) {
	result, err := s.users.Register(ctx, req.Username, req.Salt, req.Verifier)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	s.logger.Info(ctx, "Registered", "username", logging.MaskEmail(result.UserName))
	return &pb.RegisterUserResponse{Username: result.UserName}, nil
}

func (s *GRPCServer) GetSalt(ctx context.Context, req *pb.GetSaltRequest) (*pb.GetSaltResponse, error) {
	salt, err := s.users.GetSalt(ctx, req.Username)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.GetSaltResponse{Salt: salt}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *pb.LoginRequest) (*pb.LoginResponse, error) {
	tokens, err := s.users.Login(ctx, req.Username, req.VerifierCandidate)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.LoginResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *pb.RefreshTokenRequest) (*pb.RefreshTokenResponse, error) {
	tokens, err := s.users.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.RefreshTokenResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) ListAccounts(ctx context.Context, req *pb.ListAccountsRequest) (*pb.ListAccountsResponse, error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}

	list, err := s.accounts.List(ctx, userID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	out := make([]*pb.Account, 0, len(list))
	for _, a := range list {
		out = append(out, accountToPB(a))
	}
	return &pb.ListAccountsResponse{Accounts: out}, nil
}

func (s *GRPCServer) InsertAccount(ctx context.Context, req *pb.InsertAccountRequest) (*pb.InsertAccountResponse, error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}

	a, err := s.accounts.Insert(ctx, userID, models.Account{
		Name:     req.Name,
		Issuer:   req.Issuer,
		IconSlug: req.IconSlug,
		Envelope: req.Envelope,
		Digits:   req.Digits,
		Period:   req.Period,
	})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.InsertAccountResponse{Account: accountToPB(a)}, nil
}

func (s *GRPCServer) UpdateAccount(ctx context.Context, req *pb.UpdateAccountRequest) (*pb.UpdateAccountResponse, error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}

	f := models.AccountFields{Name: req.Name, Issuer: req.Issuer, IconSlug: req.IconSlug}
	if err := s.accounts.Update(ctx, userID, req.ID, f); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.UpdateAccountResponse{}, nil
}

func (s *GRPCServer) DeleteAccount(ctx context.Context, req *pb.DeleteAccountRequest) (*pb.DeleteAccountResponse, error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.accounts.Delete(ctx, userID, req.ID); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.DeleteAccountResponse{}, nil
}

func (s *GRPCServer) GetIconURL(ctx context.Context, req *pb.GetIconURLRequest) (*pb.GetIconURLResponse, error) {
	if _, err := s.userID(ctx); err != nil {
		return nil, err
	}

	url, err := s.icons.GetIconURL(ctx, req.Slug)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.GetIconURLResponse{URL: url}, nil
}

func accountToPB(a models.Account) *pb.Account {
	return &pb.Account{
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
