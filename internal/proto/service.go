package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "otpkeeper.service.OTPKeeperService"

// Full method names, as seen by interceptors.
const (
	MethodPing          = "/" + ServiceName + "/Ping"
	MethodRegisterUser  = "/" + ServiceName + "/RegisterUser"
	MethodGetSalt       = "/" + ServiceName + "/GetSalt"
	MethodLogin         = "/" + ServiceName + "/Login"
	MethodRefreshToken  = "/" + ServiceName + "/RefreshToken"
	MethodListAccounts  = "/" + ServiceName + "/ListAccounts"
	MethodInsertAccount = "/" + ServiceName + "/InsertAccount"
	MethodUpdateAccount = "/" + ServiceName + "/UpdateAccount"
	MethodDeleteAccount = "/" + ServiceName + "/DeleteAccount"
	MethodGetIconURL    = "/" + ServiceName + "/GetIconURL"
)

// OTPKeeperServiceClient is the client API for OTPKeeperService.
type OTPKeeperServiceClient interface {
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
	RegisterUser(ctx context.Context, in *RegisterUserRequest, opts ...grpc.CallOption) (*RegisterUserResponse, error)
	GetSalt(ctx context.Context, in *GetSaltRequest, opts ...grpc.CallOption) (*GetSaltResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error)
	RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error)
	ListAccounts(ctx context.Context, in *ListAccountsRequest, opts ...grpc.CallOption) (*ListAccountsResponse, error)
	InsertAccount(ctx context.Context, in *InsertAccountRequest, opts ...grpc.CallOption) (*InsertAccountResponse, error)
	UpdateAccount(ctx context.Context, in *UpdateAccountRequest, opts ...grpc.CallOption) (*UpdateAccountResponse, error)
	DeleteAccount(ctx context.Context, in *DeleteAccountRequest, opts ...grpc.CallOption) (*DeleteAccountResponse, error)
	GetIconURL(ctx context.Context, in *GetIconURLRequest, opts ...grpc.CallOption) (*GetIconURLResponse, error)
}

type otpKeeperServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewOTPKeeperServiceClient(cc grpc.ClientConnInterface) OTPKeeperServiceClient {
	return &otpKeeperServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *otpKeeperServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, MethodPing, in, opts)
}

func (c *otpKeeperServiceClient) RegisterUser(ctx context.Context, in *RegisterUserRequest, opts ...grpc.CallOption) (*RegisterUserResponse, error) {
	return invoke[RegisterUserResponse](ctx, c.cc, MethodRegisterUser, in, opts)
}

func (c *otpKeeperServiceClient) GetSalt(ctx context.Context, in *GetSaltRequest, opts ...grpc.CallOption) (*GetSaltResponse, error) {
	return invoke[GetSaltResponse](ctx, c.cc, MethodGetSalt, in, opts)
}

func (c *otpKeeperServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, MethodLogin, in, opts)
}

func (c *otpKeeperServiceClient) RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error) {
	return invoke[RefreshTokenResponse](ctx, c.cc, MethodRefreshToken, in, opts)
}

func (c *otpKeeperServiceClient) ListAccounts(ctx context.Context, in *ListAccountsRequest, opts ...grpc.CallOption) (*ListAccountsResponse, error) {
	return invoke[ListAccountsResponse](ctx, c.cc, MethodListAccounts, in, opts)
}

func (c *otpKeeperServiceClient) InsertAccount(ctx context.Context, in *InsertAccountRequest, opts ...grpc.CallOption) (*InsertAccountResponse, error) {
	return invoke[InsertAccountResponse](ctx, c.cc, MethodInsertAccount, in, opts)
}

func (c *otpKeeperServiceClient) UpdateAccount(ctx context.Context, in *UpdateAccountRequest, opts ...grpc.CallOption) (*UpdateAccountResponse, error) {
	return invoke[UpdateAccountResponse](ctx, c.cc, MethodUpdateAccount, in, opts)
}

func (c *otpKeeperServiceClient) DeleteAccount(ctx context.Context, in *DeleteAccountRequest, opts ...grpc.CallOption) (*DeleteAccountResponse, error) {
	return invoke[DeleteAccountResponse](ctx, c.cc, MethodDeleteAccount, in, opts)
}

func (c *otpKeeperServiceClient) GetIconURL(ctx context.Context, in *GetIconURLRequest, opts ...grpc.CallOption) (*GetIconURLResponse, error) {
	return invoke[GetIconURLResponse](ctx, c.cc, MethodGetIconURL, in, opts)
}

// OTPKeeperServiceServer is the server API for OTPKeeperService.
// Implementations should embed UnimplementedOTPKeeperServiceServer.
type OTPKeeperServiceServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	RegisterUser(context.Context, *RegisterUserRequest) (*RegisterUserResponse, error)
	GetSalt(context.Context, *GetSaltRequest) (*GetSaltResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error)
	ListAccounts(context.Context, *ListAccountsRequest) (*ListAccountsResponse, error)
	InsertAccount(context.Context, *InsertAccountRequest) (*InsertAccountResponse, error)
	UpdateAccount(context.Context, *UpdateAccountRequest) (*UpdateAccountResponse, error)
	DeleteAccount(context.Context, *DeleteAccountRequest) (*DeleteAccountResponse, error)
	GetIconURL(context.Context, *GetIconURLRequest) (*GetIconURLResponse, error)
}

// UnimplementedOTPKeeperServiceServer answers every method with
// codes.Unimplemented.
type UnimplementedOTPKeeperServiceServer struct{}

func (UnimplementedOTPKeeperServiceServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}
func (UnimplementedOTPKeeperServiceServer) RegisterUser(context.Context, *RegisterUserRequest) (*RegisterUserResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RegisterUser not implemented")
}
func (UnimplementedOTPKeeperServiceServer) GetSalt(context.Context, *GetSaltRequest) (*GetSaltResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetSalt not implemented")
}
func (UnimplementedOTPKeeperServiceServer) Login(context.Context, *LoginRequest) (*LoginResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}
func (UnimplementedOTPKeeperServiceServer) RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RefreshToken not implemented")
}
func (UnimplementedOTPKeeperServiceServer) ListAccounts(context.Context, *ListAccountsRequest) (*ListAccountsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListAccounts not implemented")
}
func (UnimplementedOTPKeeperServiceServer) InsertAccount(context.Context, *InsertAccountRequest) (*InsertAccountResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method InsertAccount not implemented")
}
func (UnimplementedOTPKeeperServiceServer) UpdateAccount(context.Context, *UpdateAccountRequest) (*UpdateAccountResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateAccount not implemented")
}
func (UnimplementedOTPKeeperServiceServer) DeleteAccount(context.Context, *DeleteAccountRequest) (*DeleteAccountResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteAccount not implemented")
}
func (UnimplementedOTPKeeperServiceServer) GetIconURL(context.Context, *GetIconURLRequest) (*GetIconURLResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetIconURL not implemented")
}

func RegisterOTPKeeperServiceServer(s grpc.ServiceRegistrar, srv OTPKeeperServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func unary[Req any, Resp any](method string, call func(OTPKeeperServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(OTPKeeperServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(OTPKeeperServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ServiceDesc describes OTPKeeperService for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*OTPKeeperServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Ping", Handler: unary(MethodPing, OTPKeeperServiceServer.Ping)},
		{MethodName: "RegisterUser", Handler: unary(MethodRegisterUser, OTPKeeperServiceServer.RegisterUser)},
		{MethodName: "GetSalt", Handler: unary(MethodGetSalt, OTPKeeperServiceServer.GetSalt)},
		{MethodName: "Login", Handler: unary(MethodLogin, OTPKeeperServiceServer.Login)},
		{MethodName: "RefreshToken", Handler: unary(MethodRefreshToken, OTPKeeperServiceServer.RefreshToken)},
		{MethodName: "ListAccounts", Handler: unary(MethodListAccounts, OTPKeeperServiceServer.ListAccounts)},
		{MethodName: "InsertAccount", Handler: unary(MethodInsertAccount, OTPKeeperServiceServer.InsertAccount)},
		{MethodName: "UpdateAccount", Handler: unary(MethodUpdateAccount, OTPKeeperServiceServer.UpdateAccount)},
		{MethodName: "DeleteAccount", Handler: unary(MethodDeleteAccount, OTPKeeperServiceServer.DeleteAccount)},
		{MethodName: "GetIconURL", Handler: unary(MethodGetIconURL, OTPKeeperServiceServer.GetIconURL)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "otpkeeper/service.proto",
}
