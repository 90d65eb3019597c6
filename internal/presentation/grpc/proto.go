package grpc

// proto.go defines the gRPC server interface for credai/scoring/v1/scoring.proto.
// Messages travel as JSON through the codec registered in json_codec.go.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// CreditScoringServiceServer is the server API for CreditScoringService.
type CreditScoringServiceServer interface {
	SubmitApplication(context.Context, *SubmitApplicationRequest) (*ApplicationResponse, error)
	GetApplication(context.Context, *GetApplicationRequest) (*ApplicationResponse, error)
	ListApplications(context.Context, *ListApplicationsRequest) (*ListApplicationsResponse, error)
	DecideApplication(context.Context, *DecideApplicationRequest) (*ApplicationResponse, error)
	ScoreApplication(context.Context, *ScoreApplicationRequest) (*AssessmentResponse, error)
	ScoreBatch(context.Context, *ScoreBatchRequest) (*ScoreBatchResponse, error)
	DescribeModel(context.Context, *DescribeModelRequest) (*ModelInfoResponse, error)
	mustEmbedUnimplementedCreditScoringServiceServer()
}

// UnimplementedCreditScoringServiceServer provides forward-compatible default implementations.
type UnimplementedCreditScoringServiceServer struct{}

func (UnimplementedCreditScoringServiceServer) SubmitApplication(context.Context, *SubmitApplicationRequest) (*ApplicationResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SubmitApplication not implemented")
}
func (UnimplementedCreditScoringServiceServer) GetApplication(context.Context, *GetApplicationRequest) (*ApplicationResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetApplication not implemented")
}
func (UnimplementedCreditScoringServiceServer) ListApplications(context.Context, *ListApplicationsRequest) (*ListApplicationsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListApplications not implemented")
}
func (UnimplementedCreditScoringServiceServer) DecideApplication(context.Context, *DecideApplicationRequest) (*ApplicationResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method DecideApplication not implemented")
}
func (UnimplementedCreditScoringServiceServer) ScoreApplication(context.Context, *ScoreApplicationRequest) (*AssessmentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ScoreApplication not implemented")
}
func (UnimplementedCreditScoringServiceServer) ScoreBatch(context.Context, *ScoreBatchRequest) (*ScoreBatchResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ScoreBatch not implemented")
}
func (UnimplementedCreditScoringServiceServer) DescribeModel(context.Context, *DescribeModelRequest) (*ModelInfoResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method DescribeModel not implemented")
}
func (UnimplementedCreditScoringServiceServer) mustEmbedUnimplementedCreditScoringServiceServer() {}

// RegisterCreditScoringServiceServer registers the CreditScoringServiceServer with the gRPC server.
func RegisterCreditScoringServiceServer(s *grpclib.Server, srv CreditScoringServiceServer) {
	s.RegisterService(&_CreditScoringService_serviceDesc, srv) //nolint:revive // gRPC handler registration
}

//nolint:revive // gRPC handler registration
var _CreditScoringService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "credai.scoring.v1.CreditScoringService",
	HandlerType: (*CreditScoringServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "SubmitApplication", Handler: _CreditScoringService_SubmitApplication_Handler}, //nolint:revive // gRPC handler registration
		{MethodName: "GetApplication", Handler: _CreditScoringService_GetApplication_Handler},       //nolint:revive // gRPC handler registration
		{MethodName: "ListApplications", Handler: _CreditScoringService_ListApplications_Handler},   //nolint:revive // gRPC handler registration
		{MethodName: "DecideApplication", Handler: _CreditScoringService_DecideApplication_Handler}, //nolint:revive // gRPC handler registration
		{MethodName: "ScoreApplication", Handler: _CreditScoringService_ScoreApplication_Handler},   //nolint:revive // gRPC handler registration
		{MethodName: "ScoreBatch", Handler: _CreditScoringService_ScoreBatch_Handler},               //nolint:revive // gRPC handler registration
		{MethodName: "DescribeModel", Handler: _CreditScoringService_DescribeModel_Handler},         //nolint:revive // gRPC handler registration
	},
	Streams:  []grpclib.StreamDesc{},
	Metadata: "credai/scoring/v1/scoring.proto",
}

//nolint:revive,errcheck // gRPC handler registration
func _CreditScoringService_SubmitApplication_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(SubmitApplicationRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditScoringServiceServer).SubmitApplication(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/credai.scoring.v1.CreditScoringService/SubmitApplication",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CreditScoringServiceServer).SubmitApplication(ctx, req.(*SubmitApplicationRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _CreditScoringService_GetApplication_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetApplicationRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditScoringServiceServer).GetApplication(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/credai.scoring.v1.CreditScoringService/GetApplication",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CreditScoringServiceServer).GetApplication(ctx, req.(*GetApplicationRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _CreditScoringService_ListApplications_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ListApplicationsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditScoringServiceServer).ListApplications(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/credai.scoring.v1.CreditScoringService/ListApplications",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CreditScoringServiceServer).ListApplications(ctx, req.(*ListApplicationsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _CreditScoringService_DecideApplication_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(DecideApplicationRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditScoringServiceServer).DecideApplication(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/credai.scoring.v1.CreditScoringService/DecideApplication",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CreditScoringServiceServer).DecideApplication(ctx, req.(*DecideApplicationRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _CreditScoringService_ScoreApplication_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ScoreApplicationRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditScoringServiceServer).ScoreApplication(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/credai.scoring.v1.CreditScoringService/ScoreApplication",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CreditScoringServiceServer).ScoreApplication(ctx, req.(*ScoreApplicationRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _CreditScoringService_ScoreBatch_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ScoreBatchRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditScoringServiceServer).ScoreBatch(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/credai.scoring.v1.CreditScoringService/ScoreBatch",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CreditScoringServiceServer).ScoreBatch(ctx, req.(*ScoreBatchRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _CreditScoringService_DescribeModel_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(DescribeModelRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditScoringServiceServer).DescribeModel(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/credai.scoring.v1.CreditScoringService/DescribeModel",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CreditScoringServiceServer).DescribeModel(ctx, req.(*DescribeModelRequest))
	}
	return interceptor(ctx, in, info, handler)
}
