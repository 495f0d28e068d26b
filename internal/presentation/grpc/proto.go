package grpc

// proto.go defines the gRPC server interface for finflow/loans/v1/loans.proto.
// This file serves as a stand-in for buf-generated code. Messages travel with
// the JSON codec registered in json_codec.go.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "finflow.loans.v1.LoanService"

// LoanServiceServer is the server API for LoanService.
type LoanServiceServer interface {
	CreateLoan(context.Context, *CreateLoanRequest) (*CreateLoanResponse, error)
	GetLoan(context.Context, *GetLoanRequest) (*GetLoanResponse, error)
	GenerateSchedule(context.Context, *GenerateScheduleRequest) (*GenerateScheduleResponse, error)
	GetSchedule(context.Context, *GetScheduleRequest) (*GetScheduleResponse, error)
	AnalyzeRefinance(context.Context, *AnalyzeRefinanceRequest) (*AnalyzeRefinanceResponse, error)
	ListRefinanceAnalyses(context.Context, *ListRefinanceAnalysesRequest) (*ListRefinanceAnalysesResponse, error)
	ApplyPayment(context.Context, *ApplyPaymentRequest) (*ApplyPaymentResponse, error)
	ListPayments(context.Context, *ListPaymentsRequest) (*ListPaymentsResponse, error)
	mustEmbedUnimplementedLoanServiceServer()
}

// UnimplementedLoanServiceServer provides forward-compatible default implementations.
type UnimplementedLoanServiceServer struct{}

func (UnimplementedLoanServiceServer) CreateLoan(context.Context, *CreateLoanRequest) (*CreateLoanResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CreateLoan not implemented")
}
func (UnimplementedLoanServiceServer) GetLoan(context.Context, *GetLoanRequest) (*GetLoanResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetLoan not implemented")
}
func (UnimplementedLoanServiceServer) GenerateSchedule(context.Context, *GenerateScheduleRequest) (*GenerateScheduleResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GenerateSchedule not implemented")
}
func (UnimplementedLoanServiceServer) GetSchedule(context.Context, *GetScheduleRequest) (*GetScheduleResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetSchedule not implemented")
}
func (UnimplementedLoanServiceServer) AnalyzeRefinance(context.Context, *AnalyzeRefinanceRequest) (*AnalyzeRefinanceResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AnalyzeRefinance not implemented")
}
func (UnimplementedLoanServiceServer) ListRefinanceAnalyses(context.Context, *ListRefinanceAnalysesRequest) (*ListRefinanceAnalysesResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListRefinanceAnalyses not implemented")
}
func (UnimplementedLoanServiceServer) ApplyPayment(context.Context, *ApplyPaymentRequest) (*ApplyPaymentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ApplyPayment not implemented")
}
func (UnimplementedLoanServiceServer) ListPayments(context.Context, *ListPaymentsRequest) (*ListPaymentsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListPayments not implemented")
}
func (UnimplementedLoanServiceServer) mustEmbedUnimplementedLoanServiceServer() {}

// RegisterLoanServiceServer registers the LoanServiceServer with the gRPC server.
func RegisterLoanServiceServer(s grpclib.ServiceRegistrar, srv LoanServiceServer) {
	s.RegisterService(&loanServiceDesc, srv)
}

// FullMethod returns the full gRPC method name of a LoanService RPC.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

var loanServiceDesc = grpclib.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LoanServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "CreateLoan", Handler: unaryHandler("CreateLoan", LoanServiceServer.CreateLoan)},
		{MethodName: "GetLoan", Handler: unaryHandler("GetLoan", LoanServiceServer.GetLoan)},
		{MethodName: "GenerateSchedule", Handler: unaryHandler("GenerateSchedule", LoanServiceServer.GenerateSchedule)},
		{MethodName: "GetSchedule", Handler: unaryHandler("GetSchedule", LoanServiceServer.GetSchedule)},
		{MethodName: "AnalyzeRefinance", Handler: unaryHandler("AnalyzeRefinance", LoanServiceServer.AnalyzeRefinance)},
		{MethodName: "ListRefinanceAnalyses", Handler: unaryHandler("ListRefinanceAnalyses", LoanServiceServer.ListRefinanceAnalyses)},
		{MethodName: "ApplyPayment", Handler: unaryHandler("ApplyPayment", LoanServiceServer.ApplyPayment)},
		{MethodName: "ListPayments", Handler: unaryHandler("ListPayments", LoanServiceServer.ListPayments)},
	},
	Streams:  []grpclib.StreamDesc{},
	Metadata: "finflow/loans/v1/loans.proto",
}

// unaryHandler adapts one LoanServiceServer method to the shape generated
// code registers for it.
func unaryHandler[Req, Resp any](
	method string,
	call func(LoanServiceServer, context.Context, *Req) (*Resp, error),
) grpclib.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(LoanServiceServer), ctx, in)
		}
		info := &grpclib.UnaryServerInfo{
			Server:     srv,
			FullMethod: FullMethod(method),
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(LoanServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}
