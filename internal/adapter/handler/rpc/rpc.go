// Package rpc defines the wire types and service descriptor for the stock
// service's gRPC surface. Messages travel as JSON through a registered
// codec rather than generated protobuf; clients must select it with
// grpc.CallContentSubtype(rpc.CodecName) (the Client in this package does).
package rpc

import (
	"context"
	"encoding/json"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const (
	ServiceName = "stockgen.v1.StockService"
	CodecName   = "json"
)

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

func (jsonCodec) Name() string { return CodecName }

type AllocateRequest struct {
	Section     string   `json:"section"`
	PrincipalID string   `json:"principal_id"`
	Roles       []string `json:"roles"`
}

type AllocateResponse struct {
	Success           bool   `json:"success"`
	Message           string `json:"message"`
	Item              string `json:"item,omitempty"`
	RetryAfterSeconds int64  `json:"retry_after_seconds,omitempty"`
}

type CreateSectionRequest struct {
	Name   string `json:"name"`
	Icon   string `json:"icon"`
	Access string `json:"access"`
}

type AddItemsRequest struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

type AddItemsResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Added   int    `json:"added"`
}

type SectionRequest struct {
	Name string `json:"name"`
}

type SetAccessRequest struct {
	Name   string `json:"name"`
	Access string `json:"access"`
}

type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ListSectionsRequest struct{}

type SectionInfo struct {
	Name      string `json:"name"`
	Icon      string `json:"icon"`
	Access    string `json:"access"`
	Remaining int    `json:"remaining"`
}

type ListSectionsResponse struct {
	Sections []SectionInfo `json:"sections"`
}

// StockServiceServer is the server API for the stock service.
type StockServiceServer interface {
	Allocate(ctx context.Context, req *AllocateRequest) (*AllocateResponse, error)
	CreateSection(ctx context.Context, req *CreateSectionRequest) (*StatusResponse, error)
	AddItems(ctx context.Context, req *AddItemsRequest) (*AddItemsResponse, error)
	ClearSection(ctx context.Context, req *SectionRequest) (*StatusResponse, error)
	RemoveSection(ctx context.Context, req *SectionRequest) (*StatusResponse, error)
	SetAccess(ctx context.Context, req *SetAccessRequest) (*StatusResponse, error)
	ListSections(ctx context.Context, req *ListSectionsRequest) (*ListSectionsResponse, error)
}

func RegisterStockServiceServer(s grpc.ServiceRegistrar, srv StockServiceServer) {
	s.RegisterService(&serviceDesc, srv)
}

func unaryHandler[Req any, Resp any](method string, call func(StockServiceServer, context.Context, *Req) (*Resp, error)) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(StockServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: "/" + ServiceName + "/" + method,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(StockServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*StockServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Allocate",
			Handler: unaryHandler("Allocate", func(s StockServiceServer, ctx context.Context, req *AllocateRequest) (*AllocateResponse, error) {
				return s.Allocate(ctx, req)
			}),
		},
		{
			MethodName: "CreateSection",
			Handler: unaryHandler("CreateSection", func(s StockServiceServer, ctx context.Context, req *CreateSectionRequest) (*StatusResponse, error) {
				return s.CreateSection(ctx, req)
			}),
		},
		{
			MethodName: "AddItems",
			Handler: unaryHandler("AddItems", func(s StockServiceServer, ctx context.Context, req *AddItemsRequest) (*AddItemsResponse, error) {
				return s.AddItems(ctx, req)
			}),
		},
		{
			MethodName: "ClearSection",
			Handler: unaryHandler("ClearSection", func(s StockServiceServer, ctx context.Context, req *SectionRequest) (*StatusResponse, error) {
				return s.ClearSection(ctx, req)
			}),
		},
		{
			MethodName: "RemoveSection",
			Handler: unaryHandler("RemoveSection", func(s StockServiceServer, ctx context.Context, req *SectionRequest) (*StatusResponse, error) {
				return s.RemoveSection(ctx, req)
			}),
		},
		{
			MethodName: "SetAccess",
			Handler: unaryHandler("SetAccess", func(s StockServiceServer, ctx context.Context, req *SetAccessRequest) (*StatusResponse, error) {
				return s.SetAccess(ctx, req)
			}),
		},
		{
			MethodName: "ListSections",
			Handler: unaryHandler("ListSections", func(s StockServiceServer, ctx context.Context, req *ListSectionsRequest) (*ListSectionsResponse, error) {
				return s.ListSections(ctx, req)
			}),
		},
	},
	Streams: []grpc.StreamDesc{},
}

// Client is a thin stock service client that pins the JSON codec on every
// call.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, req any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, "/"+ServiceName+"/"+method, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Allocate(ctx context.Context, req *AllocateRequest, opts ...grpc.CallOption) (*AllocateResponse, error) {
	return invoke[AllocateResponse](ctx, c.cc, "Allocate", req, opts)
}

func (c *Client) CreateSection(ctx context.Context, req *CreateSectionRequest, opts ...grpc.CallOption) (*StatusResponse, error) {
	return invoke[StatusResponse](ctx, c.cc, "CreateSection", req, opts)
}

func (c *Client) AddItems(ctx context.Context, req *AddItemsRequest, opts ...grpc.CallOption) (*AddItemsResponse, error) {
	return invoke[AddItemsResponse](ctx, c.cc, "AddItems", req, opts)
}

func (c *Client) ClearSection(ctx context.Context, req *SectionRequest, opts ...grpc.CallOption) (*StatusResponse, error) {
	return invoke[StatusResponse](ctx, c.cc, "ClearSection", req, opts)
}

func (c *Client) RemoveSection(ctx context.Context, req *SectionRequest, opts ...grpc.CallOption) (*StatusResponse, error) {
	return invoke[StatusResponse](ctx, c.cc, "RemoveSection", req, opts)
}

func (c *Client) SetAccess(ctx context.Context, req *SetAccessRequest, opts ...grpc.CallOption) (*StatusResponse, error) {
	return invoke[StatusResponse](ctx, c.cc, "SetAccess", req, opts)
}

func (c *Client) ListSections(ctx context.Context, req *ListSectionsRequest, opts ...grpc.CallOption) (*ListSectionsResponse, error) {
	return invoke[ListSectionsResponse](ctx, c.cc, "ListSections", req, opts)
}
