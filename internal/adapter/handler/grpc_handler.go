package handler

import (
	"context"
	"errors"
	"time"

	"google.golang.org/grpc"

	"github.com/rl1809/stock-gen/internal/adapter/handler/rpc"
	"github.com/rl1809/stock-gen/internal/core/domain"
	"github.com/rl1809/stock-gen/internal/core/service"
)

type GRPCHandler struct {
	stockService *service.StockService
}

func NewGRPCHandler(stockService *service.StockService) *GRPCHandler {
	return &GRPCHandler{stockService: stockService}
}

func (h *GRPCHandler) Register(s grpc.ServiceRegistrar) {
	rpc.RegisterStockServiceServer(s, h)
}

func (h *GRPCHandler) Allocate(ctx context.Context, req *rpc.AllocateRequest) (*rpc.AllocateResponse, error) {
	principal := domain.Principal{
		ID:    req.PrincipalID,
		Roles: domain.NewRoleSet(req.Roles...),
	}
	item, err := h.stockService.Allocate(ctx, req.Section, principal, time.Now())
	if err != nil {
		resp := &rpc.AllocateResponse{Success: false, Message: userMessage(err)}
		var cooldown *service.CooldownError
		if errors.As(err, &cooldown) {
			resp.RetryAfterSeconds = int64(cooldown.Remaining.Seconds() + 0.5)
		}
		return resp, nil
	}
	return &rpc.AllocateResponse{
		Success: true,
		Message: "item allocated",
		Item:    item,
	}, nil
}

func (h *GRPCHandler) CreateSection(ctx context.Context, req *rpc.CreateSectionRequest) (*rpc.StatusResponse, error) {
	tier, err := domain.ParseTier(req.Access)
	if err != nil {
		return &rpc.StatusResponse{Success: false, Message: err.Error()}, nil
	}
	icon := req.Icon
	if icon == "" {
		icon = DefaultIcon
	}
	if err := h.stockService.CreateSection(ctx, req.Name, icon, tier); err != nil {
		return &rpc.StatusResponse{Success: false, Message: userMessage(err)}, nil
	}
	return &rpc.StatusResponse{Success: true, Message: "section created"}, nil
}

func (h *GRPCHandler) AddItems(ctx context.Context, req *rpc.AddItemsRequest) (*rpc.AddItemsResponse, error) {
	added, err := h.stockService.AddItems(ctx, req.Name, req.Text)
	if err != nil {
		return &rpc.AddItemsResponse{Success: false, Message: userMessage(err)}, nil
	}
	return &rpc.AddItemsResponse{Success: true, Message: "items added", Added: added}, nil
}

func (h *GRPCHandler) ClearSection(ctx context.Context, req *rpc.SectionRequest) (*rpc.StatusResponse, error) {
	if err := h.stockService.ClearSection(ctx, req.Name); err != nil {
		return &rpc.StatusResponse{Success: false, Message: userMessage(err)}, nil
	}
	return &rpc.StatusResponse{Success: true, Message: "section cleared"}, nil
}

func (h *GRPCHandler) RemoveSection(ctx context.Context, req *rpc.SectionRequest) (*rpc.StatusResponse, error) {
	if err := h.stockService.RemoveSection(ctx, req.Name); err != nil {
		return &rpc.StatusResponse{Success: false, Message: userMessage(err)}, nil
	}
	return &rpc.StatusResponse{Success: true, Message: "section removed"}, nil
}

func (h *GRPCHandler) SetAccess(ctx context.Context, req *rpc.SetAccessRequest) (*rpc.StatusResponse, error) {
	tier, err := domain.ParseTier(req.Access)
	if err != nil {
		return &rpc.StatusResponse{Success: false, Message: err.Error()}, nil
	}
	if err := h.stockService.SetAccess(ctx, req.Name, tier); err != nil {
		return &rpc.StatusResponse{Success: false, Message: userMessage(err)}, nil
	}
	return &rpc.StatusResponse{Success: true, Message: "access updated"}, nil
}

func (h *GRPCHandler) ListSections(ctx context.Context, req *rpc.ListSectionsRequest) (*rpc.ListSectionsResponse, error) {
	summaries, err := h.stockService.ListSections(ctx)
	if err != nil {
		return nil, err
	}
	resp := &rpc.ListSectionsResponse{Sections: make([]rpc.SectionInfo, 0, len(summaries))}
	for _, s := range summaries {
		resp.Sections = append(resp.Sections, rpc.SectionInfo{
			Name:      s.Name,
			Icon:      s.Icon,
			Access:    string(s.Access),
			Remaining: s.Remaining,
		})
	}
	return resp, nil
}

// userMessage maps engine errors to the message shown to the caller.
func userMessage(err error) string {
	var cooldown *service.CooldownError
	switch {
	case errors.Is(err, service.ErrUnknownSection),
		errors.Is(err, service.ErrSectionExists),
		errors.Is(err, service.ErrAccessDenied),
		errors.Is(err, service.ErrOutOfStock):
		return err.Error()
	case errors.As(err, &cooldown):
		return err.Error()
	}
	return "internal error"
}
