package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerScheduleResource(srv, svc)
}

func registerScheduleResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"unsched://schedule",
		"Schedule",
		mcp.WithResourceDescription("The last schedule file used, parsed and analyzed."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		snap, err := svc.Load(ctx, "", "")
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, snap.Summary(true))
	})
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
