package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/unsched/pkg/app"
	"tableflip.dev/unsched/pkg/log"
)

// Transport selects how the server is reached.
type Transport string

const (
	// TransportStdio serves a single client over stdin and stdout.
	TransportStdio Transport = "stdio"
	// TransportHTTP serves the streamable HTTP transport on Addr.
	TransportHTTP Transport = "http"

	// DefaultAddr keeps the HTTP server on loopback.
	DefaultAddr = "127.0.0.1:8765"
	// DefaultPath is where the HTTP transport is mounted.
	DefaultPath = "/mcp"
)

// ParseTransport accepts "stdio" or "http"; empty means stdio.
func ParseTransport(raw string) (Transport, error) {
	switch t := Transport(strings.ToLower(strings.TrimSpace(raw))); t {
	case "":
		return TransportStdio, nil
	case TransportStdio, TransportHTTP:
		return t, nil
	default:
		return "", fmt.Errorf("unsupported transport %q (expected stdio or http)", raw)
	}
}

// Runner serves the schedule tools over MCP.
type Runner struct {
	App     *app.Service
	Version string
	// Tools limits the registered tools by name. Empty registers all.
	Tools []string

	Transport Transport
	Addr      string
	Path      string
	// Out receives the HTTP endpoint once it is listening.
	Out io.Writer
}

func (r Runner) out() io.Writer {
	if r.Out == nil {
		return color.Output
	}
	return r.Out
}

// ToolNames lists every tool the server can register.
func ToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r Runner) newServer() (*server.MCPServer, error) {
	if r.App == nil {
		return nil, errors.New("mcp runner requires a schedule service")
	}
	version := r.Version
	if version == "" {
		version = "dev"
	}

	srv := server.NewMCPServer(
		"unsched",
		version,
		server.WithResourceCapabilities(false, false),
		server.WithToolCapabilities(false),
		server.WithInstructions("Parse recurring two-week schedules, list a week, and report hours per category. "+
			"Pass the schedule as text, or a path; without either the last schedule file is used."),
		server.WithResourceRecovery(),
		server.WithRecovery(),
	)

	svc := NewService(r.App)
	registerResources(srv, svc)
	if err := registerTools(srv, svc, r.Tools); err != nil {
		return nil, err
	}
	return srv, nil
}

// Do serves until ctx is done, or until stdin closes for stdio.
func (r Runner) Do(ctx context.Context) error {
	srv, err := r.newServer()
	if err != nil {
		return err
	}

	switch r.Transport {
	case "", TransportStdio:
		log.L().Infof(ctx, "serving MCP over stdio")
		return server.ServeStdio(srv)
	case TransportHTTP:
		return r.serveHTTP(ctx, srv)
	default:
		return fmt.Errorf("unknown MCP transport %q", r.Transport)
	}
}

func (r Runner) serveHTTP(ctx context.Context, srv *server.MCPServer) error {
	addr := r.Addr
	if addr == "" {
		addr = DefaultAddr
	}
	path := r.Path
	if path == "" {
		path = DefaultPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle(path, server.NewStreamableHTTPServer(srv))
	httpSrv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	url := fmt.Sprintf("http://%s%s", ln.Addr(), path)
	log.L().With("url", url).Infof(ctx, "serving MCP over http")
	_, _ = fmt.Fprintf(r.out(), "MCP endpoint: %s\n", url)

	if err := httpSrv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
