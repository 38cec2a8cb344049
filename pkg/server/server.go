package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/richard-senior/dxfshapes/internal/logger"
	"github.com/richard-senior/dxfshapes/pkg/protocol"
	"github.com/richard-senior/dxfshapes/pkg/resources"
	"github.com/richard-senior/dxfshapes/pkg/tools"
	"github.com/richard-senior/dxfshapes/pkg/transport"
)

// Name and Version are reported to clients in the initialize response
const (
	Name    = "dxfshapes"
	Version = "1.0.0"
)

// Server represents an MCP server
type Server struct {
	transport transport.Transport
	mu        sync.Mutex
	handlers  map[string]HandlerFunc
	tools     []protocol.Tool
	resources []protocol.Resource
}

// HandlerFunc is a function that handles an MCP request
type HandlerFunc func(params any) (any, error)

var (
	instance *Server
	once     sync.Once
)

// GetInstance returns the singleton server, creating it on stdio if needed
func GetInstance() *Server {
	if instance == nil {
		logger.Warn("Server instance requested but not initialized, using stdio")
		InitInstance(transport.NewStdioTransport())
	}
	return instance
}

// InitInstance initializes the singleton with the given transport
func InitInstance(t transport.Transport) *Server {
	once.Do(func() {
		instance = New(t)
	})
	return instance
}

// New creates a server on t with the drawing tools and resources registered
func New(t transport.Transport) *Server {
	s := &Server{
		transport: t,
		handlers:  make(map[string]HandlerFunc),
	}
	s.RegisterDefaultTools()
	s.RegisterDefaultResources()

	s.handlers[string(protocol.MethodInitialize)] = s.handleInitialize
	s.handlers[string(protocol.MethodInitialized)] = s.handleInitialized
	s.handlers[string(protocol.MethodPing)] = s.handlePing
	s.handlers[string(protocol.MethodToolsList)] = s.handleToolsList
	s.handlers[string(protocol.MethodToolsCall)] = s.handleToolsCall
	s.handlers[string(protocol.MethodResourcesList)] = s.handleResourcesList
	s.handlers[string(protocol.MethodResourcesRead)] = s.handleResourcesRead
	return s
}

// RegisterTool registers a tool with the server
func (s *Server) RegisterTool(tool protocol.Tool, handler HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tools = append(s.tools, tool)
	s.handlers[tool.Name] = handler
	logger.Info("Registered tool:", tool.Name)
}

// RegisterResource registers a resource with the server
func (s *Server) RegisterResource(resource protocol.Resource) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resources = append(s.resources, resource)
	logger.Info("Registered resource:", resource.Name)
}

// GetTools returns the list of registered tools
func (s *Server) GetTools() []protocol.Tool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]protocol.Tool(nil), s.tools...)
}

// RegisterDefaultTools registers the drawing tools
func (s *Server) RegisterDefaultTools() {
	logger.Info("Registering default tools...")
	s.RegisterTool(tools.DxfDrawTool(), tools.HandleDxfDraw)
	s.RegisterTool(tools.DxfInspectTool(), tools.HandleDxfInspect)
	s.RegisterTool(tools.DxfCatalogTool(), tools.HandleDxfCatalog)
}

// RegisterDefaultResources registers the layer defaults document
func (s *Server) RegisterDefaultResources() {
	logger.Info("Registering default resources...")
	for _, r := range resources.GetResources() {
		s.RegisterResource(r)
	}
}

// Start processes requests until the client disconnects or a signal arrives
func (s *Server) Start() error {
	logger.Info("Starting MCP server")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.ProcessRequests()
	}()

	select {
	case err := <-errChan:
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	case sig := <-sigChan:
		logger.Info("Received signal:", sig)
		return nil
	}
}

// ProcessRequests reads and answers requests one at a time
func (s *Server) ProcessRequests() error {
	for {
		req, err := s.transport.ReadRequest()
		if err != nil {
			// a malformed message is answered; anything else ends the session
			var rpcErr *protocol.JsonRpcError
			if !errors.As(err, &rpcErr) {
				return err
			}
			logger.Warn("Rejected request:", rpcErr.Message)
			if err := s.transport.WriteResponse(protocol.NewJsonRpcErrorResponse(rpcErr.Code, rpcErr.Message, nil, nil)); err != nil {
				return err
			}
			continue
		}

		// nil means no response is required
		resp := s.handleRequest(req)
		if resp == nil {
			continue
		}
		if err := s.transport.WriteResponse(resp); err != nil {
			return err
		}
	}
}

// handleRequest processes a request and returns a response
func (s *Server) handleRequest(req *protocol.JsonRpcRequest) *protocol.JsonRpcResponse {
	logger.Info(">> ", req.Method)
	logger.Debug("Full request:", string(req.Params))

	if strings.HasPrefix(req.Method, "notifications/") {
		logger.Info("Received notification:", req.Method)
		return nil
	}

	resp := &protocol.JsonRpcResponse{
		JsonRPC: protocol.JsonRpcVersion,
		ID:      req.ID,
	}

	s.mu.Lock()
	handler := s.handlers[req.Method]
	s.mu.Unlock()
	if handler == nil {
		resp.Error = &protocol.JsonRpcError{
			Code:    protocol.ErrMethodNotFound,
			Message: fmt.Sprintf("Method not found: %s", req.Method),
		}
		return resp
	}

	result, err := handler(req.Params)
	if err == nil && result == nil {
		return nil
	}
	if err != nil {
		code := protocol.ErrToolExecutionFailed
		var rpcErr *protocol.JsonRpcError
		if errors.As(err, &rpcErr) {
			code = rpcErr.Code
		}
		logger.Warn("Request failed:", req.Method, err)
		resp.Error = &protocol.JsonRpcError{
			Code:    code,
			Message: err.Error(),
		}
		return resp
	}

	resultBytes, err := json.Marshal(result)
	if err != nil {
		resp.Error = &protocol.JsonRpcError{
			Code:    protocol.ErrInternal,
			Message: "Failed to marshal result: " + err.Error(),
		}
		return resp
	}
	logger.Debug("output", string(resultBytes))
	resp.Result = resultBytes
	return resp
}

// decodeParams unmarshals raw request params into out
func decodeParams(params any, out any) error {
	var raw []byte
	switch v := params.(type) {
	case json.RawMessage:
		raw = v
	case nil:
		return nil
	default:
		var err error
		if raw, err = json.Marshal(v); err != nil {
			return err
		}
	}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &protocol.JsonRpcError{Code: protocol.ErrInvalidParams, Message: err.Error()}
	}
	return nil
}

func (s *Server) handleToolsList(params any) (any, error) {
	logger.Info("Handling tools/list request")
	return protocol.ToolsResponse{Tools: s.GetTools()}, nil
}

func (s *Server) handleResourcesList(params any) (any, error) {
	logger.Info("Handling resources/list request")
	s.mu.Lock()
	defer s.mu.Unlock()
	return protocol.ResourcesResponse{Resources: append([]protocol.Resource{}, s.resources...)}, nil
}

func (s *Server) handleResourcesRead(params any) (any, error) {
	var p struct {
		URI string `json:"uri"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	contents, err := resources.Read(p.URI)
	if err != nil {
		return nil, &protocol.JsonRpcError{Code: protocol.ErrInvalidParams, Message: err.Error()}
	}
	return map[string]any{"contents": contents}, nil
}

func (s *Server) handleInitialize(params any) (any, error) {
	logger.Info("Handling initialize request with", len(s.tools), "tools registered")

	var p struct {
		ProtocolVersion string `json:"protocolVersion"`
	}
	if err := decodeParams(params, &p); err != nil {
		logger.Warn("Failed to read initialize params:", err)
	}
	if p.ProtocolVersion == "" {
		p.ProtocolVersion = "2024-11-05"
	}
	logger.Info("Protocol version:", p.ProtocolVersion)

	capabilities := map[string]any{}
	if len(s.tools) > 0 {
		capabilities["tools"] = map[string]any{"listChanged": false}
	}
	if len(s.resources) > 0 {
		capabilities["resources"] = map[string]any{"listChanged": false}
	}

	type serverInfo struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	}
	return struct {
		ProtocolVersion string         `json:"protocolVersion"`
		Capabilities    map[string]any `json:"capabilities"`
		ServerInfo      serverInfo     `json:"serverInfo"`
	}{
		ProtocolVersion: p.ProtocolVersion,
		Capabilities:    capabilities,
		ServerInfo:      serverInfo{Name: Name, Version: Version},
	}, nil
}

// handleInitialized acknowledges the client; it needs no response
func (s *Server) handleInitialized(params any) (any, error) {
	logger.Info("Handling initialized notification")
	return nil, nil
}

func (s *Server) handlePing(params any) (any, error) {
	return struct{}{}, nil
}

// toolContent is the MCP tools/call result envelope
type toolContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func (s *Server) handleToolsCall(params any) (any, error) {
	logger.Info("Handling tools/call request")

	var call struct {
		Name      string         `json:"name"`
		Arguments map[string]any `json:"arguments"`
	}
	if err := decodeParams(params, &call); err != nil {
		return nil, fmt.Errorf("invalid tools/call parameters: %w", err)
	}
	logger.Info("Tool call requested for:", call.Name)

	s.mu.Lock()
	handler := s.handlers[call.Name]
	s.mu.Unlock()
	if handler == nil || !s.isTool(call.Name) {
		return nil, &protocol.JsonRpcError{Code: protocol.ErrInvalidParams, Message: "tool not found: " + call.Name}
	}
	if call.Arguments == nil {
		call.Arguments = map[string]any{}
	}

	result, err := handler(call.Arguments)
	if err != nil {
		return nil, fmt.Errorf("tool execution failed: %w", err)
	}
	text, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"content":           []toolContent{{Type: "text", Text: string(text)}},
		"structuredContent": result,
	}, nil
}

func (s *Server) isTool(name string) bool {
	for _, t := range s.GetTools() {
		if t.Name == name {
			return true
		}
	}
	return false
}
