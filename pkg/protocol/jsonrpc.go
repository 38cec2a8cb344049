package protocol

import (
	"encoding/json"
	"fmt"
)

/**
Model Context Protocol over JSON-RPC 2.0.
Flow:
	The client starts the server and sends 'initialize', eg
	  {"method":"initialize","params":{"protocolVersion":"2024-11-05","capabilities":{},"clientInfo":{"name":"client","version":"0.1.0"}},"jsonrpc":"2.0","id":0}
	We reply with our capabilities (tools, resources) and serverInfo.
	The client sends the 'notifications/initialized' notification, which gets no reply,
	then 'tools/list' and possibly 'resources/list'.
	Drawing work happens through 'tools/call' with {"name":"dxf_draw","arguments":{...}}.
*/

// MethodType defines the possible JSON-RPC method types
type MethodType string

const (
	MethodInitialize    MethodType = "initialize"
	MethodInitialized   MethodType = "initialized"
	MethodToolsList     MethodType = "tools/list"
	MethodToolsCall     MethodType = "tools/call"
	MethodResourcesList MethodType = "resources/list"
	MethodResourcesRead MethodType = "resources/read"
	MethodShutdown      MethodType = "shutdown"
	MethodPing          MethodType = "ping"
)

// JsonRpcVersion is the JSON-RPC protocol version
const JsonRpcVersion = "2.0"

// JsonRpcRequest represents a JSON-RPC 2.0 request object
type JsonRpcRequest struct {
	JsonRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	// Params MAY be omitted
	Params json.RawMessage `json:"params,omitempty"`
	// ID is a string, number or null. Requests without one are notifications.
	ID any `json:"id,omitempty"`
}

// JsonRpcResponse represents a JSON-RPC 2.0 response object
type JsonRpcResponse struct {
	JsonRPC string `json:"jsonrpc"`
	// Result is REQUIRED on success and MUST NOT exist on error
	Result json.RawMessage `json:"result,omitempty"`
	Error  *JsonRpcError   `json:"error,omitempty"`
	// ID MUST match the request id, or be null if it could not be read
	ID any `json:"id"`
}

// JsonRpcError represents a JSON-RPC 2.0 error object
type JsonRpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ToolProperty is one JSON schema property of a tool's input
type ToolProperty struct {
	Type        string        `json:"type"`
	Description string        `json:"description,omitempty"`
	Enum        []string      `json:"enum,omitempty"`
	Items       *ToolProperty `json:"items,omitempty"`
}

type InputSchema struct {
	Type                 string                  `json:"type"`
	Properties           map[string]ToolProperty `json:"properties,omitempty"`
	Required             []string                `json:"required"`
	AdditionalProperties bool                    `json:"additionalProperties"`
}

// Tool describes a tool the client can call
type Tool struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	InputSchema InputSchema `json:"inputSchema"`
}

// ToolsResponse is the result of tools/list
type ToolsResponse struct {
	Tools []Tool `json:"tools"`
}

// Resource is a read-only document the client can fetch with resources/read
type Resource struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MimeType    string `json:"mimeType,omitempty"`
}

// ResourcesResponse is the result of resources/list
type ResourcesResponse struct {
	Resources []Resource `json:"resources"`
}

// ResourceContents is one entry of a resources/read result
type ResourceContents struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType,omitempty"`
	Text     string `json:"text"`
}

// Standard error codes defined by the JSON-RPC 2.0 specification
const (
	ErrParse          = -32700
	ErrInvalidRequest = -32600
	ErrMethodNotFound = -32601
	ErrInvalidParams  = -32602
	ErrInternal       = -32603

	// -32000 to -32099 are reserved for implementation-defined server errors
	ErrServer              = -32000
	ErrToolExecutionFailed = -32000
)

func (e *JsonRpcError) Error() string {
	return fmt.Sprintf("jsonrpc error: code=%d message=%s", e.Code, e.Message)
}

// NewJsonRpcRequest creates a new JSON-RPC 2.0 request
func NewJsonRpcRequest(method string, params any, id any) (*JsonRpcRequest, error) {
	var paramsJSON json.RawMessage
	if params != nil {
		var err error
		paramsJSON, err = json.Marshal(params)
		if err != nil {
			return nil, err
		}
	}
	return &JsonRpcRequest{
		JsonRPC: JsonRpcVersion,
		Method:  method,
		Params:  paramsJSON,
		ID:      id,
	}, nil
}

// NewJsonRpcNotification creates a request without an ID
func NewJsonRpcNotification(method string, params any) (*JsonRpcRequest, error) {
	return NewJsonRpcRequest(method, params, nil)
}

// NewJsonRpcResponse creates a new JSON-RPC 2.0 success response
func NewJsonRpcResponse(result any, id any) (*JsonRpcResponse, error) {
	var resultJSON json.RawMessage
	if result != nil {
		var err error
		resultJSON, err = json.Marshal(result)
		if err != nil {
			return nil, err
		}
	}
	return &JsonRpcResponse{
		JsonRPC: JsonRpcVersion,
		Result:  resultJSON,
		ID:      id,
	}, nil
}

// NewJsonRpcErrorResponse creates a new JSON-RPC 2.0 error response
func NewJsonRpcErrorResponse(code int, message string, data any, id any) *JsonRpcResponse {
	return &JsonRpcResponse{
		JsonRPC: JsonRpcVersion,
		Error: &JsonRpcError{
			Code:    code,
			Message: message,
			Data:    data,
		},
		ID: id,
	}
}

// ParseJsonRpcRequest parses and validates a request from raw JSON.
// Failures are *JsonRpcError values with code ErrParse or ErrInvalidRequest.
func ParseJsonRpcRequest(data []byte) (*JsonRpcRequest, error) {
	var req JsonRpcRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, &JsonRpcError{Code: ErrParse, Message: "Parse error: " + err.Error()}
	}
	if req.JsonRPC != JsonRpcVersion {
		return nil, &JsonRpcError{Code: ErrInvalidRequest, Message: fmt.Sprintf("Invalid JSON-RPC version: %q", req.JsonRPC)}
	}
	if req.Method == "" {
		return nil, &JsonRpcError{Code: ErrInvalidRequest, Message: "Invalid request: method is required"}
	}
	return &req, nil
}

func (r *JsonRpcRequest) String() string {
	bytes, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Sprintf("Error marshaling request: %v", err)
	}
	return string(bytes)
}

func (r *JsonRpcResponse) String() string {
	bytes, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Sprintf("Error marshaling response: %v", err)
	}
	return string(bytes)
}
