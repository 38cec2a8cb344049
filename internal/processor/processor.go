package processor

import (
	"encoding/json"
	"fmt"

	"github.com/richard-senior/dxfshapes/internal/logger"
	"github.com/richard-senior/dxfshapes/pkg/tools"
)

// Request is one offline tool invocation, e.g.
//
//	{"requestId":"r1","tool":"dxf_draw","arguments":{"path":"part","shapes":[...]}}
type Request struct {
	RequestID string         `json:"requestId"`
	Tool      string         `json:"tool"`
	Arguments map[string]any `json:"arguments"`
}

// Response carries the tool result or an error
type Response struct {
	RequestID string         `json:"requestId,omitempty"`
	Result    any            `json:"result,omitempty"`
	Error     *ErrorResponse `json:"error,omitempty"`
}

// ErrorResponse describes a failed request
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

var handlers = map[string]func(any) (any, error){
	"dxf_draw":    tools.HandleDxfDraw,
	"dxf_inspect": tools.HandleDxfInspect,
	"dxf_catalog": tools.HandleDxfCatalog,
}

func errorResponse(code, message, requestID string) *Response {
	return &Response{RequestID: requestID, Error: &ErrorResponse{Code: code, Message: message}}
}

// Process runs a single request. Failures are reported in the response.
func Process(req Request) *Response {
	logger.Info("Processing request", req.RequestID, req.Tool)

	handler, ok := handlers[req.Tool]
	if !ok {
		return errorResponse("unknown_tool", fmt.Sprintf("unknown tool: %s", req.Tool), req.RequestID)
	}
	args := req.Arguments
	if args == nil {
		args = map[string]any{}
	}
	result, err := handler(args)
	if err != nil {
		logger.Error("Request failed", req.RequestID, err)
		return errorResponse("tool_failed", err.Error(), req.RequestID)
	}
	return &Response{RequestID: req.RequestID, Result: result}
}

// ProcessRequest accepts either one request object or an array of them and
// returns the matching response JSON. The error is non-nil if any request failed.
func ProcessRequest(input []byte) ([]byte, error) {
	var batch []Request
	single := false
	if err := json.Unmarshal(input, &batch); err != nil {
		var req Request
		if err := json.Unmarshal(input, &req); err != nil {
			logger.Error("Failed to parse input JSON", err)
			out, _ := json.MarshalIndent(errorResponse("invalid_request", fmt.Sprintf("Invalid JSON: %v", err), ""), "", "  ")
			return out, fmt.Errorf("invalid request: %w", err)
		}
		batch, single = []Request{req}, true
	}

	var failed int
	responses := make([]*Response, 0, len(batch))
	for _, req := range batch {
		resp := Process(req)
		if resp.Error != nil {
			failed++
		}
		responses = append(responses, resp)
	}

	var out []byte
	var err error
	if single {
		out, err = json.MarshalIndent(responses[0], "", "  ")
	} else {
		out, err = json.MarshalIndent(responses, "", "  ")
	}
	if err != nil {
		return nil, err
	}
	if failed > 0 {
		return out, fmt.Errorf("%d of %d requests failed", failed, len(batch))
	}
	return out, nil
}
