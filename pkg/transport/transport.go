package transport

import (
	"github.com/richard-senior/dxfshapes/pkg/protocol"
)

// Transport reads requests from and writes responses to an MCP client
type Transport interface {
	ReadRequest() (*protocol.JsonRpcRequest, error)
	WriteResponse(*protocol.JsonRpcResponse) error
}
