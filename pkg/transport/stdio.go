package transport

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/richard-senior/dxfshapes/internal/logger"
	"github.com/richard-senior/dxfshapes/pkg/protocol"
)

// StreamTransport exchanges newline-terminated JSON-RPC messages over a
// reader and writer, normally stdin and stdout.
type StreamTransport struct {
	reader *bufio.Reader
	writer *bufio.Writer
}

// NewStdioTransport creates a transport on stdin/stdout
func NewStdioTransport() *StreamTransport {
	return NewStreamTransport(os.Stdin, os.Stdout)
}

// NewStreamTransport creates a transport on arbitrary streams
func NewStreamTransport(r io.Reader, w io.Writer) *StreamTransport {
	return &StreamTransport{
		reader: bufio.NewReader(r),
		writer: bufio.NewWriter(w),
	}
}

// ReadRequest reads one JSON object, counting braces outside string literals
// so messages may span lines.
func (t *StreamTransport) ReadRequest() (*protocol.JsonRpcRequest, error) {
	logger.Debug("Waiting for request...")

	var data []byte
	var depth int
	var inString, escapeNext, started bool

	for {
		b, err := t.reader.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				logger.Info("Received EOF, client disconnected")
			} else {
				logger.Error("Error reading request:", err)
			}
			return nil, err
		}
		if !started {
			// skip whitespace between messages
			if b != '{' {
				continue
			}
			started = true
		}
		data = append(data, b)

		if !escapeNext && b == '"' {
			inString = !inString
		}
		if inString && b == '\\' {
			escapeNext = !escapeNext
		} else {
			escapeNext = false
		}

		if !inString {
			if b == '{' {
				depth++
			} else if b == '}' {
				depth--
				if depth == 0 {
					break
				}
			}
		}
	}

	raw := strings.TrimSpace(string(data))
	logger.Debug("Received raw request:", raw)

	request, err := protocol.ParseJsonRpcRequest([]byte(raw))
	if err != nil {
		logger.Error("Failed to parse JSON-RPC request:", err)
		return nil, err
	}
	return request, nil
}

// WriteResponse writes the response as one line of JSON and flushes
func (t *StreamTransport) WriteResponse(response *protocol.JsonRpcResponse) error {
	bytes, err := json.Marshal(response)
	if err != nil {
		logger.Error("Failed to marshal response:", err)
		return err
	}
	bytes = append(bytes, '\n')
	logger.Debug("Sending response:", string(bytes))

	if _, err := t.writer.Write(bytes); err != nil {
		logger.Error("Failed to write response:", err)
		return err
	}
	if err := t.writer.Flush(); err != nil {
		logger.Error("Failed to flush response:", err)
		return err
	}
	return nil
}
