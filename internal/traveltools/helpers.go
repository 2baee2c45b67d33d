// Package traveltools provides the MCP tool handlers for Wayfare.
//
// Each tool follows the same pattern:
// - A struct with dependencies (store, resolver) injected via constructor
// - Definition() returns the mcp.Tool schema
// - Handle() validates the request shape, calls into the core, and
//   serializes the result or an error envelope
//
// Only NotFound and InvalidInput become user-visible failures; degraded
// enrichment and non-critical persistence problems are absorbed below
// this layer.
package traveltools

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

// errorEnvelope is the uniform failure payload. The transport marks the
// result as an error; the envelope carries the detail.
type errorEnvelope struct {
	Error     string `json:"error"`
	Tool      string `json:"tool"`
	Timestamp string `json:"timestamp"`
}

// errorResult wraps err in the error envelope for the named tool.
func errorResult(tool string, err error) *mcp.CallToolResult {
	env := errorEnvelope{
		Error:     err.Error(),
		Tool:      tool,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	body, mErr := json.Marshal(env)
	if mErr != nil {
		return mcp.NewToolResultError(err.Error())
	}
	return mcp.NewToolResultError(string(body))
}

// jsonResult serializes a success payload.
func jsonResult(tool string, v any) *mcp.CallToolResult {
	body, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult(tool, fmt.Errorf("encode response: %w", err))
	}
	return mcp.NewToolResultText(string(body))
}

// intArg extracts an integer argument, returning defaultVal if the key
// is missing or not a number (JSON numbers are float64).
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

// floatArg extracts a float argument.
func floatArg(req mcp.CallToolRequest, key string, defaultVal float64) float64 {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return v
}

// boolArg extracts a boolean argument.
func boolArg(req mcp.CallToolRequest, key string, defaultVal bool) bool {
	v, ok := req.GetArguments()[key].(bool)
	if !ok {
		return defaultVal
	}
	return v
}

// stringSliceArg extracts a string-array argument, skipping non-string
// elements.
func stringSliceArg(req mcp.CallToolRequest, key string) []string {
	raw, ok := req.GetArguments()[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

// objArg extracts a nested object argument.
func objArg(req mcp.CallToolRequest, key string) map[string]any {
	m, _ := req.GetArguments()[key].(map[string]any)
	return m
}

// objString reads a string field from a nested object.
func objString(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

// objStringSlice reads a string-array field from a nested object.
func objStringSlice(m map[string]any, key string) []string {
	raw, ok := m[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}
