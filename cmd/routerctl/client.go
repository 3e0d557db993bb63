package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// apiResponse mirrors pkg/api/rest's wire shape for a /v1/router reply.
type apiResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// dispatch sets fields["action"] to action (allocating fields if nil),
// posts them to addr/v1/router, and decodes the response.
func dispatch(addr, action string, fields map[string]any) (apiResponse, error) {
	if fields == nil {
		fields = map[string]any{}
	}
	fields["action"] = action

	body, err := json.Marshal(fields)
	if err != nil {
		return apiResponse{}, fmt.Errorf("encode request: %w", err)
	}

	resp, err := httpClient.Post(addr+"/v1/router", "application/json", bytes.NewReader(body))
	if err != nil {
		return apiResponse{}, fmt.Errorf("request routerd at %s: %w", addr, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return apiResponse{}, fmt.Errorf("read response: %w", err)
	}

	var result apiResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return apiResponse{}, fmt.Errorf("decode response: %w", err)
	}
	return result, nil
}

// routeInfo mirrors router.Info for decoding the "get" action's Data.
type routeInfo struct {
	Name     string `json:"Name"`
	Priority int    `json:"Priority"`
	Target   string `json:"Target"`
}

func decodeRoutes(data any) ([]routeInfo, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	var routes []routeInfo
	if err := json.Unmarshal(raw, &routes); err != nil {
		return nil, err
	}
	return routes, nil
}

func marshalIndent(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
