package neon

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Feature describes a best-effort auxiliary URL lookup. FallbackPath,
// when set, is tried exactly once if the primary path 404s — the
// provider has renamed these paths across API versions. URLFields is
// the ordered list of response fields that may carry the URL; the first
// one present wins.
type Feature struct {
	Name         string
	PrimaryPath  string
	FallbackPath string
	URLFields    []string
}

// AuthGatewayFeature looks up the Neon Auth gateway URL for a project.
func AuthGatewayFeature(projectID string) Feature {
	return Feature{
		Name:         "neon-auth",
		PrimaryPath:  fmt.Sprintf("/projects/%s/auth/integrations", projectID),
		FallbackPath: fmt.Sprintf("/projects/%s/auth/integration", projectID),
		URLFields:    []string{"auth_gateway_url", "auth_provider_url", "url"},
	}
}

// DataAPIFeature looks up the Data API URL for a branch database.
func DataAPIFeature(projectID, branchID, database string) Feature {
	return Feature{
		Name:         "data-api",
		PrimaryPath:  fmt.Sprintf("/projects/%s/branches/%s/databases/%s/data_api", projectID, branchID, database),
		FallbackPath: fmt.Sprintf("/projects/%s/branches/%s/data_api", projectID, branchID),
		URLFields:    []string{"url", "host", "endpoint"},
	}
}

// FetchFeatureURL performs the lookup. It never fails the caller: a
// disabled feature, an unrecognized response shape, or an API error all
// come back as ("", enabled) with a logged notice.
func (c *Client) FetchFeatureURL(f Feature) (string, bool) {
	status, body, err := c.Request("GET", f.PrimaryPath, nil)
	if err != nil {
		c.logger.Warn("feature lookup failed", "feature", f.Name, "error", err)
		return "", false
	}

	if status == http.StatusNotFound && f.FallbackPath != "" {
		status, body, err = c.Request("GET", f.FallbackPath, nil)
		if err != nil {
			c.logger.Warn("feature lookup failed", "feature", f.Name, "error", err)
			return "", false
		}
	}

	switch status {
	case http.StatusOK:
		if url := firstURLField(body, f.URLFields); url != "" {
			return url, true
		}
		c.logger.Info("feature enabled but no URL available", "feature", f.Name)
		return "", true
	case http.StatusNotFound:
		c.logger.Info("feature not enabled", "feature", f.Name)
		return "", false
	default:
		c.logger.Warn("feature lookup returned unexpected status",
			"feature", f.Name, "status", status, "message", messageField(body))
		return "", false
	}
}

func firstURLField(body []byte, fields []string) string {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	for _, field := range fields {
		if value, ok := payload[field].(string); ok && value != "" {
			return value
		}
	}
	return ""
}

func messageField(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Message
}
