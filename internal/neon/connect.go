package neon

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DeriveConnection fetches the branch's read-write endpoint and role
// password and assembles the direct and pooled connection strings.
// passwordOverride, when non-empty, is used verbatim instead of asking
// the provider.
func (c *Client) DeriveConnection(projectID, branchID, role, database, passwordOverride string) (*ConnectionInfo, error) {
	endpoint, err := c.branchEndpoint(projectID, branchID)
	if err != nil {
		return nil, err
	}

	password := passwordOverride
	if password == "" {
		password, err = c.revealPassword(projectID, branchID, role)
		if err != nil {
			return nil, err
		}
	}

	pooledHost := PooledHost(endpoint.Host, endpoint.ID)

	return &ConnectionInfo{
		BranchID:   branchID,
		Host:       endpoint.Host,
		PooledHost: pooledHost,
		Role:       role,
		Password:   password,
		Database:   database,
		DirectURL:  connectionURL(role, password, endpoint.Host, database),
		PooledURL:  connectionURL(role, password, pooledHost, database),
	}, nil
}

func (c *Client) branchEndpoint(projectID, branchID string) (*Endpoint, error) {
	resp, err := c.RequestOrFail("GET", fmt.Sprintf("/projects/%s/branches/%s/endpoints", projectID, branchID), nil)
	if err != nil {
		return nil, fmt.Errorf("fetching endpoints: %w", err)
	}

	var response struct {
		Endpoints []Endpoint `json:"endpoints"`
	}
	if err := json.Unmarshal(resp, &response); err != nil {
		return nil, fmt.Errorf("parsing endpoints response: %w", err)
	}
	for _, endpoint := range response.Endpoints {
		if endpoint.Type != EndpointReadWrite {
			continue
		}
		if endpoint.Host == "" {
			break
		}
		return &endpoint, nil
	}
	return nil, fmt.Errorf("%w: branch %s", ErrNoEndpoint, branchID)
}

func (c *Client) revealPassword(projectID, branchID, role string) (string, error) {
	resp, err := c.RequestOrFail("GET", fmt.Sprintf("/projects/%s/branches/%s/roles/%s/reveal_password", projectID, branchID, role), nil)
	if err != nil {
		return "", fmt.Errorf("revealing password for role %s: %w", role, err)
	}

	var response struct {
		Password *string `json:"password"`
	}
	if err := json.Unmarshal(resp, &response); err != nil {
		return "", fmt.Errorf("parsing reveal_password response: %w", err)
	}
	if response.Password == nil || *response.Password == "" {
		return "", fmt.Errorf("%w for role %s: the project likely has password storage disabled; enable it in project settings or pass an explicit password", ErrPasswordUnavailable, role)
	}
	return *response.Password, nil
}

// PooledHost derives the pooler endpoint host from the direct one by
// rewriting the endpoint ID inside the hostname to "<id>-pooler". Neon
// hostnames embed the endpoint ID verbatim; if that naming scheme ever
// changes this is the only place that needs to follow.
func PooledHost(host, endpointID string) string {
	return strings.ReplaceAll(host, endpointID, endpointID+"-pooler")
}

func connectionURL(role, password, host, database string) string {
	return fmt.Sprintf("postgresql://%s:%s@%s/%s?sslmode=require", role, encodePassword(password), host, database)
}

// encodePassword percent-encodes a password for the userinfo segment of
// a connection URL. Every byte outside the RFC 3986 unreserved set is
// encoded, so decoding always round-trips the original exactly.
func encodePassword(password string) string {
	var b strings.Builder
	for i := 0; i < len(password); i++ {
		ch := password[i]
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9',
			ch == '-', ch == '.', ch == '_', ch == '~':
			b.WriteByte(ch)
		default:
			fmt.Fprintf(&b, "%%%02X", ch)
		}
	}
	return b.String()
}
