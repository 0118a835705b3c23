package neon

import (
	"encoding/json"
	"fmt"
	"net/url"
	"time"
)

// timeNow is swapped out by tests that need a fixed clock.
var timeNow = time.Now

// ResolveOptions describe the branch a CI run wants. Name may be empty,
// in which case one is derived from the CI identifiers (see BranchName).
type ResolveOptions struct {
	Name       string
	Parent     string // parent branch name or ID, optional
	TTLSeconds int
	SchemaOnly bool
}

// BranchName picks the branch name for a run. An explicit name is used
// verbatim. Otherwise the CI workflow ID (or a timestamped fallback)
// is used, with the shard index appended so parallel shards of one run
// get distinct names.
func BranchName(explicit, workflowID, nodeIndex string) string {
	if explicit != "" {
		return explicit
	}
	name := workflowID
	if name == "" {
		name = "ci-run-" + timeNow().UTC().Format("20060102150405")
	}
	if nodeIndex != "" {
		name = fmt.Sprintf("%s-%s", name, nodeIndex)
	}
	return name
}

// ResolveBranch finds the branch named in opts or creates it. Repeated
// calls with the same name reuse the existing branch rather than
// creating duplicates; reuse is reported through Branch.Created.
func (c *Client) ResolveBranch(projectID string, opts ResolveOptions) (*Branch, error) {
	existing, err := c.findBranchByName(projectID, opts.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		c.logger.Info("reusing existing branch", "name", existing.Name, "id", existing.ID)
		return existing, nil
	}

	var parentID string
	if opts.Parent != "" {
		parent, err := c.FindBranch(projectID, opts.Parent)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, fmt.Errorf("%w: %q", ErrParentNotFound, opts.Parent)
		}
		parentID = parent.ID
	}

	var expiresAt string
	if opts.TTLSeconds > 0 {
		expiresAt = timeNow().UTC().Add(time.Duration(opts.TTLSeconds) * time.Second).Format(time.RFC3339)
	}

	branch, err := c.createBranch(projectID, opts.Name, parentID, expiresAt, opts.SchemaOnly)
	if err != nil {
		return nil, err
	}
	c.logger.Info("created branch", "name", opts.Name, "id", branch.ID)
	return branch, nil
}

// findBranchByName resolves a branch by exact name. The search endpoint
// matches substrings, so results are filtered back down to equality. If
// the provider ever returns several exact matches the first one in
// response order wins.
func (c *Client) findBranchByName(projectID, name string) (*Branch, error) {
	branches, err := c.searchBranches(projectID, name)
	if err != nil {
		return nil, err
	}
	for _, branch := range branches {
		if branch.Name == name {
			return &branch, nil
		}
	}
	return nil, nil
}

// FindBranch matches a branch by exact name or exact ID. A nil branch
// with a nil error means nothing matched.
func (c *Client) FindBranch(projectID, ref string) (*Branch, error) {
	branches, err := c.searchBranches(projectID, ref)
	if err != nil {
		return nil, err
	}
	for _, branch := range branches {
		if branch.Name == ref || branch.ID == ref {
			return &branch, nil
		}
	}
	return nil, nil
}

// ListBranches returns every branch in the project.
func (c *Client) ListBranches(projectID string) ([]Branch, error) {
	return c.searchBranches(projectID, "")
}

func (c *Client) searchBranches(projectID, query string) ([]Branch, error) {
	path := fmt.Sprintf("/projects/%s/branches", projectID)
	if query != "" {
		path += "?search=" + url.QueryEscape(query)
	}

	resp, err := c.RequestOrFail("GET", path, nil)
	if err != nil {
		return nil, fmt.Errorf("searching branches: %w", err)
	}

	var response struct {
		Branches []Branch `json:"branches"`
	}
	if err := json.Unmarshal(resp, &response); err != nil {
		return nil, fmt.Errorf("parsing branches response: %w", err)
	}
	return response.Branches, nil
}

type createBranchRequest struct {
	Branch struct {
		Name       string `json:"name"`
		ParentID   string `json:"parent_id,omitempty"`
		ExpiresAt  string `json:"expires_at,omitempty"`
		InitSource string `json:"init_source,omitempty"`
	} `json:"branch"`
	Endpoints []struct {
		Type string `json:"type"`
	} `json:"endpoints"`
}

func (c *Client) createBranch(projectID, name, parentID, expiresAt string, schemaOnly bool) (*Branch, error) {
	var req createBranchRequest
	req.Branch.Name = name
	req.Branch.ParentID = parentID
	req.Branch.ExpiresAt = expiresAt
	if schemaOnly {
		req.Branch.InitSource = "schema-only"
	}
	req.Endpoints = []struct {
		Type string `json:"type"`
	}{{Type: EndpointReadWrite}}

	resp, err := c.RequestOrFail("POST", fmt.Sprintf("/projects/%s/branches", projectID), req)
	if err != nil {
		return nil, fmt.Errorf("creating branch: %w", err)
	}

	var response struct {
		Branch Branch `json:"branch"`
	}
	if err := json.Unmarshal(resp, &response); err != nil {
		return nil, fmt.Errorf("parsing create branch response: %w", err)
	}
	if response.Branch.ID == "" {
		return nil, fmt.Errorf("%w: response carried no branch id", ErrBranchCreate)
	}

	branch := response.Branch
	branch.Created = true
	return &branch, nil
}
