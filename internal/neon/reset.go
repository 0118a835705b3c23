package neon

import (
	"fmt"
	"strings"
)

// ResetBranch re-points a branch at the current state of its parent.
// ref may be a branch ID or name; parent, when non-empty, selects a
// different parent (by name or ID) for the reset. With no parent the
// provider resets to the branch's existing parent.
func (c *Client) ResetBranch(projectID, ref, parent string) error {
	branchID := ref
	if !strings.HasPrefix(ref, BranchIDPrefix) {
		branch, err := c.FindBranch(projectID, ref)
		if err != nil {
			return err
		}
		if branch == nil {
			return fmt.Errorf("%w: %q", ErrBranchNotFound, ref)
		}
		branchID = branch.ID
	}

	var body any
	if parent != "" {
		parentBranch, err := c.FindBranch(projectID, parent)
		if err != nil {
			return err
		}
		if parentBranch == nil {
			return fmt.Errorf("%w: %q", ErrParentNotFound, parent)
		}
		body = map[string]string{"parent_id": parentBranch.ID}
	}

	status, respBody, err := c.Request("POST", fmt.Sprintf("/projects/%s/branches/%s/reset", projectID, branchID), body)
	if err != nil {
		return fmt.Errorf("resetting branch %s: %w", branchID, err)
	}
	if status < 200 || status >= 300 {
		return fmt.Errorf("%w: branch %s: status %d: %s", ErrResetFailed, branchID, status, string(respBody))
	}

	c.logger.Info("reset branch", "id", branchID)
	return nil
}
