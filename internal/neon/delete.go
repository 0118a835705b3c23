package neon

import (
	"fmt"
	"net/http"
)

// DeleteBranch removes a branch. A 404 counts as success: the branch is
// already gone, which is the end state the caller wanted (TTL expiry or
// an earlier manual delete may have beaten us to it).
func (c *Client) DeleteBranch(projectID, branchID string) error {
	status, body, err := c.Request("DELETE", fmt.Sprintf("/projects/%s/branches/%s", projectID, branchID), nil)
	if err != nil {
		return fmt.Errorf("deleting branch %s: %w", branchID, err)
	}

	if status == http.StatusNotFound {
		c.logger.Info("branch already deleted", "id", branchID)
		return nil
	}
	if status < 200 || status >= 300 {
		return fmt.Errorf("%w: branch %s: status %d: %s", ErrDeleteFailed, branchID, status, string(body))
	}
	return nil
}
