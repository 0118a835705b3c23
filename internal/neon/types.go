package neon

// BranchIDPrefix is the shape of every Neon branch ID. Anything that
// doesn't carry it is treated as a human-chosen branch name.
const BranchIDPrefix = "br-"

type Branch struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ParentID  string `json:"parent_id,omitempty"`
	ExpiresAt string `json:"expires_at,omitempty"`

	// Created reports whether this resolution created the branch, as
	// opposed to reusing one that already existed under the same name.
	Created bool `json:"-"`
}

const (
	EndpointReadWrite = "read_write"
	EndpointReadOnly  = "read_only"
)

type Endpoint struct {
	ID   string `json:"id"`
	Host string `json:"host"`
	Type string `json:"type"`
}

// ConnectionInfo is the credential bundle derived for a resolved branch.
// DirectURL and PooledURL differ only in host.
type ConnectionInfo struct {
	BranchID   string
	Host       string
	PooledHost string
	Role       string
	Password   string
	Database   string
	DirectURL  string
	PooledURL  string
}
