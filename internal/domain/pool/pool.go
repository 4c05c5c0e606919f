// Package pool holds the Pool shape mirrored from the external pool-manager
// service (§6 glossary: "Pool") and the tagged node-group variant Design
// Notes §9 calls for in place of the source's runtime-typed union.
package pool

// NodeGroupKind discriminates the two node-group shapes a pool may report.
type NodeGroupKind string

const (
	KindCloud NodeGroupKind = "Cloud"
	KindLocal NodeGroupKind = "Local"
)

// NodeGroup is a closed sum: exactly one of Cloud/Local is populated,
// selected by Kind. Cloud groups specify per-node sizing for the platform's
// autoscaler; Local groups (on-prem/demo deployments) specify only a count
// over a fixed-size node.
type NodeGroup struct {
	Kind  NodeGroupKind `json:"kind"`
	Cloud *CloudGroup   `json:"cloud,omitempty"`
	Local *LocalGroup   `json:"local,omitempty"`
}

// CloudGroup is the Cloud half of the NodeGroup sum.
type CloudGroup struct {
	NodeCPU   int `json:"node_cpu"`
	NodeRAM   int `json:"node_ram"`
	NodeCount int `json:"node_count"`
}

// LocalGroup is the Local half of the NodeGroup sum.
type LocalGroup struct {
	NodeCount int `json:"node_count"`
}

// Valid reports whether the NodeGroup has exactly the variant its Kind
// names populated.
func (g NodeGroup) Valid() bool {
	switch g.Kind {
	case KindCloud:
		return g.Cloud != nil && g.Local == nil
	case KindLocal:
		return g.Local != nil && g.Cloud == nil
	default:
		return false
	}
}

// Resources is the per-revision resource ceiling a pool enforces, read by
// the revision-start precondition checks in §4.3.
type Resources struct {
	FuzzerMaxCPU       int `json:"fuzzer_max_cpu"`
	FuzzerMaxRAM       int `json:"fuzzer_max_ram"`
	FuzzerMaxTmpfsSize int `json:"fuzzer_max_tmpfs_size"`
	PoolMaxCPU         int `json:"pool_max_cpu"`
	PoolMaxRAM         int `json:"pool_max_ram"`
}

// Pool is the external pool-manager's authoritative record, as returned by
// its lookup API; the gateway never persists it, only Project.PoolID.
type Pool struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	NodeGroups []NodeGroup `json:"node_groups"`
	Resources  Resources   `json:"resources"`
}

// CreateInput is the request payload for registering a pool with the
// external pool-manager.
type CreateInput struct {
	Name       string      `json:"name" validate:"required,max=100"`
	OwnerID    string      `json:"owner_id" validate:"required"`
	NodeGroups []NodeGroup `json:"node_groups" validate:"required,min=1,dive"`
	Resources  Resources   `json:"resources"`
}

// FitsRevision reports whether cpu/ram/tmpfs_size lie within this pool's
// fuzzer resource ceiling and ram+tmpfs stays within fuzzer_max_ram (§4.3
// precondition 5).
func (p Pool) FitsRevision(cpu, ram, tmpfsSize int) bool {
	r := p.Resources
	if cpu > r.FuzzerMaxCPU || ram > r.FuzzerMaxRAM || tmpfsSize > r.FuzzerMaxTmpfsSize {
		return false
	}

	return ram+tmpfsSize <= r.FuzzerMaxRAM
}
