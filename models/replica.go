package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	managedReplicaInfix = "-replica-auto-"

	InstanceStatePendingCreate = "PENDING_CREATE"
	InstanceStatePendingDelete = "PENDING_DELETE"
	InstanceStateRunnable      = "RUNNABLE"
)

// ReplicaRecord is one live read replica as observed at the start of a pass.
type ReplicaRecord struct {
	Name                string    `json:"name"`
	PrimaryName         string    `json:"primary_name"`
	CreatedAt           time.Time `json:"created_at"`
	ManagedByController bool      `json:"managed_by_controller"`
	State               string    `json:"state,omitempty"`
}

// InstanceRef identifies an instance as project:instance, the form Cloud SQL
// uses for master instance references.
type InstanceRef struct {
	Project  string
	Instance string
}

func (r InstanceRef) String() string {
	if r.Project == "" {
		return r.Instance
	}
	return r.Project + ":" + r.Instance
}

// ParseInstanceRef splits a "project:instance" reference. A reference without
// a project part yields an empty Project.
func ParseInstanceRef(ref string) InstanceRef {
	idx := strings.LastIndex(ref, ":")
	if idx < 0 {
		return InstanceRef{Instance: ref}
	}
	return InstanceRef{Project: ref[:idx], Instance: ref[idx+1:]}
}

// Matches compares two references field by field. An empty project on the
// observed side only matches when the expected side has none either.
func (r InstanceRef) Matches(other InstanceRef) bool {
	return r.Project == other.Project && r.Instance == other.Instance
}

// ManagedReplicaName returns the name of the index-th replica created by the
// autoscaler for the given primary.
func ManagedReplicaName(primary string, index int) string {
	return fmt.Sprintf("%s%s%d", primary, managedReplicaInfix, index)
}

// ParseManagedReplicaIndex extracts the index from a name produced by
// ManagedReplicaName. The suffix must be a canonical positive decimal
// integer; anything else is not a managed name.
func ParseManagedReplicaIndex(primary, name string) (int, bool) {
	prefix := primary + managedReplicaInfix
	if primary == "" || !strings.HasPrefix(name, prefix) {
		return 0, false
	}
	suffix := name[len(prefix):]
	if suffix == "" || suffix[0] == '0' {
		return 0, false
	}
	for _, c := range suffix {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	index, err := strconv.Atoi(suffix)
	if err != nil || index <= 0 {
		return 0, false
	}
	return index, true
}

// IsManagedReplica reports whether a replica was created by the autoscaler
// for the given primary: the name must parse as a managed name and the
// master reference must equal the primary exactly.
func IsManagedReplica(primary InstanceRef, name string, masterRef InstanceRef) bool {
	if !masterRef.Matches(primary) {
		return false
	}
	_, ok := ParseManagedReplicaIndex(primary.Instance, name)
	return ok
}
