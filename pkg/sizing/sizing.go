// Package sizing translates core counts into nodes, islands and queues of a
// target cluster.
package sizing

import (
	"errors"
	"fmt"
)

var ErrNodeCeiling = errors.New("node limit exceeded")

// RequiredNodes is ceil(cores/tasksPerNode), at least 1.
func RequiredNodes(cores, tasksPerNode int) int {
	if tasksPerNode <= 0 {
		return 1
	}
	return max(1, (cores+tasksPerNode-1)/tasksPerNode)
}

// Cluster is the topology and queue layout of a batch system.
type Cluster interface {
	Name() string
	DefaultTasksPerNode() int
	RequiredIslands(nodes int) int
	Queue(nodes int, test bool) (string, error)
}

// SuperMUC is SuperMUC-NG at LRZ.
type SuperMUC struct{}

func (SuperMUC) Name() string             { return "supermuc" }
func (SuperMUC) DefaultTasksPerNode() int { return 48 }

func (SuperMUC) RequiredIslands(nodes int) int {
	if nodes > 768 {
		return 2
	}
	return 1
}

func (SuperMUC) Queue(nodes int, test bool) (string, error) {
	switch {
	case nodes <= 16:
		if test {
			return "test", nil
		}
		return "micro", nil
	case nodes <= 768:
		return "general", nil
	default:
		return "large", nil
	}
}

// HoreKa is HoreKa at KIT.
type HoreKa struct{}

const horekaMaxNodes = 192

func (HoreKa) Name() string                  { return "horeka" }
func (HoreKa) DefaultTasksPerNode() int      { return 76 }
func (HoreKa) RequiredIslands(nodes int) int { return 1 }

func (HoreKa) Queue(nodes int, test bool) (string, error) {
	switch {
	case nodes <= 12:
		if test {
			return "dev_cpuonly", nil
		}
		return "cpuonly", nil
	case nodes <= horekaMaxNodes:
		return "cpuonly", nil
	default:
		return "", fmt.Errorf("%w: cannot use more than %d compute nodes on HoreKa, requested %d", ErrNodeCeiling, horekaMaxNodes, nodes)
	}
}

// Generic is a placeholder cluster for hand-edited job files.
type Generic struct{}

func (Generic) Name() string                               { return "generic-job-file" }
func (Generic) DefaultTasksPerNode() int                   { return 1 }
func (Generic) RequiredIslands(nodes int) int              { return 1 }
func (Generic) Queue(nodes int, test bool) (string, error) { return "generic_partition", nil }
