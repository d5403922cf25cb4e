// Package planner produces the size and cost estimates the host planner
// asks for before it selects the foreign-scan path.
package planner

import (
	"github.com/google/uuid"

	"github.com/guileen/sqlitefdw/options"
)

// RelSize is the estimated size of the foreign relation
type RelSize struct {
	Rows float64
}

// PathCost is the cost pair attached to a candidate scan path
type PathCost struct {
	StartupCost float64
	TotalCost   float64
}

// ScanPath is the opaque plan-time descriptor handed back to the host for
// a chosen foreign scan
type ScanPath struct {
	ID     uuid.UUID
	Table  string
	Rows   float64
	Cost   PathCost
	Config options.ScanConfig
}

// EstimateRelSize estimates the relation size for the given scan config.
// No statistics are gathered from the embedded engine, so the estimate is
// always zero rows. This is a placeholder contract, not a model to tune:
// the host only needs the call to happen before EstimatePath.
func EstimateRelSize(cfg options.ScanConfig) RelSize {
	return RelSize{Rows: 0}
}

// EstimatePath derives the cost pair from a relation size estimate
func EstimatePath(rel RelSize) PathCost {
	startupCost := 0.0
	totalCost := startupCost + rel.Rows

	return PathCost{
		StartupCost: startupCost,
		TotalCost:   totalCost,
	}
}

// BuildScanPath runs the two estimate steps in the order the host imposes
// (size first, then cost) and wraps the result in a path descriptor.
func BuildScanPath(cfg options.ScanConfig) *ScanPath {
	rel := EstimateRelSize(cfg)
	cost := EstimatePath(rel)

	return &ScanPath{
		ID:     uuid.New(),
		Table:  cfg.TableName,
		Rows:   rel.Rows,
		Cost:   cost,
		Config: cfg,
	}
}
