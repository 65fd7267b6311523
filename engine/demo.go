package engine

import (
	"github.com/spaghettifunk/polymesh/engine/core"
	"github.com/spaghettifunk/polymesh/engine/mesh"
	"github.com/spaghettifunk/polymesh/engine/topology"
	"github.com/spaghettifunk/polymesh/testbed"
	"golang.org/x/exp/slices"
)

// Demo runs the import pipeline over the built-in fixture meshes instead of
// files and returns their reports ordered by name.
func (e *Engine) Demo() ([]*Report, error) {
	fixtures := testbed.All()
	names := make([]string, 0, len(fixtures))
	for name := range fixtures {
		names = append(names, name)
	}
	slices.Sort(names)

	reports := make([]*Report, 0, len(names))
	for _, name := range names {
		m, err := mesh.NewPolyMeshFromAsset(fixtures[name])
		if err != nil {
			return nil, err
		}
		if err := m.Validate(); err != nil {
			return nil, err
		}
		if e.config.Normals.Recalculate {
			topology.RecalculateNormals(m)
		}
		report := Analyze(m)
		reports = append(reports, report)
		core.LogInfo("\n%s", report)

		if e.application.FnOnImport != nil {
			if err := e.application.FnOnImport("testbed:"+name, m, report); err != nil {
				return reports, err
			}
		}
	}

	for _, kind := range core.MetricsCacheNames() {
		cm := core.MetricsCache(kind)
		core.LogDebug("cache %s: %d hits, %d misses, %.3fms average rebuild",
			kind, cm.Hits, cm.Misses, core.MetricsRebuildAverage(kind))
	}
	return reports, nil
}
