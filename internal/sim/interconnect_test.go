package sim

import "testing"

func interconnectParams(t *testing.T, topo int, nodes float64) *Params {
	t.Helper()
	p := NewParams(Interconnect{}.Definition().Params)
	p.Set("topology", float64(topo))
	p.Set("node_count", nodes)
	return p
}

func TestInterconnect_RingLatencyEightNodes(t *testing.T) {
	m := Interconnect{}.Compute(interconnectParams(t, TopologyRing, 8))
	latency, ok := m.Value("latency_steps")
	if !ok || latency != 7 {
		t.Errorf("ring(8) latency_steps = %v, want 7", latency)
	}
}

func TestInterconnect_RingConnectionsWrapAround(t *testing.T) {
	m := Interconnect{}.Compute(interconnectParams(t, TopologyRing, 8))
	if len(m.Connections) != 8 {
		t.Fatalf("ring(8) connections = %d, want 8", len(m.Connections))
	}
	last := m.Connections[len(m.Connections)-1]
	if last != [2]int{7, 0} {
		t.Errorf("last ring link = %v, want wrap-around {7 0}", last)
	}
}

func TestInterconnect_LinkCounts(t *testing.T) {
	tests := []struct {
		topo  int
		nodes float64
		links int
	}{
		{TopologyBus, 8, 7},
		{TopologyRing, 8, 8},
		{TopologyStar, 8, 7},
		{TopologyMesh, 8, 28},
		{TopologyMesh, 2, 1},
		{TopologyStar, 2, 1},
	}
	for _, tt := range tests {
		m := Interconnect{}.Compute(interconnectParams(t, tt.topo, tt.nodes))
		links, _ := m.Value("links")
		if int(links) != tt.links {
			t.Errorf("topo=%d n=%v links = %v, want %d", tt.topo, tt.nodes, links, tt.links)
		}
		if len(m.Connections) != tt.links {
			t.Errorf("topo=%d n=%v len(Connections) = %d, want %d", tt.topo, tt.nodes, len(m.Connections), tt.links)
		}
	}
}

func TestInterconnect_LatencyMonotoneInNodes(t *testing.T) {
	// Latency must be non-decreasing in node count for every topology.
	for topo := TopologyBus; topo <= TopologyMesh; topo++ {
		prev := -1.0
		for n := 2.0; n <= 16; n++ {
			m := Interconnect{}.Compute(interconnectParams(t, topo, n))
			latency, _ := m.Value("latency_steps")
			if latency < prev {
				t.Errorf("topo=%d: latency decreased from %v to %v at n=%v", topo, prev, latency, n)
			}
			prev = latency
		}
	}
}

func TestInterconnect_NodeCountClamped(t *testing.T) {
	p := interconnectParams(t, TopologyMesh, -5)
	if p.Get("node_count") != 2 {
		t.Errorf("node_count = %v, want clamped to 2", p.Get("node_count"))
	}
	m := Interconnect{}.Compute(p)
	if len(m.Connections) != 1 {
		t.Errorf("mesh(min) connections = %d, want 1", len(m.Connections))
	}
}
