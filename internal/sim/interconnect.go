package sim

// Interconnect topologies, indexed by the topology enum parameter.
const (
	TopologyBus = iota
	TopologyRing
	TopologyStar
	TopologyMesh
)

// Interconnect models link count, worst-case hop latency and aggregate
// bandwidth for the four classic interconnect topologies.
type Interconnect struct{}

func (Interconnect) Definition() Definition {
	return Definition{
		ID:      "interconnect",
		Title:   "Network Interconnect Design",
		Tagline: "Latency, links, and what a topology costs",
		Params: []ParamSpec{
			{Name: "node_count", Label: "Node count", Unit: "", Min: 2, Max: 16, Step: 1, Default: 8},
			{
				Name: "topology", Label: "Topology", Unit: "",
				Min: 0, Max: 3, Step: 1, Default: float64(TopologyRing),
				Enum: []string{"bus", "ring", "star", "mesh"},
			},
			{Name: "link_bandwidth", Label: "Link bandwidth", Unit: "Gb/s", Min: 1, Max: 100, Step: 1, Default: 10},
		},
		Gates:         GateSpec{MinTrials: 3},
		PassThreshold: 7,
	}
}

func (Interconnect) Compute(p *Params) Metrics {
	n := int(p.Get("node_count"))
	if n < 2 {
		n = 2
	}
	topo := int(p.Get("topology"))
	bw := p.Get("link_bandwidth")

	conns := Connections(topo, n)
	links := len(conns)
	latency := latencySteps(topo, n)

	return Metrics{
		Items: []Metric{
			{Name: "latency_steps", Label: "Worst-case latency", Unit: "hops", Value: float64(latency)},
			{Name: "links", Label: "Links", Unit: "", Value: float64(links)},
			{Name: "aggregate_bandwidth", Label: "Aggregate bandwidth", Unit: "Gb/s", Value: float64(links) * bw},
			{Name: "cost_units", Label: "Wiring cost", Unit: "units", Value: float64(links)},
			{Name: "bandwidth_per_node", Label: "Bandwidth per node", Unit: "Gb/s", Value: finite(float64(links)*bw/float64(n), 0)},
		},
		Connections: conns,
	}
}

// latencySteps is the worst-case hop count between any two nodes.
func latencySteps(topo, n int) int {
	switch topo {
	case TopologyBus:
		return n - 1
	case TopologyRing:
		return n - 1 // one-directional traversal
	case TopologyStar:
		return 2 // leaf → hub → leaf
	case TopologyMesh:
		return 1
	default:
		return n - 1
	}
}

// Connections returns each topology's node index pairs. Ring wraps
// around: n nodes yield n adjacent-pair links.
func Connections(topo, n int) [][2]int {
	if n < 2 {
		n = 2
	}
	var conns [][2]int
	switch topo {
	case TopologyBus:
		for i := 0; i < n-1; i++ {
			conns = append(conns, [2]int{i, i + 1})
		}
	case TopologyRing:
		for i := 0; i < n; i++ {
			conns = append(conns, [2]int{i, (i + 1) % n})
		}
	case TopologyStar:
		// Node 0 is the hub.
		for i := 1; i < n; i++ {
			conns = append(conns, [2]int{0, i})
		}
	case TopologyMesh:
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				conns = append(conns, [2]int{i, j})
			}
		}
	}
	return conns
}
