package domain

// GraphNode is an address placed in a traversal. Hop 0 is the subject only.
type GraphNode struct {
	Address string `json:"address"`
	Hop     int    `json:"hop"`
}

// GraphEdge aggregates interactions between two addresses.
// Hop is the traversal round in which the edge was first discovered.
type GraphEdge struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Count int    `json:"count"`
	Hop   int    `json:"hop"`
}

// Graph is the 1-hop interaction graph around a subject.
// Nodes starts with the subject.
type Graph struct {
	Subject string      `json:"wallet"`
	Nodes   []string    `json:"nodes"`
	Edges   []GraphEdge `json:"edges"`
}

// NodeError records a node whose expansion fetch failed.
type NodeError struct {
	Address string `json:"address"`
	Hop     int    `json:"hop"`
	Error   string `json:"error"`
}

// MultiHopGraph is the layered graph produced by breadth-first expansion.
type MultiHopGraph struct {
	Subject string      `json:"wallet"`
	MaxHops int         `json:"hops"`
	Nodes   []GraphNode `json:"nodes"`
	Edges   []GraphEdge `json:"edges"`
	Errors  []NodeError `json:"errors,omitempty"`
}
