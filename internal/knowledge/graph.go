package knowledge

import (
	"fmt"
	"math"
	"strings"
	"unicode"
)

// Graph is an entity co-occurrence graph extracted from free text. Nodes carry
// a degree-centrality score so the frontend can size them.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// Node is a single extracted entity.
type Node struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	Group string  `json:"group"`
	Score float64 `json:"score"`
}

// Link is a sentence-level co-occurrence edge between two entities.
type Link struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Weight int    `json:"weight"`
}

const maxEntities = 60

// Builder extracts entities and builds co-occurrence graphs. It is stateless;
// the zero value is usable.
type Builder struct{}

// Build extracts capitalized-phrase entities from text and links entities that
// co-occur within the same sentence. Deterministic for a given input; empty
// text yields an empty graph.
func (Builder) Build(text string) Graph {
	ents := extractEntities(text, maxEntities)
	if len(ents) == 0 {
		return Graph{Nodes: []Node{}, Links: []Link{}}
	}

	nodes := make([]Node, 0, len(ents))
	idFor := make(map[string]string, len(ents))
	for i, e := range ents {
		nid := fmt.Sprintf("n%d", i)
		idFor[e] = nid
		nodes = append(nodes, Node{ID: nid, Label: e, Group: "ENT"})
	}

	// Co-occurrence counts per sentence.
	type pair struct{ a, b string }
	co := make(map[pair]int)
	for _, sent := range strings.Split(text, ".") {
		sent = strings.TrimSpace(sent)
		if sent == "" {
			continue
		}
		var found []string
		for _, e := range ents {
			if strings.Contains(sent, e) {
				found = append(found, e)
			}
		}
		for i := 0; i < len(found); i++ {
			for j := i + 1; j < len(found); j++ {
				a, b := idFor[found[i]], idFor[found[j]]
				if a > b {
					a, b = b, a
				}
				co[pair{a, b}]++
			}
		}
	}

	links := make([]Link, 0, len(co))
	degree := make(map[string]int, len(nodes))
	for _, n := range nodes {
		// Stable link order: walk node pairs rather than ranging over the map.
		for _, m := range nodes {
			if n.ID >= m.ID {
				continue
			}
			if w, ok := co[pair{n.ID, m.ID}]; ok {
				links = append(links, Link{Source: n.ID, Target: m.ID, Weight: w})
				degree[n.ID]++
				degree[m.ID]++
			}
		}
	}

	// Degree centrality: degree / (n-1), attached as the node score.
	if len(nodes) > 1 {
		denom := float64(len(nodes) - 1)
		for i := range nodes {
			nodes[i].Score = round3(float64(degree[nodes[i].ID]) / denom)
		}
	}

	return Graph{Nodes: nodes, Links: links}
}

// MeanDegreeCentrality returns the average degree centrality of the graph, or
// 0 when the graph has fewer than two nodes.
func (g Graph) MeanDegreeCentrality() float64 {
	n := len(g.Nodes)
	if n < 2 {
		return 0
	}
	degree := make(map[string]int, n)
	for _, l := range g.Links {
		if l.Source == "" || l.Target == "" {
			continue
		}
		degree[l.Source]++
		degree[l.Target]++
	}
	denom := float64(n - 1)
	sum := 0.0
	for _, node := range g.Nodes {
		sum += float64(degree[node.ID]) / denom
	}
	return sum / float64(n)
}

// extractEntities picks distinct title-case words and adjacent title-case word
// pairs, in order of appearance. A cheap stand-in for NER that behaves the same
// on every run.
func extractEntities(text string, max int) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	tokens := strings.Fields(text)
	var ents []string
	seen := make(map[string]bool)
	for i := 0; i < len(tokens); i++ {
		if !isTitleCase(tokens[i]) {
			continue
		}
		cand := strings.Trim(tokens[i], ".,!?;:\"'()")
		if i+1 < len(tokens) && isTitleCase(tokens[i+1]) {
			cand = cand + " " + strings.Trim(tokens[i+1], ".,!?;:\"'()")
		}
		if cand != "" && !seen[cand] {
			ents = append(ents, cand)
			seen[cand] = true
		}
		if len(ents) >= max {
			break
		}
	}
	return ents
}

func isTitleCase(tok string) bool {
	runes := []rune(strings.Trim(tok, ".,!?;:\"'()"))
	if len(runes) < 2 {
		return false
	}
	if !unicode.IsUpper(runes[0]) {
		return false
	}
	for _, r := range runes[1:] {
		if !unicode.IsLower(r) {
			return false
		}
	}
	return true
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
