package detect

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sort"

	"github.com/rlefko/uilint/internal/report"
	"github.com/rlefko/uilint/internal/styledoc"
	"golang.org/x/sync/errgroup"
)

// Scope tags where a duplicate cluster's members live, since remediation
// differs for each case.
type Scope string

const (
	ScopeIntraFile      Scope = "intra-file"
	ScopeCrossFile      Scope = "cross-file"
	ScopeCrossFramework Scope = "cross-framework"
)

// ClusterMember describes one block of a duplicate cluster.
type ClusterMember struct {
	Block   string           `json:"block"`
	Dialect styledoc.Dialect `json:"dialect"`
	Span    styledoc.Span    `json:"span"`
}

// PairScore is the similarity of one member pair that put the cluster
// over the threshold.
type PairScore struct {
	A     string  `json:"a"`
	B     string  `json:"b"`
	Score float64 `json:"score"`
}

// Cluster is a set of style blocks judged equivalent under the similarity
// threshold. Members follow arena order (source path, then block order);
// the canonical member is the first, which makes cluster reports stable
// across reruns and independent of file-scan order.
type Cluster struct {
	Members   []ClusterMember `json:"members"`
	Canonical ClusterMember   `json:"canonical"`
	Scope     Scope           `json:"scope"`
	// Pairs lists every threshold-crossing pair in arena order. A pair
	// below the threshold contributes no entry even when transitive
	// closure pulled its members into the same cluster.
	Pairs []PairScore `json:"pairs"`
	// Score is the highest pairwise similarity inside the cluster;
	// Exact means at least one pair matched at 1.0.
	Score float64 `json:"score"`
	Exact bool    `json:"exact"`
}

// ComparisonError signals an impossible state during pairwise comparison.
// Given immutable inputs it should not occur; when it does the run aborts
// and surfaces a bug report rather than silently dropping issues.
type ComparisonError struct {
	A, B  string
	Score float64
}

func (e *ComparisonError) Error() string {
	return fmt.Sprintf("internal comparison error: score %v for %s vs %s", e.Score, e.A, e.B)
}

type pair struct {
	a, b  int
	score float64
}

// Duplicates compares every pair of blocks across all documents,
// regardless of dialect, clusters pairs meeting the threshold by
// transitive closure, and emits one issue per cluster.
//
// The pairwise matrix is sharded by outer index across an errgroup; the
// comparisons are read-only over normalized data, so shards share nothing
// but the input arena.
func Duplicates(ctx context.Context, refs []styledoc.BlockRef, threshold float64, parallelism int) ([]Cluster, []report.Issue, error) {
	keysets := make([]map[string]string, len(refs))
	for i, ref := range refs {
		b := ref.Block()
		ks := make(map[string]string, len(b.PropertyMap))
		for prop, v := range b.PropertyMap {
			ks[prop] = v.CompareKey()
		}
		keysets[i] = ks
	}

	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}
	shards := parallelism
	if shards > len(refs) {
		shards = len(refs)
	}
	if shards < 1 {
		shards = 1
	}

	g, _ := errgroup.WithContext(ctx)
	shardPairs := make([][]pair, shards)
	for s := 0; s < shards; s++ {
		s := s
		g.Go(func() error {
			var found []pair
			for i := s; i < len(refs); i += shards {
				if len(keysets[i]) == 0 {
					continue
				}
				for j := i + 1; j < len(refs); j++ {
					if len(keysets[j]) == 0 {
						continue
					}
					score := jaccard(keysets[i], keysets[j])
					if math.IsNaN(score) || score < 0 || score > 1 {
						return &ComparisonError{
							A:     refs[i].Block().ID,
							B:     refs[j].Block().ID,
							Score: score,
						}
					}
					if score >= threshold {
						found = append(found, pair{a: i, b: j, score: score})
					}
				}
			}
			shardPairs[s] = found
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var edges []pair
	for _, sp := range shardPairs {
		edges = append(edges, sp...)
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].a != edges[j].a {
			return edges[i].a < edges[j].a
		}
		return edges[i].b < edges[j].b
	})

	clusters := buildClusters(refs, edges)
	issues := clusterIssues(clusters)
	return clusters, issues, nil
}

// jaccard computes |intersection| / |union| over (property, compare-key)
// pairs. Token identity, not literal text, is the value side, so a literal
// in one dialect and a token reference to the same token in another still
// count as equal.
func jaccard(a, b map[string]string) float64 {
	inter := 0
	for prop, key := range a {
		// Two-value lookup: an empty compare key must not match a block
		// that lacks the property entirely.
		if kv, ok := b[prop]; ok && kv == key {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// buildClusters takes connected components over the threshold edges.
// Transitive closure is deliberate: A≈B and B≈C cluster all three even
// when A and C alone would not cross the threshold.
func buildClusters(refs []styledoc.BlockRef, edges []pair) []Cluster {
	parent := make([]int, len(refs))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			if ra > rb {
				ra, rb = rb, ra
			}
			parent[rb] = ra
		}
	}
	for _, e := range edges {
		union(e.a, e.b)
	}

	members := make(map[int][]int)
	for i := range refs {
		members[find(i)] = append(members[find(i)], i)
	}

	bestScore := make(map[int]float64)
	exact := make(map[int]bool)
	pairs := make(map[int][]PairScore)
	for _, e := range edges {
		root := find(e.a)
		if e.score > bestScore[root] {
			bestScore[root] = e.score
		}
		if e.score == 1.0 {
			exact[root] = true
		}
		pairs[root] = append(pairs[root], PairScore{
			A:     refs[e.a].Block().ID,
			B:     refs[e.b].Block().ID,
			Score: e.score,
		})
	}

	roots := make([]int, 0, len(members))
	for root, m := range members {
		if len(m) > 1 {
			roots = append(roots, root)
		}
	}
	sort.Ints(roots)

	clusters := make([]Cluster, 0, len(roots))
	for _, root := range roots {
		idx := members[root]
		sort.Ints(idx)
		ms := make([]ClusterMember, len(idx))
		for i, x := range idx {
			b := refs[x].Block()
			ms[i] = ClusterMember{Block: b.ID, Dialect: refs[x].Doc.Dialect, Span: b.Span}
		}
		clusters = append(clusters, Cluster{
			Members:   ms,
			Canonical: ms[0],
			Scope:     clusterScope(refs, idx),
			Pairs:     pairs[root],
			Score:     bestScore[root],
			Exact:     exact[root],
		})
	}
	return clusters
}

func clusterScope(refs []styledoc.BlockRef, idx []int) Scope {
	files := make(map[string]bool)
	dialects := make(map[styledoc.Dialect]bool)
	for _, x := range idx {
		files[refs[x].Doc.SourcePath] = true
		dialects[refs[x].Doc.Dialect] = true
	}
	switch {
	case len(files) == 1:
		return ScopeIntraFile
	case len(dialects) > 1:
		return ScopeCrossFramework
	default:
		return ScopeCrossFile
	}
}

func clusterIssues(clusters []Cluster) []report.Issue {
	var issues []report.Issue
	for _, c := range clusters {
		spans := make([]styledoc.Span, len(c.Members))
		names := ""
		for i, m := range c.Members {
			spans[i] = m.Span
			if i > 0 {
				names += ", "
			}
			names += m.Block
		}
		kindText := "near-duplicate"
		if c.Exact {
			kindText = "duplicate"
		}
		msg := fmt.Sprintf("%d %s style blocks (%s, similarity %.2f): %s; canonical: %s",
			len(c.Members), kindText, c.Scope, c.Score, names, c.Canonical.Block)
		issues = append(issues, report.New(report.KindDuplicate, report.SeverityWarning, msg, spans...))
	}
	return issues
}
