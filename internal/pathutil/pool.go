package pathutil

import "sync"

// A walker path spends two segments per nesting level, "resources" and the
// index, and two more on the method of the innermost resource:
//
//	resources[0].resources[2].methods[1]
const segmentsPerLevel = 2

// Builders start with room for this many nested resources and are dropped
// instead of pooled once they have grown past maxPooledDepth.
const (
	pooledDepth    = 4
	maxPooledDepth = 32
)

// SegmentsFor returns the number of segments of a method path below a
// resource nested depth levels deep (0 for a top-level resource).
func SegmentsFor(depth int) int {
	return segmentsPerLevel * (max(depth, 0) + 2)
}

var builders = sync.Pool{
	New: func() any {
		return &PathBuilder{segments: make([]string, 0, SegmentsFor(pooledDepth))}
	},
}

// Get returns an empty PathBuilder from the pool.
func Get() *PathBuilder {
	p := builders.Get().(*PathBuilder)
	p.Reset()
	return p
}

// Put hands p back to the pool. Builders grown by unusually deep resource
// trees are left to the garbage collector.
func Put(p *PathBuilder) {
	if p == nil || cap(p.segments) > SegmentsFor(maxPooledDepth) {
		return
	}
	builders.Put(p)
}
