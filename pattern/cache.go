package pattern

import (
	"strings"
	"sync"
)

// Cache memoizes compiled matchers across dispatches. Implementations must
// be safe for concurrent use. Put is insert-if-absent: the first matcher
// stored under a key wins and racing duplicates are discarded, so readers
// always observe a single compilation per pattern.
type Cache interface {
	Get(pattern string) (*Matcher, bool)
	Put(pattern string, m *Matcher)
}

// MapCache is the default Cache: a process-wide concurrent map that is never
// invalidated. Matchers are immutable once built, so a racing double compile
// costs a little CPU and nothing else.
type MapCache struct {
	m sync.Map
}

func NewMapCache() *MapCache { return &MapCache{} }

func (c *MapCache) Get(pattern string) (*Matcher, bool) {
	v, ok := c.m.Load(pattern)
	if !ok {
		return nil, false
	}
	return v.(*Matcher), true
}

func (c *MapCache) Put(pattern string, m *Matcher) {
	c.m.LoadOrStore(pattern, m)
}

// DefaultCache backs every router that was not handed its own cache.
var DefaultCache Cache = NewMapCache()

// CompileCached resolves pat through cache, compiling on first use. A
// leading '@' selects verbatim compilation of the remainder; everything else
// goes through the block grammar. The full pattern text is the cache key, so
// "@/x" and "/x" occupy different entries.
func CompileCached(cache Cache, pat string) (*Matcher, error) {
	if m, ok := cache.Get(pat); ok {
		return m, nil
	}

	var (
		m   *Matcher
		err error
	)
	if strings.HasPrefix(pat, "@") {
		m, err = CompileVerbatim(pat[1:])
		if m != nil {
			m.Pattern = pat
		}
	} else {
		m, err = Compile(pat)
	}
	if err != nil {
		return nil, err
	}

	cache.Put(pat, m)
	return m, nil
}
