package builtin

import (
	"container/list"
	"sync"

	"github.com/expr-lang/expr/vm"
)

// DefaultCacheSize is the number of compiled calc expressions kept by a
// function library unless [WithCacheSize] says otherwise.
const DefaultCacheSize = 256

type cacheEntry struct {
	key     string
	program *vm.Program
}

// programCache is a least-recently-used cache of compiled expressions.
// Failed compilations are not cached.
type programCache struct {
	mu       sync.Mutex
	capacity int
	ll       *list.List
	items    map[string]*list.Element
}

func newProgramCache(capacity int) *programCache {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}

	return &programCache{
		capacity: capacity,
		ll:       list.New(),
		items:    make(map[string]*list.Element, capacity),
	}
}

func (c *programCache) get(key string) (*vm.Program, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		return nil, false
	}

	c.ll.MoveToFront(el)

	return el.Value.(*cacheEntry).program, true
}

func (c *programCache) set(key string, program *vm.Program) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		el.Value.(*cacheEntry).program = program
		c.ll.MoveToFront(el)

		return
	}

	if c.ll.Len() >= c.capacity {
		if last := c.ll.Back(); last != nil {
			c.ll.Remove(last)
			delete(c.items, last.Value.(*cacheEntry).key)
		}
	}

	c.items[key] = c.ll.PushFront(&cacheEntry{key: key, program: program})
}

// getOrCompile returns the program cached under key, compiling and caching
// it on a miss.
func (c *programCache) getOrCompile(
	key string,
	compile func() (*vm.Program, error),
) (*vm.Program, error) {
	if p, ok := c.get(key); ok {
		return p, nil
	}

	p, err := compile()
	if err != nil {
		return nil, err
	}

	c.set(key, p)

	return p, nil
}

func (c *programCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.ll.Len()
}
