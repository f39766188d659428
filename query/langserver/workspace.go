package langserver

import (
	"sync"

	"github.com/dhamidi/trails/query/lang"
)

// Workspace tracks the open query documents the editor has handed us,
// keyed by URI, and owns the shared language engine.
type Workspace struct {
	mu     sync.RWMutex
	docs   map[string]string
	engine *lang.Engine
}

func NewWorkspace(engine *lang.Engine) *Workspace {
	return &Workspace{
		docs:   make(map[string]string),
		engine: engine,
	}
}

func (w *Workspace) Engine() *lang.Engine {
	return w.engine
}

func (w *Workspace) Update(uri, content string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.docs[uri] = content
}

func (w *Workspace) Remove(uri string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.docs, uri)
}

func (w *Workspace) Get(uri string) (string, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	content, ok := w.docs[uri]
	return content, ok
}
