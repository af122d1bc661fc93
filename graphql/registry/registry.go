// Package registry holds the GraphQL root resolver factory and the named
// extension resolvers served through Query.extension.
package registry

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"eyewear.GO/core/registry"
	catalogService "eyewear.GO/service/catalog"
)

// ErrUnknownExtension is returned by Resolve for a name nobody registered.
var ErrUnknownExtension = errors.New("graphql: unknown extension")

// ResolverFunc resolves one extension. args is the decoded JSON object
// passed by the client, never nil.
type ResolverFunc func(ctx context.Context, args map[string]interface{}) (interface{}, error)

// QueryResolverFactory builds the root Query resolver over the catalog
// service.
type QueryResolverFactory func(svc *catalogService.Service) interface{}

type extensions map[string]ResolverFunc

var (
	mu      sync.Mutex
	factory QueryResolverFactory
	serving atomic.Bool
)

// RegisterQueryResolverFactory installs the root resolver factory,
// replacing any previous one.
func RegisterQueryResolverFactory(fn QueryResolverFactory) {
	mu.Lock()
	factory = fn
	mu.Unlock()
}

// GetQueryResolver builds the root resolver. It panics when no factory was
// installed, which means the resolvers package was not linked in.
func GetQueryResolver(svc *catalogService.Service) interface{} {
	mu.Lock()
	fn := factory
	mu.Unlock()
	if fn == nil {
		panic("graphql/registry: no query resolver factory; import eyewear.GO/graphql/resolvers")
	}
	return fn(svc)
}

// Register adds the extension name. Call it from init(); it panics on a
// duplicate name or once the first extension has been resolved.
func Register(name string, resolve ResolverFunc) {
	mu.Lock()
	defer mu.Unlock()
	if registry.GlobalRegistry.IsLocked(registry.KeyRegistryGraphQL) {
		panic("graphql/registry: register " + name + " after first request")
	}
	ext := current()
	if _, ok := ext[name]; ok {
		panic("graphql/registry: extension " + name + " registered twice")
	}
	next := make(extensions, len(ext)+1)
	for k, v := range ext {
		next[k] = v
	}
	next[name] = resolve
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryGraphQL, next)
}

// Unregister drops name and reopens the registry. Tests only.
func Unregister(name string) {
	mu.Lock()
	defer mu.Unlock()
	registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryGraphQL)
	serving.Store(false)
	next := make(extensions)
	for k, v := range current() {
		if k != name {
			next[k] = v
		}
	}
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryGraphQL, next)
}

// Has reports whether name is registered.
func Has(name string) bool {
	_, ok := current()[name]
	return ok
}

// Resolve runs the extension field. The first call locks the registry.
func Resolve(ctx context.Context, field string, args map[string]interface{}) (interface{}, error) {
	if serving.CompareAndSwap(false, true) {
		registry.GlobalRegistry.Lock(registry.KeyRegistryGraphQL)
	}
	if args == nil {
		args = map[string]interface{}{}
	}
	resolve, ok := current()[field]
	if !ok {
		return nil, fmt.Errorf("%w %q (have %v)", ErrUnknownExtension, field, Names())
	}
	return resolve(ctx, args)
}

// Names returns the registered extension names, sorted.
func Names() []string {
	ext := current()
	names := make([]string, 0, len(ext))
	for n := range ext {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// current returns the live map. Register and Unregister replace it rather
// than mutating it, so readers need no lock.
func current() extensions {
	if v, ok := registry.GlobalRegistry.GetGlobal(registry.KeyRegistryGraphQL); ok && v != nil {
		return v.(extensions)
	}
	return nil
}
