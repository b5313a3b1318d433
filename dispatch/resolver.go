package dispatch

import "fmt"

// DispID is the numeric identifier of a method on the automation object.
type DispID int32

// Unresolved marks a method whose identifier has not been looked up yet
// (DISPID_UNKNOWN).
const Unresolved DispID = -1

// Status codes reported by COM automation providers, as signed HRESULTs.
const (
	StatusMemberNotFound int32 = -0x7FFDFFFD // DISP_E_MEMBERNOTFOUND 0x80020003
	StatusUnknownName    int32 = -0x7FFDFFFA // DISP_E_UNKNOWNNAME 0x80020006
	StatusException      int32 = -0x7FFDFFF7 // DISP_E_EXCEPTION 0x80020009
	StatusFail           int32 = -0x7FFFBFFB // E_FAIL 0x80004005
)

// CachePolicy controls whether resolved identifiers are reused.
type CachePolicy int

const (
	// CacheByName resolves each name once and reuses the identifier for the
	// lifetime of the Resolver. Failed lookups are not cached.
	CacheByName CachePolicy = iota
	// ResolveEveryCall asks the automation object on every call.
	ResolveEveryCall
)

// String returns the configuration name of the policy.
func (p CachePolicy) String() string {
	switch p {
	case CacheByName:
		return "cache"
	case ResolveEveryCall:
		return "per-call"
	default:
		return fmt.Sprintf("Unknown(%d)", int(p))
	}
}

// ParseCachePolicy parses "cache" or "per-call". The empty string selects
// CacheByName.
func ParseCachePolicy(s string) (CachePolicy, error) {
	switch s {
	case "", "cache":
		return CacheByName, nil
	case "per-call", "none":
		return ResolveEveryCall, nil
	}
	return CacheByName, fmt.Errorf("unknown resolution policy %q", s)
}

// Resolver maps method names to identifiers through the automation object's
// own name lookup. It is not safe for concurrent use.
type Resolver struct {
	disp    Dispatcher
	policy  CachePolicy
	cache   map[string]DispID
	lookups int
}

// NewResolver creates a Resolver for disp.
func NewResolver(disp Dispatcher, policy CachePolicy) *Resolver {
	return &Resolver{
		disp:   disp,
		policy: policy,
		cache:  make(map[string]DispID),
	}
}

// Policy returns the cache policy.
func (r *Resolver) Policy() CachePolicy { return r.policy }

// Resolve returns the identifier for name. A name the object does not
// export yields an *UnknownMethodError.
func (r *Resolver) Resolve(name string) (DispID, error) {
	if r.disp == nil {
		return Unresolved, ErrNoDispatcher
	}
	if r.policy == CacheByName {
		if id, ok := r.cache[name]; ok {
			return id, nil
		}
	}

	r.lookups++
	id, err := r.disp.GetIDOfName(name)
	if err != nil {
		return Unresolved, &UnknownMethodError{Name: name, Code: statusOf(err), Err: err}
	}
	if id == Unresolved {
		return Unresolved, &UnknownMethodError{Name: name, Code: StatusUnknownName}
	}

	if r.policy == CacheByName {
		r.cache[name] = id
	}
	return id, nil
}

// Forget drops the cached identifier for name.
func (r *Resolver) Forget(name string) {
	delete(r.cache, name)
}

// Cached reports whether name currently has a cached identifier.
func (r *Resolver) Cached(name string) bool {
	_, ok := r.cache[name]
	return ok
}

// Lookups returns how many times the automation object was asked to
// resolve a name.
func (r *Resolver) Lookups() int { return r.lookups }
