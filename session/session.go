package session

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/smnsjas/go-aojia/comobj"
	"github.com/smnsjas/go-aojia/dispatch"
	"github.com/smnsjas/go-aojia/provider"
	"github.com/smnsjas/go-aojia/variant"
)

var (
	// ErrInvalidState is returned when an operation is attempted in an invalid state.
	ErrInvalidState = errors.New("invalid session state")
	// ErrAlreadyOpen is returned when Open is called on an opening/opened session.
	ErrAlreadyOpen = errors.New("session already open")
	// ErrNotOpen is returned when a call requires an open session.
	ErrNotOpen = errors.New("session not open")
	// ErrClosed is returned when an operation is attempted on a closed session.
	ErrClosed = errors.New("session is closed")
	// ErrBroken is returned when the session failed to open.
	ErrBroken = errors.New("session is broken")
	// ErrSessionActive is returned when another Session is live in this process.
	ErrSessionActive = errors.New("another session is active in this process")
	// ErrWrongThread is returned when a session is used off its owning thread.
	ErrWrongThread = errors.New("session used from a thread other than the one that opened it")
	// ErrInitialization matches every *InitializationError.
	ErrInitialization = errors.New("session initialization failed")
)

// DefaultCLSID identifies the AoJia automation object.
const DefaultCLSID = "{4F27E588-5B1E-45B4-AD67-E32D45C4E9CA}"

// InitializationError reports a failed Open step.
type InitializationError struct {
	// Op names the failed step: "bind provider", "enter apartment" or "create object".
	Op   string
	Code int32
	Err  error
}

func (e *InitializationError) Error() string {
	return fmt.Sprintf("%v: %s: %v", ErrInitialization, e.Op, e.Err)
}

func (e *InitializationError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrInitialization) hold.
func (e *InitializationError) Is(target error) bool { return target == ErrInitialization }

// StatusCode returns the provider status of the failed step, if any.
func (e *InitializationError) StatusCode() int32 { return e.Code }

// Apartment establishes the threading context the automation object needs
// and instantiates it. All three methods are called on the owning thread.
type Apartment interface {
	// Enter initializes a single-threaded apartment on the calling thread.
	Enter() error
	// Create instantiates the object registered under clsid.
	Create(clsid string) (dispatch.Object, error)
	// Leave tears down the apartment entered by Enter.
	Leave()
}

// Config holds everything needed to open a Session.
type Config struct {
	// Provider locates the provider libraries. When zero, registration is
	// skipped and the object must already be registered.
	Provider provider.Paths
	// CLSID of the automation object. Empty selects DefaultCLSID.
	CLSID string
	// Resolution selects how method identifiers are cached.
	Resolution dispatch.CachePolicy
	// Apartment overrides the platform COM apartment.
	Apartment Apartment
	// Logger receives debug logs. Nil disables logging.
	Logger *slog.Logger
}

// State represents the current state of a Session.
type State int

const (
	// StateBeforeOpen is the initial state before the session is opened.
	StateBeforeOpen State = iota
	// StateOpening indicates setup is in progress.
	StateOpening
	// StateOpened indicates the object is bound.
	StateOpened
	// StateClosing indicates the session is being closed.
	StateClosing
	// StateClosed indicates the session is closed.
	StateClosed
	// StateBroken indicates Open failed.
	StateBroken
)

// String returns a string representation of the state.
func (s State) String() string {
	switch s {
	case StateBeforeOpen:
		return "BeforeOpen"
	case StateOpening:
		return "Opening"
	case StateOpened:
		return "Opened"
	case StateClosing:
		return "Closing"
	case StateClosed:
		return "Closed"
	case StateBroken:
		return "Broken"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

// active guards the at-most-one-live-Session rule.
var active atomic.Bool

// bindProvider performs provider registration. Replaced in tests.
var bindProvider = provider.Bind

// Session owns the single automation object bound to this process.
type Session struct {
	mu sync.Mutex

	id    uuid.UUID
	state State
	cfg   Config

	apartment Apartment
	obj       dispatch.Object
	engine    *dispatch.Engine

	// owner is the OS thread that opened the session.
	owner uint64

	slogLogger *slog.Logger
}

// New creates a Session in StateBeforeOpen.
func New(cfg Config) *Session {
	if cfg.CLSID == "" {
		cfg.CLSID = DefaultCLSID
	}
	apt := cfg.Apartment
	if apt == nil {
		apt = comobj.NewApartment()
	}
	return &Session{
		id:         uuid.New(),
		state:      StateBeforeOpen,
		cfg:        cfg,
		apartment:  apt,
		slogLogger: cfg.Logger,
	}
}

// Open creates a Session and opens it.
func Open(cfg Config) (*Session, error) {
	s := New(cfg)
	if err := s.Open(); err != nil {
		return nil, err
	}
	return s, nil
}

// SetSlogLogger sets the structured logger. Must be called before Open().
func (s *Session) SetSlogLogger(logger *slog.Logger) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateBeforeOpen {
		return ErrInvalidState
	}
	s.slogLogger = logger
	return nil
}

// ID returns the unique identifier of the session, used in logs.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// State returns the current state of the session.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// CLSID returns the class identity the session instantiates.
func (s *Session) CLSID() string {
	return s.cfg.CLSID
}

// Open binds the automation object. The calling goroutine is locked to its
// OS thread until Close.
func (s *Session) Open() error {
	s.mu.Lock()
	switch s.state {
	case StateBeforeOpen:
	case StateOpening, StateOpened:
		s.mu.Unlock()
		return ErrAlreadyOpen
	case StateClosing, StateClosed:
		s.mu.Unlock()
		return ErrClosed
	case StateBroken:
		s.mu.Unlock()
		return ErrBroken
	default:
		st := s.state
		s.mu.Unlock()
		return fmt.Errorf("%w: cannot open from state %s", ErrInvalidState, st)
	}
	if !active.CompareAndSwap(false, true) {
		s.mu.Unlock()
		return ErrSessionActive
	}
	s.state = StateOpening
	s.mu.Unlock()

	runtime.LockOSThread()
	s.owner = currentThreadID()
	s.logf("opening session clsid=%s thread=%d", s.cfg.CLSID, s.owner)

	if !s.cfg.Provider.IsZero() {
		applied, err := bindProvider(s.cfg.Provider)
		if err != nil {
			return s.fail(false, "bind provider", err)
		}
		if !applied {
			bound, _ := provider.Bound()
			if bound != s.cfg.Provider {
				s.logf("provider already bound (%s), ignoring %s", bound, s.cfg.Provider)
			}
		}
	}

	if err := s.apartment.Enter(); err != nil {
		return s.fail(false, "enter apartment", err)
	}

	obj, err := s.apartment.Create(s.cfg.CLSID)
	if err != nil {
		return s.fail(true, "create object", err)
	}

	s.mu.Lock()
	s.obj = obj
	s.engine = dispatch.NewEngine(obj, s.cfg.Resolution)
	s.state = StateOpened
	s.mu.Unlock()

	s.logf("session opened resolution=%s", s.cfg.Resolution)
	return nil
}

// fail unwinds a partial Open and returns the InitializationError.
func (s *Session) fail(entered bool, op string, err error) error {
	if entered {
		s.apartment.Leave()
	}
	runtime.UnlockOSThread()
	active.Store(false)

	s.mu.Lock()
	s.state = StateBroken
	s.mu.Unlock()

	s.logf("open failed at %s: %v", op, err)
	return &InitializationError{Op: op, Code: statusOf(err), Err: err}
}

// Close releases the object and the apartment. It is idempotent and must be
// called from the goroutine that called Open.
func (s *Session) Close() error {
	s.mu.Lock()
	switch s.state {
	case StateClosing, StateClosed, StateBroken:
		s.mu.Unlock()
		return nil
	case StateBeforeOpen:
		s.state = StateClosed
		s.mu.Unlock()
		return nil
	case StateOpening:
		s.mu.Unlock()
		return fmt.Errorf("%w: cannot close from state %s", ErrInvalidState, StateOpening)
	}
	if tid := currentThreadID(); affinityEnforced && tid != s.owner {
		s.mu.Unlock()
		return fmt.Errorf("%w: close from thread %d, owner %d", ErrWrongThread, tid, s.owner)
	}
	s.state = StateClosing
	obj := s.obj
	s.obj = nil
	s.engine = nil
	s.mu.Unlock()

	var err error
	if obj != nil {
		if rerr := obj.Release(); rerr != nil {
			err = fmt.Errorf("release object: %w", rerr)
		}
	}
	s.apartment.Leave()
	runtime.UnlockOSThread()
	active.Store(false)

	s.mu.Lock()
	s.state = StateClosed
	s.mu.Unlock()

	s.logf("session closed")
	return err
}

// checkCall verifies the session can take a call from the current thread.
func (s *Session) checkCall() (*dispatch.Engine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateOpened:
	case StateClosing, StateClosed:
		return nil, ErrClosed
	case StateBroken:
		return nil, ErrBroken
	default:
		return nil, ErrNotOpen
	}
	if tid := currentThreadID(); affinityEnforced && tid != s.owner {
		return nil, fmt.Errorf("%w: call from thread %d, owner %d", ErrWrongThread, tid, s.owner)
	}
	return s.engine, nil
}

// Invoke performs one call. It implements dispatch.Invoker.
func (s *Session) Invoke(m *dispatch.Method, args *dispatch.ArgList) (variant.Value, error) {
	e, err := s.checkCall()
	if err != nil {
		return variant.Value{}, err
	}

	start := time.Now()
	res, err := e.Invoke(m, args)
	if err != nil {
		s.logf("invoke %s failed after %s: %v", m.Name, time.Since(start), err)
		return variant.Value{}, err
	}
	s.logf("invoke %s id=%d args=%d result=%s took=%s", m.Name, m.ID, args.Len(), res, time.Since(start))
	return res, nil
}

// Call binds in against sig and performs the call.
func (s *Session) Call(sig dispatch.Signature, in ...interface{}) (*dispatch.Result, error) {
	args, err := sig.Bind(in...)
	if err != nil {
		return nil, err
	}
	res, err := s.Invoke(dispatch.NewMethod(sig.Name), args)
	if err != nil {
		return nil, err
	}
	return &dispatch.Result{Value: res, Args: args}, nil
}

// NewCall starts an ad hoc call of a method without a declared Signature.
func (s *Session) NewCall(name string) *dispatch.Call {
	return dispatch.NewCall(s, name)
}

// Resolve returns the identifier of name, through the session's cache.
func (s *Session) Resolve(name string) (dispatch.DispID, error) {
	e, err := s.checkCall()
	if err != nil {
		return dispatch.Unresolved, err
	}
	return e.Resolver().Resolve(name)
}

func statusOf(err error) int32 {
	var sc dispatch.StatusCoder
	if errors.As(err, &sc) {
		return sc.StatusCode()
	}
	return 0
}

// logf logs a debug message if a logger is configured.
func (s *Session) logf(format string, v ...interface{}) {
	s.mu.Lock()
	logger := s.slogLogger
	s.mu.Unlock()

	if logger != nil {
		logger.Debug(fmt.Sprintf(format, v...), slog.String("session_id", s.id.String()))
	}
}
