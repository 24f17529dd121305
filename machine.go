package hsm

// Machine pairs a shared context with the current state of a live
// statechart. The zero value is not usable; construct one with New.
type Machine[C any] struct {
	ctx     C
	initial Handler[C]
	current Handler[C]

	initialized bool
	dispatching bool

	onDispatch   func(Handler[C], Event)
	onTransition func(source, target Handler[C])
}

// New creates an uninitialized Machine over ctx. initial is the leaf
// state the machine will be in once Init runs. Before Init, Current
// reports initial but its entry actions have not yet run.
func New[C any](ctx C, initial Handler[C], opts ...Option[C]) *Machine[C] {
	m := &Machine[C]{ctx: ctx, initial: initial, current: initial}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Init runs the entry chain for the full path of the declared initial
// state, from the ancestor just below Top down to the leaf itself, then
// marks the machine live. It must be called exactly once before any
// call to Handle; a second call returns ErrAlreadyInitialized and
// otherwise does nothing.
func (m *Machine[C]) Init() error {
	if m.initialized {
		return ErrAlreadyInitialized
	}
	runEntries(&m.ctx, nil, m.initial)
	m.current = m.initial
	m.initialized = true
	return nil
}

// Handle dispatches event to the machine's current state, walking the
// superstate chain until a handler answers Handled or Super runs off
// Top, or driving a single transition when a handler answers Transition.
// It mutates the current state at most once and returns
// ErrNotInitialized if called before Init.
//
// Handle is not reentrant: calling it from within a handler, an
// entry/exit action, or an OnDispatch/OnTransition hook reached while a
// prior call is still running panics, since the shared context only
// ever has one call in flight against it at a time.
func (m *Machine[C]) Handle(event Event) error {
	if !m.initialized {
		return ErrNotInitialized
	}
	if m.dispatching {
		panic("hsm: Handle called re-entrantly while a prior Handle is in flight")
	}

	m.dispatching = true
	defer func() { m.dispatching = false }()

	source := m.current
	transitioned, target := dispatch(&m.ctx, source, event, m.onDispatch)
	if !transitioned {
		return nil
	}

	m.current = transition(&m.ctx, source, target)
	if m.onTransition != nil {
		m.onTransition(source, m.current)
	}
	return nil
}

// Current returns the machine's current leaf state.
func (m *Machine[C]) Current() Handler[C] {
	return m.current
}

// Context returns a pointer to the shared context. Mutating it outside
// of a Handle call is always safe; the engine only reads or writes it
// by way of the Handler contract during Init and Handle.
func (m *Machine[C]) Context() *C {
	return &m.ctx
}

// Initialized reports whether Init has run.
func (m *Machine[C]) Initialized() bool {
	return m.initialized
}
