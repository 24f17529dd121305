package hsm

// dispatch walks the chain from leaf upward until a handler returns
// something other than Super. onDispatch, if non-nil, fires immediately
// before every handler call.
//
// It returns (true, target) when a handler returned Transition(target);
// (false, nil) when the walk ended in Handled, either because a handler
// said so directly or because the walk fell off the top of the chain
// (Super at Top is treated as Handled).
func dispatch[C any](ctx *C, leaf Handler[C], event Event, onDispatch func(Handler[C], Event)) (transitioned bool, target Handler[C]) {
	for cursor := leaf; cursor != nil; {
		if onDispatch != nil {
			onDispatch(cursor, event)
		}
		resp := cursor.Dispatch(ctx, event)
		switch resp.kind {
		case kindTransition:
			return true, resp.target
		case kindSuper:
			cursor = cursor.Superstate()
		default: // kindHandled
			return false, nil
		}
	}
	return false, nil
}
