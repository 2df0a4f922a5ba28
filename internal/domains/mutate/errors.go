package mutate

import "errors"

// ErrMutationInFlight - một mutation trên cùng entity đang Applying
// (vd double-click delete). Mutation thứ hai bị reject, không queue.
var ErrMutationInFlight = errors.New("mutation already in flight for this entity")
