package cortex

import "errors"

// ErrUnknownSynapse is returned by Call when no synapse is registered under
// the requested name. The wrapped message carries a "did you mean" hint when
// a registered name is close enough to the requested one.
//
// Applications can treat this as a programming error; it usually means a
// typo at the call site or a factory that forgot to register the action.
var ErrUnknownSynapse = errors.New("cortex: unknown synapse")
