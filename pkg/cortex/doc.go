// Package cortex implements the dependency-tracking state container at the
// heart of the runtime.
//
// A Cortex owns one memory tree: a nested map of JSON-serializable values.
// Components never receive the tree itself; they read through a View obtained
// from Memory(), and every path a View touches is recorded against the
// subscriber installed by the renderer (see package track). When a mutation
// lands, exactly the subscribers whose recorded paths relate to the changed
// paths are re-invoked. Two dot paths relate when they are equal or one is a
// dot-prefix of the other, in either direction, so reading "user" subscribes
// you to writes of "user.name" and vice versa.
//
// Mutations go through two conventions:
//
//	c.Merge(map[string]any{"filter": "done"})   // shallow merge, changed = keys
//	c.Update(func(d *cortex.Draft) map[string]any {
//	    d.Set("user.name", "ada")               // changed = recorded writes
//	    return nil
//	})
//
// Application logic lives in synapses: named actions built once at
// construction by a user-supplied factory. The factory receives the mutation
// API, so all writes funnel through the pipeline above:
//
//	c := cortex.New(initial, func(api cortex.API) cortex.Actions {
//	    return cortex.Actions{
//	        "todo.add": func(payload any) {
//	            todos := append(api.Snapshot()["todos"].([]any), payload)
//	            api.Merge(map[string]any{"todos": todos})
//	        },
//	    }
//	})
//	c.Call("todo.add", "write docs")
//
// Fields wrapped with Persisted are loaded from a keyval.Store at
// construction and written back whenever they (or anything under them)
// change. Storage failures degrade to in-memory behavior with a logged
// warning; they never propagate.
//
// Values returned by View and Snapshot getters are shared with live memory
// unless documented otherwise; treat them as read-only and mutate through
// Merge or Update.
package cortex
