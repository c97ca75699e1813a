package vdom

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/axon-ui/axon/pkg/host"
)

// boundHandler is one live listener registered on a node. The wrapper stays
// attached across renders; fn is swapped to the handler from the latest
// render so captured state never goes stale.
type boundHandler struct {
	fn      any
	wrapper host.EventHandler
}

// isEventProp reports whether a prop key names an event handler.
// Case-insensitive so onclick, onClick and OnClick all bind.
func isEventProp(key string) bool {
	return len(key) > 2 && strings.EqualFold(key[:2], "on")
}

// eventName maps a handler prop key to the host event type: "onClick"
// becomes "click".
func eventName(key string) string {
	return strings.ToLower(key[2:])
}

// isLiveProp reports whether a key is live form state, compared against the
// node's current value rather than the previous render's.
func isLiveProp(key string) bool {
	return key == "value" || key == "checked" || key == "selected"
}

// callHandler dispatches an event to a user handler of any supported shape.
// Unsupported shapes are ignored.
func callHandler(fn any, e host.Event) {
	switch h := fn.(type) {
	case func(host.Event):
		h(e)
	case host.EventHandler:
		h(e)
	case func():
		h()
	}
}

// applyProps writes a fresh element's props onto its live node.
func (r *Reconciler) applyProps(v *VNode) {
	for key, val := range v.Props {
		if key == "key" {
			continue
		}
		switch {
		case isEventProp(key):
			r.bindHandler(v, key, val)
		case isLiveProp(key):
			writeLiveProp(v.El, key, val)
		default:
			setAttr(v.El, key, val)
		}
	}
}

// patchProps diffs the prop maps of two same-tag elements over the union of
// their keys and applies the differences to the shared live node.
func (r *Reconciler) patchProps(next, prev *VNode) {
	el := next.El
	next.bound = prev.bound

	for key := range prev.Props {
		if key == "key" {
			continue
		}
		if _, ok := next.Props[key]; ok {
			continue
		}
		// Removed.
		switch {
		case isEventProp(key):
			event := eventName(key)
			if b, ok := next.bound[event]; ok {
				el.RemoveEventListener(event, b.wrapper)
				delete(next.bound, event)
			}
		case isLiveProp(key):
			el.SetProperty(key, zeroLiveProp(key))
		default:
			el.RemoveAttribute(key)
		}
	}

	for key, nextVal := range next.Props {
		if key == "key" {
			continue
		}
		switch {
		case isEventProp(key):
			// Swap the dispatch target; the registered listener is reused.
			r.bindHandler(next, key, nextVal)
		case isLiveProp(key):
			writeLiveProp(el, key, nextVal)
		default:
			if prevVal, ok := prev.Props[key]; ok && propsEqual(prevVal, nextVal) {
				continue
			}
			setAttr(el, key, nextVal)
		}
	}
}

// bindHandler points the node's listener for this event at fn, registering
// the listener on first use.
func (r *Reconciler) bindHandler(v *VNode, key string, fn any) {
	event := eventName(key)
	if b, ok := v.bound[event]; ok {
		b.fn = fn
		return
	}
	if v.bound == nil {
		v.bound = make(map[string]*boundHandler)
	}
	b := &boundHandler{fn: fn}
	b.wrapper = func(e host.Event) {
		callHandler(b.fn, e)
	}
	v.bound[event] = b
	v.El.AddEventListener(event, b.wrapper)
}

// writeLiveProp writes live form state only when it differs from the node's
// current value. Comparing against the live node, not the previous VNode,
// is what forces user-typed drift back to the state's value while leaving
// genuinely unchanged inputs untouched.
func writeLiveProp(el host.Node, key string, val any) {
	switch key {
	case "value":
		desired := coerceText(val)
		current, _ := el.Property(key).(string)
		if current != desired {
			el.SetProperty(key, desired)
		}
	default: // checked, selected
		desired, _ := val.(bool)
		current, _ := el.Property(key).(bool)
		if current != desired {
			el.SetProperty(key, desired)
		}
	}
}

// zeroLiveProp is the value a live prop resets to when its key disappears.
func zeroLiveProp(key string) any {
	if key == "value" {
		return ""
	}
	return false
}

// setAttr writes one attribute. Boolean props follow presence semantics:
// true sets a bare attribute, false removes it.
func setAttr(el host.Node, key string, val any) {
	if b, ok := val.(bool); ok {
		if b {
			el.SetAttribute(key, "")
		} else {
			el.RemoveAttribute(key)
		}
		return
	}
	el.SetAttribute(key, propToString(val))
}

// propsEqual compares two attribute values.
func propsEqual(a, b any) bool {
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case int:
		bv, ok := b.(int)
		return ok && av == bv
	case int64:
		bv, ok := b.(int64)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case nil:
		return b == nil
	}
	return reflect.DeepEqual(a, b)
}

// propToString converts an attribute value to its written form.
func propToString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return coerceText(v)
	}
}
