package vdom

import (
	"fmt"
	"strconv"
)

// H builds a virtual node. tag is either an element tag name (string) or a
// ComponentFunc. props may be nil. Children normalize recursively:
//
//   - nested []any and []*VNode lists flatten in order
//   - nil, false and "" are dropped
//   - strings and numbers become text nodes ("true" stays: only falsy
//     values are filtered)
//   - *VNode children pass through unchanged
//
// A "key" prop is lifted onto the node for keyed reconciliation and is
// never written to the live tree.
func H(tag any, props Props, children ...any) *VNode {
	node := &VNode{Props: props}

	switch t := tag.(type) {
	case string:
		node.Kind = KindElement
		node.Tag = t
	case ComponentFunc:
		node.Kind = KindComponent
		node.Fn = t
	case func(Props) *VNode:
		node.Kind = KindComponent
		node.Fn = t
	default:
		panic(fmt.Sprintf("vdom: H tag must be a string or ComponentFunc, got %T", tag))
	}

	node.Children = appendChildren(nil, children)
	if props != nil {
		if key, ok := props["key"]; ok {
			node.Key = coerceText(key)
		}
	}
	return node
}

// appendChildren normalizes one children list onto dst, flattening nested
// lists and dropping falsy entries.
func appendChildren(dst []*VNode, children []any) []*VNode {
	for _, child := range children {
		switch v := child.(type) {
		case nil:
			continue
		case bool:
			// false is filtered, true renders as text.
			if v {
				dst = append(dst, Text("true"))
			}
		case string:
			if v != "" {
				dst = append(dst, Text(v))
			}
		case *VNode:
			if v != nil {
				dst = append(dst, v)
			}
		case []*VNode:
			for _, c := range v {
				if c != nil {
					dst = append(dst, c)
				}
			}
		case []any:
			dst = append(dst, appendChildren(nil, v)...)
		default:
			dst = append(dst, Text(coerceText(v)))
		}
	}
	return dst
}

// coerceText stringifies a non-node child or key value.
func coerceText(v any) string {
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
	case uint64:
		return strconv.FormatUint(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	default:
		return fmt.Sprintf("%v", v)
	}
}
