package skema

// coerceArray checks that value is a sequence and coerces every element
// against the element rule, preserving order and length. The result is always
// a new []any.
func (t *Type) coerceArray(value any, r *ArrayRule, field string) (any, error) {
	items, ok := asSequence(value)
	if !ok {
		return nil, newError(CodeInvalidType, "not_array", map[string]string{
			"field": field,
			"got":   typeName(value),
		})
	}
	res := make([]any, 0, len(items))
	for i := range items {
		ev, err := t.coerceElement(items[i], r.elem, field)
		if err != nil {
			return nil, annotateIndex(err, i)
		}
		res = append(res, ev)
	}
	return res, nil
}

// coerceElement coerces one array element. A direct element mismatch names
// the offending element's type; failures inside nested instances keep their
// own trail.
func (t *Type) coerceElement(item any, elem Rule, field string) (any, error) {
	out, err := t.coerceValue(item, elem, field)
	if err == nil {
		return out, nil
	}
	if e, ok := err.(*Error); ok && e.Code == CodeInvalidType && e.path == nil {
		ne := newError(CodeInvalidType, "invalid_element", map[string]string{
			"field":    field,
			"expected": ruleName(elem),
			"got":      typeName(item),
		})
		ne.Cause = e.Cause
		return nil, ne
	}
	return nil, err
}
