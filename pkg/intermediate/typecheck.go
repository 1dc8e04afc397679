package intermediate

func is(t *TypeSpec, p Primitive) bool {
	return t != nil && t.BaseType().Primitive() == p
}

func IsInteger(t *TypeSpec) bool   { return is(t, PrimInteger) }
func IsReal(t *TypeSpec) bool      { return is(t, PrimReal) }
func IsBoolean(t *TypeSpec) bool   { return is(t, PrimBoolean) }
func IsChar(t *TypeSpec) bool      { return is(t, PrimChar) }
func IsUndefined(t *TypeSpec) bool { return t == nil || is(t, PrimUndefined) }

func IsIntegerOrReal(t *TypeSpec) bool { return IsInteger(t) || IsReal(t) }

func AreBothInteger(a, b *TypeSpec) bool { return IsInteger(a) && IsInteger(b) }
func AreBothBoolean(a, b *TypeSpec) bool { return IsBoolean(a) && IsBoolean(b) }

// IsAtLeastOneReal is true for real/real, real/integer and integer/real.
func IsAtLeastOneReal(a, b *TypeSpec) bool {
	return (IsReal(a) && IsReal(b)) ||
		(IsReal(a) && IsInteger(b)) ||
		(IsInteger(a) && IsReal(b))
}

// AreAssignmentCompatible reports whether a value of type value may be
// assigned to a target of type target.
func AreAssignmentCompatible(target, value *TypeSpec) bool {
	if target == nil || value == nil {
		return false
	}
	target, value = target.BaseType(), value.BaseType()
	switch {
	case SameType(target, value):
		return true
	case IsReal(target) && IsInteger(value):
		return true
	case target.IsPascalString() && value.IsPascalString():
		return true
	}
	return false
}

// AreComparisonCompatible reports whether two values may be compared with
// a relational operator.
func AreComparisonCompatible(a, b *TypeSpec) bool {
	if a == nil || b == nil {
		return false
	}
	a, b = a.BaseType(), b.BaseType()
	switch {
	case SameType(a, b) && (a.Form == FormScalar || a.Form == FormEnumeration):
		return !IsUndefined(a)
	case IsAtLeastOneReal(a, b):
		return true
	case a.IsPascalString() && b.IsPascalString():
		return true
	}
	return false
}

// ResultType derives the type of a binary operator node from the types of
// its operands. ok is false when the operands do not fit the operator; the
// returned type is then UndefinedType.
func ResultType(op NodeType, left, right *TypeSpec) (result *TypeSpec, ok bool) {
	switch op {
	case NodeAdd, NodeSubtract, NodeMultiply:
		if AreBothInteger(left, right) {
			return IntegerType, true
		}
		if IsAtLeastOneReal(left, right) {
			return RealType, true
		}
	case NodeFloatDivide:
		if AreBothInteger(left, right) || IsAtLeastOneReal(left, right) {
			return RealType, true
		}
	case NodeMod, NodeIntegerDivide:
		if AreBothInteger(left, right) {
			return IntegerType, true
		}
	case NodeAnd, NodeOr:
		if AreBothBoolean(left, right) {
			return BooleanType, true
		}
	case NodeEQ, NodeNE, NodeLT, NodeLE, NodeGT, NodeGE:
		if AreComparisonCompatible(left, right) {
			return IntegerType, true
		}
	}
	return UndefinedType, false
}
