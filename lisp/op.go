// Copyright © 2018 The ELPS authors

package lisp

// checkNumbers returns an error if any argument is not numeric.  Otherwise
// it returns true if every argument is an integer.
func checkNumbers(env *LEnv, args []*LVal) (bool, *LVal) {
	allInt := true
	for i, v := range args {
		switch v.Type {
		case LInt:
		case LFloat:
			allInt = false
		default:
			return false, env.ErrorConditionf(CondBadArg, "argument %d is not a number: %v", i, GetType(v))
		}
	}
	return allInt, nil
}

func builtinAdd(env *LEnv, args []*LVal) *LVal {
	allInt, lerr := checkNumbers(env, args)
	if lerr != nil {
		return lerr
	}
	if allInt {
		var sum int64
		for _, v := range args {
			sum += v.Int
		}
		return Int(sum)
	}
	var sum float64
	for _, v := range args {
		sum += toFloat(v)
	}
	return Float(sum)
}

func builtinMul(env *LEnv, args []*LVal) *LVal {
	allInt, lerr := checkNumbers(env, args)
	if lerr != nil {
		return lerr
	}
	if allInt {
		prod := int64(1)
		for _, v := range args {
			prod *= v.Int
		}
		return Int(prod)
	}
	prod := 1.0
	for _, v := range args {
		prod *= toFloat(v)
	}
	return Float(prod)
}

func builtinSub(env *LEnv, args []*LVal) *LVal {
	allInt, lerr := checkNumbers(env, args)
	if lerr != nil {
		return lerr
	}
	if len(args) == 1 {
		if allInt {
			return Int(-args[0].Int)
		}
		return Float(-args[0].Float)
	}
	if allInt {
		diff := args[0].Int
		for _, v := range args[1:] {
			diff -= v.Int
		}
		return Int(diff)
	}
	diff := toFloat(args[0])
	for _, v := range args[1:] {
		diff -= toFloat(v)
	}
	return Float(diff)
}

// builtinDiv performs integer division when all arguments are integers.
// Float division by zero follows IEEE 754.
func builtinDiv(env *LEnv, args []*LVal) *LVal {
	allInt, lerr := checkNumbers(env, args)
	if lerr != nil {
		return lerr
	}
	if len(args) == 1 {
		args = []*LVal{Int(1), args[0]}
	}
	if allInt {
		quo := args[0].Int
		for _, v := range args[1:] {
			if v.Int == 0 {
				return env.ErrorConditionf(CondDivByZero, "division by zero")
			}
			quo /= v.Int
		}
		return Int(quo)
	}
	quo := toFloat(args[0])
	for _, v := range args[1:] {
		quo /= toFloat(v)
	}
	return Float(quo)
}

func builtinMod(env *LEnv, args []*LVal) *LVal {
	for i, v := range args {
		if v.Type != LInt {
			return env.ErrorConditionf(CondBadArg, "argument %d is not an integer: %v", i, GetType(v))
		}
	}
	x, y := args[0].Int, args[1].Int
	if y == 0 {
		return env.ErrorConditionf(CondDivByZero, "modulo by zero")
	}
	m := x % y
	// the result takes the sign of the divisor
	if m != 0 && (m < 0) != (y < 0) {
		m += y
	}
	return Int(m)
}

func builtinEqual(env *LEnv, args []*LVal) *LVal {
	for i := 1; i < len(args); i++ {
		if !Equal(args[i-1], args[i]) {
			return Bool(false)
		}
	}
	return Bool(true)
}

func builtinNotEqual(env *LEnv, args []*LVal) *LVal {
	return Bool(!builtinEqual(env, args).IsTrue())
}

func numericOrder(test func(c int) bool) LBuiltin {
	return func(env *LEnv, args []*LVal) *LVal {
		if _, lerr := checkNumbers(env, args); lerr != nil {
			return lerr
		}
		for i := 1; i < len(args); i++ {
			if !test(Compare(args[i-1], args[i])) {
				return Bool(false)
			}
		}
		return Bool(true)
	}
}

var (
	builtinLT  = numericOrder(func(c int) bool { return c < 0 })
	builtinLEQ = numericOrder(func(c int) bool { return c <= 0 })
	builtinGT  = numericOrder(func(c int) bool { return c > 0 })
	builtinGEQ = numericOrder(func(c int) bool { return c >= 0 })
)

func builtinCompare(env *LEnv, args []*LVal) *LVal {
	return Int(int64(Compare(args[0], args[1])))
}
