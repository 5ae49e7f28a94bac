// Copyright © 2018 The ELPS authors

package lisp

func seqArg(env *LEnv, v *LVal) ([]*LVal, *LVal) {
	cells, ok := v.Seq()
	if !ok {
		return nil, env.ErrorConditionf(CondBadArg, "argument is not a sequence: %v", GetType(v))
	}
	return cells, nil
}

// funArg accepts macros.  They are applied to their arguments like any other
// function.
func funArg(env *LEnv, v *LVal) *LVal {
	if v.Type != LFun {
		return env.ErrorConditionf(CondBadArg, "argument is not a function: %v", GetType(v))
	}
	return nil
}

func intArg(env *LEnv, v *LVal) (int64, *LVal) {
	if v.Type != LInt {
		return 0, env.ErrorConditionf(CondBadArg, "argument is not an int: %v", GetType(v))
	}
	return v.Int, nil
}

func copyCells(cells []*LVal) []*LVal {
	cp := make([]*LVal, len(cells))
	copy(cp, cells)
	return cp
}

func builtinList(env *LEnv, args []*LVal) *LVal {
	return List(copyCells(args))
}

func builtinVector(env *LEnv, args []*LVal) *LVal {
	return Vector(copyCells(args))
}

func builtinVec(env *LEnv, args []*LVal) *LVal {
	cells, lerr := seqArg(env, args[0])
	if lerr != nil {
		return lerr
	}
	return Vector(copyCells(cells))
}

func builtinCons(env *LEnv, args []*LVal) *LVal {
	cells, lerr := seqArg(env, args[1])
	if lerr != nil {
		return lerr
	}
	lis := make([]*LVal, 0, len(cells)+1)
	lis = append(lis, args[0])
	lis = append(lis, cells...)
	return List(lis)
}

func builtinConcat(env *LEnv, args []*LVal) *LVal {
	var lis []*LVal
	for _, v := range args {
		cells, lerr := seqArg(env, v)
		if lerr != nil {
			return lerr
		}
		lis = append(lis, cells...)
	}
	if lis == nil {
		lis = []*LVal{}
	}
	return List(lis)
}

func builtinFirst(env *LEnv, args []*LVal) *LVal {
	cells, lerr := seqArg(env, args[0])
	if lerr != nil {
		return lerr
	}
	if len(cells) == 0 {
		return Nil()
	}
	return cells[0]
}

// builtinRest shares the backing array of lists and vectors.
func builtinRest(env *LEnv, args []*LVal) *LVal {
	cells, lerr := seqArg(env, args[0])
	if lerr != nil {
		return lerr
	}
	if len(cells) == 0 {
		return List([]*LVal{})
	}
	return List(cells[1:])
}

func builtinNth(env *LEnv, args []*LVal) *LVal {
	cells, lerr := seqArg(env, args[0])
	if lerr != nil {
		return lerr
	}
	n, lerr := intArg(env, args[1])
	if lerr != nil {
		return lerr
	}
	if n < 0 || n >= int64(len(cells)) {
		return env.ErrorConditionf(CondIndexOOB, "index out of bounds: %d (length %d)", n, len(cells))
	}
	return cells[n]
}

func builtinCount(env *LEnv, args []*LVal) *LVal {
	n := args[0].Len()
	if n < 0 {
		return env.ErrorConditionf(CondBadArg, "argument is not a collection: %v", GetType(args[0]))
	}
	return Int(int64(n))
}

func builtinConj(env *LEnv, args []*LVal) *LVal {
	coll, xs := args[0], args[1:]
	switch coll.Type {
	case LNil, LList:
		lis := make([]*LVal, 0, len(coll.Cells)+len(xs))
		for i := len(xs) - 1; i >= 0; i-- {
			lis = append(lis, xs[i])
		}
		lis = append(lis, coll.Cells...)
		return List(lis)
	case LVector:
		vec := make([]*LVal, 0, len(coll.Cells)+len(xs))
		vec = append(vec, coll.Cells...)
		vec = append(vec, xs...)
		return Vector(vec)
	case LSet:
		data := coll.MapData().Copy()
		for _, x := range xs {
			data.Put(x, x)
		}
		return SetFromData(data)
	case LMap:
		data := coll.MapData().Copy()
		for _, x := range xs {
			if x.Type != LVector || len(x.Cells) != 2 {
				return env.ErrorConditionf(CondBadArg, "map entry is not a vector of length 2: %v", x)
			}
			data.Put(x.Cells[0], x.Cells[1])
		}
		return MapFromData(data)
	}
	return env.ErrorConditionf(CondBadArg, "argument is not a collection: %v", GetType(coll))
}

func builtinSeq(env *LEnv, args []*LVal) *LVal {
	cells, lerr := seqArg(env, args[0])
	if lerr != nil {
		return lerr
	}
	if len(cells) == 0 {
		return Nil()
	}
	return List(copyCells(cells))
}

func builtinApply(env *LEnv, args []*LVal) *LVal {
	fun, fargs := args[0], args[1:]
	if lerr := funArg(env, fun); lerr != nil {
		return lerr
	}
	if len(fargs) == 0 {
		return env.FunCall(fun, nil)
	}
	tail, lerr := seqArg(env, fargs[len(fargs)-1])
	if lerr != nil {
		return lerr
	}
	call := make([]*LVal, 0, len(fargs)-1+len(tail))
	call = append(call, fargs[:len(fargs)-1]...)
	call = append(call, tail...)
	return env.FunCall(fun, call)
}

// builtinMap stops at the end of the shortest collection.
func builtinMap(env *LEnv, args []*LVal) *LVal {
	fun := args[0]
	if lerr := funArg(env, fun); lerr != nil {
		return lerr
	}
	colls := make([][]*LVal, len(args)-1)
	n := -1
	for i, v := range args[1:] {
		cells, lerr := seqArg(env, v)
		if lerr != nil {
			return lerr
		}
		colls[i] = cells
		if n < 0 || len(cells) < n {
			n = len(cells)
		}
	}
	out := make([]*LVal, n)
	for i := 0; i < n; i++ {
		fargs := make([]*LVal, len(colls))
		for j := range colls {
			fargs[j] = colls[j][i]
		}
		v := env.FunCall(fun, fargs)
		if v.Type == LError {
			return v
		}
		out[i] = v
	}
	return List(out)
}

func builtinFilter(env *LEnv, args []*LVal) *LVal {
	pred := args[0]
	if lerr := funArg(env, pred); lerr != nil {
		return lerr
	}
	cells, lerr := seqArg(env, args[1])
	if lerr != nil {
		return lerr
	}
	out := make([]*LVal, 0, len(cells))
	for _, x := range cells {
		ok := env.FunCall(pred, []*LVal{x})
		if ok.Type == LError {
			return ok
		}
		if ok.IsTrue() {
			out = append(out, x)
		}
	}
	return List(out)
}

func builtinReduce(env *LEnv, args []*LVal) *LVal {
	fun := args[0]
	if lerr := funArg(env, fun); lerr != nil {
		return lerr
	}
	var acc *LVal
	var cells []*LVal
	switch len(args) {
	case 2:
		all, lerr := seqArg(env, args[1])
		if lerr != nil {
			return lerr
		}
		if len(all) == 0 {
			return env.FunCall(fun, nil)
		}
		acc, cells = all[0], all[1:]
	case 3:
		var lerr *LVal
		cells, lerr = seqArg(env, args[2])
		if lerr != nil {
			return lerr
		}
		acc = args[1]
	default:
		return env.ErrorConditionf(CondBadArity, "%s", arityMessage("reduce", 3, false, len(args)))
	}
	for _, x := range cells {
		acc = env.FunCall(fun, []*LVal{acc, x})
		if acc.Type == LError {
			return acc
		}
	}
	return acc
}

func builtinRange(env *LEnv, args []*LVal) *LVal {
	if len(args) > 3 {
		return env.ErrorConditionf(CondBadArity, "%s", arityMessage("range", 3, false, len(args)))
	}
	nums := make([]int64, len(args))
	for i, v := range args {
		n, lerr := intArg(env, v)
		if lerr != nil {
			return lerr
		}
		nums[i] = n
	}
	start, end, step := int64(0), nums[0], int64(1)
	if len(nums) > 1 {
		start, end = nums[0], nums[1]
	}
	if len(nums) > 2 {
		step = nums[2]
	}
	if step == 0 {
		return env.ErrorConditionf(CondBadArg, "range step is zero")
	}
	out := []*LVal{}
	for i := start; (step > 0 && i < end) || (step < 0 && i > end); i += step {
		out = append(out, Int(i))
	}
	return List(out)
}

func builtinReverse(env *LEnv, args []*LVal) *LVal {
	cells, lerr := seqArg(env, args[0])
	if lerr != nil {
		return lerr
	}
	out := make([]*LVal, len(cells))
	for i, x := range cells {
		out[len(cells)-1-i] = x
	}
	return List(out)
}

func builtinHashMap(env *LEnv, args []*LVal) *LVal {
	if len(args)%2 != 0 {
		return env.ErrorConditionf(CondBadArg, "odd number of arguments: %d", len(args))
	}
	data := NewMapData(len(args) / 2)
	for i := 0; i < len(args); i += 2 {
		data.Put(args[i], args[i+1])
	}
	return MapFromData(data)
}

func builtinHashSet(env *LEnv, args []*LVal) *LVal {
	return Set(args...)
}

func builtinGet(env *LEnv, args []*LVal) *LVal {
	coll, key := args[0], args[1]
	if len(args) > 3 {
		return env.ErrorConditionf(CondBadArity, "%s", arityMessage("get", 3, false, len(args)))
	}
	def := Nil()
	if len(args) == 3 {
		def = args[2]
	}
	switch coll.Type {
	case LNil:
		return def
	case LMap, LSet:
		v, ok := coll.MapData().Get(key)
		if !ok {
			return def
		}
		return v
	case LVector:
		i, lerr := intArg(env, key)
		if lerr != nil {
			return lerr
		}
		if i < 0 || i >= int64(len(coll.Cells)) {
			if len(args) == 3 {
				return def
			}
			return env.ErrorConditionf(CondIndexOOB, "index out of bounds: %d (length %d)", i, len(coll.Cells))
		}
		return coll.Cells[i]
	}
	return env.ErrorConditionf(CondBadArg, "argument is not associative: %v", GetType(coll))
}

func builtinAssoc(env *LEnv, args []*LVal) *LVal {
	coll, kvs := args[0], args[1:]
	if len(kvs)%2 != 0 {
		return env.ErrorConditionf(CondBadArg, "key without a value: %v", kvs[len(kvs)-1])
	}
	switch coll.Type {
	case LNil, LMap:
		var data *MapData
		if coll.Type == LMap {
			data = coll.MapData().Copy()
		} else {
			data = NewMapData(len(kvs) / 2)
		}
		for i := 0; i < len(kvs); i += 2 {
			data.Put(kvs[i], kvs[i+1])
		}
		return MapFromData(data)
	case LVector:
		vec := copyCells(coll.Cells)
		for i := 0; i < len(kvs); i += 2 {
			n, lerr := intArg(env, kvs[i])
			if lerr != nil {
				return lerr
			}
			switch {
			case n >= 0 && n < int64(len(vec)):
				vec[n] = kvs[i+1]
			case n == int64(len(vec)):
				vec = append(vec, kvs[i+1])
			default:
				return env.ErrorConditionf(CondIndexOOB, "index out of bounds: %d (length %d)", n, len(vec))
			}
		}
		return Vector(vec)
	}
	return env.ErrorConditionf(CondBadArg, "argument is not associative: %v", GetType(coll))
}

func mapArg(env *LEnv, v *LVal) *LVal {
	if v.Type != LMap {
		return env.ErrorConditionf(CondBadArg, "argument is not a map: %v", GetType(v))
	}
	return nil
}

func builtinDissoc(env *LEnv, args []*LVal) *LVal {
	m := args[0]
	if m.IsNil() {
		return m
	}
	if lerr := mapArg(env, m); lerr != nil {
		return lerr
	}
	data := m.MapData().Copy()
	for _, k := range args[1:] {
		data.Del(k)
	}
	return MapFromData(data)
}

func builtinKeys(env *LEnv, args []*LVal) *LVal {
	if args[0].IsNil() {
		return List([]*LVal{})
	}
	if lerr := mapArg(env, args[0]); lerr != nil {
		return lerr
	}
	return List(args[0].MapData().Keys())
}

func builtinVals(env *LEnv, args []*LVal) *LVal {
	if args[0].IsNil() {
		return List([]*LVal{})
	}
	if lerr := mapArg(env, args[0]); lerr != nil {
		return lerr
	}
	return List(args[0].MapData().Vals())
}

func builtinContains(env *LEnv, args []*LVal) *LVal {
	coll, key := args[0], args[1]
	switch coll.Type {
	case LNil:
		return Bool(false)
	case LMap, LSet:
		return Bool(coll.MapData().Has(key))
	case LVector:
		if key.Type != LInt {
			return Bool(false)
		}
		return Bool(key.Int >= 0 && key.Int < int64(len(coll.Cells)))
	}
	return env.ErrorConditionf(CondBadArg, "argument is not associative: %v", GetType(coll))
}

func builtinDisj(env *LEnv, args []*LVal) *LVal {
	s := args[0]
	if s.IsNil() {
		return s
	}
	if s.Type != LSet {
		return env.ErrorConditionf(CondBadArg, "argument is not a set: %v", GetType(s))
	}
	data := s.MapData().Copy()
	for _, x := range args[1:] {
		data.Del(x)
	}
	return SetFromData(data)
}
