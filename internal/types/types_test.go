package types

import "testing"

func TestSingle_Equals(t *testing.T) {
	if !I32.Equals(NewSingle("i32")) {
		t.Error("expected two i32 Singles to be equal")
	}
	if I32.Equals(I64) {
		t.Error("expected i32 and i64 to differ")
	}
}

func TestPointer_String(t *testing.T) {
	p := NewPointer(I32)
	if got, want := p.String(), "@i32"; got != want {
		t.Errorf("Pointer.String() = %q, want %q", got, want)
	}
}

func TestStaticArray_String(t *testing.T) {
	tests := []struct {
		name string
		arr  *StaticArray
		want string
	}{
		{"sized", NewStaticArray(I8, 10), "[10]i8"},
		{"unsized", NewStaticArray(I8, -1), "[]i8"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.arr.String(); got != tt.want {
				t.Errorf("StaticArray.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSIMD_Equals(t *testing.T) {
	a := NewSIMD(F32, 4)
	b := NewSIMD(F32, 4)
	c := NewSIMD(F32, 8)
	if !a.Equals(b) {
		t.Error("expected equal SIMD types to compare equal")
	}
	if a.Equals(c) {
		t.Error("expected different widths to compare unequal")
	}
}

func TestObject_LookupField(t *testing.T) {
	obj := NewObject("menu")
	obj.Fields["title"] = CStr

	if got := obj.LookupField("title"); got != CStr {
		t.Errorf("LookupField(title) = %v, want CStr", got)
	}
	if got := obj.LookupField("missing"); got != nil {
		t.Errorf("LookupField(missing) = %v, want nil", got)
	}
}

func TestFunction_Equals(t *testing.T) {
	f1 := NewFunction([]Type{I32, I32}, Bool)
	f2 := NewFunction([]Type{I32, I32}, Bool)
	f3 := NewFunction([]Type{I32}, Bool)

	if !f1.Equals(f2) {
		t.Error("expected identical signatures to be equal")
	}
	if f1.Equals(f3) {
		t.Error("expected different arity to compare unequal")
	}
}

func TestMerge_IdenticalIsNoOp(t *testing.T) {
	got := Merge(I32, NewSingle("i32"))
	if !got.Equals(I32) {
		t.Errorf("Merge(i32, i32) = %v, want i32", got)
	}
}

func TestMerge_ProducesWeakMultiple(t *testing.T) {
	got := Merge(I32, Bool)
	m, ok := got.(*Multiple)
	if !ok {
		t.Fatalf("Merge(i32, bool) = %T, want *Multiple", got)
	}
	if m.Strong {
		t.Error("expected inferred merge to produce a weak multiple")
	}
	if len(m.Types) != 2 || !m.Types[0].Equals(I32) || !m.Types[1].Equals(Bool) {
		t.Errorf("Merge(i32, bool).Types = %v, want [i32 bool]", m.Types)
	}
}

func TestMerge_AppendsNewAlternativeToWeakMultiple(t *testing.T) {
	m := Merge(I32, Bool)
	got := Merge(m, CStr)

	mm, ok := got.(*Multiple)
	if !ok {
		t.Fatalf("Merge result = %T, want *Multiple", got)
	}
	if len(mm.Types) != 3 {
		t.Errorf("expected 3 alternatives, got %d: %v", len(mm.Types), mm.Types)
	}
}

func TestMerge_DoesNotDuplicateExistingAlternative(t *testing.T) {
	m := Merge(I32, Bool)
	got := Merge(m, NewSingle("i32"))

	mm := got.(*Multiple)
	if len(mm.Types) != 2 {
		t.Errorf("expected merge of an already-present alternative to be a no-op, got %v", mm.Types)
	}
}

func TestMerge_StrongMultipleNeverChanges(t *testing.T) {
	strong := NewMultiple([]Type{I32, Bool}, true)
	got := Merge(strong, CStr)

	if got != Type(strong) {
		t.Errorf("Merge into a strong multiple should return it unchanged, got %v", got)
	}
}

func TestMerge_StrongMultipleNeverChangesRegardlessOfArgumentOrder(t *testing.T) {
	strong := NewMultiple([]Type{I32, Bool}, true)
	got := Merge(CStr, strong)

	if got != Type(strong) {
		t.Errorf("Merge must be commutative: merging a concrete type into a strong multiple from either side should return it unchanged, got %v", got)
	}
}

func TestIsBuiltInIntegerFloatNumber(t *testing.T) {
	if !IsBuiltIn(I32) {
		t.Error("expected i32 to be built-in")
	}
	if IsBuiltIn(NewObject("menu")) {
		t.Error("expected an Object type not to be built-in")
	}
	if !IsInteger(I64) || IsInteger(F64) {
		t.Error("IsInteger classification wrong")
	}
	if !IsFloat(F32) || IsFloat(I8) {
		t.Error("IsFloat classification wrong")
	}
	if !IsNumber(I8) || !IsNumber(F64) || IsNumber(Bool) {
		t.Error("IsNumber classification wrong")
	}
}
