package scalar

import "testing"

func TestFixed16Arithmetic(t *testing.T) {
	half := FromFixedInt(1).Div(FromFixedInt(2))
	if half.Raw != 32768 {
		t.Fatalf("1/2 raw = %d, want 32768", half.Raw)
	}
	three := FromFixedInt(1).Add(FromFixedInt(2))
	if three.ToInt() != 3 {
		t.Fatalf("1+2 = %d, want 3", three.ToInt())
	}
	product := FromFixedInt(3).Mul(FromFixedInt(4))
	if product.ToInt() != 12 {
		t.Fatalf("3*4 = %d, want 12", product.ToInt())
	}
}

func TestFixed16DivByZero(t *testing.T) {
	if got := FromFixedInt(5).Div(FromRaw(0)); got.Raw != 0 {
		t.Fatalf("divide by zero = %d, want 0", got.Raw)
	}
}

func TestFixed16Sqrt(t *testing.T) {
	got := FromFixedInt(4).Sqrt()
	want := FromFixedInt(2)
	diff := got.Sub(want).Abs()
	if diff.Raw > 4 {
		t.Fatalf("sqrt(4) = %v, want ~%v", got, want)
	}
}

func TestFixed16Cap(t *testing.T) {
	limit := FromFixedInt(10)
	if got := FromFixedInt(50).Cap(limit); got != limit {
		t.Fatalf("cap(50,10) = %v, want %v", got, limit)
	}
	if got := FromFixedInt(-50).Cap(limit); got.Raw != -limit.Raw {
		t.Fatalf("cap(-50,10) = %v, want %v", got, FromRaw(-limit.Raw))
	}
}

func TestFixed16SnapToGrid(t *testing.T) {
	eps := Fixed16{}.MakeEpsilon(FromRaw(1 << 4))
	v := FromRaw(37)
	snapped := v.SnapToGrid(eps)
	if snapped.Raw%16 != 0 {
		t.Fatalf("snapped raw %d not a multiple of epsilon", snapped.Raw)
	}
}

func TestFloat32Cap(t *testing.T) {
	if got := Float32(500).Cap(100); got != 100 {
		t.Fatalf("cap(500,100) = %v, want 100", got)
	}
	nan := Float32(0).Div(0)
	if got := nan.Cap(100); got != 0 {
		t.Fatalf("cap(NaN,100) = %v, want 0", got)
	}
}

func TestFloat32SnapToGrid(t *testing.T) {
	eps := Float32(0).MakeEpsilon(0.1)
	got := Float32(0.34).SnapToGrid(eps)
	if got.Sub(0.3).Abs() > 0.001 {
		t.Fatalf("snap(0.34, 0.1) = %v, want ~0.3", got)
	}
}

func TestFixed16Trig(t *testing.T) {
	halfPi := Fixed16{}.HalfPi()
	sin := halfPi.Sin()
	one := Fixed16{}.One()
	if sin.Sub(one).Abs().Raw > 200 {
		t.Fatalf("sin(pi/2) = %v, want ~1", sin)
	}
}
