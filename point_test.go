package mandelbrot

import "testing"

func TestComplexPoint_Square(t *testing.T) {
	tests := []struct {
		name string
		in   ComplexPoint
		want ComplexPoint
	}{
		{"zero", Cpx(0, 0), Cpx(0, 0)},
		{"real axis", Cpx(2, 0), Cpx(4, 0)},
		{"imaginary axis", Cpx(0, 2), Cpx(-4, 0)},
		{"i squared is minus one", Cpx(0, 1), Cpx(-1, 0)},
		{"mixed", Cpx(1, 2), Cpx(-3, 4)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Square(); got != tt.want {
				t.Errorf("%v.Square() = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestComplexPoint_MagnitudeSquared(t *testing.T) {
	if got := Cpx(3, 4).MagnitudeSquared(); got != 25 {
		t.Errorf("MagnitudeSquared() = %v, want 25", got)
	}
	if got := Cpx(0, 0).MagnitudeSquared(); got != 0 {
		t.Errorf("MagnitudeSquared() = %v, want 0", got)
	}
}

func TestComplexPoint_AddSub(t *testing.T) {
	p := Cpx(1, 2)
	q := Cpx(-3, 0.5)

	if got := p.Add(q); got != Cpx(-2, 2.5) {
		t.Errorf("Add = %v, want (-2, 2.5)", got)
	}
	if got := p.Sub(q); got != Cpx(4, 1.5) {
		t.Errorf("Sub = %v, want (4, 1.5)", got)
	}
}
