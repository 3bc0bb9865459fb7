package tracing

import "testing"

func TestNormalizeJaegerCollector(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "  ", want: defaultCollectorEndpoint},
		{name: "host only", in: "jaeger:14268", want: "http://jaeger:14268/api/traces"},
		{name: "trailing slash", in: "http://jaeger:14268/", want: "http://jaeger:14268/api/traces"},
		{name: "full endpoint", in: "https://jaeger.local/api/traces", want: "https://jaeger.local/api/traces"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := normalizeJaegerCollector(tc.in); got != tc.want {
				t.Fatalf("normalizeJaegerCollector(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestSampleRatio(t *testing.T) {
	if got := sampleRatio(0); got != 1 {
		t.Fatalf("zero ratio should sample everything, got %v", got)
	}
	if got := sampleRatio(1.5); got != 1 {
		t.Fatalf("out of range ratio should sample everything, got %v", got)
	}
	if got := sampleRatio(0.25); got != 0.25 {
		t.Fatalf("unexpected ratio: %v", got)
	}
}
