package cli

import (
	"reflect"
	"testing"

	apperrors "github.com/coder0xff/optifactory/pkg/errors"
)

func TestParseFlows(t *testing.T) {
	cases := []struct {
		in   string
		want []int
	}{
		{"480,480,480", []int{480, 480, 480}},
		{"45x4", []int{45, 45, 45, 45}},
		{"100, 50", []int{100, 50}},
		{"60,30x2,10", []int{60, 30, 30, 10}},
		{"0", []int{0}},
	}

	for _, tc := range cases {
		got, err := parseFlows(tc.in)
		if err != nil {
			t.Errorf("parseFlows(%q) error: %v", tc.in, err)
			continue
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("parseFlows(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseFlows_Invalid(t *testing.T) {
	for _, in := range []string{"", "abc", "-5", "45x0", "45x-1", "45xx2", "4.5"} {
		if _, err := parseFlows(in); err == nil {
			t.Errorf("parseFlows(%q) accepted invalid input", in)
		} else if !apperrors.Is(err, apperrors.ErrCodeInvalidInput) {
			t.Errorf("parseFlows(%q) error = %v, want INVALID_INPUT", in, err)
		}
	}
}

func TestParseFloatFlows(t *testing.T) {
	got, err := parseFloatFlows("1.5, 2.25,3")
	if err != nil {
		t.Fatalf("parseFloatFlows error: %v", err)
	}
	want := []float64{1.5, 2.25, 3}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseFloatFlows = %v, want %v", got, want)
	}
}

func TestParseFormats(t *testing.T) {
	if got := parseFormats(""); !reflect.DeepEqual(got, []string{"svg"}) {
		t.Errorf("parseFormats(\"\") = %v, want [svg]", got)
	}
	if got := parseFormats("PNG, dot"); !reflect.DeepEqual(got, []string{"png", "dot"}) {
		t.Errorf("parseFormats = %v, want [png dot]", got)
	}
}

func TestValidateFormats(t *testing.T) {
	if err := validateFormats([]string{"svg", "png", "dot", "json"}); err != nil {
		t.Errorf("validateFormats error: %v", err)
	}
	if err := validateFormats([]string{"gif"}); !apperrors.Is(err, apperrors.ErrCodeInvalidFormat) {
		t.Errorf("validateFormats(gif) error = %v, want INVALID_FORMAT", err)
	}
}

func TestArtifactPath(t *testing.T) {
	cases := []struct {
		output string
		format string
		count  int
		want   string
	}{
		{"", "svg", 1, "balancer.svg"},
		{"net.svg", "svg", 1, "net.svg"},
		{"net", "png", 1, "net.png"},
		{"net.svg", "svg", 2, "net.svg.svg"},
		{"out/net", "dot", 3, "out/net.dot"},
	}
	for _, tc := range cases {
		if got := artifactPath(tc.output, tc.format, tc.count); got != tc.want {
			t.Errorf("artifactPath(%q, %q, %d) = %q, want %q", tc.output, tc.format, tc.count, got, tc.want)
		}
	}
}
