package cli

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	apperrors "github.com/coder0xff/optifactory/pkg/errors"
)

// supportedFormats lists the output formats the design command can write.
var supportedFormats = []string{"svg", "png", "dot", "json"}

// parseFormats splits a comma-separated format list, defaulting to svg.
func parseFormats(s string) []string {
	if s == "" {
		return []string{"svg"}
	}
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			formats = append(formats, strings.ToLower(f))
		}
	}
	return formats
}

// validateFormats checks that every requested format is supported.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if !slices.Contains(supportedFormats, f) {
			return apperrors.New(apperrors.ErrCodeInvalidFormat,
				"unsupported format %q (supported: %s)", f, strings.Join(supportedFormats, ", "))
		}
	}
	return nil
}

// parseFlows parses a comma-separated flow list. Each element is either a
// plain non-negative integer or a "<flow>x<count>" repetition, so
// "480,480,480" and "45x32" both work.
func parseFlows(s string) ([]int, error) {
	var flows []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		raw, count := part, 1
		if flow, repeat, ok := strings.Cut(part, "x"); ok {
			n, err := strconv.Atoi(repeat)
			if err != nil || n < 1 {
				return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "invalid repetition %q", part)
			}
			raw, count = flow, n
		}

		value, err := strconv.Atoi(raw)
		if err != nil || value < 0 {
			return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "invalid flow %q", part)
		}
		for range count {
			flows = append(flows, value)
		}
	}
	if len(flows) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "empty flow list %q", s)
	}
	return flows, nil
}

// parseFloatFlows parses a comma-separated list of fractional flow rates.
// Used with --total, which proportionally rounds them into integers.
func parseFloatFlows(s string) ([]float64, error) {
	var flows []float64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		value, err := strconv.ParseFloat(part, 64)
		if err != nil || value < 0 {
			return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "invalid flow %q", part)
		}
		flows = append(flows, value)
	}
	if len(flows) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "empty flow list %q", s)
	}
	return flows, nil
}

// sortedKeys returns the keys of an int-keyed map in ascending order.
func sortedKeys(m map[int]int) []int {
	return slices.Sorted(maps.Keys(m))
}
