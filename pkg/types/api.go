package types

// TagsResponse is the body returned by the backend's GET /api/tags.
type TagsResponse struct {
	// Models installed on the backend. Order is not significant.
	Models []Model `json:"models" yaml:"models"`
}

// ModelDetails carries optional metadata some backends attach to a catalog entry.
type ModelDetails struct {
	// example: llama
	Family string `json:"family,omitempty" yaml:"family,omitempty"`
	// example: 8.0B
	ParameterSize string `json:"parameter_size,omitempty" yaml:"parameter_size,omitempty"`
	// example: Q4_K_M
	QuantizationLevel string `json:"quantization_level,omitempty" yaml:"quantization_level,omitempty"`
}

// ErrorResponse is the JSON error payload served by the mock backend.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}
