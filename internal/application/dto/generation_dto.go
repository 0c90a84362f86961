package dto

// GenerationRequest entrada de /summarize-description/ y /generate-and-segment/.
type GenerationRequest struct {
	PromptKey            *string `json:"prompt_key,omitempty"`
	UserDescriptionInput string  `json:"user_description_input"`
}

// SummarizeResponse salida de /summarize-description/.
type SummarizeResponse struct {
	GeneratedDescription string `json:"generated_description"`
}

// SegmentResponse salida de /generate-and-segment/.
// SegmentInTaxonomy indica si el texto devuelto coincide con alguno de los segmentos enviados al modelo.
type SegmentResponse struct {
	AssignedSegment   string `json:"assigned_segment"`
	SegmentInTaxonomy bool   `json:"segment_in_taxonomy"`
}

// InfoResponse salida de GET /.
type InfoResponse struct {
	Message         string            `json:"message"`
	GeminiKeyStatus string            `json:"gemini_key_status"`
	PromptsStatus   string            `json:"prompts_status"`
	PromptsLoaded   int               `json:"prompts_loaded"`
	Endpoints       map[string]string `json:"endpoints"`
}
