package classifier

// Request is one analysis submission. Exactly one of File or Text is used;
// File wins when both are set.
type Request struct {
	File *FilePart
	Text string
}

// FilePart is an uploaded email file
type FilePart struct {
	Name        string
	ContentType string
	Data        []byte
}

// Result is the classification returned by the API on success
type Result struct {
	Classification       string  `json:"classification"`
	ClassificationReason string  `json:"classification_reason"`
	SuggestedResponse    string  `json:"suggested_response"`
	ClassificationTime   float64 `json:"classification_time"`
	GenerationTime       float64 `json:"generation_time"`
	ModelUsed            string  `json:"model_used"`
	CharCount            int     `json:"char_count"`
	AnalyzedContent      string  `json:"analyzed_content"`
}

// Productive reports whether the email was classified as requiring action.
// The comparison is case-sensitive.
func (r *Result) Productive() bool {
	return r != nil && r.Classification == ClassProductive
}

// ClassProductive is the label the API emits for emails that need action;
// any other label is unproductive
const ClassProductive = "PRODUTIVO"

// Health is the API status report served at /api/health
type Health struct {
	Status           string   `json:"status"`
	Message          string   `json:"message"`
	AIProvider       string   `json:"ai_provider"`
	GroqStatus       string   `json:"groq_status"`
	SupportedFormats []string `json:"supported_formats"`
	MaxFileSizeMB    float64  `json:"max_file_size_mb"`
	Version          string   `json:"version"`
}

// Healthy reports whether the API considers itself operational
func (h *Health) Healthy() bool {
	return h != nil && h.Status == "healthy"
}
