package models

// Result is a single record returned by the search or extract endpoint. All
// fields besides URL are optional; the remote service owns the schema and we
// read back only the handful of fields we display.
type Result struct {
	Title      string   `json:"title,omitempty"`
	URL        string   `json:"url"`
	Score      *float64 `json:"score,omitempty"`
	Content    string   `json:"content,omitempty"`
	RawContent string   `json:"raw_content,omitempty"`
}

// DisplayContent returns the text shown to the user: the full raw page text
// when present, otherwise the summarized content, otherwise empty.
func (r *Result) DisplayContent() string {
	if r.RawContent != "" {
		return r.RawContent
	}
	return r.Content
}

// FailedResult reports a URL the extract endpoint could not fetch.
type FailedResult struct {
	URL   string `json:"url"`
	Error string `json:"error,omitempty"`
}

// Envelope is the structured response of a search or extract call: the result
// records plus whatever metadata the service sends along.
type Envelope struct {
	Query         string         `json:"query,omitempty"`
	Answer        string         `json:"answer,omitempty"`
	Results       []Result       `json:"results"`
	FailedResults []FailedResult `json:"failed_results,omitempty"`
	ResponseTime  float64        `json:"response_time,omitempty"`
}
