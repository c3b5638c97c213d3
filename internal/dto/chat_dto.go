package dto

// ChatRequest is one inbound turn. SessionId is optional on first
// contact; the response always carries the id to use next.
type ChatRequest struct {
	SessionId string `json:"session_id"`
	Message   string `json:"message" validate:"required"`
}

// ChatResponse returns the reply markup and the now-current slot
// values, so the widget can display what the guide has understood.
type ChatResponse struct {
	SessionId string `json:"session_id"`
	Reply     string `json:"reply"`
	HairType  string `json:"hair_type,omitempty"`
	Concern   string `json:"concern,omitempty"`
}

// ProductMatchDTO is one ranked retrieval result (debug/search surface).
type ProductMatchDTO struct {
	Title string  `json:"title"`
	URL   string  `json:"url"`
	Image string  `json:"image,omitempty"`
	Score float64 `json:"score"`
}
