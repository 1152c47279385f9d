package dto

// Res is the generic envelope used by auth endpoints.
type Res struct {
	ResponseCode    string      `json:"response_code"`
	ResponseMessage string      `json:"response_message"`
	Data            interface{} `json:"data,omitempty"`
}
