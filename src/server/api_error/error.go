package api_error

const DefaultUserMessage = "Something went wrong, please try again"

type JSONAPIError struct {
	Code         string `json:"code"`
	Msg          string `json:"msg"`
	ErrorDetails string `json:"error_details"`
}

// NewJSONAPIError falls back to a generic message so a client always has
// something to show, details may be nil
func NewJSONAPIError(code string, userMessage string, details error) JSONAPIError {
	if userMessage == "" {
		userMessage = DefaultUserMessage
	}

	errorDetails := ""
	if details != nil {
		errorDetails = details.Error()
	}

	return JSONAPIError{
		Code:         code,
		Msg:          userMessage,
		ErrorDetails: errorDetails,
	}
}
