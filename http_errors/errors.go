package http_errors

type ErrorResponse struct {
	Message   string `json:"message"`
	Code      int    `json:"code"`
	ErrorCode string `json:"errorCode,omitempty"` // Stable identifier of the failure, e.g. MONGO_DUPLICATE_KEY
	Details   any    `json:"details,omitempty"`   // Optional field for additional error details
} // @name ErrorResponse

func (e *ErrorResponse) Error() string {
	return e.Message
}

func NewErrorResponse(code int, message string, details ...any) *ErrorResponse {
	if len(details) > 0 {
		return &ErrorResponse{
			Message: message,
			Code:    code,
			Details: details[0], // Take the first detail if provided
		}
	}

	return &ErrorResponse{
		Message: message,
		Code:    code,
	}
}

func NewErrorResponseWithCode(code int, errorCode string, message string, details ...any) *ErrorResponse {
	response := NewErrorResponse(code, message, details...)
	response.ErrorCode = errorCode
	return response
}

func BadRequestErrorWithCode(errorCode string, message string, details ...any) *ErrorResponse {
	return NewErrorResponseWithCode(400, errorCode, message, details...)
}

func NotFoundErrorWithCode(errorCode string, message string, details ...any) *ErrorResponse {
	return NewErrorResponseWithCode(404, errorCode, message, details...)
}

func ConflictErrorWithCode(errorCode string, message string, details ...any) *ErrorResponse {
	return NewErrorResponseWithCode(409, errorCode, message, details...)
}

func InternalServerErrorWithCode(errorCode string, message string, details ...any) *ErrorResponse {
	return NewErrorResponseWithCode(500, errorCode, message, details...)
}
