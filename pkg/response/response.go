package response

// ErrorBody is the standard failure shape for every endpoint. Internal
// error text is never passed through here; handlers log the cause and
// return a fixed message.
type ErrorBody struct {
	Error string `json:"error"`
}

// Err wraps a client-facing message in the standard error body.
func Err(msg string) ErrorBody {
	return ErrorBody{Error: msg}
}
