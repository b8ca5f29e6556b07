package apperror

type Error string

func (e Error) Error() string { return string(e) }

// generic errors shared by all models (domain specific ones live in the models package)
const (
	ErrNoData          = Error("no records found")
	ErrMultipleRecords = Error("mulitple records found")
	ErrDenied          = Error("not allowed") // eg. role does not permit the action
	ErrUnauthenticated = Error("requires authorization")
)
