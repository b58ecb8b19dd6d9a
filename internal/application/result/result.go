// Package result provides the success/failure wrapper returned by every
// manager operation. Expected outcomes such as "not found" or "invalid input"
// are reported here; only unexpected faults travel as Go errors.
package result

// Result is the outcome of an operation without a payload.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// DataResult is the outcome of an operation that yields data. Data is the
// zero value whenever Success is false.
type DataResult[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// Ok returns a successful result.
func Ok(message string) Result {
	return Result{Success: true, Message: message}
}

// Fail returns a failed result.
func Fail(message string) Result {
	return Result{Success: false, Message: message}
}

// OkData returns a successful result carrying data.
func OkData[T any](data T, message string) DataResult[T] {
	return DataResult[T]{Success: true, Message: message, Data: data}
}

// FailData returns a failed result with zero data.
func FailData[T any](message string) DataResult[T] {
	return DataResult[T]{Success: false, Message: message}
}

// FromRowCount maps a commit row count to a result: any affected row is a
// success, zero rows is a failure.
func FromRowCount(rows int, okMessage, failMessage string) Result {
	if rows > 0 {
		return Ok(okMessage)
	}
	return Fail(failMessage)
}

// Run returns the first failed check, or a success when every check passed.
func Run(checks ...Result) Result {
	for _, c := range checks {
		if !c.Success {
			return c
		}
	}
	return Ok("")
}

// Plain drops the payload.
func (r DataResult[T]) Plain() Result {
	return Result{Success: r.Success, Message: r.Message}
}
