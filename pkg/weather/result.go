package weather

// Result is the single outcome delivered by FetchAsync.
type Result struct {
	reading Reading
	err     error
}

// NewResult wraps a fetch outcome. The reading is dropped when err is set.
func NewResult(reading Reading, err error) Result {
	if err != nil {
		return Result{err: err}
	}
	return Result{reading: reading}
}

// Value returns the reading and the error together.
func (r Result) Value() (Reading, error) {
	return r.reading, r.err
}

// Error returns the fetch error, or nil on success.
func (r Result) Error() error {
	return r.err
}

// Ok reports whether the fetch succeeded.
func (r Result) Ok() bool {
	return r.err == nil
}
