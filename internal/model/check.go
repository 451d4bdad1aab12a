package model

// CheckResult is the outcome of validating one code-info file.
type CheckResult struct {
	Path      Path
	Scopes    int
	Functions int
	Loops     int
	Branches  int
	Variables int
	Err       error
}

// OK reports whether the file passed validation.
func (r CheckResult) OK() bool {
	return r.Err == nil
}
