package tasks

// Step names reported in Result.Step.
const (
	StepInstall = "install"
	StepGit     = "git"
)

// Result is the outcome of one setup step.
type Result struct {
	Step string
	// Err is non-nil when the step failed.
	Err error
	// Message is the user-facing summary: a success line, or what to do
	// by hand after a failure.
	Message string
}

// OK reports whether the step succeeded.
func (r Result) OK() bool { return r.Err == nil }

func succeeded(step, message string) Result {
	return Result{Step: step, Message: message}
}

func failed(step string, err error, message string) Result {
	return Result{Step: step, Err: err, Message: message}
}
