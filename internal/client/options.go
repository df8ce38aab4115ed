package client

// ErrorPolicy decides what a call does with a failure.
type ErrorPolicy int

const (
	// PolicyThrow returns the error to the caller.
	PolicyThrow ErrorPolicy = iota
	// PolicyDegrade logs the error and returns an empty or failure-shaped
	// value instead, for widgets that must not break the page.
	PolicyDegrade
)

func (p ErrorPolicy) String() string {
	if p == PolicyDegrade {
		return "degrade-empty"
	}
	return "throw"
}

type callOptions struct {
	policy ErrorPolicy
}

type CallOption func(*callOptions)

func WithErrorPolicy(p ErrorPolicy) CallOption {
	return func(o *callOptions) {
		o.policy = p
	}
}

func resolveOptions(defaultPolicy ErrorPolicy, opts []CallOption) callOptions {
	o := callOptions{policy: defaultPolicy}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
