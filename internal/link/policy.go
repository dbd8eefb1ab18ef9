package link

import (
	"fmt"
	"strings"
)

const (
	PolicyAlways = "always"
	PolicyHTTPS  = "https"
)

// Policy decides whether a link path may be used to submit a folder.
//
// Two behaviours exist in the history of this product: an unconditional pass and a
// check for an https:// prefix. The prefix check rejects every in-app path such as
// /create/<id>, because the checked value is a bare path. Until the intended contract
// is settled, PolicyAlways is the default and PolicyHTTPS is kept selectable.
type Policy interface {
	Valid(path string) bool
}

// PolicyFunc adapts a function to Policy.
type PolicyFunc func(path string) bool

func (f PolicyFunc) Valid(path string) bool {
	return f(path)
}

var (
	AlwaysValid  Policy = PolicyFunc(func(string) bool { return true })
	RequireHTTPS Policy = PolicyFunc(func(path string) bool { return strings.HasPrefix(path, "https://") })
)

// NewPolicy resolves a configured policy name. An empty name selects PolicyAlways.
func NewPolicy(name string) (Policy, error) {
	switch name {
	case PolicyAlways, "":
		return AlwaysValid, nil
	case PolicyHTTPS:
		return RequireHTTPS, nil
	default:
		return nil, fmt.Errorf("unknown link policy: %s", name)
	}
}
