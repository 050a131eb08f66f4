package fragment

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Mode selects the fragment fan-out behavior.
type Mode int

const (
	// ModeOff disables fan-out; all output goes to a single stream.
	ModeOff Mode = iota

	// ModeNew opens each destination create-exclusive. A destination that
	// already exists is fatal, which doubles as the detector for group
	// tags that are not contiguous in emission order.
	ModeNew

	// ModeAppend opens each destination append-or-create. Group tags may
	// recur non-contiguously.
	ModeAppend
)

// Placeholder is the substitution point required in filename templates.
const Placeholder = "%s"

// ErrNoPlaceholder reports a fragment filename template that does not
// contain exactly one group substitution placeholder. A second
// placeholder would format as a literal MISSING marker in the path.
var ErrNoPlaceholder = errors.New("fragment output template must contain exactly one %s")

// ExistsError reports a create-exclusive destination that already exists,
// either from a previous run or because a group's records were not
// contiguous.
type ExistsError struct {
	Path string
}

func (e *ExistsError) Error() string {
	return fmt.Sprintf("output file %s already exists or group records are not contiguous", e.Path)
}

// Router maps group tags to open destination files. The zero value is not
// usable; construct with New.
type Router struct {
	mode     Mode
	template string
	group    string
	out      *os.File
	bound    bool
}

// New validates the filename template and returns a Router for mode.
func New(mode Mode, template string) (*Router, error) {
	if strings.Count(template, Placeholder) != 1 {
		return nil, ErrNoPlaceholder
	}
	return &Router{mode: mode, template: template}, nil
}

// Route returns the destination for group, opening it if the group
// differs from the currently bound tag. Repeated routes to the same tag
// return the same handle without reopening, which append and multi-record
// groups rely on.
func (r *Router) Route(group string) (io.Writer, error) {
	if r.bound && group == r.group {
		return r.out, nil
	}
	if r.out != nil {
		if err := r.out.Close(); err != nil {
			return nil, err
		}
		r.out = nil
	}

	path := fmt.Sprintf(r.template, group)
	var (
		f   *os.File
		err error
	)
	switch r.mode {
	case ModeNew:
		f, err = os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err != nil && os.IsExist(err) {
			return nil, &ExistsError{Path: path}
		}
	case ModeAppend:
		f, err = os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	default:
		return nil, fmt.Errorf("route called with fan-out disabled")
	}
	if err != nil {
		return nil, fmt.Errorf("open fragment output %s: %w", path, err)
	}

	r.out = f
	r.group = group
	r.bound = true
	return r.out, nil
}

// Close closes the currently bound destination, if any.
func (r *Router) Close() error {
	if r.out == nil {
		return nil
	}
	err := r.out.Close()
	r.out = nil
	r.bound = false
	return err
}
