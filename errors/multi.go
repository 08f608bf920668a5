package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If no errors are provided or all of them are nil, nil is returned. A
// single non nil error is returned unchanged.
func Append(errs ...error) error {
	var res multiErr
	for _, err := range errs {
		if isNilErr(err) {
			continue
		}
		// Flatten nested collections.
		if me, ok := err.(multiErr); ok {
			res = append(res, me...)
		} else {
			res = append(res, err)
		}
	}
	switch len(res) {
	case 0:
		return nil
	case 1:
		return res[0]
	default:
		return res
	}
}

// unpacker is implemented by errors that represent a collection.
type unpacker interface {
	Unpack() []error
}

type multiErr []error

func (m multiErr) Unpack() []error {
	return m
}

// Code returns the code of the first error consistent with fail-fast approach.
func (m multiErr) Code() uint32 {
	return Code(m[0])
}

func (m multiErr) Error() string {
	points := make([]string, len(m))
	for i, err := range m {
		points[i] = fmt.Sprintf("* %s", err)
	}
	return fmt.Sprintf(
		"%d errors occurred:\n\t%s\n",
		len(m), strings.Join(points, "\n\t"))
}
