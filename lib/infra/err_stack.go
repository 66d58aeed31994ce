package infra

import (
	"fmt"
	"io"
	"path"
	"runtime"
	"strconv"
	"strings"
)

// References:
// https://github.com/pkg/errors/blob/master/stack.go

type Frame uintptr

func (frame Frame) pc() uintptr {
	return uintptr(frame) - 1
}

func (frame Frame) file() string {
	pc := frame.pc()
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "unknownFile"
	}
	f, _ := fn.FileLine(pc)
	return f
}

func (frame Frame) line() int {
	pc := frame.pc()
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return 0
	}
	_, l := fn.FileLine(pc)
	return l
}

func (frame Frame) name() string {
	pc := frame.pc()
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "unknownFunc"
	}
	return fn.Name()
}

// Format characters:
// %s - source file
// %d - source line
// %n - function name
// %v - verbose, equivalent to %s:%d
// %+s - full path, the root path is relative to the compile time GOPATH
// separated by \n\t (<function-name>\n\t<path>)
// %+v - equivalent to %+s:%d
func (frame Frame) Format(s fmt.State, verb rune) {
	switch verb {
	case 's':
		if s.Flag('+') {
			_, _ = io.WriteString(s, frame.name())
			_, _ = io.WriteString(s, "\n\t")
			_, _ = io.WriteString(s, frame.file())
		} else {
			_, _ = io.WriteString(s, path.Base(frame.file()))
		}
	case 'd':
		_, _ = io.WriteString(s, strconv.Itoa(frame.line()))
	case 'n':
		_, _ = io.WriteString(s, funcName(frame.name()))
	case 'v':
		frame.Format(s, 's')
		_, _ = io.WriteString(s, ":")
		frame.Format(s, 'd')
	}
}

func funcName(name string) string {
	i := strings.LastIndex(name, "/")
	name = name[i+1:]
	i = strings.Index(name, ".")
	return name[i+1:]
}

const errStackMaxDepth = 32

type errorStack struct {
	cause  error
	msg    string
	frames []Frame
}

func (e *errorStack) Error() string {
	if e.cause == nil {
		return e.msg
	}
	if len(e.msg) <= 0 {
		return e.cause.Error()
	}
	return e.msg + ": " + e.cause.Error()
}

func (e *errorStack) Unwrap() error {
	return e.cause
}

// For fmt.Sprintf("%+v", err), each frame is rendered as
// <file>:<line>, one frame per line after the message.
func (e *errorStack) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		_, _ = io.WriteString(s, e.Error())
		if s.Flag('+') {
			for _, frame := range e.frames {
				_, _ = io.WriteString(s, "\n")
				frame.Format(s, 's')
				_, _ = io.WriteString(s, ":")
				frame.Format(s, 'd')
			}
		}
	case 's':
		_, _ = io.WriteString(s, e.Error())
	}
}

func callers(skip int) []Frame {
	var pcs [errStackMaxDepth]uintptr
	n := runtime.Callers(skip, pcs[:])
	frames := make([]Frame, 0, n)
	for i := 0; i < n; i++ {
		frames = append(frames, Frame(pcs[i]))
	}
	return frames
}

// NewErrorStack creates a new error with the current call stack attached.
func NewErrorStack(message string) error {
	return &errorStack{
		msg:    message,
		frames: callers(3),
	}
}

// WrapErrorStack attaches the current call stack to err.
// A nil err results in a nil error.
func WrapErrorStack(err error) error {
	if err == nil {
		return nil
	}
	return &errorStack{
		cause:  err,
		frames: callers(3),
	}
}

// WrapErrorStackWithMessage attaches the current call stack and an
// extra message to err. A nil err results in a nil error.
func WrapErrorStackWithMessage(err error, message string) error {
	if err == nil {
		return nil
	}
	return &errorStack{
		cause:  err,
		msg:    message,
		frames: callers(3),
	}
}
