package sandbox

import (
	"regexp"
	"strings"

	"github.com/dop251/goja"
)

// ErrorTag is the closed failure taxonomy surfaced to callers. Only
// TagUnavailable marks a retryable infrastructure fault; every other tag
// is terminal for the invocation and must be fixed by the script author.
type ErrorTag string

const (
	TagCompile     ErrorTag = "CompileError"
	TagRuntime     ErrorTag = "RuntimeError"
	TagTimeout     ErrorTag = "TimeoutError"
	TagMemoryLimit ErrorTag = "MemoryLimitError"
	TagUnavailable ErrorTag = "SandboxUnavailable"
	TagMarshalling ErrorTag = "MarshallingError"
)

// Error is a classified execution failure with a sanitized message.
type Error struct {
	Tag     ErrorTag `json:"tag"`
	Message string   `json:"message"`
}

func (e *Error) Error() string {
	return string(e.Tag) + ": " + e.Message
}

// Retryable reports whether the failure is an infrastructure fault the
// caller may retry, as opposed to a permanent rejection of the script.
func (e *Error) Retryable() bool {
	return e.Tag == TagUnavailable
}

// newError builds a classified error with a sanitized message.
func newError(tag ErrorTag, message string) *Error {
	return &Error{Tag: tag, Message: sanitize(message)}
}

// Interrupt causes handed to goja; translate maps them back to tags.
const (
	interruptTimeout  = "execution timeout exceeded"
	interruptMemory   = "memory limit exceeded"
	interruptCanceled = "execution canceled"
)

// translate maps an internal failure to the closed taxonomy. Interrupts
// and stack overflows must be checked before the generic exception case
// since goja models them as exceptions too.
func translate(err error) *Error {
	switch e := err.(type) {
	case *Error:
		return e
	case *goja.InterruptedError:
		switch e.Value() {
		case interruptMemory:
			return newError(TagMemoryLimit, interruptMemory)
		case interruptCanceled:
			return newError(TagTimeout, interruptCanceled)
		default:
			return newError(TagTimeout, interruptTimeout)
		}
	case *goja.StackOverflowError:
		// Stack exhaustion counts against the memory budget.
		return newError(TagMemoryLimit, "call stack size exceeded")
	case *goja.Exception:
		return newError(TagRuntime, e.Value().String())
	case *goja.CompilerSyntaxError:
		return newError(TagCompile, e.Error())
	case *goja.CompilerReferenceError:
		return newError(TagCompile, e.Error())
	default:
		return newError(TagUnavailable, err.Error())
	}
}

// Script source locations and stack frames must never reach end users.
var locationPattern = regexp.MustCompile(`\s+at\s+\S*:\d+:\d+.*$`)

// sanitize reduces a raw message to its first line with source locations
// and the internal script name stripped.
func sanitize(message string) string {
	if i := strings.IndexByte(message, '\n'); i >= 0 {
		message = message[:i]
	}
	message = strings.ReplaceAll(message, scriptName+": ", "")
	message = strings.ReplaceAll(message, scriptName, "script")
	message = locationPattern.ReplaceAllString(message, "")
	return strings.TrimSpace(message)
}
