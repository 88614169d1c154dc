package dokuwiki

import (
	"context"
	"errors"
	"time"

	"github.com/wikitools/go-dokuwiki/metrics"
	"github.com/wikitools/go-dokuwiki/tracing"
	"github.com/wikitools/go-dokuwiki/xmlrpc"

	"go.opentelemetry.io/otel/codes"
)

// Fault codes DokuWiki uses to report "no results" instead of returning
// an empty payload.
const (
	// FaultEmptyStruct is raised by calls whose empty result should have
	// been an empty struct.
	FaultEmptyStruct = 121

	// FaultEmptyArray is raised by calls whose empty result should have
	// been an empty array.
	FaultEmptyArray = 321
)

// Invoke executes a remote command. Every other method of this package
// is a thin forwarder over it.
//
// args are passed positionally; a non-empty opts map is appended as one
// trailing struct argument, matching how DokuWiki commands accept their
// optional parameters.
//
// Fault triage:
//   - fault 121 resolves to an empty map
//   - fault 321 resolves to an empty slice
//   - the known benign response malformation on writes (blank line before
//     the XML declaration) resolves to a nil success: the write happened,
//     only the acknowledgement framing was broken
//   - every other fault or parse failure surfaces as *Error
func (c *Client) Invoke(ctx context.Context, command string, args []any, opts map[string]any) (any, error) {
	argv := make([]any, 0, len(args)+1)
	argv = append(argv, args...)
	if len(opts) > 0 {
		argv = append(argv, opts)
	}

	ctx, span := tracing.StartCall(ctx, command)
	defer span.End()

	start := time.Now()
	result, err := c.rpc.Call(ctx, command, argv)
	elapsed := time.Since(start).Seconds()

	if err == nil {
		metrics.RecordCall(command, elapsed, true)
		return result, nil
	}

	var fault *xmlrpc.Fault
	if errors.As(err, &fault) {
		switch fault.Code {
		case FaultEmptyStruct:
			metrics.RecordCall(command, elapsed, true)
			metrics.RecordRecovered("empty_struct")
			return map[string]any{}, nil
		case FaultEmptyArray:
			metrics.RecordCall(command, elapsed, true)
			metrics.RecordRecovered("empty_array")
			return []any{}, nil
		}
		c.logger.Warn("RPC fault", "command", command, "code", fault.Code, "message", fault.Message)
		metrics.RecordCall(command, elapsed, false)
		metrics.RecordFault(fault.Code)
		span.SetStatus(codes.Error, fault.Message)
		tracing.RecordError(span, fault)
		return nil, &Error{Code: fault.Code, Message: fault.Message}
	}

	var parseErr *xmlrpc.ParseError
	if errors.As(err, &parseErr) {
		if parseErr.Reason == xmlrpc.ReasonDeclarationNotAtStart {
			metrics.RecordCall(command, elapsed, true)
			metrics.RecordRecovered("benign_write")
			return nil, nil
		}
		metrics.RecordCall(command, elapsed, false)
		span.SetStatus(codes.Error, parseErr.Reason)
		tracing.RecordError(span, parseErr)
		return nil, &Error{Message: parseErr.Reason}
	}

	// Transport-level failures (network, HTTP status, context) propagate
	// unclassified.
	metrics.RecordCall(command, elapsed, false)
	span.SetStatus(codes.Error, err.Error())
	tracing.RecordError(span, err)
	return nil, err
}
