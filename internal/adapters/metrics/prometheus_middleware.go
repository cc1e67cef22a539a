package metrics

import (
	"context"
	"reflect"
	"strings"

	"github.com/andrescamacho/complex-planner/internal/application/mediator"
)

// PrometheusMiddleware records duration and outcome of every mediator request.
// Request names drop package and pointer prefixes:
// "*planner.PlanCommand" becomes "PlanCommand".
func PrometheusMiddleware(collector *CommandMetricsCollector) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		if collector == nil {
			return next(ctx, request)
		}

		track := collector.Track(extractCommandName(request))
		response, err := next(ctx, request)
		track(err)

		return response, err
	}
}

func extractCommandName(request mediator.Request) string {
	if request == nil {
		return "UnknownCommand"
	}

	fullName := strings.TrimPrefix(reflect.TypeOf(request).String(), "*")
	if i := strings.LastIndex(fullName, "."); i >= 0 {
		return fullName[i+1:]
	}
	return fullName
}
