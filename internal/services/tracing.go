package services

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "task-market.com/task-market/internal/errors"
)

var tracer = otel.Tracer("task-market.com/task-market/internal/services")

// finishSpan marks the span failed only for errors the caller did not cause.
func finishSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		if apperrors.IsKind(err, apperrors.KindRepository) {
			span.SetStatus(codes.Error, err.Error())
		}
	}
	span.End()
}
