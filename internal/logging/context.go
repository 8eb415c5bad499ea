package logging

import (
	"context"
	"log/slog"

	"spdxgen/internal/services"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldDocumentID is the standardized structured logging key for SPDX document identifiers.
	FieldDocumentID = "document_id"
	// FieldOperation is the standardized structured logging key for pipeline operation names.
	FieldOperation = "operation"
	// FieldPackage is the standardized structured logging key for package names.
	FieldPackage = "package"
	// FieldPath is the standardized structured logging key for file system paths.
	FieldPath = "path"
	// FieldChecksum is the standardized structured logging key for file digests.
	FieldChecksum = "checksum"
	// FieldFileCount is the standardized structured logging key for scanned file totals.
	FieldFileCount = "file_count"
	// FieldErrorKind is the standardized structured logging key for error classifications.
	FieldErrorKind = "error_kind"
	// FieldCorrelationID is the standardized structured logging key for request correlation identifiers.
	FieldCorrelationID = "correlation_id"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 3)
	if id, ok := services.DocumentIDFromContext(ctx); ok {
		fields = append(fields, slog.Int64(FieldDocumentID, id))
	}
	if operation, ok := services.OperationFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldOperation, operation))
	}
	if rid, ok := services.RequestIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldCorrelationID, rid))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}
