// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package respond provides HTTP response helpers used by all API handlers.
//
// # Architecture
//
// Every response, success or error, is written in the same envelope:
//
//	{"status": 200, "version": "v1", "message": "...", "success": true, "data": ...}
//
// Paginated lists add "total". Errors carry success=false and no data; when
// a validation error holds several field errors, "message" is the first of
// them as an object and the rest are only logged.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/constants"
	"github.com/taibuivan/folio/internal/platform/ctxutil"
)

// Envelope is the JSON envelope for successful single-resource responses.
type Envelope struct {
	Status  int    `json:"status"`
	Version string `json:"version"`
	Message string `json:"message"`
	Success bool   `json:"success"`
	Data    any    `json:"data"`
}

// PaginatedEnvelope is the JSON envelope for list responses.
type PaginatedEnvelope struct {
	Envelope
	Total int `json:"total"`
}

// ErrorEnvelope is the JSON envelope for error responses.
//
// Message is either a string or an [apperr.FieldError]. The error code is
// logged, not serialized.
type ErrorEnvelope struct {
	Status  int    `json:"status"`
	Version string `json:"version"`
	Message any    `json:"message"`
	Success bool   `json:"success"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload any) {
	writer.Header().Set(constants.HeaderContentType, "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 OK response with data wrapped in the standard envelope.
func OK(writer http.ResponseWriter, message string, data any) {
	JSON(writer, http.StatusOK, success(http.StatusOK, message, data))
}

// Created writes a 201 Created response with data wrapped in the standard envelope.
func Created(writer http.ResponseWriter, message string, data any) {
	JSON(writer, http.StatusCreated, success(http.StatusCreated, message, data))
}

// Paginated writes a 200 OK response with one page of rows and the total
// number of matching rows.
func Paginated(writer http.ResponseWriter, message string, data any, total int) {
	JSON(writer, http.StatusOK, PaginatedEnvelope{
		Envelope: success(http.StatusOK, message, data),
		Total:    total,
	})
}

// NoContent writes a 204 No Content response.
func NoContent(writer http.ResponseWriter) {
	writer.WriteHeader(http.StatusNoContent)
}

func success(status int, message string, data any) Envelope {
	return Envelope{
		Status:  status,
		Version: constants.APIVersion,
		Message: message,
		Success: true,
		Data:    data,
	}
}

// Error converts any Go error into a standardized JSON API error response.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	ctx := request.Context()
	logger := ctxutil.GetLogger(ctx)

	var appError *apperr.AppError
	if !errors.As(err, &appError) {
		// Unexpected internal error: keep the cause in the logs, not in the body.
		logger.ErrorContext(ctx, "unhandled_error_swallowed",
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.GetRequestID(ctx)),
		)
		appError = apperr.Internal(err)
	}

	if appError.HTTPStatus >= http.StatusInternalServerError {
		logger.ErrorContext(ctx, "api_server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", ctxutil.GetRequestID(ctx)),
			slog.Any("cause", appError.Cause),
		)
	}

	var message any = appError.Message
	if first, ok := appError.First(); ok {
		message = first
		if len(appError.Details) > 1 {
			logger.InfoContext(ctx, "validation_failed",
				slog.String("code", appError.Code),
				slog.String("request_id", ctxutil.GetRequestID(ctx)),
				slog.Any("details", appError.Details),
			)
		}
	}

	JSON(writer, appError.HTTPStatus, ErrorEnvelope{
		Status:  appError.HTTPStatus,
		Version: constants.APIVersion,
		Message: message,
		Success: false,
	})
}
