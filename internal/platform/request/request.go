// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.

# Input Merging

List endpoints accept their parameters from three places. [Input] folds them
into one map with the precedence: query string > form body > JSON body.
*/
package requestutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/constants"
	"github.com/taibuivan/folio/internal/platform/ctxutil"
	"github.com/taibuivan/folio/internal/platform/sec"
	"github.com/taibuivan/folio/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

The body is buffered and restored, so [Input] may still read it afterwards.

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target any) error {
	body, err := readBody(request)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return validate.ErrInvalidJSON
	}
	if err := json.Unmarshal(body, target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Input merges the JSON body, the form body and the query string of a request.

Only the first value of repeated form or query keys is kept.
*/
func Input(request *http.Request) (map[string]any, error) {
	merged := make(map[string]any)

	// 1. JSON body (lowest precedence)
	if isJSON(request) {
		body, err := readBody(request)
		if err != nil {
			return nil, err
		}
		if len(bytes.TrimSpace(body)) > 0 {
			var payload map[string]any
			if err := json.Unmarshal(body, &payload); err != nil {
				return nil, validate.ErrInvalidJSON
			}
			for key, value := range payload {
				merged[key] = value
			}
		}
	}

	// 2. Form body
	if err := request.ParseForm(); err != nil {
		return nil, apperr.ValidationError("Invalid form payload")
	}
	for key, values := range request.PostForm {
		if len(values) > 0 {
			merged[key] = values[0]
		}
	}

	// 3. Query string (highest precedence)
	for key, values := range request.URL.Query() {
		if len(values) > 0 {
			merged[key] = values[0]
		}
	}

	return merged, nil
}

// readBody buffers the body (bounded by MaxBodyBytes) and puts it back.
func readBody(request *http.Request) ([]byte, error) {
	if request.Body == nil || request.Body == http.NoBody {
		return nil, nil
	}

	body, err := io.ReadAll(io.LimitReader(request.Body, constants.MaxBodyBytes+1))
	_ = request.Body.Close()
	if err != nil {
		return nil, apperr.ValidationError("Unreadable request body")
	}
	if len(body) > constants.MaxBodyBytes {
		return nil, apperr.ValidationError(fmt.Sprintf("Request body exceeds %d bytes", constants.MaxBodyBytes))
	}

	request.Body = io.NopCloser(bytes.NewReader(body))
	return body, nil
}

func isJSON(request *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(request.Header.Get(constants.HeaderContentType))
	return err == nil && mediaType == "application/json"
}

/*
ID retrieves a named URL parameter (numeric id or UUID) from the request.
*/
func ID(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
ClientIP returns the caller address without its port.

Proxy headers are honoured upstream by chi's RealIP middleware, which
rewrites RemoteAddr.
*/
func ClientIP(request *http.Request) string {
	host, _, err := net.SplitHostPort(request.RemoteAddr)
	if err != nil {
		return request.RemoteAddr
	}
	return host
}

/*
BearerToken returns the token of an "Authorization: Bearer <token>" header,
or "" when the header is absent or malformed.
*/
func BearerToken(request *http.Request) string {
	scheme, token, ok := strings.Cut(request.Header.Get(constants.HeaderAuthorization), " ")
	if !ok || !strings.EqualFold(scheme, constants.TokenType) {
		return ""
	}
	return strings.TrimSpace(token)
}

/*
Claims extracts the authenticated user claims from the request context.

Returns nil if the request is not authenticated.
*/
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetAuthUser(request.Context())
}

/*
RequiredClaims ensures the request is authenticated and returns the user claims.

Returns:
  - *sec.AuthClaims: The authenticated user claims
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {

	// Get user claims
	claims := ctxutil.GetAuthUser(request.Context())

	// If the user is not authenticated, return an error
	if claims == nil {
		return nil, apperr.Unauthorized("No token provided")
	}

	return claims, nil
}

/*
RequiredUserID returns the ID of the currently logged-in user.
*/
func RequiredUserID(request *http.Request) (int64, error) {
	claims, err := RequiredClaims(request)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}
