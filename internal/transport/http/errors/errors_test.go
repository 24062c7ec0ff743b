package errors

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-social-network/profile-service/internal/auth"
	"github.com/pribylovaa/go-social-network/profile-service/internal/service"
)

func svcErr(kind error, detail string) error {
	return fmt.Errorf("service/profiles/Op: %w", &service.Error{Kind: kind, Detail: detail})
}

func TestToHTTP_BaseMapping(t *testing.T) {
	tcs := []struct {
		name       string
		in         error
		wantStatus int
		wantCode   string
	}{
		{"missing_parameter", svcErr(service.ErrMissingParameter, "user_id"), http.StatusBadRequest, "missing_parameter"},
		{"invalid_type", svcErr(service.ErrInvalidParameterType, "user_id: not a UUID"), http.StatusBadRequest, "invalid_parameter_type"},
		{"invalid_value", svcErr(service.ErrInvalidParameterValue, "description length"), http.StatusBadRequest, "invalid_parameter_value"},
		{"invalid_token", auth.ErrInvalidToken, http.StatusUnauthorized, "unauthenticated"},
		{"token_expired", auth.ErrTokenExpired, http.StatusUnauthorized, "unauthenticated"},
		{"visibility", svcErr(service.ErrVisibilityDenied, ""), http.StatusForbidden, "visibility_denied"},
		{"not_found", svcErr(service.ErrNotFound, "user"), http.StatusNotFound, "not_found"},
		{"file_too_large", svcErr(service.ErrFileTooLarge, "avatar: file too big"), http.StatusRequestEntityTooLarge, "file_too_large"},
		{"upload_failed", svcErr(service.ErrUploadFailed, "avatar: s3 down"), http.StatusBadGateway, "upload_failed"},
		{"external", svcErr(service.ErrExternalService, ""), http.StatusBadGateway, "external_service_error"},
		{"storage", svcErr(service.ErrStorageUnavailable, ""), http.StatusServiceUnavailable, "storage_unavailable"},
		{"canceled", context.Canceled, StatusClientClosedRequest, "canceled"},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout, "deadline_exceeded"},
		{"internal", svcErr(service.ErrInternal, ""), http.StatusInternalServerError, "internal"},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError, "internal"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			gotStatus, resp := ToHTTP(tc.in)
			require.Equal(t, tc.wantStatus, gotStatus)
			require.Equal(t, tc.wantCode, resp.Error.Code)
			require.NotEmpty(t, resp.Error.Message)
		})
	}
}

// Деталь сервисной ошибки попадает в ответ для клиентских статусов.
func TestToHTTP_DetailPassthrough(t *testing.T) {
	status, resp := ToHTTP(svcErr(service.ErrInvalidParameterValue, "username: contains forbidden characters"))
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "username: contains forbidden characters", resp.Error.Detail)
}

// 500/internal остаётся непрозрачным: никаких деталей наружу.
func TestToHTTP_InternalHidesDetail(t *testing.T) {
	status, resp := ToHTTP(svcErr(service.ErrInternal, "pg: connection refused"))
	require.Equal(t, http.StatusInternalServerError, status)
	require.Empty(t, resp.Error.Detail)
}

func TestToHTTP_NilError_Returns500Internal(t *testing.T) {
	gotStatus, resp := ToHTTP(nil)
	require.Equal(t, http.StatusInternalServerError, gotStatus)
	require.Equal(t, "internal", resp.Error.Code)
	require.Equal(t, "internal error", resp.Error.Message)
}

func TestWriteError_PropagatesRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("X-Request-Id", "rid-123")
	rec := httptest.NewRecorder()

	WriteError(rec, req, svcErr(service.ErrNotFound, "user"))

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Body.String(), `"request_id":"rid-123"`)
	require.Contains(t, rec.Body.String(), `"code":"not_found"`)
}
