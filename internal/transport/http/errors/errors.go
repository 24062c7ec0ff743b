// errors стандартизирует ответы об ошибках HTTP-слоя profile-service.
// На вход он принимает ошибку сервисного слоя (service.Error поверх
// сентинелов), а на выход даёт:
//   - корректный HTTP-статус;
//   - краткий стабильный код для машиночитаемой обработки на FE;
//   - безопасное message + опциональную деталь из service.Detail.
package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/pribylovaa/go-social-network/profile-service/internal/auth"
	"github.com/pribylovaa/go-social-network/profile-service/internal/service"
)

// Нестандартный код часто используемый для "клиент закрыл соединение".
const StatusClientClosedRequest = 499

// APIError — единый формат для фронта.
// Code — короткий стабильный код для машиночитаемой обработки на FE.
// Message — безопасное человекочитаемое описание.
// Detail — необязательное уточнение (поле, причина); безопасно для клиента.
// RequestID — прокидывается из X-Request-Id, если есть (для трассировки).
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Detail    string `json:"detail,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// ToHTTP конвертирует ошибку сервисного слоя в HTTP-статус и
// унифицированный ответ для фронта.
//
// Поведение:
//   - err == nil - это программная ошибка вызова: возвращаем 500/internal,
//     чтобы не послать "200 OK" с телом ошибки и не маскировать баг.
//   - известный сентинел -> таблица ниже; деталь берётся из service.Detail.
//   - прочее -> 500/internal (без утечки деталей).
func ToHTTP(err error) (int, ErrorResponse) {
	if err == nil {
		return http.StatusInternalServerError, ErrorResponse{
			Error: APIError{
				Code:    "internal",
				Message: "internal error",
			},
		}
	}

	httpStatus, code, msg := base(err)

	resp := ErrorResponse{
		Error: APIError{
			Code:    code,
			Message: msg,
		},
	}
	// Детали наружу отдаём только для клиентских статусов и ошибок
	// апстрима: 5xx-internal остаётся непрозрачным.
	if httpStatus != http.StatusInternalServerError {
		resp.Error.Detail = service.Detail(err)
	}

	return httpStatus, resp
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет корректный статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	// Прокидываем request_id для фронта, чтобы он мог репортить баги с привязкой.
	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// base — базовый маппинг сентинелов сервиса -> HTTP/FE-код/сообщение:
//   - MissingParameter / InvalidParameterType / InvalidParameterValue -> 400
//   - ErrInvalidToken / ErrTokenExpired -> 401
//   - VisibilityDenied -> 403
//   - NotFound -> 404
//   - FileTooLarge -> 413
//   - UploadFailed / ExternalService -> 502 (отказ объектного хранилища)
//   - StorageUnavailable -> 503 (отказ БД)
//   - Canceled -> 499 (клиент закрыл соединение)
//   - DeadlineExceeded -> 504
//   - прочее -> 500/internal
func base(err error) (int, string, string) {
	switch {
	case stderrors.Is(err, service.ErrMissingParameter):
		return http.StatusBadRequest, "missing_parameter", "missing parameter"
	case stderrors.Is(err, service.ErrInvalidParameterType):
		return http.StatusBadRequest, "invalid_parameter_type", "invalid parameter type"
	case stderrors.Is(err, service.ErrInvalidParameterValue):
		return http.StatusBadRequest, "invalid_parameter_value", "invalid parameter value"
	case stderrors.Is(err, auth.ErrTokenExpired), stderrors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized, "unauthenticated", "unauthenticated"
	case stderrors.Is(err, service.ErrVisibilityDenied):
		return http.StatusForbidden, "visibility_denied", "profile is not visible"
	case stderrors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "not_found", "not found"
	case stderrors.Is(err, service.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "file_too_large", "file too large"
	case stderrors.Is(err, service.ErrUploadFailed):
		return http.StatusBadGateway, "upload_failed", "media upload failed"
	case stderrors.Is(err, service.ErrExternalService):
		return http.StatusBadGateway, "external_service_error", "external service error"
	case stderrors.Is(err, service.ErrStorageUnavailable):
		return http.StatusServiceUnavailable, "storage_unavailable", "storage unavailable"
	case stderrors.Is(err, context.Canceled):
		return StatusClientClosedRequest, "canceled", "canceled"
	case stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "deadline_exceeded", "deadline exceeded"
	default:
		return http.StatusInternalServerError, "internal", "internal error"
	}
}
