package core

// error_messages.go maps pipeline errors to user-facing messages.
//
// Typed errors from the Nova client are classified first; anything else
// falls back to case-insensitive pattern matching on the error text.
//
//	CFG001 - Nova credentials missing or placeholders (nova.ConfigError)
//	API001 - Upstream rejected the credentials (HTTP 401/403)
//	API002 - Upstream resource not found (HTTP 404), usually a wrong tenant
//	API003 - Upstream returned another non-success status
//	API004 - Upstream sent a payload that could not be decoded
//	NET001 - Upstream unreachable (nova.NetworkError)
//	REQ001 - Request cancelled
//	REQ002 - Request timed out
//	REQ003 - Too many reports in progress (ErrTooManyReports)
//	ERR000 - Anything else; check the logs for the technical error

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/JonMunkholm/novareport/internal/nova"
)

// ReportFailure is the generic message returned when a report cannot be built.
const ReportFailure = "Falha ao buscar os pedidos."

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

var (
	msgConfig = UserMessage{
		Message: "Credenciais da API Nova não configuradas",
		Action:  "Defina NOVA_TOKEN e NOVA_TENANT no arquivo .env e reinicie o servidor",
		Code:    "CFG001",
	}
	msgUnauthorized = UserMessage{
		Message: "A API Nova recusou as credenciais",
		Action:  "Verifique se o NOVA_TOKEN é válido para este tenant",
		Code:    "API001",
	}
	msgNotFound = UserMessage{
		Message: "Recurso não encontrado na API Nova",
		Action:  "Verifique o NOVA_TENANT configurado",
		Code:    "API002",
	}
	msgUpstream = UserMessage{
		Message: "A API Nova retornou um erro",
		Action:  "Tente novamente em alguns instantes",
		Code:    "API003",
	}
	msgBadPayload = UserMessage{
		Message: "Resposta inesperada da API Nova",
		Action:  "Tente novamente ou contate o suporte",
		Code:    "API004",
	}
	msgNetwork = UserMessage{
		Message: "Não foi possível conectar à API Nova",
		Action:  "Verifique a conexão e tente novamente",
		Code:    "NET001",
	}
	msgCancelled = UserMessage{
		Message: "A requisição foi cancelada",
		Action:  "Tente novamente",
		Code:    "REQ001",
	}
	msgTimeout = UserMessage{
		Message: "A requisição excedeu o tempo limite",
		Action:  "Reduza o período do filtro ou tente novamente",
		Code:    "REQ002",
	}
	msgBusy = UserMessage{
		Message: "Muitos relatórios sendo gerados no momento",
		Action:  "Aguarde alguns instantes e tente novamente",
		Code:    "REQ003",
	}
)

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns are tried in order for errors that are not typed.
var errorPatterns = []errorPattern{
	{pattern: "is not configured", msg: msgConfig},
	{pattern: "decode response", msg: msgBadPayload},
	{pattern: "decode checkout pages", msg: msgBadPayload},
	{pattern: "context canceled", msg: msgCancelled},
	{pattern: "deadline exceeded", msg: msgTimeout},
	{pattern: "timeout", msg: msgTimeout},
	{pattern: "connection refused", msg: msgNetwork},
}

// defaultMessage is returned when nothing matches (ERR000).
var defaultMessage = UserMessage{
	Message: "Ocorreu um erro inesperado",
	Action:  "Tente novamente ou contate o suporte",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var cfgErr *nova.ConfigError
	var httpErr *nova.HTTPError
	var netErr *nova.NetworkError

	switch {
	case errors.Is(err, ErrTooManyReports):
		return msgBusy
	case errors.As(err, &cfgErr):
		return msgConfig
	case errors.As(err, &httpErr):
		switch httpErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return msgUnauthorized
		case http.StatusNotFound:
			return msgNotFound
		default:
			return msgUpstream
		}
	case errors.Is(err, context.DeadlineExceeded):
		return msgTimeout
	case errors.Is(err, context.Canceled):
		return msgCancelled
	case errors.As(err, &netErr):
		return msgNetwork
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Código: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Código: %s). %s", msg.Message, msg.Code, msg.Action)
}
