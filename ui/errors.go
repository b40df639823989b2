package ui

import (
	"net/http"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/estudos/core"
	apisvc "github.com/trezcool/estudos/services/api"
)

const (
	msgConnection         = "Erro de conexão. Verifique sua internet e tente novamente."
	msgServer             = "Erro interno do servidor. Tente novamente em alguns minutos."
	msgInvalidData        = "Dados inválidos. Verifique as informações e tente novamente."
	msgNoSession          = "Usuário não encontrado. Faça login novamente."
	msgSessionExpired     = "Sessão expirada. Faça login novamente."
	msgNotFound           = "O item solicitado não foi encontrado."
	msgInvalidCredentials = "E-mail ou senha incorretos. Verifique suas credenciais e tente novamente."
	msgEmailTaken         = "Este e-mail já está em uso por outro usuário."
	msgUnknown            = "Erro de conexão com o servidor"
)

// codeMessages maps the error codes of the backend to user-facing messages.
var codeMessages = map[string]string{
	"email_taken":         msgEmailTaken,
	"invalid_credentials": msgInvalidCredentials,
	"not_found":           msgNotFound,
}

// Describe returns the message shown to the user for `err`.
// Known error codes win over the server's own message, which wins over the per-status message.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, core.ErrNoSession) {
		return msgNoSession
	}
	var vErr *core.ValidationError
	if errors.As(err, &vErr) {
		return describeValidation(vErr)
	}
	if apisvc.IsNetworkError(err) {
		return msgConnection
	}

	var apiErr *apisvc.Error
	if !errors.As(err, &apiErr) {
		return msgUnknown
	}
	if msg, ok := codeMessages[apiErr.Code]; ok {
		return msg
	}
	if apiErr.Status == http.StatusUnauthorized {
		return msgSessionExpired
	}
	if (apiErr.Status == http.StatusBadRequest || apiErr.Status == http.StatusConflict) && isEmailTaken(apiErr.ServerMessage()) {
		return msgEmailTaken
	}
	if len(apiErr.Fields) > 0 {
		return describeFields(apiErr.Fields)
	}
	if msg := apiErr.ServerMessage(); msg != "" {
		return msg
	}
	switch {
	case apiErr.Status == http.StatusBadRequest, apiErr.Status == http.StatusConflict:
		return msgInvalidData
	case apiErr.Status == http.StatusNotFound:
		return msgNotFound
	case apiErr.Status >= http.StatusInternalServerError:
		return msgServer
	}
	return msgUnknown
}

// emailTakenHints are the phrases of a code-less duplicate e-mail response.
var emailTakenHints = []string{"already exists", "duplicat", "em uso"}

func isEmailTaken(msg string) bool {
	msg = strings.ToLower(msg)
	if !strings.Contains(msg, "email") && !strings.Contains(msg, "e-mail") {
		return false
	}
	for _, hint := range emailTakenHints {
		if strings.Contains(msg, hint) {
			return true
		}
	}
	return false
}

// describeLogin treats every rejected login attempt as bad credentials.
func describeLogin(err error) string {
	switch apisvc.StatusOf(err) {
	case http.StatusBadRequest, http.StatusUnauthorized:
		var vErr *core.ValidationError
		if errors.As(err, &vErr) {
			return describeValidation(vErr)
		}
		return msgInvalidCredentials
	}
	return Describe(err)
}

func describeValidation(vErr *core.ValidationError) string {
	if len(vErr.Fields) == 0 {
		if vErr.Err != nil {
			return vErr.Err.Error()
		}
		return msgInvalidData
	}
	// a single message needs no field name
	if len(vErr.Fields) == 1 && vErr.Err != nil && vErr.Err.Error() == vErr.Fields[0].Error {
		return vErr.Fields[0].Error
	}
	return describeFields(vErr.FieldMap())
}

func describeFields(flds map[string]string) string {
	names := make([]string, 0, len(flds))
	for name := range flds {
		names = append(names, name)
	}
	sort.Strings(names)
	msgs := make([]string, 0, len(names))
	for _, name := range names {
		msgs = append(msgs, name+": "+flds[name])
	}
	return strings.Join(msgs, "; ")
}
