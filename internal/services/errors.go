package services

import (
	"errors"

	"github.com/ajramos/mailsort/internal/classifier"
)

// User facing messages
const (
	MsgUnsupportedType = "Tipo de arquivo não suportado. Por favor, envie .txt ou .pdf."
	MsgFileTooLarge    = "Arquivo muito grande. O tamanho máximo permitido é 10MB."
	MsgUnreadableFile  = "Não foi possível ler o arquivo: "
	MsgNoFile          = "Por favor, selecione um arquivo para analisar."
	MsgNoText          = "Por favor, insira o texto do email para analisar."
	MsgTextTooLong     = "O texto do email excede o limite de 50.000 caracteres."
	MsgUnknownAPIError = "Erro desconhecido na API."
	MsgNetworkFailure  = "Falha na comunicação com o servidor. Verifique sua conexão e tente novamente."
	MsgAnalysisPrefix  = "Erro ao analisar o email: "
	MsgUnexpected      = "Ocorreu um erro inesperado. Por favor, recarregue a página e tente novamente."
	MsgAsyncFailure    = "Ocorreu um erro de rede. Verifique sua conexão e tente novamente."
	MsgCopied          = "✅ Copiado!"
	MsgCopyIdle        = "Copiar resposta"
	MsgFilePrompt      = "Digite o caminho ou arraste um arquivo"
	MsgFileSelected    = "Arquivo selecionado: "
)

// ValidationError is a client-side input check failure; the request is never sent
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func newValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

// IsValidationError reports whether err is a client-side validation failure
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// UserMessage maps an analysis failure to the text shown after MsgAnalysisPrefix
func UserMessage(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	var apiErr *classifier.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Detail != "" {
			return apiErr.Detail
		}
		return MsgUnknownAPIError
	}
	var netErr *classifier.NetworkError
	if errors.As(err, &netErr) {
		return MsgNetworkFailure
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
