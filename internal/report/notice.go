package report

// NoticeKind selects how a notice is styled.
type NoticeKind string

const (
	NoticeInfo  NoticeKind = "info"
	NoticeError NoticeKind = "error"
)

// Notice is a status message shown above the table.
type Notice struct {
	Kind    NoticeKind
	Title   string
	Message string
}

// IsError reports whether n describes a failure.
func (n Notice) IsError() bool { return n.Kind == NoticeError }

// LoadingNotice is shown while a report is being fetched.
func LoadingNotice() Notice {
	return Notice{
		Kind:    NoticeInfo,
		Title:   "Carregando...",
		Message: "Buscando pedidos na API. Isso pode levar alguns instantes.",
	}
}

// EmptyNotice is informational: an empty result is not an error.
func EmptyNotice() Notice {
	return Notice{
		Kind:    NoticeInfo,
		Title:   "Nenhum resultado",
		Message: "Nenhum pedido encontrado para os filtros aplicados.",
	}
}

// ErrorNotice reports a failed fetch; details is the user-facing error.
func ErrorNotice(details string) Notice {
	return Notice{
		Kind:    NoticeError,
		Title:   "Erro na Requisição",
		Message: "Não foi possível buscar os dados. Detalhes: " + details,
	}
}
