package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/five82/apolice/internal/search"
)

// Operator-facing text.
const (
	EmptyPlaceholder   = "Nenhum resultado encontrado para os critérios selecionados."
	IntroHint          = "Preencha os critérios acima e pressione Enter para buscar apólices."
	noticeNoCriteria   = "Informe ao menos um critério de busca."
	noticeCopied       = "Número da apólice copiado."
	noticeCopyFailed   = "Não foi possível copiar para a área de transferência."
	noticeNoQuery      = "Nenhuma busca anterior para repetir."
	noticeThemeSaveErr = "Não foi possível salvar as preferências."
	loadingText        = "Carregando..."
	searchingText      = "Buscando apólices..."
)

// describeError turns a search failure into the banner text shown above the
// table.
func describeError(err error) string {
	if err == nil {
		return ""
	}
	var se *search.Error
	if !errors.As(err, &se) {
		return "Erro ao buscar apólices."
	}
	switch se.Kind {
	case search.KindNetwork:
		return "Não foi possível conectar ao servidor de apólices."
	case search.KindServer:
		return fmt.Sprintf("O servidor retornou um erro (HTTP %d).", se.Status)
	case search.KindParse:
		return "O servidor enviou uma resposta inválida."
	}
	return "Erro ao buscar apólices."
}

// resultCount renders "1 apólice" / "N apólices".
func resultCount(n int) string {
	if n == 1 {
		return "1 apólice"
	}
	return fmt.Sprintf("%d apólices", n)
}

// truncate shortens a string to the given limit, adding ellipsis if needed.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}

// truncateMiddle keeps the start and end of value, for URLs and paths.
func truncateMiddle(value string, limit int) string {
	runes := []rune(value)
	if limit <= 0 || len(runes) <= limit {
		return value
	}
	if limit <= 5 {
		return string(runes[:limit])
	}
	endLen := (limit - 3) * 2 / 3
	startLen := limit - 3 - endLen
	return string(runes[:startLen]) + "..." + string(runes[len(runes)-endLen:])
}

// padRight pads a string with spaces to the given width.
func padRight(s string, width int) string {
	r := []rune(s)
	if width <= 0 || len(r) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(r))
}
