package policy

import (
	"strings"
	"unicode"
)

// Kind tells the renderer how a detail value should be presented.
type Kind string

const (
	KindPlain  Kind = "plain"
	KindDate   Kind = "date"
	KindStatus Kind = "status"
	KindList   Kind = "list"
)

// Field is one labelled line of the detail view.
type Field struct {
	Label   string
	Value   string
	Kind    Kind
	Expired bool   // only meaningful for KindStatus
	Source  string // record path the value came from; empty for defaults
}

type fieldSpec struct {
	label    string
	names    []string
	kind     Kind
	always   bool
	identity bool // blank candidates are skipped, matching Record.Key
}

// priorityFields is the fixed display order of well-known fields. Candidates
// are tried in order; the first one present with a displayable value wins.
var priorityFields = []fieldSpec{
	{label: "Número", names: []string{FieldNumero, FieldID}, kind: KindPlain, always: true, identity: true},
	{label: "Cliente", names: []string{FieldCliente}, kind: KindPlain, always: true},
	{label: "Início de Vigência", names: []string{"inicioVigencia", "dataInicio", "startDate"}, kind: KindDate},
	{label: "Vencimento", names: []string{FieldVencimento, "fimVigencia", "dataFim", "endDate"}, kind: KindDate, always: true},
	{label: "Status", names: []string{FieldStatus, "situacao"}, kind: KindStatus, always: true},
	{label: "Coberturas", names: []string{FieldCoberturas}, kind: KindList, always: true},
	{label: "Cláusula", names: []string{"clausula", "codigoClausula"}, kind: KindPlain},
	{label: "Descrição da Cláusula", names: []string{"descricaoClausula"}, kind: KindPlain},
}

// knownLabels names residual fields the backend is known to send.
var knownLabels = map[string]string{
	"documentNumber":   "Documento",
	"documento":        "Documento",
	"cpf":              "CPF",
	"cnpj":             "CNPJ",
	"tipoBeneficiario": "Tipo de Beneficiário",
	"beneficiario":     "Beneficiário",
	"dataEmissao":      "Data de Emissão",
	"emissao":          "Data de Emissão",
	"corretor":         "Corretor",
	"nomeCorretor":     "Corretor",
	"produto":          "Produto",
	"ramo":             "Ramo",
	"premio":           "Prêmio",
	"franquia":         "Franquia",
	"veiculo":          "Veículo",
	"modelo":           "Modelo",
	"marca":            "Marca",
	"placa":            "Placa",
	"chassi":           "Chassi",
	"anoModelo":        "Ano do Modelo",
	"anoFabricacao":    "Ano de Fabricação",
}

// Project derives the ordered detail lines for one record: well-known fields
// in fixed priority order, then the remaining scalar fields of the record in
// their original order, then the remaining scalar fields of its details.
// Projection never fails; missing data degrades to placeholders.
func Project(rec Record) []Field {
	shown := make(map[string]bool)
	out := make([]Field, 0, rec.Len()+len(priorityFields))

	for _, spec := range priorityFields {
		field, ok := projectPriority(rec, spec, shown)
		if !ok {
			continue
		}
		if field.Source != "" {
			shown[field.Source] = true
		}
		out = append(out, field)
	}

	out = appendResidual(out, rec, "", shown)
	if details, ok := rec.Details(); ok {
		out = appendResidual(out, details, FieldDetails+".", shown)
	}
	return out
}

// projectPriority picks the first displayable candidate for spec. Blank
// identity candidates are marked shown so they do not resurface as residual
// lines.
func projectPriority(rec Record, spec fieldSpec, shown map[string]bool) (Field, bool) {
	for _, name := range spec.names {
		for _, path := range []string{name, FieldDetails + "." + name} {
			v, ok := lookupExact(rec, path)
			if !ok || isNested(v) {
				continue
			}
			s, present := scalarString(v)
			if spec.identity && s == "" {
				shown[path] = true
				continue
			}
			if !present && spec.kind != KindList {
				continue
			}
			return formatField(spec.label, path, spec.kind, v), true
		}
	}
	if !spec.always {
		return Field{}, false
	}
	return formatField(spec.label, "", spec.kind, nil), true
}

// lookupExact resolves a path without the details fallback of Record.Lookup,
// so the source path of a shown value is always precise.
func lookupExact(rec Record, path string) (any, bool) {
	if strings.HasPrefix(path, FieldDetails+".") {
		return rec.Lookup(path)
	}
	return rec.Get(path)
}

func appendResidual(out []Field, rec Record, prefix string, shown map[string]bool) []Field {
	for _, key := range rec.Keys() {
		path := prefix + key
		if shown[path] {
			continue
		}
		if prefix == "" && key == FieldDetails {
			continue
		}
		v, _ := rec.Get(key)
		if isNested(v) {
			continue
		}
		kind := KindPlain
		switch {
		case isScalarList(v):
			kind = KindList
		case isDateField(key):
			kind = KindDate
		case strings.EqualFold(key, FieldStatus):
			kind = KindStatus
		}
		shown[path] = true
		out = append(out, formatField(Label(key), path, kind, v))
	}
	return out
}

func formatField(label, source string, kind Kind, v any) Field {
	f := Field{Label: label, Kind: kind, Source: source}
	switch kind {
	case KindDate:
		f.Value = FormatDate(v)
	case KindStatus:
		f.Value, f.Expired = FormatStatus(v)
	case KindList:
		f.Value = FormatList(v)
	default:
		f.Value = FormatValue(v)
	}
	return f
}

// isDateField guesses whether a residual field holds a date from its name.
func isDateField(name string) bool {
	lower := strings.ToLower(name)
	switch {
	case strings.HasPrefix(lower, "data"), strings.HasPrefix(lower, "date"):
		return true
	case strings.HasSuffix(lower, "date"), strings.HasSuffix(name, "At"):
		return true
	case strings.Contains(lower, "vencimento"), strings.Contains(lower, "vigencia"), strings.Contains(lower, "emissao"):
		return true
	}
	return false
}

// Label returns the display label for a field name: a known label when one
// exists, otherwise the name split on camelCase and underscores.
func Label(name string) string {
	if label, ok := knownLabels[name]; ok {
		return label
	}
	var words []string
	var current []rune
	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = current[:0]
		}
	}
	runes := []rune(name)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == ' ' || r == '.':
			flush()
			continue
		case unicode.IsUpper(r) && i > 0 && !unicode.IsUpper(runes[i-1]):
			flush()
		}
		current = append(current, r)
	}
	flush()
	if len(words) == 0 {
		return name
	}
	for i, w := range words {
		lower := []rune(strings.ToLower(w))
		if i == 0 {
			lower[0] = unicode.ToUpper(lower[0])
		}
		words[i] = string(lower)
	}
	return strings.Join(words, " ")
}
