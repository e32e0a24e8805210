package query

import (
	"net/url"
	"sort"
	"strings"
)

// Canonical parameter names understood by the backend.
const (
	Numero           = "numero"
	Cliente          = "cliente"
	DocumentNumber   = "documentNumber"
	StartDate        = "startDate"
	EndDate          = "endDate"
	TipoBeneficiario = "tipoBeneficiario"
)

// aliases maps form field names to the canonical backend name.
var aliases = map[string]string{
	"id":           Numero,
	"apolice":      Numero,
	"documento":    DocumentNumber,
	"cpf":          DocumentNumber,
	"cnpj":         DocumentNumber,
	"dataInicio":   StartDate,
	"inicio":       StartDate,
	"dataFim":      EndDate,
	"fim":          EndDate,
	"beneficiario": TipoBeneficiario,
	"tipo":         TipoBeneficiario,
}

// Params is a normalized set of search criteria: canonical name to trimmed,
// non-empty value.
type Params map[string]string

// Canonical returns the backend name for a form field name. Unknown names are
// returned unchanged.
func Canonical(name string) string {
	if c, ok := aliases[name]; ok {
		return c
	}
	return name
}

// Build normalizes raw form input. Empty values are dropped and aliases are
// renamed. When two inputs land on the same canonical name, an input already
// using the canonical name wins; otherwise the smallest input name wins, so
// the result never depends on map iteration order. Build never fails.
func Build(raw map[string]string) Params {
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(Params, len(raw))
	from := make(map[string]string, len(raw))
	for _, name := range names {
		value := strings.TrimSpace(raw[name])
		if value == "" {
			continue
		}
		key := strings.TrimSpace(name)
		if key == "" {
			continue
		}
		canonical := Canonical(key)
		if prev, taken := from[canonical]; taken {
			// sorted order already favours the smaller alias
			if prev == canonical || key != canonical {
				continue
			}
		}
		out[canonical] = value
		from[canonical] = key
	}
	return out
}

// Empty reports whether no criteria are set.
func (p Params) Empty() bool {
	return len(p) == 0
}

// Encode renders the parameters as a URL query string with sorted keys.
func (p Params) Encode() string {
	values := url.Values{}
	for k, v := range p {
		values.Set(k, v)
	}
	return values.Encode()
}

// Clone returns an independent copy.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Summary renders the criteria as "name=value" pairs in key order, for logs
// and status lines.
func (p Params) Summary() string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + p[k]
	}
	return strings.Join(parts, " ")
}
