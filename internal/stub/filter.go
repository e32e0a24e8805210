package stub

import (
	"fmt"
	"strings"
	"time"

	"github.com/five82/apolice/internal/policy"
	"github.com/five82/apolice/internal/query"
)

// dayLayout compares dates by calendar day.
const dayLayout = "2006-01-02"

// documentFields are the record fields matched by documentNumber.
var documentFields = []string{"documentNumber", "documento", "cpf", "cnpj"}

// Filter returns the records matching every criterion in params, in fixture
// order. Unknown parameters are ignored. Date bounds are inclusive and apply
// to vencimento; records whose vencimento does not parse are excluded when a
// bound is set.
func Filter(set policy.ResultSet, params query.Params) (policy.ResultSet, error) {
	start, err := parseBound(params, query.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseBound(params, query.EndDate)
	if err != nil {
		return nil, err
	}

	out := make(policy.ResultSet, 0, len(set))
	for _, rec := range set {
		if v, ok := params[query.Numero]; ok && rec.Key() != v {
			continue
		}
		if v, ok := params[query.Cliente]; ok &&
			!strings.Contains(strings.ToLower(rec.Cliente()), strings.ToLower(v)) {
			continue
		}
		if v, ok := params[query.DocumentNumber]; ok && !matchesDocument(rec, v) {
			continue
		}
		if v, ok := params[query.TipoBeneficiario]; ok &&
			!strings.EqualFold(lookupString(rec, query.TipoBeneficiario), v) {
			continue
		}
		if !start.IsZero() || !end.IsZero() {
			venc, ok := policy.ParseDate(lookupString(rec, policy.FieldVencimento))
			if !ok {
				continue
			}
			day := venc.Format(dayLayout)
			if !start.IsZero() && day < start.Format(dayLayout) {
				continue
			}
			if !end.IsZero() && day > end.Format(dayLayout) {
				continue
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

func parseBound(params query.Params, name string) (time.Time, error) {
	v, ok := params[name]
	if !ok {
		return time.Time{}, nil
	}
	t, ok := policy.ParseDate(v)
	if !ok {
		return time.Time{}, fmt.Errorf("invalid %s %q", name, v)
	}
	return t, nil
}

func matchesDocument(rec policy.Record, want string) bool {
	for _, name := range documentFields {
		if lookupString(rec, name) == want {
			return true
		}
	}
	return false
}

func lookupString(rec policy.Record, name string) string {
	v, ok := rec.Lookup(name)
	if !ok {
		return ""
	}
	s := policy.FormatValue(v)
	if s == policy.Placeholder {
		return ""
	}
	return s
}
