package policy

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func labels(fields []Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Label
	}
	return out
}

func fieldByLabel(t *testing.T, fields []Field, label string) Field {
	t.Helper()
	for _, f := range fields {
		if f.Label == label {
			return f
		}
	}
	t.Fatalf("field %q not found in %v", label, labels(fields))
	return Field{}
}

func TestProject_ActivePolicy(t *testing.T) {
	rec := mustRecord(t, `{"numero":"123","cliente":"Maria Silva","vencimento":"2024-05-01","status":"Ativa"}`)

	fields := Project(rec)

	if diff := cmp.Diff([]string{"Número", "Cliente", "Vencimento", "Status", "Coberturas"}, labels(fields)); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
	if fields[0].Value != "123" || fields[1].Value != "Maria Silva" {
		t.Fatalf("identity fields = %q, %q", fields[0].Value, fields[1].Value)
	}

	venc := fieldByLabel(t, fields, "Vencimento")
	if venc.Kind != KindDate || venc.Value != "01/05/2024" {
		t.Fatalf("Vencimento = %+v", venc)
	}

	status := fieldByLabel(t, fields, "Status")
	if status.Kind != KindStatus || status.Value != "Ativa" || status.Expired {
		t.Fatalf("Status = %+v", status)
	}

	if cob := fieldByLabel(t, fields, "Coberturas"); cob.Value != Placeholder {
		t.Fatalf("Coberturas = %q, want placeholder", cob.Value)
	}
}

func TestProject_ExpiredStatusIsCaseInsensitive(t *testing.T) {
	fields := Project(mustRecord(t, `{"numero":"1","cliente":"A","status":"vencida"}`))
	status := fieldByLabel(t, fields, "Status")
	if !status.Expired || status.Value != "vencida" {
		t.Fatalf("Status = %+v, want expired vencida", status)
	}
}

func TestProject_UnparseableDatePassesThrough(t *testing.T) {
	fields := Project(mustRecord(t, `{"numero":"1","cliente":"A","vencimento":"not-a-date"}`))
	if got := fieldByLabel(t, fields, "Vencimento").Value; got != "not-a-date" {
		t.Fatalf("Vencimento = %q, want not-a-date", got)
	}
}

func TestProject_MissingFieldsDegrade(t *testing.T) {
	fields := Project(mustRecord(t, `{}`))

	got := make([]string, len(fields))
	for i, f := range fields {
		got[i] = f.Value
	}
	want := []string{Placeholder, Placeholder, Placeholder, DefaultStatus, Placeholder}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestProject_PriorityThenResidualInOriginalOrder(t *testing.T) {
	rec := mustRecord(t, `{
		"zeta": "z",
		"cliente": "Maria",
		"coberturas": ["Roubo", "Incêndio"],
		"tipoBeneficiario": "Titular",
		"numero": "77",
		"clausula": "C-01",
		"inicioVigencia": "2023-05-01",
		"anexos": [{"nome": "a.pdf"}],
		"endereco": {"rua": "X"},
		"details": {
			"status": "Vencida",
			"dataEmissao": "2023-04-20",
			"corretor": "Ana Corretora",
			"veiculo": {"placa": "ABC1D23"},
			"descricaoClausula": "Cobertura ampla",
			"placa": "ABC1D23"
		}
	}`)

	fields := Project(rec)

	want := []string{
		"Número", "Cliente", "Início de Vigência", "Vencimento", "Status", "Coberturas",
		"Cláusula", "Descrição da Cláusula",
		"Zeta", "Tipo de Beneficiário",
		"Data de Emissão", "Corretor", "Placa",
	}
	if diff := cmp.Diff(want, labels(fields)); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}

	status := fieldByLabel(t, fields, "Status")
	if status.Source != "details.status" || !status.Expired {
		t.Fatalf("Status = %+v, want expired from details.status", status)
	}
	if got := fieldByLabel(t, fields, "Coberturas").Value; got != "Roubo, Incêndio" {
		t.Fatalf("Coberturas = %q", got)
	}
	if got := fieldByLabel(t, fields, "Início de Vigência").Value; got != "01/05/2023" {
		t.Fatalf("Início de Vigência = %q", got)
	}
	emissao := fieldByLabel(t, fields, "Data de Emissão")
	if emissao.Kind != KindDate || emissao.Value != "20/04/2023" {
		t.Fatalf("Data de Emissão = %+v", emissao)
	}

	for _, f := range fields {
		if strings.Contains(f.Value, "{") {
			t.Fatalf("%s renders raw structure: %q", f.Label, f.Value)
		}
	}
}

func TestProject_DoesNotRepeatShownFields(t *testing.T) {
	rec := mustRecord(t, `{"numero":"1","cliente":"A","status":"Ativa","details":{"status":"Vencida"}}`)
	fields := Project(rec)

	var sources []string
	for _, f := range fields {
		if f.Kind == KindStatus {
			sources = append(sources, f.Source)
		}
	}
	if diff := cmp.Diff([]string{"status", "details.status"}, sources); diff != "" {
		t.Fatalf("status sources mismatch (-want +got):\n%s", diff)
	}
}

func TestProject_NumericIdentifierFallsBackToID(t *testing.T) {
	fields := Project(mustRecord(t, `{"id": 55, "cliente": "B"}`))
	if fields[0].Value != "55" || fields[0].Source != "id" {
		t.Fatalf("Número = %+v, want 55 from id", fields[0])
	}
}

func TestProject_BlankNumeroMatchesRecordKey(t *testing.T) {
	for _, raw := range []string{
		`{"numero": "", "id": "5", "cliente": "B"}`,
		`{"numero": "  ", "id": "5", "cliente": "B"}`,
		`{"numero": null, "id": "5", "cliente": "B"}`,
	} {
		rec := mustRecord(t, raw)
		fields := Project(rec)

		numero := fieldByLabel(t, fields, "Número")
		if numero.Value != rec.Key() || numero.Source != "id" {
			t.Fatalf("%s: Número = %+v, want %q from id", raw, numero, rec.Key())
		}
		want := []string{"Número", "Cliente", "Vencimento", "Status", "Coberturas"}
		if diff := cmp.Diff(want, labels(fields)); diff != "" {
			t.Fatalf("%s: labels mismatch (-want +got):\n%s", raw, diff)
		}
	}
}

func TestLabel(t *testing.T) {
	cases := map[string]string{
		"corretor":       "Corretor",
		"numeroSinistro": "Numero sinistro",
		"valor_segurado": "Valor segurado",
		"zeta":           "Zeta",
	}
	for in, want := range cases {
		if got := Label(in); got != want {
			t.Errorf("Label(%q) = %q, want %q", in, got, want)
		}
	}
}
