package stub

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFixtures(t *testing.T) {
	set, err := DefaultFixtures()
	require.NoError(t, err)
	require.Len(t, set, 5)

	first := set[0]
	assert.Equal(t, "0001", first.Key())
	assert.Equal(t, []string{"numero", "cliente", "documentNumber", "tipoBeneficiario", "vencimento", "details"}, first.Keys())

	details, ok := first.Details()
	require.True(t, ok)
	assert.Equal(t, "inicioVigencia", details.Keys()[1])
	cov, _ := details.Get("coberturas")
	assert.Equal(t, []any{"Colisão", "Roubo", "Incêndio", "Terceiros"}, cov)
	premio, _ := details.Get("premio")
	assert.Equal(t, 2389.9, premio)

	assert.Equal(t, "RES-7781", set[3].Key(), "id is the fallback key")
}

func TestParseFixtures_KeepsScalarsAsWritten(t *testing.T) {
	set, err := ParseFixtures([]byte(`
- numero: 0042
  vencimento: 2024-05-01
  ativo: true
  franquia: 500
  obs: ~
`))
	require.NoError(t, err)
	require.Len(t, set, 1)

	venc, _ := set[0].Get("vencimento")
	assert.Equal(t, "2024-05-01", venc, "timestamps stay text")
	ativo, _ := set[0].Get("ativo")
	assert.Equal(t, true, ativo)
	franquia, _ := set[0].Get("franquia")
	assert.Equal(t, int64(500), franquia)
	obs, ok := set[0].Get("obs")
	assert.True(t, ok)
	assert.Nil(t, obs)
}

func TestParseFixtures_Errors(t *testing.T) {
	_, err := ParseFixtures([]byte("numero: 1\n"))
	assert.Error(t, err, "top level must be a list")

	_, err = ParseFixtures([]byte("- 1\n- 2\n"))
	assert.Error(t, err, "items must be mappings")

	_, err = ParseFixtures([]byte("- [unclosed\n"))
	assert.Error(t, err)

	set, err := ParseFixtures(nil)
	require.NoError(t, err)
	assert.Empty(t, set)
}

func TestLoadFixtures(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fx.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- numero: \"9\"\n  cliente: Teste\n"), 0o644))

	set, err := LoadFixtures(path)
	require.NoError(t, err)
	require.Len(t, set, 1)
	assert.Equal(t, "Teste", set[0].Cliente())

	_, err = LoadFixtures(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
