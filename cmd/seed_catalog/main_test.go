package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

const catalogXML = `<?xml version="1.0" encoding="windows-1250"?>
<catalog>
  <vats><vat percentage="21" name="Základní"/><vat percentage="12" name="Snížená"/></vats>
  <allergens><allergen code="A1" description="Lepek"/><allergen code="A7" description="Mléko"/></allergens>
  <units><unit code="kg"/><unit code="lb"/></units>
  <mealTypes><mealType name="Oběd" category="Hlavní"/></mealTypes>
  <targetGroups><targetGroup name="Dospělí"/><targetGroup name="Děti's"/></targetGroups>
</catalog>`

func encode(t *testing.T, s string) []byte {
	t.Helper()
	raw, err := charmap.Windows1250.NewEncoder().String(s)
	require.NoError(t, err)
	return []byte(raw)
}

func TestDecodeCatalog_Windows1250(t *testing.T) {
	c, err := decodeCatalog(bytes.NewReader(encode(t, catalogXML)))
	require.NoError(t, err)

	require.Len(t, c.VATs, 2)
	assert.Equal(t, "Základní", c.VATs[0].Name)
	require.Len(t, c.MealTypes, 1)
	assert.Equal(t, "Oběd", c.MealTypes[0].Name)
	assert.Equal(t, "Hlavní", c.MealTypes[0].Category)
	assert.Len(t, c.Units, 2)
	assert.Equal(t, "Dospělí", c.TargetGroups[0].Name)
}

func TestDecodeCatalog_CodificacionDesconocida(t *testing.T) {
	doc := strings.Replace(catalogXML, "windows-1250", "ebcdic", 1)
	_, err := decodeCatalog(strings.NewReader(doc))
	assert.Error(t, err)
}

func TestWriteSQL(t *testing.T) {
	c, err := decodeCatalog(bytes.NewReader(encode(t, catalogXML)))
	require.NoError(t, err)

	var out bytes.Buffer
	n, err := writeSQL(&out, c)
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	sql := out.String()
	assert.Contains(t, sql, "'Děti''s'")
	assert.Contains(t, sql, "INSERT INTO allergens")
	// IVA ordenado por porcentaje.
	assert.Less(t, strings.Index(sql, "12, 'Snížená'"), strings.Index(sql, "21, 'Základní'"))
}

func TestSeedID_Determinista(t *testing.T) {
	assert.Equal(t, seedID("vat", "21"), seedID("vat", "21"))
	assert.NotEqual(t, seedID("vat", "21"), seedID("allergen", "21"))
}
