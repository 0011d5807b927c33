// seed_catalog genera el script SQL de datos de referencia (IVA, alérgenos, tipos de comida y
// grupos de comensales) a partir del XML de catálogos exportado por el sistema anterior.
//
// Uso: go run ./cmd/seed_catalog [ruta/catalogo.xml]
// Por defecto busca catalogo.xml en el directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/002_seed_catalog.sql
package main

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/kitchen-ledger/internal/domain/inventory"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// seedNamespace espacio de nombres de los UUID v5: el mismo código genera siempre el mismo ID.
var seedNamespace = uuid.MustParse("6f3c2a4e-9d1b-4b8e-a7c5-2e0f1d3b4a59")

type catalog struct {
	VATs []struct {
		Percentage int    `xml:"percentage,attr"`
		Name       string `xml:"name,attr"`
	} `xml:"vats>vat"`
	Allergens []struct {
		Code        string `xml:"code,attr"`
		Description string `xml:"description,attr"`
	} `xml:"allergens>allergen"`
	Units []struct {
		Code string `xml:"code,attr"`
	} `xml:"units>unit"`
	MealTypes []struct {
		Name     string `xml:"name,attr"`
		Category string `xml:"category,attr"`
	} `xml:"mealTypes>mealType"`
	TargetGroups []struct {
		Name string `xml:"name,attr"`
	} `xml:"targetGroups>targetGroup"`
}

func main() {
	xmlPath := "catalogo.xml"
	if len(os.Args) > 1 {
		xmlPath = os.Args[1]
	}
	f, err := os.Open(xmlPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir XML: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	c, err := decodeCatalog(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Decodificar XML: %v\n", err)
		os.Exit(1)
	}
	for _, u := range c.Units {
		if _, ok := inventory.NormalizeUnit(u.Code); !ok {
			fmt.Fprintf(os.Stderr, "Unidad %q no soportada, se ignora\n", u.Code)
		}
	}

	outPath := filepath.Join(findModuleRoot(), "internal", "infrastructure", "postgres", "migrations", "002_seed_catalog.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	n, err := writeSQL(out, c)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d registros\n", outPath, n)
}

// decodeCatalog acepta XML en UTF-8, windows-1250 o ISO-8859-2.
func decodeCatalog(r io.Reader) (*catalog, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		switch strings.ToLower(charset) {
		case "windows-1250", "cp1250":
			return transform.NewReader(input, charmap.Windows1250.NewDecoder()), nil
		case "iso-8859-2", "iso8859-2", "latin2":
			return transform.NewReader(input, charmap.ISO8859_2.NewDecoder()), nil
		case "utf-8", "":
			return input, nil
		}
		return nil, fmt.Errorf("codificación no soportada: %s", charset)
	}
	var c catalog
	if err := dec.Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// writeSQL escribe los INSERT con ON CONFLICT DO NOTHING y devuelve la cantidad de registros.
func writeSQL(w io.Writer, c *catalog) (int, error) {
	var b strings.Builder
	n := 0
	b.WriteString("-- Catálogos de referencia\n")
	b.WriteString("-- Generado por cmd/seed_catalog\n\n")

	b.WriteString("-- 1. Tarifas de IVA\n")
	vats := c.VATs
	sort.Slice(vats, func(i, j int) bool { return vats[i].Percentage < vats[j].Percentage })
	for _, v := range vats {
		if v.Percentage < 0 || v.Percentage > 100 || strings.TrimSpace(v.Name) == "" {
			continue
		}
		fmt.Fprintf(&b, "INSERT INTO vats (id, percentage, name) VALUES ('%s', %d, '%s') ON CONFLICT DO NOTHING;\n",
			seedID("vat", fmt.Sprint(v.Percentage)), v.Percentage, escapeSQL(v.Name))
		n++
	}

	b.WriteString("\n-- 2. Alérgenos\n")
	for _, a := range c.Allergens {
		code := strings.TrimSpace(a.Code)
		if code == "" {
			continue
		}
		fmt.Fprintf(&b, "INSERT INTO allergens (id, code, description) VALUES ('%s', '%s', '%s') ON CONFLICT DO NOTHING;\n",
			seedID("allergen", code), escapeSQL(code), escapeSQL(strings.TrimSpace(a.Description)))
		n++
	}

	b.WriteString("\n-- 3. Tipos de comida\n")
	for _, m := range c.MealTypes {
		name := strings.TrimSpace(m.Name)
		if name == "" {
			continue
		}
		fmt.Fprintf(&b, "INSERT INTO meal_types (id, name, category) VALUES ('%s', '%s', '%s') ON CONFLICT DO NOTHING;\n",
			seedID("meal_type", name), escapeSQL(name), escapeSQL(strings.TrimSpace(m.Category)))
		n++
	}

	b.WriteString("\n-- 4. Grupos de comensales\n")
	for _, g := range c.TargetGroups {
		name := strings.TrimSpace(g.Name)
		if name == "" {
			continue
		}
		fmt.Fprintf(&b, "INSERT INTO target_groups (id, name) VALUES ('%s', '%s') ON CONFLICT DO NOTHING;\n",
			seedID("target_group", name), escapeSQL(name))
		n++
	}

	_, err := io.WriteString(w, b.String())
	return n, err
}

func seedID(table, key string) string {
	return uuid.NewSHA1(seedNamespace, []byte(table+":"+key)).String()
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
