// seed genera un script SQL para poblar las empresas afiliadas y sus
// beneficios a partir del padrón XML exportado por el sistema administrativo.
//
// Uso: go run ./cmd/seed [ruta/padron_empresas.xml]
// Por defecto busca padron_empresas.xml en el directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/00002_seed_empresas.sql
package main

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type padron struct {
	Empresas []empresaXML `xml:"empresa"`
}

type empresaXML struct {
	Codigo     string         `xml:"codigo,attr"`
	Nombre     string         `xml:"nombre,attr"`
	Estado     string         `xml:"estado,attr"`
	Beneficios []beneficioXML `xml:"beneficio"`
}

type beneficioXML struct {
	Titulo      string `xml:"titulo,attr"`
	Descripcion string `xml:"descripcion,attr"`
	Categoria   string `xml:"categoria,attr"`
	Descuento   string `xml:"descuento,attr"`
}

func main() {
	xmlPath := "padron_empresas.xml"
	if len(os.Args) > 1 {
		xmlPath = os.Args[1]
	}
	f, err := os.Open(xmlPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir XML: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	var p padron
	dec := xml.NewDecoder(f)
	// El sistema administrativo exporta en ISO-8859-1 (tildes y eñes).
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		if strings.EqualFold(charset, "ISO-8859-1") || strings.EqualFold(charset, "ISO8859-1") {
			return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
		}
		return input, nil
	}
	if err := dec.Decode(&p); err != nil {
		fmt.Fprintf(os.Stderr, "Decodificar XML: %v\n", err)
		os.Exit(1)
	}

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "00002_seed_empresas.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Empresas afiliadas y beneficios del convenio\n")
	out.WriteString("-- Generado desde padron_empresas.xml con cmd/seed\n")
	out.WriteString("-- +goose Up\n\n")

	totalEmpresas := 0
	totalBeneficios := 0
	for _, e := range p.Empresas {
		codigo := normalizarCodigo(e.Codigo)
		if codigo == "" || strings.TrimSpace(e.Nombre) == "" {
			continue
		}
		estado := strings.ToLower(strings.TrimSpace(e.Estado))
		if estado == "" {
			estado = "activo"
		}
		fmt.Fprintf(out, "INSERT INTO empresas (id, codigo, nombre, estado)\n")
		fmt.Fprintf(out, "VALUES (gen_random_uuid()::text, '%s', '%s', '%s')\n",
			codigo, escapeSQL(strings.TrimSpace(e.Nombre)), escapeSQL(estado))
		out.WriteString("ON CONFLICT (codigo) DO UPDATE SET nombre = EXCLUDED.nombre, estado = EXCLUDED.estado;\n")
		totalEmpresas++

		for _, b := range e.Beneficios {
			titulo := escapeSQL(strings.TrimSpace(b.Titulo))
			if titulo == "" {
				continue
			}
			descuento := strings.TrimSpace(b.Descuento)
			if descuento == "" {
				descuento = "0"
			}
			fmt.Fprintf(out, "INSERT INTO beneficios (id, empresa_id, titulo, descripcion, categoria, descuento, activo)\n")
			fmt.Fprintf(out, "SELECT gen_random_uuid()::text, e.id, '%s', '%s', '%s', %s, TRUE FROM empresas e WHERE e.codigo = '%s'\n",
				titulo, escapeSQL(strings.TrimSpace(b.Descripcion)), escapeSQL(strings.TrimSpace(b.Categoria)), descuento, codigo)
			fmt.Fprintf(out, "AND NOT EXISTS (SELECT 1 FROM beneficios b WHERE b.empresa_id = e.id AND b.titulo = '%s');\n", titulo)
			totalBeneficios++
		}
		out.WriteString("\n")
	}

	out.WriteString("-- +goose Down\n")
	out.WriteString("-- Los datos del padrón no se revierten: las empresas pueden tener miembros asociados.\n")
	out.WriteString("SELECT 1;\n")

	fmt.Printf("Generado %s: %d empresas, %d beneficios\n", outPath, totalEmpresas, totalBeneficios)
}

// normalizarCodigo deja el código como se almacena: mayúsculas sin espacios.
func normalizarCodigo(s string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
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
