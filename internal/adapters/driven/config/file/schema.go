package file

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/modelstore/internal/core/domain"
)

// schemaDoc is the on-disk layout of a schema file.
type schemaDoc struct {
	Name       string     `toml:"name"`
	Path       string     `toml:"path,omitempty"`
	Version    int        `toml:"version,omitempty"`
	AutoCreate *bool      `toml:"auto_create,omitempty"`
	Tables     []tableDoc `toml:"tables"`
}

type tableDoc struct {
	Name    string      `toml:"name"`
	Columns []columnDoc `toml:"columns"`
}

type columnDoc struct {
	Name       string `toml:"name"`
	Type       string `toml:"type"`
	Size       int    `toml:"size,omitempty"`
	PrimaryKey bool   `toml:"primary_key,omitempty"`
}

// LoadSchema reads a schema file and returns the validated configuration.
func LoadSchema(path string) (domain.Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Configuration{}, fmt.Errorf("reading schema: %w", err)
	}
	cfg, err := DecodeSchema(data)
	if err != nil {
		return domain.Configuration{}, fmt.Errorf("schema %s: %w", path, err)
	}
	return cfg, nil
}

// DecodeSchema parses a TOML schema document. A missing version defaults
// to domain.DefaultSchemaVersion and a missing auto_create to true.
func DecodeSchema(data []byte) (domain.Configuration, error) {
	var doc schemaDoc
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return domain.Configuration{}, fmt.Errorf("%w: decoding schema: %w", domain.ErrConfiguration, err)
	}

	b := domain.NewConfigurationBuilder().
		DatabaseName(doc.Name).
		DatabasePath(doc.Path)
	if doc.Version != 0 {
		b.SchemaVersion(doc.Version)
	}
	if doc.AutoCreate != nil {
		b.AutoCreateTables(*doc.AutoCreate)
	}

	for _, td := range doc.Tables {
		table, err := td.metadata()
		if err != nil {
			return domain.Configuration{}, err
		}
		b.Models(table)
	}
	return b.Build()
}

func (td tableDoc) metadata() (domain.TableMetadata, error) {
	columns := make([]domain.Column, 0, len(td.Columns))
	for _, cd := range td.Columns {
		typ, err := domain.ParseSQLType(cd.Type)
		if err != nil {
			return domain.TableMetadata{}, fmt.Errorf("table %s: column %s: %w", td.Name, cd.Name, err)
		}
		columns = append(columns, domain.Column{
			Name:       cd.Name,
			Type:       typ,
			Size:       cd.Size,
			PrimaryKey: cd.PrimaryKey,
		})
	}
	return domain.NewTableMetadata(td.Name, columns)
}

// EncodeSchema renders a configuration as a TOML schema document.
func EncodeSchema(cfg domain.Configuration) ([]byte, error) {
	auto := cfg.AutoCreateTables
	doc := schemaDoc{
		Name:       cfg.DatabaseName,
		Path:       cfg.DatabasePath,
		Version:    cfg.SchemaVersion,
		AutoCreate: &auto,
		Tables:     make([]tableDoc, 0, len(cfg.Models)),
	}
	for _, t := range cfg.Models {
		td := tableDoc{Name: t.Name()}
		for _, c := range t.Columns() {
			td.Columns = append(td.Columns, columnDoc{
				Name:       c.Name,
				Type:       c.Type.String(),
				Size:       c.Size,
				PrimaryKey: c.PrimaryKey,
			})
		}
		doc.Tables = append(doc.Tables, td)
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding schema: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteSchema validates cfg and writes it to path.
func WriteSchema(path string, cfg domain.Configuration) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	data, err := EncodeSchema(cfg)
	if err != nil {
		return err
	}
	// Write with restricted permissions
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing schema: %w", err)
	}
	return nil
}
