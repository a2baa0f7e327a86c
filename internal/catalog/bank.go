package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"

	"github.com/mathforge/mathforge/internal/session"
)

// BankVersion is the bank file format version written by this build.
const BankVersion = "v1.0.0"

//go:embed bank.schema.json
var bankSchemaJSON []byte

var (
	bankSchemaOnce sync.Once
	bankSchema     *jsonschema.Schema
	bankSchemaErr  error
)

// BankFile is the on-disk form of an external problem bank.
type BankFile struct {
	Version  string      `json:"version"`
	Problems []BankEntry `json:"problems"`
}

// BankEntry is one problem in a bank file.
type BankEntry struct {
	Subtopic   string   `json:"subtopic"`
	ID         string   `json:"id"`
	Prompt     string   `json:"prompt"`
	Difficulty string   `json:"difficulty"`
	Marks      int      `json:"marks"`
	Hints      []string `json:"hints,omitempty"`
	Solution   string   `json:"solution"`
}

// LoadBank reads and validates a bank file.
func LoadBank(path string) (map[string][]session.Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bank: %w", err)
	}
	bank, err := ParseBank(data)
	if err != nil {
		return nil, fmt.Errorf("bank %s: %w", path, err)
	}
	return bank, nil
}

// ParseBank validates raw bank JSON against the bank schema, checks its
// format version and groups the problems by subtopic.
func ParseBank(data []byte) (map[string][]session.Problem, error) {
	sch, err := compiledBankSchema()
	if err != nil {
		return nil, err
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	var f BankFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode bank: %w", err)
	}
	if !semver.IsValid(f.Version) {
		return nil, fmt.Errorf("invalid bank version %q", f.Version)
	}
	if semver.Major(f.Version) != semver.Major(BankVersion) {
		return nil, fmt.Errorf("unsupported bank version %s (want %s.x.y)", f.Version, semver.Major(BankVersion))
	}

	bank := make(map[string][]session.Problem)
	for _, e := range f.Problems {
		bank[e.Subtopic] = append(bank[e.Subtopic], session.Problem{
			ID:         e.ID,
			Prompt:     e.Prompt,
			Difficulty: session.Difficulty(e.Difficulty),
			Marks:      e.Marks,
			Hints:      e.Hints,
			Solution:   e.Solution,
		})
	}
	return bank, nil
}

// WriteBank encodes problems for a subtopic as an indented bank file.
func WriteBank(w io.Writer, subtopic string, problems []session.Problem) error {
	f := BankFile{Version: BankVersion}
	for _, p := range problems {
		f.Problems = append(f.Problems, BankEntry{
			Subtopic:   subtopic,
			ID:         p.ID,
			Prompt:     p.Prompt,
			Difficulty: string(p.Difficulty),
			Marks:      p.Marks,
			Hints:      p.Hints,
			Solution:   p.Solution,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(f)
}

func compiledBankSchema() (*jsonschema.Schema, error) {
	bankSchemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(bankSchemaJSON))
		if err != nil {
			bankSchemaErr = fmt.Errorf("parse bank schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		const url = "schema://bank.json"
		if err := c.AddResource(url, doc); err != nil {
			bankSchemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		bankSchema, bankSchemaErr = c.Compile(url)
	})
	return bankSchema, bankSchemaErr
}
