package words

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Pack is a self-contained YAML word pack:
//
//	name: classic
//	wordLength: 5
//	answers: [crane, snake]
//	guesses: [slate, bumpy]
type Pack struct {
	Name       string   `yaml:"name"`
	WordLength int      `yaml:"wordLength,omitempty"`
	Answers    []string `yaml:"answers"`
	Guesses    []string `yaml:"guesses"`
}

// ReadPack parses a YAML word pack from path.
func ReadPack(path string) (Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Pack{}, fmt.Errorf("reading word pack: %w", err)
	}
	var p Pack
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Pack{}, fmt.Errorf("parsing word pack %s: %w", path, err)
	}
	return p, nil
}

// Lists returns the pack contents as normalized lists.
func (p Pack) Lists() Lists {
	return Lists{Guesses: Normalize(p.Guesses), Answers: Normalize(p.Answers)}
}

// WritePack encodes lists as a YAML word pack. Guesses that are also
// answers are omitted since loading merges them back in.
func WritePack(w io.Writer, name string, l Lists) error {
	l = Merge(l)
	answers := make(map[string]struct{}, len(l.Answers))
	for _, a := range l.Answers {
		answers[a] = struct{}{}
	}
	p := Pack{Name: name, Answers: l.Answers, Guesses: []string{}}
	for _, g := range l.Guesses {
		if _, ok := answers[g]; !ok {
			p.Guesses = append(p.Guesses, g)
		}
	}
	if len(l.Answers) > 0 {
		p.WordLength = len(l.Answers[0])
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encoding word pack: %w", err)
	}
	return enc.Close()
}
