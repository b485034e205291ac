package almanac

import (
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/Gate88/adventofcode2023/pkg/remap"
)

type yamlDocument struct {
	Start  string      `yaml:"start,omitempty"`
	Seeds  []uint64    `yaml:"seeds,flow"`
	Stages []yamlStage `yaml:"stages"`
}

type yamlStage struct {
	Name    string      `yaml:"name"`
	Next    string      `yaml:"next,omitempty"`
	Entries []yamlEntry `yaml:"entries,omitempty"`
}

type yamlEntry []uint64

// MarshalYAML writes an entry on one line, e.g. [50, 98, 2].
func (e yamlEntry) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, n := range e {
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatUint(n, 10)})
	}

	return node, nil
}

// ParseYAML parses an almanac such as:
//
//	start: seed
//	seeds: [79, 14, 55, 13]
//	stages:
//	  - name: seed
//	    next: soil
//	    entries:
//	      - [50, 98, 2]
//	  - name: soil
//
// Every stage must be listed, terminal ones included. Without start, the first stage is the start stage.
func ParseYAML(content []byte) (*Document, error) {
	var raw yamlDocument
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, errors.Wrap(err, "unable to parse almanac")
	}

	if len(raw.Stages) == 0 {
		return nil, ErrNoStages
	}

	doc := &Document{
		Start:  raw.Start,
		Seeds:  raw.Seeds,
		Stages: make([]remap.StageSpec, 0, len(raw.Stages)),
	}

	if doc.Start == "" {
		doc.Start = raw.Stages[0].Name
	}

	for _, stage := range raw.Stages {
		spec := remap.StageSpec{Name: stage.Name, Next: stage.Next}

		for i, entry := range stage.Entries {
			if len(entry) != 3 {
				return nil, errors.Wrapf(ErrMalformedEntry, "stage %s entry %d has %d", stage.Name, i, len(entry))
			}

			spec.Entries = append(spec.Entries, [3]uint64{entry[0], entry[1], entry[2]})
		}

		doc.Stages = append(doc.Stages, spec)
	}

	return doc, nil
}

// MarshalYAML writes d in the format read by ParseYAML.
func (d *Document) MarshalYAML() (any, error) {
	raw := yamlDocument{
		Start:  d.Start,
		Seeds:  d.Seeds,
		Stages: make([]yamlStage, 0, len(d.Stages)),
	}

	for _, spec := range d.Stages {
		stage := yamlStage{Name: spec.Name, Next: spec.Next}
		for _, entry := range spec.Entries {
			stage.Entries = append(stage.Entries, yamlEntry{entry[0], entry[1], entry[2]})
		}

		raw.Stages = append(raw.Stages, stage)
	}

	return raw, nil
}
