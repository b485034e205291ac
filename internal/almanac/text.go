package almanac

import (
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"

	"github.com/Gate88/adventofcode2023/pkg/remap"
)

//nolint:govet // participle grammar tags are not standard struct tags
type textGrammar struct {
	Seeds    []string          `"seeds" ":" @Int*`
	Sections []*sectionGrammar `@@*`
}

//nolint:govet // participle grammar tags are not standard struct tags
type sectionGrammar struct {
	From    string          `@Ident "-" "to" "-"`
	To      string          `@Ident "map" ":"`
	Entries []*entryGrammar `@@*`
}

// Numbers are captured as text so they are always read in base 10.
//
//nolint:govet // participle grammar tags are not standard struct tags
type entryGrammar struct {
	Destination string `@Int`
	Source      string `@Int`
	Length      string `@Int`
}

var textLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Int", Pattern: `\d+`},
	{Name: "Punct", Pattern: `[-:]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var textParser = participle.MustBuild[textGrammar](
	participle.Lexer(textLexer),
	participle.Elide("Whitespace"),
)

// ParseText parses the text almanac format:
//
//	seeds: 79 14 55 13
//
//	seed-to-soil map:
//	50 98 2
//	52 50 48
//
// Each line of a section is a destination start, a source start and a length. The start stage is the source of the
// first section; a destination no section starts from becomes a terminal stage.
func ParseText(name, input string) (*Document, error) {
	grammar, err := textParser.ParseString(name, input)
	if err != nil {
		return nil, errors.Wrap(err, "unable to parse almanac")
	}

	seeds, err := parseNumbers(grammar.Seeds)
	if err != nil {
		return nil, errors.Wrap(err, "seeds")
	}

	if len(grammar.Sections) == 0 {
		return nil, ErrNoStages
	}

	doc := &Document{
		Start:  grammar.Sections[0].From,
		Seeds:  seeds,
		Stages: make([]remap.StageSpec, 0, len(grammar.Sections)+1),
	}

	sources := make(map[string]struct{}, len(grammar.Sections))
	for _, section := range grammar.Sections {
		sources[section.From] = struct{}{}
	}

	terminals := make(map[string]struct{})
	for _, section := range grammar.Sections {
		spec := remap.StageSpec{
			Name:    section.From,
			Next:    section.To,
			Entries: make([][3]uint64, 0, len(section.Entries)),
		}

		for _, entry := range section.Entries {
			triple, err := parseNumbers([]string{entry.Destination, entry.Source, entry.Length})
			if err != nil {
				return nil, errors.Wrapf(err, "%s-to-%s map", section.From, section.To)
			}

			spec.Entries = append(spec.Entries, [3]uint64{triple[0], triple[1], triple[2]})
		}

		doc.Stages = append(doc.Stages, spec)

		if _, ok := sources[section.To]; ok {
			continue
		}

		if _, ok := terminals[section.To]; !ok {
			terminals[section.To] = struct{}{}
			doc.Stages = append(doc.Stages, remap.StageSpec{Name: section.To})
		}
	}

	return doc, nil
}

func parseNumbers(values []string) ([]uint64, error) {
	res := make([]uint64, 0, len(values))
	for _, value := range values {
		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidNumber, "%s: %v", value, err)
		}

		res = append(res, n)
	}

	return res, nil
}
