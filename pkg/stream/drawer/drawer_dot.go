package drawer

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/dominikbraun/graph"
	"github.com/dominikbraun/graph/draw"
	"github.com/pkg/errors"
	"gopkg.in/go-playground/colors.v1" //nolint

	"github.com/Gate88/adventofcode2023/pkg/stream/measure"
)

const labelAttribute = "xlabel"

// DOTDrawer writes steps and links as a Graphviz DOT file.
type DOTDrawer struct {
	graph      graph.Graph[string, string]
	fileName   string
	attributes map[string]string
}

// NewDOTDrawer creates a drawer writing to fileName.
func NewDOTDrawer(fileName string) *DOTDrawer {
	return &DOTDrawer{
		fileName:   fileName,
		graph:      graph.New(graph.StringHash, graph.Directed()),
		attributes: make(map[string]string),
	}
}

// SetGraphAttribute sets a graph-level attribute such as rankdir.
func (d *DOTDrawer) SetGraphAttribute(key, value string) {
	d.attributes[key] = value
}

func (d *DOTDrawer) AddStep(name string) error {
	if err := d.graph.AddVertex(name); err != nil {
		return errors.Wrapf(err, "unable to add vertex %s", name)
	}

	return nil
}

func (d *DOTDrawer) AddLink(parentName, childName string) error {
	if err := d.graph.AddEdge(parentName, childName); err != nil {
		return errors.Wrapf(err, "unable to add edge from %s to %s", parentName, childName)
	}

	return nil
}

// Draw writes the graph to the file of the drawer.
func (d *DOTDrawer) Draw() (err error) {
	file, err := os.Create(d.fileName)
	if err != nil {
		return errors.Wrapf(err, "unable to create file %s", d.fileName)
	}

	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "unable to close file %s", d.fileName)
		}
	}()

	return d.Render(file)
}

// Render writes the graph to wrt.
func (d *DOTDrawer) Render(wrt io.Writer) error {
	if err := draw.DOT(d.graph, wrt, graphOptions(d.attributes, draw.GraphAttribute)...); err != nil {
		return errors.Wrap(err, "unable to render DOT")
	}

	return nil
}

// graphOptions turns attributes into draw options, sorted by key.
func graphOptions[O any](attributes map[string]string, option func(key, value string) O) []O {
	keys := make([]string, 0, len(attributes))
	for key := range attributes {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	res := make([]O, 0, len(keys))
	for _, key := range keys {
		res = append(res, option(key, attributes[key]))
	}

	return res
}

func (d *DOTDrawer) SetTotalTime(stepName string, startTime time.Time) error {
	return d.addLabel(stepName, time.Since(startTime).String())
}

func (d *DOTDrawer) addLabel(stepName, label string) error {
	_, properties, err := d.graph.VertexWithProperties(stepName)
	if err != nil {
		return errors.Wrapf(err, "unable to get %s vertex properties", stepName)
	}

	if current, ok := properties.Attributes[labelAttribute]; ok && current != "" {
		label = current + ", " + label
	}

	properties.Attributes[labelAttribute] = label

	return nil
}

const maxRGB = 240

// AddMeasure labels every step with its average work time, the inputs it handled and, when it differs, the outputs
// it emitted. Links are coloured from blue (shortest average wait) to red (longest).
func (d *DOTDrawer) AddMeasure(msr measure.Measure) error {
	metrics := msr.Metrics()

	palette, err := waitPalette(metrics)
	if err != nil {
		return err
	}

	for name, mt := range metrics {
		labels := []string{}
		if work := mt.AvgWork(); work != 0 {
			labels = append(labels, work.String())
		}

		if count := mt.Count(); count > 0 {
			labels = append(labels, fmt.Sprintf("in=%d", count))

			if emitted := mt.Emitted(); emitted > 0 && emitted != count {
				labels = append(labels, fmt.Sprintf("out=%d", emitted))
			}
		}

		if total := mt.Total(); total > 0 {
			labels = append(labels, "end: "+total.String())
		}

		if len(labels) > 0 {
			if err := d.addLabel(name, strings.Join(labels, ", ")); err != nil {
				return err
			}
		}

		for parent, wait := range mt.AvgWait() {
			if wait == 0 {
				continue
			}

			err := d.graph.UpdateEdge(parent, name,
				graph.EdgeAttribute("label", wait.String()),
				graph.EdgeAttribute("fontcolor", "blue"),
				graph.EdgeAttribute("color", palette[wait]),
			)
			if err != nil {
				return errors.Wrapf(err, "unable to update edge from %s to %s", parent, name)
			}
		}
	}

	return nil
}

// waitPalette maps every distinct average wait to a colour between blue and red.
func waitPalette(metrics map[string]measure.Metric) (map[time.Duration]string, error) {
	palette := make(map[time.Duration]string)

	var lowest, highest time.Duration

	for _, mt := range metrics {
		for _, wait := range mt.AvgWait() {
			if wait == 0 {
				continue
			}

			if len(palette) == 0 || wait < lowest {
				lowest = wait
			}

			if wait > highest {
				highest = wait
			}

			palette[wait] = ""
		}
	}

	for wait := range palette {
		fraction := 1.0
		if highest > lowest {
			fraction = float64(wait-lowest) / float64(highest-lowest)
		}

		red := maxRGB * fraction

		colour, err := colors.RGB(uint8(red), 0, uint8(maxRGB-red)) //nolint
		if err != nil {
			return nil, errors.Wrap(err, "unable to get colour")
		}

		palette[wait] = colour.ToHEX().String()
	}

	return palette, nil
}

var _ Drawer = (*DOTDrawer)(nil)
