// Package conformance runs golden source/output cases through the tern
// pipeline.
package conformance

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/labstack/gommon/color"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"tern/internal"
)

// Case is one program and the output it must produce.
type Case struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
	Stdout string `yaml:"stdout"`
	Stderr string `yaml:"stderr"`
	Exit   int    `yaml:"exit"`
}

// Suite is the content of one YAML file.
type Suite struct {
	Name  string `yaml:"name"`
	Cases []Case `yaml:"cases"`

	Path string `yaml:"-"`
}

// Options configure how cases are run.
type Options struct {
	Logger logrus.FieldLogger
}

// Result is the outcome of one case.
type Result struct {
	Suite string
	Case  string
	Diff  string
}

// Passed reports whether the case produced the expected output.
func (r Result) Passed() bool {
	return r.Diff == ""
}

// Load parses a suite file.
func Load(path string) (*Suite, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var suite Suite
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&suite); err != nil {
		return nil, fmt.Errorf("conformance: parse %s: %w", path, err)
	}
	if suite.Name == "" {
		suite.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	for i, c := range suite.Cases {
		if c.Name == "" {
			return nil, fmt.Errorf("conformance: %s: case %d has no name", path, i)
		}
	}
	suite.Path = path
	return &suite, nil
}

// LoadDir parses every *.yaml file of dir in name order.
func LoadDir(dir string) ([]*Suite, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	suites := make([]*Suite, 0, len(paths))
	for _, path := range paths {
		suite, err := Load(path)
		if err != nil {
			return nil, err
		}
		suites = append(suites, suite)
	}
	return suites, nil
}

// capture separates program output from diagnostics.
type capture struct {
	stdout strings.Builder
	stderr strings.Builder
}

func (c *capture) Println(a ...interface{}) (int, error) {
	return fmt.Fprintln(&c.stdout, a...)
}

func (c *capture) Fprintf(w io.Writer, format string, a ...interface{}) (int, error) {
	return fmt.Fprintf(&c.stderr, format, a...)
}

func (c *capture) Fprintln(w io.Writer, a ...interface{}) (int, error) {
	return fmt.Fprintln(&c.stderr, a...)
}

type outcome struct {
	Stdout string
	Stderr string
	Exit   int
}

// Run executes every case on a fresh interpreter.
func (s *Suite) Run(opts Options) []Result {
	results := make([]Result, 0, len(s.Cases))
	for _, c := range s.Cases {
		out := &capture{}
		interpOpts := []internal.Option{}
		if opts.Logger != nil {
			interpOpts = append(interpOpts, internal.WithLogger(opts.Logger.WithField("case", c.Name)))
		}
		status := internal.NewInterpreter(out, interpOpts...).Run(c.Source)

		expected := outcome{Stdout: c.Stdout, Stderr: c.Stderr, Exit: c.Exit}
		got := outcome{Stdout: out.stdout.String(), Stderr: out.stderr.String(), Exit: status.ExitCode()}
		results = append(results, Result{
			Suite: s.Name,
			Case:  c.Name,
			Diff:  cmp.Diff(expected, got),
		})
	}
	return results
}

// Report prints one line per result and a summary.
func Report(w io.Writer, results []Result, colors bool) (passed, failed int) {
	c := color.New()
	c.SetOutput(w)
	if colors {
		c.Enable()
	} else {
		c.Disable()
	}

	for _, r := range results {
		if r.Passed() {
			passed++
			fmt.Fprintf(w, "%s %s/%s\n", c.Green("PASS"), r.Suite, r.Case)
			continue
		}
		failed++
		fmt.Fprintf(w, "%s %s/%s\n", c.Red("FAIL"), r.Suite, r.Case)
		fmt.Fprintf(w, "%s\n", strings.TrimRight(r.Diff, "\n"))
	}

	summary := fmt.Sprintf("%d passed, %d failed", passed, failed)
	if failed > 0 {
		fmt.Fprintln(w, c.Red(summary))
	} else {
		fmt.Fprintln(w, c.Green(summary))
	}
	return passed, failed
}
