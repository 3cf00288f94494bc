package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/itsatony/go-blocktree"
	"gopkg.in/yaml.v3"
)

// buildReport is what the version command prints: the build provenance and
// the parsing defaults this binary was compiled with.
type buildReport struct {
	Version   string                  `json:"version"`
	Commit    string                  `json:"commit"`
	Branch    string                  `json:"branch"`
	BuildTime string                  `json:"build_time"`
	GoVersion string                  `json:"go_version"`
	Tags      blocktree.TagConfigFile `json:"default_tags"`
	MaxDepth  int                     `json:"default_max_depth"`
	Drivers   []string                `json:"storage_drivers"`
}

// versionsFile mirrors the parts of versions.yaml the report uses
type versionsFile struct {
	Project struct {
		Version string `yaml:"version"`
	} `yaml:"project"`
	Git struct {
		Commit string `yaml:"commit"`
		Branch string `yaml:"branch"`
	} `yaml:"git"`
	Build struct {
		Time      string `yaml:"time"`
		GoVersion string `yaml:"go_version"`
	} `yaml:"build"`
}

// versionsFileSearchPaths lists where versions.yaml is looked up, in order
var versionsFileSearchPaths = []string{"versions.yaml", "../versions.yaml", "../../versions.yaml"}

func runVersion(args []string, stdout, stderr io.Writer) int {
	format, err := parseVersionFormat(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidFormat, err)
		return ExitCodeUsageError
	}

	report := newBuildReport(findVersionsFile(versionsFileSearchPaths))

	if format == OutputFormatJSON {
		jsonBytes, _ := json.MarshalIndent(report, "", "  ")
		fmt.Fprintln(stdout, string(jsonBytes))
		return ExitCodeSuccess
	}

	fmt.Fprintf(stdout, VersionTextTemplate,
		report.Version, report.Commit, report.Branch, report.BuildTime, report.GoVersion)
	fmt.Fprintf(stdout, DefaultsTextTemplate,
		report.Tags.Open, report.Tags.Close, report.Tags.Delimiter,
		report.MaxDepth, strings.Join(report.Drivers, ", "))
	return ExitCodeSuccess
}

func parseVersionFormat(args []string) (string, error) {
	fs := flag.NewFlagSet(CmdNameVersion, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var format string
	fs.StringVar(&format, FlagFormat, FlagDefaultFormat, "")
	fs.StringVar(&format, FlagFormatShort, FlagDefaultFormat, "")

	if err := fs.Parse(args); err != nil {
		return "", err
	}
	if format != OutputFormatText && format != OutputFormatJSON {
		return "", errors.New(ErrMsgInvalidFormat)
	}
	return format, nil
}

// findVersionsFile returns the first decodable versions.yaml among paths,
// or nil when none is found
func findVersionsFile(paths []string) *versionsFile {
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var vf versionsFile
		if err := yaml.Unmarshal(data, &vf); err != nil {
			continue
		}
		return &vf
	}
	return nil
}

// newBuildReport fills the report from vf; fields vf leaves empty stay unknown
func newBuildReport(vf *versionsFile) *buildReport {
	report := &buildReport{
		Version:   VersionUnknown,
		Commit:    VersionUnknown,
		Branch:    VersionUnknown,
		BuildTime: VersionUnknown,
		GoVersion: runtime.Version(),
		Tags:      blocktree.DefaultTagConfig().File(),
		MaxDepth:  blocktree.DefaultMaxDepth,
		Drivers:   blocktree.ListStorageDrivers(),
	}
	if vf == nil {
		return report
	}

	setIfPresent(&report.Version, vf.Project.Version)
	setIfPresent(&report.Commit, vf.Git.Commit)
	setIfPresent(&report.Branch, vf.Git.Branch)
	setIfPresent(&report.BuildTime, vf.Build.Time)
	setIfPresent(&report.GoVersion, vf.Build.GoVersion)
	return report
}

func setIfPresent(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
