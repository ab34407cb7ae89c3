// Package skills lints the skill documents shipped in a bundle.
package skills

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// Dir is the bundle directory holding one sub-directory per skill.
const Dir = "skills"

// FileName is the skill document inside each skill directory.
const FileName = "SKILL.md"

const (
	// MaxNameLength is the maximum accepted length for the name field.
	MaxNameLength = 64
	// MaxDescriptionLength is the maximum accepted length for the description field.
	MaxDescriptionLength = 1024
	// MaxRecommendedLines is the recommended upper bound for a skill document.
	MaxRecommendedLines = 500
)

// Finding codes.
const (
	CodeUnreadable         = "SKILL_UNREADABLE"
	CodeFileMissing        = "SKILL_FILE_MISSING"
	CodeFrontMatterMissing = "SKILL_FRONTMATTER_MISSING"
	CodeFrontMatterInvalid = "SKILL_FRONTMATTER_INVALID"
	CodeUnknownField       = "SKILL_FRONTMATTER_UNKNOWN_FIELD"
	CodeNameMissing        = "SKILL_NAME_MISSING"
	CodeNameInvalid        = "SKILL_NAME_INVALID"
	CodeNameTooLong        = "SKILL_NAME_TOO_LONG"
	CodeNamePathMismatch   = "SKILL_NAME_PATH_MISMATCH"
	CodeDescriptionMissing = "SKILL_DESCRIPTION_MISSING"
	CodeDescriptionTooLong = "SKILL_DESCRIPTION_TOO_LONG"
	CodeSizeRecommendation = "SKILL_SIZE_RECOMMENDATION"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var allowedFields = map[string]bool{
	"name":          true,
	"description":   true,
	"license":       true,
	"compatibility": true,
	"metadata":      true,
	"allowed-tools": true,
}

// Finding is a single lint diagnostic. Findings never block an install.
type Finding struct {
	Code    string
	Path    string
	Message string
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s (%s)", f.Path, f.Message, f.Code)
}

// Skill is a parsed skill document.
type Skill struct {
	Path        string
	DirName     string
	LineCount   int
	Fields      []string
	Name        *string
	Description *string
}

// Parse reads the skill document at p in fsys.
func Parse(fsys fs.FS, p string) (Skill, error) {
	raw, err := fs.ReadFile(fsys, p)
	if err != nil {
		return Skill{}, err
	}
	content := string(bytes.TrimPrefix(raw, utf8BOM))

	scanner := bufio.NewScanner(strings.NewReader(content))
	if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != "---" {
		return Skill{}, errFrontMatterMissing
	}
	var lines []string
	terminated := false
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "---" {
			terminated = true
			break
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return Skill{}, err
	}
	if !terminated {
		return Skill{}, errFrontMatterUnterminated
	}

	skill := Skill{
		Path:      p,
		DirName:   path.Base(path.Dir(p)),
		LineCount: countLines(content),
	}
	if err := parseFrontMatter(strings.Join(lines, "\n"), &skill); err != nil {
		return Skill{}, err
	}
	return skill, nil
}

var (
	errFrontMatterMissing      = errors.New("missing YAML frontmatter")
	errFrontMatterUnterminated = errors.New("unterminated YAML frontmatter")
)

// Validate checks a parsed skill against the frontmatter conventions.
func Validate(skill Skill) []Finding {
	var findings []Finding
	add := func(code, format string, args ...any) {
		findings = append(findings, Finding{Code: code, Path: skill.Path, Message: fmt.Sprintf(format, args...)})
	}
	for _, field := range skill.Fields {
		if !allowedFields[field] {
			add(CodeUnknownField, "unknown frontmatter field %q", field)
		}
	}

	switch name := normalizeName(skill.Name); {
	case name == "":
		add(CodeNameMissing, "frontmatter field \"name\" is required")
	default:
		if n := utf8.RuneCountInString(name); n > MaxNameLength {
			add(CodeNameTooLong, "frontmatter field \"name\" exceeds %d characters (%d)", MaxNameLength, n)
		}
		if !validName(name) {
			add(CodeNameInvalid, "frontmatter field \"name\" must use lowercase letters, digits, and single hyphens")
		}
		if name != skill.DirName {
			add(CodeNamePathMismatch, "frontmatter name %q does not match directory %q", name, skill.DirName)
		}
	}

	if skill.Description == nil || strings.TrimSpace(*skill.Description) == "" {
		add(CodeDescriptionMissing, "frontmatter field \"description\" is required")
	} else if n := utf8.RuneCountInString(strings.TrimSpace(*skill.Description)); n > MaxDescriptionLength {
		add(CodeDescriptionTooLong, "frontmatter field \"description\" exceeds %d characters (%d)", MaxDescriptionLength, n)
	}

	if skill.LineCount > MaxRecommendedLines {
		add(CodeSizeRecommendation, "%s is %d lines; keep it under %d when possible", FileName, skill.LineCount, MaxRecommendedLines)
	}
	sortFindings(findings)
	return findings
}

// Lint validates every skill directory under Dir in a bundle tree.
// A tree without a skills directory has nothing to lint.
func Lint(tree fs.FS) ([]Finding, error) {
	entries, err := fs.ReadDir(tree, Dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var findings []Finding
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		p := path.Join(Dir, entry.Name(), FileName)
		skill, err := Parse(tree, p)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			findings = append(findings, Finding{Code: CodeFileMissing, Path: p, Message: "skill directory has no " + FileName})
		case errors.Is(err, errFrontMatterMissing), errors.Is(err, errFrontMatterUnterminated):
			findings = append(findings, Finding{Code: CodeFrontMatterMissing, Path: p, Message: err.Error()})
		case err != nil && isYAMLError(err):
			findings = append(findings, Finding{Code: CodeFrontMatterInvalid, Path: p, Message: err.Error()})
		case err != nil:
			findings = append(findings, Finding{Code: CodeUnreadable, Path: p, Message: err.Error()})
		default:
			findings = append(findings, Validate(skill)...)
		}
	}
	sortFindings(findings)
	return findings, nil
}

// frontMatterError marks a YAML problem in the frontmatter block.
type frontMatterError struct {
	msg string
}

func (e frontMatterError) Error() string { return e.msg }

func isYAMLError(err error) bool {
	var fm frontMatterError
	return errors.As(err, &fm)
}

func parseFrontMatter(content string, skill *Skill) error {
	if strings.TrimSpace(content) == "" {
		return nil
	}
	var root yaml.Node
	if err := yaml.Unmarshal([]byte(content), &root); err != nil {
		return frontMatterError{msg: err.Error()}
	}
	if len(root.Content) == 0 || root.Content[0].Kind != yaml.MappingNode {
		return frontMatterError{msg: "frontmatter must be a YAML mapping"}
	}
	mapping := root.Content[0]
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key := strings.TrimSpace(mapping.Content[i].Value)
		value := mapping.Content[i+1]
		if key == "" {
			continue
		}
		skill.Fields = append(skill.Fields, key)
		switch key {
		case "name", "description":
			s, err := scalarString(value, key)
			if err != nil {
				return err
			}
			if key == "name" {
				skill.Name = s
			} else {
				skill.Description = s
			}
		case "metadata":
			if value.Kind != yaml.MappingNode && !(value.Kind == yaml.ScalarNode && value.Tag == "!!null") {
				return frontMatterError{msg: `frontmatter field "metadata" must be a mapping`}
			}
		}
	}
	sort.Strings(skill.Fields)
	return nil
}

func scalarString(node *yaml.Node, field string) (*string, error) {
	if node.Kind != yaml.ScalarNode {
		return nil, frontMatterError{msg: fmt.Sprintf("frontmatter field %q must be a string", field)}
	}
	if node.Tag == "!!null" {
		return nil, nil
	}
	if node.Tag != "" && node.Tag != "!!str" {
		return nil, frontMatterError{msg: fmt.Sprintf("frontmatter field %q must be a string", field)}
	}
	value := node.Value
	return &value, nil
}

func normalizeName(name *string) string {
	if name == nil {
		return ""
	}
	return strings.TrimSpace(norm.NFKC.String(*name))
}

func validName(name string) bool {
	if strings.HasPrefix(name, "-") || strings.HasSuffix(name, "-") || strings.Contains(name, "--") {
		return false
	}
	for _, r := range name {
		if r == '-' || (r >= '0' && r <= '9') || (unicode.IsLower(r) && r < utf8.RuneSelf) {
			continue
		}
		return false
	}
	return true
}

func sortFindings(findings []Finding) {
	sort.Slice(findings, func(i, j int) bool {
		if findings[i].Path != findings[j].Path {
			return findings[i].Path < findings[j].Path
		}
		return findings[i].Code < findings[j].Code
	})
}

func countLines(content string) int {
	if content == "" {
		return 0
	}
	count := strings.Count(content, "\n")
	if strings.HasSuffix(content, "\n") {
		return count
	}
	return count + 1
}
