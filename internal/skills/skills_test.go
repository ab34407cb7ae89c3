package skills

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/cc-spec/internal/bundle"
	"github.com/conn-castle/cc-spec/internal/language"
)

func codes(findings []Finding) []string {
	out := make([]string, 0, len(findings))
	for _, f := range findings {
		out = append(out, f.Code)
	}
	return out
}

func TestParse(t *testing.T) {
	fsys := fstest.MapFS{
		"skills/alpha/SKILL.md": {Data: []byte("\xEF\xBB\xBF---\nname: alpha\ndescription: test\nlicense: MIT\n---\nBody.\n")},
	}

	skill, err := Parse(fsys, "skills/alpha/SKILL.md")
	require.NoError(t, err)
	assert.Equal(t, "alpha", skill.DirName)
	require.NotNil(t, skill.Name)
	assert.Equal(t, "alpha", *skill.Name)
	require.NotNil(t, skill.Description)
	assert.Equal(t, "test", *skill.Description)
	assert.Equal(t, []string{"description", "license", "name"}, skill.Fields)
	assert.Equal(t, 6, skill.LineCount)
	assert.Empty(t, Validate(skill))
}

func TestParseErrors(t *testing.T) {
	fsys := fstest.MapFS{
		"none.md":        {Data: []byte("# Title\n")},
		"open.md":        {Data: []byte("---\nname: x\n")},
		"list.md":        {Data: []byte("---\n- a\n- b\n---\n")},
		"badname.md":     {Data: []byte("---\nname: [a]\n---\n")},
		"badmetadata.md": {Data: []byte("---\nmetadata: text\n---\n")},
	}

	_, err := Parse(fsys, "none.md")
	assert.ErrorIs(t, err, errFrontMatterMissing)
	_, err = Parse(fsys, "open.md")
	assert.ErrorIs(t, err, errFrontMatterUnterminated)
	for _, p := range []string{"list.md", "badname.md", "badmetadata.md"} {
		_, err = Parse(fsys, p)
		assert.True(t, isYAMLError(err), p)
	}
	_, err = Parse(fsys, "missing.md")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	str := func(s string) *string { return &s }
	tests := []struct {
		name  string
		skill Skill
		want  []string
	}{
		{
			name:  "valid",
			skill: Skill{DirName: "spec-flow", Name: str("spec-flow"), Description: str("d")},
		},
		{
			name:  "missing fields",
			skill: Skill{DirName: "x"},
			want:  []string{CodeDescriptionMissing, CodeNameMissing},
		},
		{
			name:  "invalid name",
			skill: Skill{DirName: "Bad--Name", Name: str("Bad--Name"), Description: str("d")},
			want:  []string{CodeNameInvalid},
		},
		{
			name:  "mismatch",
			skill: Skill{DirName: "alpha", Name: str("beta"), Description: str(" ")},
			want:  []string{CodeDescriptionMissing, CodeNamePathMismatch},
		},
		{
			name:  "limits",
			skill: Skill{DirName: strings.Repeat("a", 65), Name: str(strings.Repeat("a", 65)), Description: str(strings.Repeat("d", 1025)), LineCount: 501},
			want:  []string{CodeDescriptionTooLong, CodeNameTooLong, CodeSizeRecommendation},
		},
		{
			name:  "unknown field",
			skill: Skill{DirName: "a", Name: str("a"), Description: str("d"), Fields: []string{"description", "name", "owner"}},
			want:  []string{CodeUnknownField},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := codes(Validate(tt.skill))
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLint(t *testing.T) {
	fsys := fstest.MapFS{
		"skills/good/SKILL.md":  {Data: []byte("---\nname: good\ndescription: ok\n---\n")},
		"skills/empty/.keep":    {Data: []byte("")},
		"skills/plain/SKILL.md": {Data: []byte("no frontmatter\n")},
		"skills/yaml/SKILL.md":  {Data: []byte("---\nname: [x\n---\n")},
		"skills/README.md":      {Data: []byte("not a skill dir")},
	}

	findings, err := Lint(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{CodeFileMissing, CodeFrontMatterMissing, CodeFrontMatterInvalid}, codes(findings))
	assert.Equal(t, "skills/empty/SKILL.md", findings[0].Path)
	assert.Contains(t, findings[0].String(), CodeFileMissing)
}

func TestLintWithoutSkills(t *testing.T) {
	findings, err := Lint(fstest.MapFS{"CLAUDE.md": {Data: []byte("x")}})
	require.NoError(t, err)
	assert.Empty(t, findings)
}

func TestEmbeddedBundleIsClean(t *testing.T) {
	src, err := bundle.Embedded()
	require.NoError(t, err)
	for _, lang := range language.Supported {
		tree, err := src.Open(lang)
		require.NoError(t, err)
		findings, err := Lint(tree)
		require.NoError(t, err)
		assert.Empty(t, findings, string(lang))
	}
}
