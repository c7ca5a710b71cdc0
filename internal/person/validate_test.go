package person_test

import (
	"testing"

	"github.com/uday-rana/employees/internal/person"

	"github.com/stretchr/testify/assert"
)

func TestValidName_Anchored(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"simple", "Jane", true},
		{"lowercase", "jane", true},
		{"apostrophe", "O'Brien", true},
		{"hyphenated", "Smith-Jones", true},
		{"two words", "Mary Anne", true},
		{"empty", "", false},
		{"digit", "Jane2", false},
		{"letter amid noise", "J4ne!", false},
		{"symbol", "Jane@", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, person.ValidName(tt.input, person.NameModeAnchored))
		})
	}
}

func TestValidName_Substring(t *testing.T) {
	// Substring mode accepts any value containing at least one run of name
	// characters, even a single letter amid noise.
	assert.True(t, person.ValidName("J4ne!", person.NameModeSubstring))
	assert.True(t, person.ValidName("Jane", person.NameModeSubstring))
	assert.False(t, person.ValidName("1234!@", person.NameModeSubstring))
	assert.False(t, person.ValidName("", person.NameModeSubstring))
}

func TestValidEmail(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"jane@x.com", true},
		{"first.last@sub.example.org", true},
		{"no-at-sign.com", false},
		{"spaces in@x.com", false},
		{"jane@nodot", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, person.ValidEmail(tt.input), "input %q", tt.input)
	}
}

func TestValidPhone(t *testing.T) {
	tests := []struct {
		input      string
		wantAdd    bool
		wantUpdate bool
	}{
		{"+1 555-123-4567", true, true},
		{"+91 555 123 4567", true, true},
		{"1 555-123-4567", true, true},
		// Without a country-code digit only the add pattern matches.
		{"555-123-4567", true, false},
		{"(555) 123-4567", true, false},
		{"555.123.4567", true, false},
		{"5551234567", true, false},
		{"+ 555-123-4567", true, false},
		{"123-4567", false, false},
		{"not a phone", false, false},
		{"", false, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.wantAdd, person.ValidPhoneAdd(tt.input), "add input %q", tt.input)
		assert.Equal(t, tt.wantUpdate, person.ValidPhoneUpdate(tt.input), "update input %q", tt.input)
	}
}

func TestValidDepartment(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"R&D", true},
		{"Sales", true},
		{"Tier 2 Support", true},
		{"Murphy's Team", true},
		{"Front-End", true},
		{"", false},
		{"Sales!", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, person.ValidDepartment(tt.input), "input %q", tt.input)
	}
}

func TestValidAge(t *testing.T) {
	assert.True(t, person.ValidAge("1"))
	assert.True(t, person.ValidAge("42"))
	assert.False(t, person.ValidAge("0"))
	assert.False(t, person.ValidAge("-3"))
	assert.False(t, person.ValidAge("forty"))
	assert.False(t, person.ValidAge(""))
}

func TestParseNameMode(t *testing.T) {
	mode, err := person.ParseNameMode("")
	assert.NoError(t, err)
	assert.Equal(t, person.NameModeAnchored, mode)

	mode, err = person.ParseNameMode("substring")
	assert.NoError(t, err)
	assert.Equal(t, person.NameModeSubstring, mode)

	_, err = person.ParseNameMode("fuzzy")
	assert.Error(t, err)
}

func TestParseSort(t *testing.T) {
	spec, err := person.ParseSort("")
	assert.NoError(t, err)
	assert.Equal(t, person.DefaultSort, spec)

	spec, err = person.ParseSort("firstName,ASC")
	assert.NoError(t, err)
	assert.Equal(t, person.SortSpec{Column: "first_name", Direction: "ASC"}, spec)

	spec, err = person.ParseSort("lastName")
	assert.NoError(t, err)
	assert.Equal(t, person.SortSpec{Column: "last_name", Direction: "DESC"}, spec)

	_, err = person.ParseSort("nonexistent_col,DESC")
	assert.ErrorIs(t, err, person.ErrInvalidSortColumn)

	_, err = person.ParseSort("id,SIDEWAYS")
	assert.ErrorIs(t, err, person.ErrInvalidSortColumn)

	// Raw column names are not part of the allow list; only exposed field
	// names are accepted.
	_, err = person.ParseSort("first_name,ASC")
	assert.ErrorIs(t, err, person.ErrInvalidSortColumn)
}
