package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTaskTitleBoundaries(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "empty", input: "", wantErr: true},
		{name: "length 4 rejected", input: "1234", wantErr: true},
		{name: "length 5 accepted", input: "12345", wantErr: false},
		{name: "length 50 accepted", input: strings.Repeat("a", 50), wantErr: false},
		{name: "length 51 rejected", input: strings.Repeat("a", 51), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ferr := ParseTaskTitle(tt.input)
			if tt.wantErr {
				require.NotNil(t, ferr)
				assert.Equal(t, "task", ferr.Field)
			} else {
				require.Nil(t, ferr)
				assert.Equal(t, tt.input, string(got))
			}
		})
	}
}

func TestParseTaskDetail(t *testing.T) {
	_, ferr := ParseTaskDetail("")
	assert.Nil(t, ferr, "detail is optional")

	_, ferr = ParseTaskDetail("1234")
	require.NotNil(t, ferr)
	assert.Equal(t, "detail", ferr.Field)

	_, ferr = ParseTaskDetail(strings.Repeat("a", 255))
	assert.Nil(t, ferr)

	_, ferr = ParseTaskDetail(strings.Repeat("a", 256))
	require.NotNil(t, ferr)
}

func TestParseEmail(t *testing.T) {
	_, ferr := ParseEmail("n@x.com")
	assert.Nil(t, ferr)

	for _, bad := range []string{"", "not-an-email", "a b@x.com", "<n@x.com>"} {
		_, ferr := ParseEmail(bad)
		assert.NotNil(t, ferr, "expected %q to be rejected", bad)
	}
}

func TestRegisterAccumulatesAllViolations(t *testing.T) {
	_, _, _, err := Register("x", "bogus", "123")
	require.Error(t, err)

	var verrs Errors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 3)

	fields := make([]string, len(verrs))
	for i, fe := range verrs {
		fields[i] = fe.Field
	}
	assert.ElementsMatch(t, []string{"name", "email", "password"}, fields)
}

func TestRegisterValidInput(t *testing.T) {
	name, email, password, err := Register("Nitesh", "n@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "Nitesh", string(name))
	assert.Equal(t, "n@x.com", string(email))
	assert.Equal(t, "secret1", string(password))
}

func TestTodoFields(t *testing.T) {
	_, _, err := TodoFields("buy milk", "")
	require.NoError(t, err)

	_, _, err = TodoFields("tiny", "abc")
	var verrs Errors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 2)
}
