package slimmer

import (
	"errors"
	"testing"

	"github.com/nconklindev/zempic/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func peopleTable() *types.Table {
	return &types.Table{
		Headers: []string{"id", "name", "age", "city"},
		Rows: [][]string{
			{"1", "Ann", "30", "NY"},
			{"2", "Bo", "25", "LA"},
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		filter  []string
		missing []string
	}{
		{"Subset", []string{"name", "age"}, nil},
		{"All columns reordered", []string{"city", "age", "name", "id"}, nil},
		{"Empty filter", []string{}, nil},
		{"Nil filter", nil, nil},
		{"Duplicates of present column", []string{"age", "age"}, nil},
		{"One missing", []string{"name", "country"}, []string{"country"}},
		{"Case sensitive", []string{"Name"}, []string{"Name"}},
		{"No trimming", []string{" name"}, []string{" name"}},
		{"Blank entry", []string{"name", ""}, []string{""}},
		{"Missing reported once in order", []string{"zip", "name", "country", "zip"}, []string{"zip", "country"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(peopleTable(), tt.filter)
			if tt.missing == nil {
				assert.NoError(t, err)
				return
			}

			var valErr *ValidationError
			require.True(t, errors.As(err, &valErr), "want *ValidationError, got %v", err)
			assert.Equal(t, tt.missing, valErr.Missing)
		})
	}
}

func TestValidate_EmptyTable(t *testing.T) {
	empty := &types.Table{}

	assert.NoError(t, Validate(empty, nil))

	var valErr *ValidationError
	require.ErrorAs(t, Validate(empty, []string{"a"}), &valErr)
	assert.Equal(t, []string{"a"}, valErr.Missing)
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Missing: []string{"country", ""}}
	assert.Equal(t, `filter is asking for columns not present in the table: "country", ""`, err.Error())
}
