// AngelaMos | 2026
// optional_test.go

package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type patchPayload struct {
	Name       Optional[string] `json:"nome"`
	Department Optional[string] `json:"departamento"`
	Active     Optional[bool]   `json:"ativo"`
}

func TestOptional_Unmarshal(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		check func(t *testing.T, p patchPayload)
	}{
		{
			name: "absent keys",
			body: `{}`,
			check: func(t *testing.T, p patchPayload) {
				assert.False(t, p.Name.Set)
				assert.False(t, p.Department.Set)
				assert.False(t, p.Active.Set)
			},
		},
		{
			name: "explicit null",
			body: `{"departamento": null}`,
			check: func(t *testing.T, p patchPayload) {
				assert.True(t, p.Department.Set)
				assert.True(t, p.Department.Null)
				assert.False(t, p.Department.HasValue())
				assert.Nil(t, p.Department.Ptr())
			},
		},
		{
			name: "values",
			body: `{"nome": "Maria", "ativo": false}`,
			check: func(t *testing.T, p patchPayload) {
				assert.True(t, p.Name.HasValue())
				assert.Equal(t, "Maria", p.Name.Value)
				assert.True(t, p.Active.HasValue())
				assert.False(t, p.Active.Value)
				require.NotNil(t, p.Name.Ptr())
				assert.Equal(t, "Maria", *p.Name.Ptr())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p patchPayload
			require.NoError(t, json.Unmarshal([]byte(tt.body), &p))
			tt.check(t, p)
		})
	}
}

func TestOptional_UnmarshalWrongType(t *testing.T) {
	var p patchPayload
	err := json.Unmarshal([]byte(`{"ativo": "yes"}`), &p)
	assert.Error(t, err)
}

func TestOptional_Marshal(t *testing.T) {
	out, err := json.Marshal(patchPayload{
		Name:       Some("Ana"),
		Department: Null[string](),
	})
	require.NoError(t, err)

	assert.JSONEq(t,
		`{"nome":"Ana","departamento":null,"ativo":null}`,
		string(out),
	)
}
