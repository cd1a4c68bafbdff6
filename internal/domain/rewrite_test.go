package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "recase.dev/pkg/recase/internal/model"
)

func TestApplyRenames_ConcreteScenario(t *testing.T) {
	content := []byte(`int user_id = 5; String first_name = "x";`)

	result := ApplyRenames(content, ExtractRenames(content))

	assert.True(t, result.Modified)
	assert.Equal(t, 2, result.Replacements)
	assert.Equal(t, `int userId = 5; String firstName = "x";`, string(result.Rewritten))
}

func TestApplyRenames_PrefixOverlapDoesNotCorrupt(t *testing.T) {
	content := []byte("int user_id = 1;\nint user_id_2 = 2;\nuser_id_2 = user_id;\n")

	result := ApplyRenames(content, ExtractRenames(content))

	expected := "int userId = 1;\nint userId2 = 2;\nuserId2 = userId;\n"
	assert.Equal(t, expected, string(result.Rewritten))
	assert.NotContains(t, string(result.Rewritten), "userId_2")
}

func TestApplyRenames_WordBoundaryOnly(t *testing.T) {
	mapping := m.NewRenameMapping([]m.Rename{{Original: "user_id", Converted: "userId"}})

	// user_idx shares a prefix with user_id but is a different identifier.
	result := ApplyRenames([]byte("int user_idx = user_id;"), mapping)

	assert.Equal(t, "int user_idx = userId;", string(result.Rewritten))
	assert.Equal(t, 1, result.Replacements)
}

func TestApplyRenames_DocParamTag(t *testing.T) {
	content := []byte(`/**
 * @param user_id the database key
 */
void load(int user_id) {}
`)

	result := ApplyRenames(content, ExtractRenames(content))

	assert.Contains(t, string(result.Rewritten), "@param userId the database key")
	assert.Contains(t, string(result.Rewritten), "void load(int userId)")
	assert.NotContains(t, string(result.Rewritten), "user_id")
}

func TestApplyRenames_EmptyMappingIsNoOp(t *testing.T) {
	content := []byte("int userId = 5;\n")

	result := ApplyRenames(content, nil)

	assert.False(t, result.Modified)
	assert.Zero(t, result.Replacements)
	assert.Equal(t, content, result.Rewritten)
}

func TestApplyRenames_NoMatchLeavesContentByteIdentical(t *testing.T) {
	mapping := m.NewRenameMapping([]m.Rename{{Original: "user_id", Converted: "userId"}})
	content := []byte("int somethingElse = 5;\n")

	result := ApplyRenames(content, mapping)

	assert.False(t, result.Modified)
	assert.Equal(t, content, result.Rewritten)
}

func TestNewRenameMapping_OrdersLongestFirst(t *testing.T) {
	mapping := m.NewRenameMapping([]m.Rename{
		{Original: "a_b", Converted: "aB"},
		{Original: "a_b_c_d", Converted: "aBCD"},
		{Original: "a_b_c", Converted: "aBC"},
	})

	require.Len(t, mapping, 3)
	assert.Equal(t, "a_b_c_d", mapping[0].Original)
	assert.Equal(t, "a_b_c", mapping[1].Original)
	assert.Equal(t, "a_b", mapping[2].Original)
}
