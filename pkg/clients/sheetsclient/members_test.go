package sheetsclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMembers(t *testing.T) {
	raw := [][]interface{}{
		{"Member ID", "Full name", "Email", "Status"},
		{"A", "Alice Almeida", "alice@example.com", "Active"},
		{"B", "Bruno Barros", "bruno@example.com", "Inactive"},
	}

	members, err := parseMembers(raw)
	require.NoError(t, err)
	require.Len(t, members, 2)

	assert.Equal(t, "A", members[0].ID)
	assert.Equal(t, "Alice Almeida", members[0].Name)
	assert.Equal(t, "alice@example.com", members[0].Email)
	assert.Equal(t, "Active", members[0].Status)
	assert.Equal(t, "Inactive", members[1].Status)
}

func TestParseMembers_ReorderedColumns(t *testing.T) {
	raw := [][]interface{}{
		{"Status", "Email", "Member ID", "Full name"},
		{"Active", "alice@example.com", "A", "Alice Almeida"},
	}

	members, err := parseMembers(raw)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "A", members[0].ID)
	assert.Equal(t, "Alice Almeida", members[0].Name)
}

func TestParseMembers_MissingHeader(t *testing.T) {
	raw := [][]interface{}{
		{"Member ID", "Full name", "Status"},
		{"A", "Alice Almeida", "Active"},
	}

	_, err := parseMembers(raw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required field in header: Email")
}

func TestParseMembers_SkipsEmptyRows(t *testing.T) {
	raw := [][]interface{}{
		{"Member ID", "Full name", "Email", "Status"},
		{"A", "Alice Almeida", "alice@example.com", "Active"},
		{},
		{"", "No ID", "noid@example.com", "Active"},
		{"B", "Bruno Barros"},
	}

	members, err := parseMembers(raw)
	require.NoError(t, err)
	require.Len(t, members, 2)

	// Short rows read missing cells as empty strings
	assert.Equal(t, "B", members[1].ID)
	assert.Empty(t, members[1].Email)
	assert.Empty(t, members[1].Status)
}

func TestDirectoryLookup(t *testing.T) {
	directory := &Directory{
		byID: map[string]Member{
			"A": {ID: "A", Name: "Alice Almeida", Email: "alice@example.com", Status: "Active"},
			"B": {ID: "B", Name: "Bruno Barros", Email: "bruno@example.com", Status: "active"},
			"C": {ID: "C", Name: "Carla Costa", Email: "carla@example.com", Status: "Inactive"},
			"D": {ID: "D", Name: "Diego Dias", Status: "Active"},
		},
	}
	// Mark the sheet as already loaded
	directory.once.Do(func() {})

	name, err := directory.ResolveMemberName("A")
	require.NoError(t, err)
	assert.Equal(t, "Alice Almeida", name)

	// Status comparison is case-insensitive
	name, err = directory.ResolveMemberName("B")
	require.NoError(t, err)
	assert.Equal(t, "Bruno Barros", name)

	_, err = directory.ResolveMemberName("C")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not active")

	_, err = directory.ResolveMemberName("Z")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	email, err := directory.MemberEmail("A")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", email)

	_, err = directory.MemberEmail("D")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has no email")
}
