package rotation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucasmdrs/escala/pkg/core/model"
)

func testCursor(pool []string, index int) *model.RotationCursor {
	return &model.RotationCursor{
		MinistryID: "worship",
		Pool:       pool,
		Index:      index,
	}
}

func TestPropose_FillsRolesFromConsecutivePositions(t *testing.T) {
	cursor := testCursor([]string{"A", "B", "C", "D"}, 1)
	occursAt := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	draft, err := Propose(cursor, []string{"Vocal", "Guitar", "Drums"}, occursAt)
	require.NoError(t, err)

	require.Len(t, draft.Assignments, 3)
	assert.Equal(t, Assignment{MemberID: "B", Role: "Vocal"}, draft.Assignments[0])
	assert.Equal(t, Assignment{MemberID: "C", Role: "Guitar"}, draft.Assignments[1])
	assert.Equal(t, Assignment{MemberID: "D", Role: "Drums"}, draft.Assignments[2])
	assert.Equal(t, 3, draft.Consumed)

	require.Len(t, draft.History, 3)
	for i, h := range draft.History {
		assert.Equal(t, occursAt, h.Date)
		assert.Equal(t, draft.Assignments[i].MemberID, h.MemberID)
		assert.Equal(t, draft.Assignments[i].Role, h.Role)
	}
}

func TestPropose_WrapsWhenMoreRolesThanMembers(t *testing.T) {
	cursor := testCursor([]string{"A", "B"}, 0)

	draft, err := Propose(cursor, []string{"Vocal", "Guitar", "Drums"}, time.Now())
	require.NoError(t, err)

	// Members repeat within the same roster; that is expected
	assert.Equal(t, "A", draft.Assignments[0].MemberID)
	assert.Equal(t, "B", draft.Assignments[1].MemberID)
	assert.Equal(t, "A", draft.Assignments[2].MemberID)
}

func TestPropose_NormalizesStaleIndex(t *testing.T) {
	// Pool shrank after the index was written
	cursor := testCursor([]string{"A", "B", "C"}, 7)

	draft, err := Propose(cursor, []string{"Vocal"}, time.Now())
	require.NoError(t, err)

	assert.Equal(t, "B", draft.Assignments[0].MemberID) // 7 mod 3 == 1
}

func TestPropose_EmptyPool(t *testing.T) {
	cursor := testCursor(nil, 0)

	_, err := Propose(cursor, []string{"Vocal"}, time.Now())
	require.Error(t, err)

	var validationErr *model.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestPropose_NoRoles(t *testing.T) {
	cursor := testCursor([]string{"A"}, 0)

	_, err := Propose(cursor, nil, time.Now())
	require.Error(t, err)

	var validationErr *model.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

// The Worship scenario: pool [A,B,C], one role, three consecutive
// generations walk the pool and wrap back to the top.
func TestPropose_RotationScenario(t *testing.T) {
	cursor := testCursor([]string{"A", "B", "C"}, 0)
	roles := []string{"Vocal"}

	expected := []string{"A", "B", "C", "A"}
	for i, want := range expected {
		draft, err := Propose(cursor, roles, time.Now())
		require.NoError(t, err)
		assert.Equal(t, want, draft.Assignments[0].MemberID, "generation %d", i+1)

		cursor.Index = NextIndex(cursor.Index, draft.Consumed, len(cursor.Pool))
	}
	assert.Equal(t, 1, cursor.Index)
}

// Round-robin fairness: over k single-role generations from a pool of
// size n, every member appears floor(k/n) or ceil(k/n) times.
func TestPropose_Fairness(t *testing.T) {
	pool := []string{"A", "B", "C", "D", "E"}
	cursor := testCursor(pool, 0)

	const k = 23
	counts := make(map[string]int)
	for i := 0; i < k; i++ {
		draft, err := Propose(cursor, []string{"Vocal"}, time.Now())
		require.NoError(t, err)
		counts[draft.Assignments[0].MemberID]++
		cursor.Index = NextIndex(cursor.Index, draft.Consumed, len(pool))
	}

	floor, ceil := k/len(pool), k/len(pool)+1
	for _, member := range pool {
		assert.Contains(t, []int{floor, ceil}, counts[member], "member %s", member)
	}
}

func TestNextIndex(t *testing.T) {
	tests := []struct {
		name     string
		index    int
		consumed int
		n        int
		want     int
	}{
		{"advance within pool", 0, 2, 5, 2},
		{"wrap", 4, 3, 5, 2},
		{"full cycle", 2, 5, 5, 2},
		{"empty pool", 3, 2, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextIndex(tt.index, tt.consumed, tt.n))
		})
	}
}
