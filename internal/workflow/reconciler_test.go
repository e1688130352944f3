package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngoconnect/ngoconnect/internal/models"
)

func reqs(ids ...string) []models.Requirement {
	out := make([]models.Requirement, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.Requirement{ID: id, Status: models.StatusPending})
	}
	return out
}

func ids[T models.Identifiable](items []T) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Identity())
	}
	return out
}

// ---------------------------------------------------------------------------
// RemoveByID
// ---------------------------------------------------------------------------

func TestRemoveByID(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		id   string
		want []string
	}{
		{"middle", []string{"a", "b", "c"}, "b", []string{"a", "c"}},
		{"first", []string{"a", "b", "c"}, "a", []string{"b", "c"}},
		{"last", []string{"a", "b", "c"}, "c", []string{"a", "b"}},
		{"absent", []string{"a", "b"}, "z", []string{"a", "b"}},
		{"duplicates", []string{"a", "b", "a"}, "a", []string{"b"}},
		{"empty", nil, "a", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RemoveByID(reqs(tt.in...), tt.id)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestRemoveByID_DoesNotMutateInput(t *testing.T) {
	in := reqs("a", "b", "c")
	_ = RemoveByID(in, "a")
	assert.Equal(t, []string{"a", "b", "c"}, ids(in))
}

func TestRemoveByID_Organizations(t *testing.T) {
	in := []models.Organization{{ID: "n1"}, {ID: "n2"}}
	assert.Equal(t, []string{"n2"}, ids(RemoveByID(in, "n1")))
}

// ---------------------------------------------------------------------------
// Replace / Prepend
// ---------------------------------------------------------------------------

func TestReplace(t *testing.T) {
	got := Replace[models.Requirement](nil)
	require.NotNil(t, got)
	assert.Empty(t, got)

	in := reqs("c", "a", "b")
	got = Replace(in)
	assert.Equal(t, []string{"c", "a", "b"}, ids(got))

	in[0].ID = "changed"
	assert.Equal(t, "c", got[0].ID, "replacement must be a copy")
}

func TestPrepend(t *testing.T) {
	got := Prepend(reqs("a", "b"), models.Requirement{ID: "n"})
	assert.Equal(t, []string{"n", "a", "b"}, ids(got))

	got = Prepend(reqs("a", "b"), models.Requirement{ID: "b"})
	assert.Equal(t, []string{"b", "a"}, ids(got))
}

// ---------------------------------------------------------------------------
// Decision
// ---------------------------------------------------------------------------

func TestDecision_Apply(t *testing.T) {
	next, err := Approve("r1").Apply(models.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, next)

	next, err = Reject("r1", "duplicate").Apply(models.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, next)

	// terminal states never move
	for _, from := range []models.Status{models.StatusApproved, models.StatusRejected} {
		for _, d := range []Decision{Approve("r1"), Reject("r1", "x")} {
			got, err := d.Apply(from)
			assert.Error(t, err)
			assert.Equal(t, from, got)
		}
	}
}

func TestDecision_Validate(t *testing.T) {
	assert.Error(t, Approve("").Validate())
	assert.Error(t, Decision{ID: "r1", Status: models.StatusPending}.Validate())
	assert.NoError(t, Reject("r1", "").Validate())
}
