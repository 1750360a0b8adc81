package staffdir_test

import (
	"encoding/json"
	"testing"

	"github.com/fwojciec/staffdir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaffRecord_MarshalJSON(t *testing.T) {
	t.Parallel()

	t.Run("encodes missing fields as null", func(t *testing.T) {
		t.Parallel()

		b, err := json.Marshal(staffdir.StaffRecord{Name: "Jane Doe", Email: "jane@school.edu"})

		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"Jane Doe","jobTitle":null,"email":"jane@school.edu"}`, string(b))
	})

	t.Run("encodes a slice of records", func(t *testing.T) {
		t.Parallel()

		records := []*staffdir.StaffRecord{{Name: "A", JobTitle: "Teacher"}}
		b, err := json.Marshal(records)

		require.NoError(t, err)
		assert.JSONEq(t, `[{"name":"A","jobTitle":"Teacher","email":null}]`, string(b))
	})
}

func TestStaffRecord_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	var r staffdir.StaffRecord
	err := json.Unmarshal([]byte(`{"name":"Jane","jobTitle":null,"email":"j@x.org"}`), &r)

	require.NoError(t, err)
	assert.Equal(t, staffdir.StaffRecord{Name: "Jane", Email: "j@x.org"}, r)
}

func TestScrapeRequest_Validate(t *testing.T) {
	t.Parallel()

	t.Run("requires URL", func(t *testing.T) {
		t.Parallel()

		req := staffdir.ScrapeRequest{}
		assert.Equal(t, staffdir.EINVALID, staffdir.ErrorCode(req.Validate()))
	})

	t.Run("decodes optional flags", func(t *testing.T) {
		t.Parallel()

		var req staffdir.ScrapeRequest
		err := json.Unmarshal([]byte(`{"url":"https://x.org","paginationEnabled":true}`), &req)

		require.NoError(t, err)
		assert.NoError(t, req.Validate())
		assert.True(t, req.PaginationEnabled)
		assert.False(t, req.InternalNavigationEnabled)
	})
}
