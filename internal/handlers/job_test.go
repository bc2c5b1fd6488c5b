package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/openhire/apiserver/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJobQueryDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/jobs", nil)

	q, err := parseJobQuery(r)
	require.NoError(t, err)
	assert.Equal(t, types.SortByDate, q.SortBy)
	assert.Equal(t, types.SortDesc, q.SortOrder)
	assert.Equal(t, types.DefaultJobPage, q.Page)
	assert.Equal(t, types.DefaultJobLimit, q.Limit)
	assert.Nil(t, q.MinSalary)
	assert.Nil(t, q.MaxSalary)
}

func TestParseJobQueryFilters(t *testing.T) {
	r := httptest.NewRequest("GET",
		"/jobs?jobType=contract&title=engineer&location=berlin&minSalary=70000&maxSalary=100000&sortBy=min-salary&sortOrder=asc&page=2&limit=5", nil)

	q, err := parseJobQuery(r)
	require.NoError(t, err)
	assert.Equal(t, types.JobTypeContract, q.JobType)
	assert.Equal(t, "engineer", q.Title)
	assert.Equal(t, "berlin", q.Location)
	require.NotNil(t, q.MinSalary)
	assert.Equal(t, int64(70000), *q.MinSalary)
	require.NotNil(t, q.MaxSalary)
	assert.Equal(t, int64(100000), *q.MaxSalary)
	assert.Equal(t, types.SortByMinSalary, q.SortBy)
	assert.Equal(t, types.SortAsc, q.SortOrder)
	assert.Equal(t, 2, q.Page)
	assert.Equal(t, 5, q.Limit)
}

func TestParseJobQueryRejectsMalformedValues(t *testing.T) {
	for _, query := range []string{
		"jobType=freelance",
		"sortBy=salary",
		"sortOrder=sideways",
		"minSalary=lots",
		"maxSalary=12.5",
		"page=two",
		"limit=ten",
	} {
		r := httptest.NewRequest("GET", "/jobs?"+query, nil)
		_, err := parseJobQuery(r)
		assert.Error(t, err, query)
	}
}

func TestParseJobQueryOutOfRangePagination(t *testing.T) {
	// Out-of-range page and limit are not errors; they fall back to the
	// defaults.
	r := httptest.NewRequest("GET", "/jobs?page=-1&limit=0", nil)

	q, err := parseJobQuery(r)
	require.NoError(t, err)
	assert.Equal(t, types.DefaultJobPage, q.Page)
	assert.Equal(t, types.DefaultJobLimit, q.Limit)
}
