package content

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/portfolio/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExperience_JSON(t *testing.T) {
	t.Run("current flag decodes to ongoing and drops stale end date", func(t *testing.T) {
		var e Experience
		err := json.Unmarshal([]byte(`{"id":"x","company":"Acme","current":true,"endDate":"2020-01"}`), &e)
		require.NoError(t, err)

		assert.True(t, e.IsCurrent())
		assert.Equal(t, "", e.EndDate())
		assert.Equal(t, []string{}, e.Technologies)
	})

	t.Run("completed encodes end date", func(t *testing.T) {
		e := NewExperience(2)
		e.Company = "Acme"
		e.Tenure = Completed{EndDate: "2022-06"}

		data, err := json.Marshal(e)
		require.NoError(t, err)

		var raw map[string]any
		require.NoError(t, json.Unmarshal(data, &raw))
		assert.Equal(t, false, raw["current"])
		assert.Equal(t, "2022-06", raw["endDate"])
		assert.Equal(t, float64(2), raw["order"])
	})
}

func TestExperience_Validate(t *testing.T) {
	valid := func() *Experience {
		e := NewExperience(0)
		e.Company = "Acme"
		e.Position = "Engineer"
		e.StartDate = "2020-01"
		e.Tenure = Completed{EndDate: "2021-03"}
		return e
	}

	require.NoError(t, valid().Validate())

	ongoing := valid()
	ongoing.Tenure = Ongoing{}
	require.NoError(t, ongoing.Validate())

	tests := []struct {
		name  string
		edit  func(*Experience)
		field string
	}{
		{"missing company", func(e *Experience) { e.Company = "" }, "company"},
		{"missing position", func(e *Experience) { e.Position = " " }, "position"},
		{"missing start date", func(e *Experience) { e.StartDate = "" }, "startDate"},
		{"completed without end date", func(e *Experience) { e.Tenure = Completed{} }, "endDate"},
		{"end before start", func(e *Experience) { e.Tenure = Completed{EndDate: "2019-01"} }, "endDate"},
		{"nil tenure", func(e *Experience) { e.Tenure = nil }, "endDate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid()
			tt.edit(e)
			err := e.Validate()

			var verr *shared.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestDuration(t *testing.T) {
	now := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "1 year 2 months", Duration("2020-01", Completed{EndDate: "2021-03"}, now))
	assert.Equal(t, "2 years", Duration("2020-05-01", Completed{EndDate: "2022-05-20"}, now))
	assert.Equal(t, "11 months", Duration("2020-06", Completed{EndDate: "2021-05"}, now))
	assert.Equal(t, "1 month", Duration("2024-02", Ongoing{}, now))
	assert.Equal(t, "Less than a month", Duration("2024-03-01", Ongoing{}, now))
	assert.Equal(t, "", Duration("", Ongoing{}, now))
	assert.Equal(t, "", Duration("2020-01", Completed{}, now))
}

func TestFormatMonthYear(t *testing.T) {
	assert.Equal(t, "March 2021", FormatMonthYear("2021-03"))
	assert.Equal(t, "December 2019", FormatMonthYear("2019-12-24"))
	assert.Equal(t, "", FormatMonthYear(""))
	assert.Equal(t, "sometime", FormatMonthYear("sometime"))
}
