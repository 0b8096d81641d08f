package risk_test

import (
	"errors"
	"strings"
	"testing"

	"risk-assessor/internal/risk"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() risk.Values {
	return risk.Values{"likelihood": "3", "impact": "4", "severity": "2", "frequency": "5"}
}

func TestValidate_OK(t *testing.T) {
	in := validInput()
	in["impact"] = " 4 "

	r, err := risk.Validate(in)
	require.NoError(t, err)
	assert.Equal(t, risk.Ratings{Likelihood: 3, Impact: 4, Severity: 2, Frequency: 5}, r)
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(v risk.Values)
		kind    risk.Kind
		field   string
		wantErr error
	}{
		{"likelihood zero", func(v risk.Values) { v["likelihood"] = "0" }, risk.OutOfRange, "likelihood", risk.ErrOutOfRange},
		{"likelihood six", func(v risk.Values) { v["likelihood"] = "6" }, risk.OutOfRange, "likelihood", risk.ErrOutOfRange},
		{"negative severity", func(v risk.Values) { v["severity"] = "-2" }, risk.OutOfRange, "severity", risk.ErrOutOfRange},
		{"likelihood abc", func(v risk.Values) { v["likelihood"] = "abc" }, risk.NonIntegerInput, "likelihood", risk.ErrNonIntegerInput},
		{"decimal impact", func(v risk.Values) { v["impact"] = "2.5" }, risk.NonIntegerInput, "impact", risk.ErrNonIntegerInput},
		{"empty frequency", func(v risk.Values) { v["frequency"] = "" }, risk.NonIntegerInput, "frequency", risk.ErrNonIntegerInput},
		{"missing frequency", func(v risk.Values) { delete(v, "frequency") }, risk.MissingField, "frequency", risk.ErrMissingField},
		{"missing impact", func(v risk.Values) { delete(v, "impact") }, risk.MissingField, "impact", risk.ErrMissingField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(in)

			r, err := risk.Validate(in)
			require.Error(t, err)
			assert.Equal(t, risk.Ratings{}, r)

			var ve *risk.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.kind, ve.Kind)
			assert.Equal(t, tt.field, ve.Field)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.kind, risk.KindOf(err))
		})
	}
}

func TestValidate_NonIntegerReportedBeforeRange(t *testing.T) {
	in := validInput()
	in["likelihood"] = "9"
	in["frequency"] = "x"

	_, err := risk.Validate(in)
	assert.ErrorIs(t, err, risk.ErrNonIntegerInput)
	assert.NotErrorIs(t, err, risk.ErrOutOfRange)
}

func TestValidate_HugeIntegersAreOutOfRange(t *testing.T) {
	for _, v := range []string{"99999999999999999999", "-99999999999999999999", " 18446744073709551616 "} {
		in := validInput()
		in["severity"] = v

		_, err := risk.Validate(in)
		require.Error(t, err, v)
		assert.ErrorIs(t, err, risk.ErrOutOfRange, v)

		var ve *risk.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "severity", ve.Field)
		assert.Equal(t, strings.TrimSpace(v), ve.Value)
	}

	// a real non-integer elsewhere still wins
	in := validInput()
	in["likelihood"] = "99999999999999999999"
	in["frequency"] = "x"
	_, err := risk.Validate(in)
	assert.ErrorIs(t, err, risk.ErrNonIntegerInput)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "non_integer", risk.NonIntegerInput.String())
	assert.Equal(t, "out_of_range", risk.OutOfRange.String())
	assert.Equal(t, "missing_field", risk.MissingField.String())
	assert.Equal(t, risk.Kind(0), risk.KindOf(errors.New("other")))
}
