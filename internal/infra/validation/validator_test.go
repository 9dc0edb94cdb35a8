package validation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prorent/internal/app/dto"
)

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.ErrorIs(t, err, ErrValidation)
	return verr.Fields
}

func TestReservationForm(t *testing.T) {
	v := New()
	in := time.Date(2025, 8, 1, 14, 0, 0, 0, time.UTC)

	ok := dto.ReservationForm{RoomTypeID: "rt-1", CheckIn: in, CheckOut: in.AddDate(0, 0, 2), Guests: 2}
	assert.NoError(t, v.Struct(ok))

	bad := dto.ReservationForm{CheckIn: in, CheckOut: in, Guests: 21}
	fields := fieldsOf(t, v.Struct(bad))
	assert.Equal(t, "required", fields["room_type_id"])
	assert.Equal(t, "gtfield=CheckIn", fields["check_out"])
	assert.Equal(t, "max=20", fields["guests"])

	fields = fieldsOf(t, v.Struct(dto.ReservationForm{RoomTypeID: "rt-1", Guests: 1}))
	assert.Equal(t, "required", fields["check_in"])
}

func TestPeakRateForm(t *testing.T) {
	v := New()

	assert.NoError(t, v.Struct(dto.PeakRateForm{StartDate: "2025-12-24", EndDate: "2025-12-27", RateType: "FIXED", Value: 1}))

	fields := fieldsOf(t, v.Struct(dto.PeakRateForm{StartDate: "2025-12-27", EndDate: "2025-12-24", RateType: "PERCENTAGE", Value: 1}))
	assert.Equal(t, map[string]string{"end_date": "after_start"}, fields)

	fields = fieldsOf(t, v.Struct(dto.PeakRateForm{StartDate: "24/12/2025", EndDate: "2025-12-27", RateType: "DISCOUNT", Value: 0}))
	assert.Equal(t, "datekey", fields["start_date"])
	assert.Equal(t, "oneof=FIXED PERCENTAGE", fields["rate_type"])
	assert.Equal(t, "gt=0", fields["value"])
}

func TestDraftForm_AllowsPartialInput(t *testing.T) {
	v := New()
	assert.NoError(t, v.Struct(dto.DraftForm{RoomTypeID: "rt-1"}))

	fields := fieldsOf(t, v.Struct(dto.DraftForm{RoomTypeID: "rt-1", CheckIn: "2025-08-03", CheckOut: "2025-08-01"}))
	assert.Equal(t, "after_start", fields["check_out"])
}

type carrier struct{ form any }

func (c carrier) Form() any { return c.form }

func TestValidate_OnlyFormCarriers(t *testing.T) {
	v := New()
	assert.NoError(t, v.Validate(context.Background(), struct{}{}))
	assert.Error(t, v.Validate(context.Background(), carrier{form: dto.DraftForm{}}))
}
