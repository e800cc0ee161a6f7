package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromotion_Validate(t *testing.T) {
	serviceID := uuid.New()

	tests := []struct {
		name       string
		promotion  Promotion
		wantFields []string
	}{
		{
			name:      "valid service promotion",
			promotion: Promotion{Name: "Spring", Kind: PromotionKindService, DiscountPercent: 20, ServiceIDs: []uuid.UUID{serviceID}},
		},
		{
			name:      "valid weekday promotion with full discount",
			promotion: Promotion{Name: "Free Monday", Kind: PromotionKindWeekday, DiscountPercent: 100, Weekdays: []int{1}},
		},
		{
			name:       "zero discount",
			promotion:  Promotion{Name: "Zero", Kind: PromotionKindWeekday, DiscountPercent: 0, Weekdays: []int{1}},
			wantFields: []string{"discountPercent"},
		},
		{
			name:       "discount above 100",
			promotion:  Promotion{Name: "Too much", Kind: PromotionKindWeekday, DiscountPercent: 101, Weekdays: []int{1}},
			wantFields: []string{"discountPercent"},
		},
		{
			name:       "service kind without services",
			promotion:  Promotion{Name: "Empty", Kind: PromotionKindService, DiscountPercent: 10},
			wantFields: []string{"serviceIds"},
		},
		{
			name:       "weekday kind without weekdays",
			promotion:  Promotion{Name: "Empty", Kind: PromotionKindWeekday, DiscountPercent: 10},
			wantFields: []string{"weekdays"},
		},
		{
			name:       "weekday out of range",
			promotion:  Promotion{Name: "Bad day", Kind: PromotionKindWeekday, DiscountPercent: 10, Weekdays: []int{7}},
			wantFields: []string{"weekdays"},
		},
		{
			name:       "unknown kind and missing name",
			promotion:  Promotion{Kind: "category", DiscountPercent: 10},
			wantFields: []string{"name", "kind"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.promotion.Validate()

			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, ErrInvalidPromotionConfiguration)
			fields, ok := FieldsOf(err)
			require.True(t, ok)
			assert.Len(t, fields, len(tt.wantFields))
			for _, field := range tt.wantFields {
				assert.True(t, fields.Has(field), "expected error for %s", field)
			}
		})
	}
}

func TestPromotion_Applies(t *testing.T) {
	serviceID := uuid.New()

	byService := Promotion{Kind: PromotionKindService, ServiceIDs: []uuid.UUID{serviceID}, Weekdays: []int{1}}
	assert.True(t, byService.AppliesToService(serviceID))
	assert.False(t, byService.AppliesToService(uuid.New()))
	assert.False(t, byService.AppliesToWeekday(time.Monday), "selector of other kind is ignored")

	byWeekday := Promotion{Kind: PromotionKindWeekday, Weekdays: []int{0, 6}}
	assert.True(t, byWeekday.AppliesToWeekday(time.Sunday))
	assert.True(t, byWeekday.AppliesToWeekday(time.Saturday))
	assert.False(t, byWeekday.AppliesToWeekday(time.Monday))
	assert.False(t, byWeekday.AppliesToService(serviceID))
}
