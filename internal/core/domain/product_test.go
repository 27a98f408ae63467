package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestProductValidate(t *testing.T) {
	testCases := []struct {
		name    string
		product Product
		wantErr bool
	}{
		{"valid", Product{ID: 7, Title: "Shoe", Price: decimal.NewFromInt(100)}, false},
		{"free", Product{ID: 7, Price: decimal.Zero}, false},
		{"missing id", Product{Title: "Shoe", Price: decimal.NewFromInt(100)}, true},
		{"negative price", Product{ID: 7, Price: decimal.RequireFromString("-0.01")}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.product.Validate()
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRecord)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStockLevelValidate(t *testing.T) {
	assert.NoError(t, StockLevel{ID: 7, Amount: 0}.Validate())
	assert.ErrorIs(t, StockLevel{ID: 7, Amount: -1}.Validate(), ErrInvalidRecord)
	assert.ErrorIs(t, StockLevel{Amount: 3}.Validate(), ErrInvalidRecord)
}
