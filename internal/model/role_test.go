package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in     string
		want   Role
		wantOK bool
	}{
		{"Admin", RoleAdmin, true},
		{" InventoryManager ", RoleInventoryManager, true},
		{"Supplier", RoleSupplier, true},
		{"admin", "", false},
		{"Auditor", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseRole(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestItemNormalize(t *testing.T) {
	item := Item{ItemID: 1, Name: "  Denim ", Category: " Cotton\t"}
	item.Normalize()
	assert.Equal(t, "Denim", item.Name)
	assert.Equal(t, "Cotton", item.Category)
}
