package audit

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type boom struct{}

func (boom) String() string { panic("no text form") }

type shelf string

func TestStringify(t *testing.T) {
	id := uuid.MustParse("0b7f3a52-1c1e-4f6a-9d43-5b8f0d1e2a33")
	name := "Tools"
	var nilName *string

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"string", "Tools", "Tools"},
		{"empty string", "", ""},
		{"bool", true, "true"},
		{"int", 42, "42"},
		{"uint", uint(7), "7"},
		{"float32", float32(1.5), "1.5"},
		{"float64", 0.1, "0.1"},
		{"decimal keeps scale", decimal.RequireFromString("12.50"), "12.50"},
		{"rounded decimal", decimal.NewFromInt(10).Round(2), "10.00"},
		{"integral decimal", decimal.NewFromInt(3), "3"},
		{"time in utc", time.Date(2024, 1, 2, 3, 4, 5, 0, time.FixedZone("BRT", -3*3600)), "2024-01-02T06:04:05Z"},
		{"uuid", id, id.String()},
		{"pointer", &name, "Tools"},
		{"named string", shelf("A1"), "A1"},
		{"slice", []int{1, 2}, "[1 2]"},
		{"panicking stringer", boom{}, "<audit.boom>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Stringify(tt.in)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}

	assert.Nil(t, Stringify(nil))
	assert.Nil(t, Stringify(nilName))
}

func TestIsDefaultValue(t *testing.T) {
	var nilID *uuid.UUID

	assert.True(t, IsDefaultValue(nil))
	assert.True(t, IsDefaultValue(""))
	assert.True(t, IsDefaultValue(0))
	assert.True(t, IsDefaultValue(uint(0)))
	assert.True(t, IsDefaultValue(float32(0)))
	assert.True(t, IsDefaultValue(time.Time{}))
	assert.True(t, IsDefaultValue(uuid.Nil))
	assert.True(t, IsDefaultValue(decimal.Zero))
	assert.True(t, IsDefaultValue(decimal.NewFromInt(0).Round(2)))
	assert.True(t, IsDefaultValue(nilID))
	assert.True(t, IsDefaultValue(false))

	assert.False(t, IsDefaultValue("Tools"))
	assert.False(t, IsDefaultValue(uint(3)))
	assert.False(t, IsDefaultValue(uuid.New()))
	assert.False(t, IsDefaultValue(decimal.RequireFromString("0.01")))
	assert.False(t, IsDefaultValue(time.Now()))
}

func TestEqual(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(nil, "x"))
	assert.False(t, Equal("x", nil))
	assert.True(t, Equal("Tools", "Tools"))
	assert.False(t, Equal("Tools", "tools"))
	assert.True(t, Equal(decimal.RequireFromString("10.0"), decimal.RequireFromString("10.00")))
	assert.False(t, Equal(decimal.RequireFromString("10.00"), decimal.RequireFromString("12.50")))
	assert.True(t, Equal(at, at.In(time.FixedZone("BRT", -3*3600))))
	assert.False(t, Equal(uint(1), 1))
}
